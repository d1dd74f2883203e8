package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"teesheet/internal/logger"
	"teesheet/internal/metrics"
)

const (
	popTimeout     = 2 * time.Second
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3

	TypeBookingConfirmation = "booking_confirmation"
	TypeCancellation        = "booking_cancellation"
	TypeContact             = "contact"
	TypeGeneric             = "generic"
)

type EmailJob struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	ReplyTo string    `json:"replyTo,omitempty"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Config struct {
	From      string
	FromName  string
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	RedisAddr string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Service struct {
	redis      *redis.Client
	from       string
	fromName   string
	smtpHost   string
	smtpPort   string
	smtpUser   string
	smtpPass   string
	send       sendFunc
	retryDelay time.Duration
}

func New(cfg Config) *Service {
	return newService(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), cfg)
}

func newService(rdb *redis.Client, cfg Config) *Service {
	return &Service{
		redis:      rdb,
		from:       cfg.From,
		fromName:   cfg.FromName,
		smtpHost:   cfg.SMTPHost,
		smtpPort:   strconv.Itoa(cfg.SMTPPort),
		smtpUser:   cfg.SMTPUser,
		smtpPass:   cfg.SMTPPass,
		send:       smtp.SendMail,
		retryDelay: 5 * time.Second,
	}
}

// Ping checks that the queue is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	if job.Created.IsZero() {
		job.Created = time.Now()
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Error("failed to queue email", "to", job.To, "type", job.Type, "error", err)
		return err
	}

	logger.Info("email queued", "to", job.To, "type", job.Type, "subject", job.Subject)
	return nil
}

func (s *Service) Send(ctx context.Context, to, name, subject, body string) error {
	return s.enqueue(ctx, EmailJob{Type: TypeGeneric, To: to, Name: name, Subject: subject, Body: body})
}

// Start drains the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, popTimeout, queueKey).Result()
	if err != nil {
		// redis.Nil is an empty queue at the end of the pop timeout.
		if errors.Is(err, redis.Nil) || ctx.Err() != nil {
			return
		}
		logger.Warn("email queue unavailable, backing off", "error", err, "retry_in", s.retryDelay)
		select {
		case <-ctx.Done():
		case <-time.After(s.retryDelay):
		}
		return
	}
	metrics.EmailQueueLength.Set(float64(s.QueueLength(ctx)))

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Error("failed to send email", "to", job.To, "attempt", job.Tries, "error", err)
		metrics.RecordEmail(job.Type, "failed")

		if job.Tries < maxTries {
			select {
			case <-ctx.Done():
			case <-time.After(s.retryDelay):
			}
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, string(data))
			return
		}
		s.saveFailed(job, err)
		return
	}

	metrics.RecordEmail(job.Type, "success")
	logger.Info("email sent", "to", job.To, "type", job.Type)
}

func (s *Service) sendNow(job EmailJob) error {
	if s.smtpHost == "" {
		logger.Warn("SMTP not configured, dropping email", "to", job.To, "subject", job.Subject)
		return nil
	}

	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	if job.ReplyTo != "" {
		message += fmt.Sprintf("Reply-To: %s\r\n", job.ReplyTo)
	}
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	return s.send(s.smtpHost+":"+s.smtpPort, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, string(data))
	logger.Error("email moved to failed queue", "to", job.To, "tries", job.Tries)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}
