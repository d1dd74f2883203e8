package email

import (
	"context"
	"fmt"
)

// BookingDetails describes a tee time in outgoing mail.
type BookingDetails struct {
	Course  string
	TeeDate string
	TeeTime string
	Players int
	Price   float64
}

func (d BookingDetails) summary() string {
	return fmt.Sprintf("Course: %s\nDate: %s\nTee time: %s\nPlayers: %d", d.Course, d.TeeDate, d.TeeTime, d.Players)
}

func (s *Service) SendBookingConfirmation(ctx context.Context, to, name string, d BookingDetails) error {
	body := fmt.Sprintf(`Hi %s,

Your tee time request has been received.

%s
Green fee: $%.2f per player

We will let you know once it is approved.

- %s`, name, d.summary(), d.Price, s.fromName)

	return s.enqueue(ctx, EmailJob{
		Type:    TypeBookingConfirmation,
		To:      to,
		Name:    name,
		Subject: fmt.Sprintf("Tee time booked - %s %s", d.TeeDate, d.TeeTime),
		Body:    body,
	})
}

func (s *Service) SendCancellation(ctx context.Context, to, name string, d BookingDetails) error {
	body := fmt.Sprintf(`Hi %s,

Your tee time has been cancelled:

%s

- %s`, name, d.summary(), s.fromName)

	return s.enqueue(ctx, EmailJob{
		Type:    TypeCancellation,
		To:      to,
		Name:    name,
		Subject: fmt.Sprintf("Tee time cancelled - %s %s", d.TeeDate, d.TeeTime),
		Body:    body,
	})
}

// SendContactMessage forwards a website contact form to the club inbox.
func (s *Service) SendContactMessage(ctx context.Context, inbox, name, from, message string) error {
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", name, from, message)

	return s.enqueue(ctx, EmailJob{
		Type:    TypeContact,
		To:      inbox,
		Name:    name,
		Subject: "New contact from " + name,
		Body:    body,
		ReplyTo: from,
	})
}
