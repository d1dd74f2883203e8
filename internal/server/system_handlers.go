package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"teesheet/internal/api"
	"teesheet/internal/logger"
)

// ContactSender queues a visitor's message for the club inbox.
// email.Service satisfies it.
type ContactSender interface {
	SendContactMessage(ctx context.Context, inbox, name, from, message string) error
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,max=5000"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// @Summary      Contact the club
// @Description  Queues the visitor's message for the club inbox.
// @Tags         system
// @Accept       json
// @Produce      json
// @Param        request  body      ContactRequest  true  "Contact form"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /contact [post]
func Contact(sender ContactSender, inbox string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			api.RespondWithValidationErrors(c, "All fields are required.", err)
			return
		}
		name := strings.TrimSpace(req.Name)
		message := strings.TrimSpace(req.Message)
		if name == "" || message == "" {
			c.JSON(http.StatusBadRequest, api.Error("All fields are required."))
			return
		}

		if err := sender.SendContactMessage(c.Request.Context(), inbox, name, req.Email, message); err != nil {
			logger.Error("contact message failed", "error", err, "request_id", RequestID(c))
			c.JSON(http.StatusInternalServerError, api.Error("Failed to send message."))
			return
		}

		c.JSON(http.StatusOK, api.Message("Message sent successfully."))
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
