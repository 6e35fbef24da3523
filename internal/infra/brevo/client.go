package brevo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"jaac-backend/internal/domain/notification"
	"jaac-backend/internal/infra/metrics"

	"github.com/google/uuid"
)

const sendPath = "/v3/smtp/email"

type Config struct {
	BaseURL string
	APIKey  string
	Sender  notification.Recipient
	Timeout time.Duration
}

// Client sends transactional email through the Brevo SMTP API.
type Client struct {
	cfg     Config
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewClient(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
		metrics: m,
	}
}

type contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type attachment struct {
	Content string `json:"content"`
	Name    string `json:"name"`
}

type sendRequest struct {
	Sender      contact           `json:"sender"`
	To          []contact         `json:"to"`
	ReplyTo     *contact          `json:"replyTo,omitempty"`
	Subject     string            `json:"subject,omitempty"`
	HTMLContent string            `json:"htmlContent,omitempty"`
	TemplateID  int64             `json:"templateId,omitempty"`
	Params      map[string]string `json:"params,omitempty"`
	Attachment  []attachment      `json:"attachment,omitempty"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Send performs exactly one API call. Failures are logged and reported in the Result.
func (c *Client) Send(ctx context.Context, msg notification.Message) notification.Result {
	res := c.send(ctx, msg)
	c.metrics.EmailDispatched(string(msg.Kind), res.Success)
	return res
}

func (c *Client) send(ctx context.Context, msg notification.Message) notification.Result {
	requestID := uuid.NewString()
	log := c.logger.With(
		slog.String("kind", string(msg.Kind)),
		slog.String("request_id", requestID),
	)

	if err := msg.Validate(); err != nil {
		log.Error("Email rejected before dispatch", slog.String("error", err.Error()))
		return notification.Failed(err.Error(), false)
	}

	body, err := json.Marshal(toRequest(c.cfg.Sender, msg))
	if err != nil {
		log.Error("Failed to encode email payload", slog.String("error", err.Error()))
		return notification.Failed(err.Error(), false)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		log.Error("Failed to build email request", slog.String("error", err.Error()))
		return notification.Failed(err.Error(), false)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("Email provider unreachable", slog.String("error", err.Error()))
		return notification.Failed(err.Error(), true)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := providerMessage(raw, resp.Status)
		log.Error("Email provider rejected message",
			slog.Int("status", resp.StatusCode),
			slog.String("error", reason),
		)
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return notification.Failed(reason, retryable)
	}

	var out sendResponse
	_ = json.Unmarshal(raw, &out)
	log.Info("Email dispatched", slog.String("message_id", out.MessageID))
	return notification.Result{Success: true, MessageID: out.MessageID}
}

func toRequest(sender notification.Recipient, msg notification.Message) sendRequest {
	r := sendRequest{
		Sender:      contact{Email: sender.Email, Name: sender.Name},
		Subject:     msg.Subject,
		HTMLContent: msg.HTMLContent,
		TemplateID:  msg.TemplateID,
		Params:      msg.Params,
	}
	for _, to := range msg.To {
		r.To = append(r.To, contact{Email: to.Email, Name: to.Name})
	}
	if msg.ReplyTo != nil {
		r.ReplyTo = &contact{Email: msg.ReplyTo.Email, Name: msg.ReplyTo.Name}
	}
	for _, a := range msg.Attachments {
		r.Attachment = append(r.Attachment, attachment{
			Content: base64.StdEncoding.EncodeToString(a.Content),
			Name:    a.Name,
		})
	}
	return r
}

func providerMessage(raw []byte, status string) string {
	var e errorResponse
	if err := json.Unmarshal(raw, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return "email provider returned " + status
}
