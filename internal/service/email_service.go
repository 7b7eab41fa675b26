package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// EmailService sends transactional emails.
type EmailService interface {
	SendMatchInvite(ctx context.Context, toEmail, matchName, uhash, password string) error
}

// NoopEmailService is used when outgoing mail is disabled.
type NoopEmailService struct{}

func (s *NoopEmailService) SendMatchInvite(ctx context.Context, toEmail, matchName, uhash, password string) error {
	log.Printf("[EmailService] noop send match invite to=%s match=%s", toEmail, matchName)
	return nil
}

// ResendEmailService sends emails via Resend REST API.
type ResendEmailService struct {
	from    string
	baseURL string
	client  *resend.Client
}

func NewResendEmailService(apiKey, from, baseURL string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:    from,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  resend.NewClient(apiKey),
	}, nil
}

// SendMatchInvite отправляет приглашение в ограниченный матч:
// ссылку на вход и пароль.
func (s *ResendEmailService) SendMatchInvite(ctx context.Context, toEmail, matchName, uhash, password string) error {
	if toEmail == "" || uhash == "" {
		return fmt.Errorf("toEmail and uhash are required")
	}

	link := fmt.Sprintf("%s/play/%s", s.baseURL, uhash)
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("You are invited to play %s", matchName),
		Text: fmt.Sprintf(
			"You are invited to play %s.\nOpen %s and enter the password %s.",
			matchName, link, password,
		),
		Html: fmt.Sprintf(
			"<p>You are invited to play <strong>%s</strong>.</p><p>Open <a href=%q>%s</a> and enter the password <strong>%s</strong>.</p>",
			matchName, link, link, password,
		),
	}

	options := &resend.SendEmailOptions{
		// Один и тот же матч и адрес — одно письмо
		IdempotencyKey: fmt.Sprintf("invite/%s/%s", uhash, toEmail),
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary()) {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
