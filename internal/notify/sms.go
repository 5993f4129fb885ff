package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/dairy-ledger/pkg/logger"
)

// ErrNoRecipient is returned when a message has no phone number
var ErrNoRecipient = errors.New("sms recipient is empty")

// Sender delivers one text message
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// SMSClient posts messages to the shop's SMS gateway
type SMSClient struct {
	endpoint string
	client   *http.Client
	breaker  *Breaker
}

type smsRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewSMSClient targets {baseURL}/send-sms. A nil breaker disables circuit
// breaking.
func NewSMSClient(baseURL string, timeout time.Duration, breaker *Breaker) *SMSClient {
	return &SMSClient{
		endpoint: strings.TrimRight(baseURL, "/") + "/send-sms",
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: breaker,
	}
}

// Send posts {phone, message} and treats any non-2xx status as failure
func (c *SMSClient) Send(ctx context.Context, phone, message string) error {
	if strings.TrimSpace(phone) == "" {
		return ErrNoRecipient
	}
	if c.breaker == nil {
		return c.post(ctx, phone, message)
	}
	return c.breaker.Call(ctx, func(ctx context.Context) error {
		return c.post(ctx, phone, message)
	})
}

func (c *SMSClient) post(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(smsRequest{Phone: phone, Message: message})
	if err != nil {
		return fmt.Errorf("failed to encode sms: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	logger.Debug(ctx).Str("phone", phone).Msg("SMS sent")
	return nil
}
