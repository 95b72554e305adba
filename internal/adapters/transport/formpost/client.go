package formpost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/credit-entry-cli/internal/domain"
	"github.com/bnema/credit-entry-cli/internal/ports"
)

const (
	contentType      = "application/x-www-form-urlencoded;charset=UTF-8"
	maxResponseBytes = 1 << 20
)

// Mode selects how much of the reply the client exposes.
type Mode string

const (
	// ModeNoCORS fires the request and reports every completed exchange as
	// opaque, matching a browser no-cors fetch.
	ModeNoCORS Mode = "no-cors"
	// ModeCORS exposes status and body.
	ModeCORS Mode = "cors"
)

func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeNoCORS:
		return ModeNoCORS, nil
	case ModeCORS:
		return ModeCORS, nil
	default:
		return "", fmt.Errorf("unsupported endpoint mode %q", raw)
	}
}

type Client struct {
	Endpoint   string
	Mode       Mode
	HTTPClient *http.Client
	// RequestTimeout bounds a request when the caller's context has no
	// deadline. Zero leaves it to the transport.
	RequestTimeout time.Duration
}

var _ ports.Submitter = Client{}

func (c Client) Submit(ctx context.Context, fields []domain.FormField) (ports.SubmitResponse, error) {
	endpoint, err := ValidateEndpoint(c.Endpoint)
	if err != nil {
		return ports.SubmitResponse{}, err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, strings.NewReader(EncodeFields(fields)))
	if err != nil {
		return ports.SubmitResponse{}, fmt.Errorf("create submit request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return ports.SubmitResponse{}, fmt.Errorf("post form: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if c.Mode != ModeCORS {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return ports.SubmitResponse{Opaque: true}, nil
	}

	// Body read errors are swallowed: whatever arrived is still useful detail.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	return ports.SubmitResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// EncodeFields form-encodes fields keeping their order.
func EncodeFields(fields []domain.FormField) string {
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(field.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(field.Value))
	}

	return b.String()
}

// ValidateEndpoint checks that raw is an absolute http(s) URL.
func ValidateEndpoint(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", domain.ErrEndpointNotConfigured
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse endpoint url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("endpoint url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("endpoint url host is required")
	}

	return parsed.String(), nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || c.RequestTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.RequestTimeout)
}
