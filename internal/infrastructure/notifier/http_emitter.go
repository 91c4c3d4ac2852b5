package notifier

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

	"jobboard/internal/config"
	"jobboard/internal/domain/event"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var ErrNoEndpoint = errors.New("notifier endpoint is empty")

type intakeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HTTPEmitter posts events to a remote notification intake endpoint.
type HTTPEmitter struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPEmitter(cfg config.NotifierConfig) (*HTTPEmitter, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPEmitter{
		endpoint: endpoint,
		apiKey:   cfg.APIKey,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

func (e *HTTPEmitter) Emit(ctx context.Context, ev event.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("apikey", e.apiKey)
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var out intakeResponse
		if json.Unmarshal(rb, &out) == nil && out.Error != "" {
			return fmt.Errorf("notifier intake failed: status=%d error=%s", resp.StatusCode, out.Error)
		}
		return fmt.Errorf("notifier intake failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(rb)))
	}
	return nil
}
