package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/ytget/parcours/internal/model"
)

// Service endpoints and limits
const (
	GenerateRoutePath = "/api/generate-route"
	HealthPath        = "/health"

	ContentTypeJSON = "application/json"
	RequestIDHeader = "X-Request-ID"

	MaxResponseBytes = 32 << 20
	HealthTimeout    = 5 * time.Second
)

var (
	// ErrMalformedResponse is returned when the service accepted the request
	// but the body could not be decoded into a drawable route
	ErrMalformedResponse = errors.New("malformed route response")
)

// Error is a non-success answer of the generation service
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("route service returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("route service returned %d", e.Status)
}

type requestIDKey struct{}

// WithRequestID attaches an id that is sent along with the next request made with ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Service talks to the generation service over HTTP
type Service struct {
	mu        sync.RWMutex
	baseURL   string
	client    *http.Client
	userAgent string
	log       zerolog.Logger
}

// NewService creates a generation client for the service rooted at baseURL
func NewService(baseURL, userAgent string, log zerolog.Logger) *Service {
	return &Service{
		baseURL: normalizeBaseURL(baseURL),
		// No client timeout: a generation always runs until the service answers.
		client:    &http.Client{},
		userAgent: userAgent,
		log:       log.With().Str("component", "generate").Logger(),
	}
}

// SetBaseURL points the client at another service root
func (s *Service) SetBaseURL(baseURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baseURL = normalizeBaseURL(baseURL)
}

// BaseURL returns the current service root
func (s *Service) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL
}

// Generate posts the request and decodes the generated route
func (s *Service) Generate(ctx context.Context, req model.RouteRequest) (*model.RouteResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode route request: %w", err)
	}

	url := s.BaseURL() + GenerateRoutePath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build route request: %w", err)
	}
	httpReq.Header.Set("Content-Type", ContentTypeJSON)
	httpReq.Header.Set("Accept", ContentTypeJSON)
	s.setCommonHeaders(ctx, httpReq)

	start := time.Now()
	s.log.Debug().
		Str("request_id", requestID(ctx)).
		Str("url", url).
		RawJSON("body", payload).
		Msg("route_request")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read route response: %w", err)
	}

	s.log.Info().
		Str("request_id", requestID(ctx)).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("route_response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Detail: ExtractDetail(body)}
	}

	var route model.RouteResponse
	if err := json.Unmarshal(body, &route); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := route.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &route, nil
}

// Health probes the service health endpoint
func (s *Service) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL()+HealthPath, nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	s.setCommonHeaders(ctx, httpReq)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return &Error{Status: resp.StatusCode, Detail: ExtractDetail(body)}
	}

	if status := gjson.GetBytes(body, "status"); status.Exists() && status.String() != "healthy" {
		return fmt.Errorf("route service reports status %q", status.String())
	}
	return nil
}

func (s *Service) setCommonHeaders(ctx context.Context, req *http.Request) {
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	if id := requestID(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}
}

// ExtractDetail pulls the user-facing message out of an error body. It
// understands {"detail": "..."}, validation lists {"detail": [{"msg": ...}]}
// and {"error": "..."} / {"error": {"message": "..."}}. It returns "" when
// nothing usable is found.
func ExtractDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}

	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		if msg := strings.TrimSpace(detail.String()); msg != "" {
			return msg
		}
	case detail.IsArray():
		var msgs []string
		for _, m := range detail.Get("#.msg").Array() {
			if text := strings.TrimSpace(m.String()); text != "" {
				msgs = append(msgs, text)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	for _, path := range []string{"error", "error.message"} {
		if v := gjson.GetBytes(body, path); v.Type == gjson.String {
			if msg := strings.TrimSpace(v.String()); msg != "" {
				return msg
			}
		}
	}

	return ""
}

func normalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}
