package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/KandruPoojitha/CryptoApp/pkg/config"
)

// FirebaseStore talks to the Realtime Database REST API. Every path
// maps to <base>/<path>.json; reads request an ETag and conditional
// writes send it back via if-match, which the database answers with
// 412 when the revision is stale.
type FirebaseStore struct {
	baseURL    string
	authSecret string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     zerolog.Logger
}

func NewFirebaseStore(cfg config.LedgerConfig, logger zerolog.Logger) *FirebaseStore {
	return &FirebaseStore{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		authSecret: cfg.AuthSecret,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
}

func (s *FirebaseStore) Get(ctx context.Context, path string, out interface{}) (bool, error) {
	_, found, err := s.read(ctx, path, out, false)
	return found, err
}

func (s *FirebaseStore) GetRev(ctx context.Context, path string, out interface{}) (string, bool, error) {
	return s.read(ctx, path, out, true)
}

func (s *FirebaseStore) Set(ctx context.Context, path string, value interface{}) error {
	return s.write(ctx, http.MethodPut, path, value, "")
}

func (s *FirebaseStore) SetRev(ctx context.Context, path string, value interface{}, rev string) error {
	return s.write(ctx, http.MethodPut, path, value, rev)
}

func (s *FirebaseStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	return s.write(ctx, http.MethodPatch, path, fields, "")
}

func (s *FirebaseStore) Delete(ctx context.Context, path string) error {
	return s.write(ctx, http.MethodDelete, path, nil, "")
}

func (s *FirebaseStore) DeleteRev(ctx context.Context, path string, rev string) error {
	return s.write(ctx, http.MethodDelete, path, nil, rev)
}

func (s *FirebaseStore) read(ctx context.Context, path string, out interface{}, withETag bool) (string, bool, error) {
	var rev string
	var body []byte

	err := s.do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pathURL(path), nil)
		if err != nil {
			return err
		}
		if withETag {
			req.Header.Set("X-Firebase-ETag", "true")
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return retryable(err)
		}
		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return retryable(err)
		}
		if resp.StatusCode != http.StatusOK {
			return statusError(resp.StatusCode, body)
		}

		rev = resp.Header.Get("ETag")
		return nil
	})
	if err != nil {
		return "", false, err
	}

	if isNull(body) {
		return rev, false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return "", false, fmt.Errorf("decode %s: %w", path, err)
	}
	return rev, true, nil
}

func (s *FirebaseStore) write(ctx context.Context, method, path string, value interface{}, rev string) error {
	var payload []byte
	if method != http.MethodDelete {
		var err error
		payload, err = json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
	}

	return s.do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, method, s.pathURL(path), bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if rev != "" {
			req.Header.Set("if-match", rev)
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return retryable(err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return retryable(err)
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode == http.StatusPreconditionFailed:
			return ErrConflict
		default:
			return statusError(resp.StatusCode, body)
		}
	})
}

// do runs fn with exponential backoff on transport failures and 5xx.
// Client errors and revision conflicts are never retried.
func (s *FirebaseStore) do(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.retryDelay * time.Duration(1<<(attempt-1))):
			}
		}

		err := fn()
		if err == nil {
			return nil
		}

		var r *retryableError
		if !errors.As(err, &r) {
			return err
		}
		lastErr = r.err
		s.logger.Warn().Err(r.err).Int("attempt", attempt+1).Msg("Ledger request failed, retrying")
	}

	return fmt.Errorf("ledger request failed after %d retries: %w", s.maxRetries, lastErr)
}

func (s *FirebaseStore) pathURL(path string) string {
	u := s.baseURL + "/" + strings.Trim(path, "/") + ".json"
	if s.authSecret != "" {
		u += "?auth=" + url.QueryEscape(s.authSecret)
	}
	return u
}

type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func retryable(err error) error { return &retryableError{err: err} }

func statusError(code int, body []byte) error {
	err := fmt.Errorf("status %d: %s", code, bytes.TrimSpace(body))
	if code >= 500 {
		return retryable(err)
	}
	return err
}

func isNull(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null"))
}
