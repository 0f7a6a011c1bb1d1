package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/depsolve/pkg/observability"
)

var errTransient = errors.New("transient")

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(errTransient)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, errTransient) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if IsRetryable(errTransient) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		retryable bool
		attempts  int
		wantCalls int
		wantErr   bool
	}{
		{"success first try", 0, true, 3, 1, false},
		{"success after retry", 2, true, 3, 3, false},
		{"exhausted", 5, true, 3, 3, true},
		{"permanent error", 5, false, 3, 1, true},
		{"zero attempts runs once", 0, true, 0, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.attempts, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					if tt.retryable {
						return Retryable(errTransient)
					}
					return errTransient
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return Retryable(errTransient)
	})
	if err != context.Canceled {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}

func TestRetryHonoursAfter(t *testing.T) {
	var stamps []time.Time
	err := Retry(context.Background(), 2, time.Millisecond, func() error {
		stamps = append(stamps, time.Now())
		return &RetryableError{Err: errTransient, After: 50 * time.Millisecond}
	})
	if !errors.Is(err, errTransient) {
		t.Fatalf("Retry() = %v, want errTransient", err)
	}
	if len(stamps) != 2 {
		t.Fatalf("calls = %d, want 2", len(stamps))
	}
	if gap := stamps[1].Sub(stamps[0]); gap < 50*time.Millisecond {
		t.Errorf("waited %v, want at least 50ms", gap)
	}
}

func TestRetryableResponse(t *testing.T) {
	resp := &http.Response{Header: http.Header{"Retry-After": []string{"120"}}}
	var re *RetryableError
	if !errors.As(RetryableResponse(resp, errTransient), &re) {
		t.Fatal("RetryableResponse should wrap")
	}
	if re.After != 2*time.Minute {
		t.Errorf("After = %v, want 2m", re.After)
	}
	if RetryableResponse(resp, nil) != nil {
		t.Error("RetryableResponse(nil) should return nil")
	}
}

type recordingHooks struct {
	observability.NoopHTTPHooks
	mu        sync.Mutex
	requests  int
	responses []int
}

func (h *recordingHooks) OnRequest(context.Context, string, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests++
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, status)
}

func TestTransportReportsToHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	resp, err := NewClient(time.Second).Get(srv.URL + "/log/index.json")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	resp.Body.Close()

	if hooks.requests != 1 {
		t.Errorf("requests = %d, want 1", hooks.requests)
	}
	if len(hooks.responses) != 1 || hooks.responses[0] != http.StatusTeapot {
		t.Errorf("responses = %v, want [418]", hooks.responses)
	}
}
