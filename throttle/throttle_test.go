package throttle

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewRoundTripper_Validation(t *testing.T) {
	tests := map[string]struct {
		cfg    Config
		expErr error
	}{
		"zero rps":       {cfg: Config{RPS: 0, Burst: 10}, expErr: ErrMustNotBeZero},
		"negative rps":   {cfg: Config{RPS: -5, Burst: 10}, expErr: ErrMustNotBeZero},
		"zero burst":     {cfg: Config{RPS: 10, Burst: 0}, expErr: ErrMustNotBeZero},
		"negative burst": {cfg: Config{RPS: 10, Burst: -5}, expErr: ErrMustNotBeZero},
		"valid":          {cfg: Config{RPS: 10, Burst: 20}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rt, err := NewRoundTripper(tc.cfg, nil, http.DefaultTransport)

			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got: %v", tc.expErr, err)
				}
				return
			}

			if err != nil {
				t.Errorf("exp nil err, got: %v", err)
			}
			if rt == nil {
				t.Error("exp non-nil RoundTripper")
			}
		})
	}
}

func fire(t *testing.T, client *http.Client, ctx context.Context, target string, n int) []error {
	t.Helper()

	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Go(func() {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
			if err != nil {
				errs[i] = err
				return
			}

			resp, err := client.Do(req)
			if err != nil {
				errs[i] = err
				return
			}
			resp.Body.Close()
		})
	}
	wg.Wait()

	return errs
}

func countErrs(errs []error) int {
	var n int
	for _, err := range errs {
		if err != nil {
			n++
		}
	}
	return n
}

func TestThrottle_SlowsDownPastBurst(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rt, err := NewRoundTripper(Config{RPS: 10, Burst: 5}, func() *slog.Logger { return slog.Default() }, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{Transport: rt}

	start := time.Now()
	errs := fire(t, client, t.Context(), server.URL, 8)
	duration := time.Since(start)

	if n := countErrs(errs); n != 0 {
		t.Fatalf("exp no failures, got %d: %v", n, errs)
	}

	// (8-5) requests / 10 RPS
	if minDuration := 300 * time.Millisecond; duration < minDuration {
		t.Errorf("exp throttled duration >= %v, got %v", minDuration, duration)
	}
	if calls.Load() != 8 {
		t.Errorf("exp 8 server calls, got %d", calls.Load())
	}
}

func TestThrottle_WaitTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rt, err := NewRoundTripper(Config{RPS: 5, Burst: 2}, nil, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{Transport: rt}

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	errs := fire(t, client, ctx, server.URL, 5)

	if n := countErrs(errs); n != 3 {
		t.Fatalf("exp 3 failures, got %d", n)
	}
	for _, err := range errs {
		if err != nil && !errors.Is(err, ErrWaitingFailed) {
			t.Errorf("exp ErrWaitingFailed, got %v", err)
		}
	}
}

func TestThrottle_PreCancelled(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	rt, err := NewRoundTripper(Config{RPS: 20, Burst: 10}, nil, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = rt.RoundTrip(req)
	if !errors.Is(err, ErrContextEnded) || !errors.Is(err, context.Canceled) {
		t.Errorf("exp ErrContextEnded wrapping context.Canceled, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("exp no server calls, got %d", calls.Load())
	}
}

func TestThrottle_PerHostBuckets(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	first := httptest.NewServer(handler)
	defer first.Close()
	second := httptest.NewServer(handler)
	defer second.Close()

	rt, err := NewRoundTripper(Config{RPS: 1, Burst: 2}, nil, http.DefaultTransport)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{Transport: rt}

	start := time.Now()
	errs := append(
		fire(t, client, t.Context(), first.URL, 2),
		fire(t, client, t.Context(), second.URL, 2)...,
	)
	duration := time.Since(start)

	if n := countErrs(errs); n != 0 {
		t.Fatalf("exp no failures, got %d: %v", n, errs)
	}
	if duration > 500*time.Millisecond {
		t.Errorf("each host should use its own burst, took %v", duration)
	}
}
