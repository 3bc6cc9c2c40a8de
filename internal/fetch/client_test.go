package fetch

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"
)

// closedServerURL returns the URL of a server that is no longer listening.
func closedServerURL(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	u := server.URL
	server.Close()
	return u
}

// TestClientGet tests page fetching.
func TestClientGet(t *testing.T) {
	t.Parallel()

	t.Run("returns body and status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("expected GET, got %s", r.Method)
			}
			if r.Header.Get("User-Agent") != "shoecheck-test" {
				t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
			}
			_, _ = w.Write([]byte("<html>ok</html>"))
		}))
		defer server.Close()

		c := NewClient(5*time.Second, WithUserAgent("shoecheck-test"))
		resp, err := c.Get(t.Context(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}
		if resp.StatusText != "OK" {
			t.Errorf("expected status text OK, got %q", resp.StatusText)
		}
		if string(resp.Body) != "<html>ok</html>" {
			t.Errorf("unexpected body %q", resp.Body)
		}
	})

	t.Run("error status is a response, not an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("missing"))
		}))
		defer server.Close()

		resp, err := NewClient(0).Get(t.Context(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
		if resp.StatusText != "Not Found" {
			t.Errorf("expected status text 'Not Found', got %q", resp.StatusText)
		}
	})

	t.Run("truncates body to max size and warns", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 100)))
		}))
		defer server.Close()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		resp, err := NewClient(0, WithMaxBodySize(10), WithLogger(logger)).Get(t.Context(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Body) != 10 {
			t.Errorf("expected 10 bytes, got %d", len(resp.Body))
		}
		if !resp.Truncated {
			t.Error("expected Truncated to be set")
		}
		if !strings.Contains(logs.String(), "level=WARN") || !strings.Contains(logs.String(), "limit=10") {
			t.Errorf("expected truncation warning, got %q", logs.String())
		}
	})

	t.Run("body of exactly max size is complete", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 10)))
		}))
		defer server.Close()

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		resp, err := NewClient(0, WithMaxBodySize(10), WithLogger(logger)).Get(t.Context(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Body) != 10 || resp.Truncated {
			t.Errorf("expected complete 10 byte body, got %d bytes (truncated=%v)", len(resp.Body), resp.Truncated)
		}
		if strings.Contains(logs.String(), "truncated") {
			t.Errorf("unexpected truncation warning %q", logs.String())
		}
	})

	t.Run("connection failure is a transport error", func(t *testing.T) {
		t.Parallel()

		target := closedServerURL(t)
		_, err := NewClient(2*time.Second).Get(t.Context(), target)
		if err == nil {
			t.Fatal("expected error")
		}

		var fe *Error
		if !errors.As(err, &fe) {
			t.Fatalf("expected *Error, got %T", err)
		}
		if fe.Op != http.MethodGet || fe.URL != target {
			t.Errorf("unexpected error fields: %+v", fe)
		}
		if !errors.Is(err, ErrTransport) {
			t.Error("expected errors.Is(err, ErrTransport)")
		}
	})

	t.Run("malformed URL is a transport error", func(t *testing.T) {
		t.Parallel()

		_, err := NewClient(0).Get(t.Context(), "http://[::1")
		if !errors.Is(err, ErrTransport) {
			t.Errorf("expected transport error, got %v", err)
		}
	})
}

// TestClientHead tests header-only requests.
func TestClientHead(t *testing.T) {
	t.Parallel()

	methods := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods <- r.Method
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	resp, err := NewClient(0).Head(t.Context(), server.URL+"/img.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method := <-methods; method != http.MethodHead {
		t.Errorf("expected HEAD, got %s", method)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
	if len(resp.Body) != 0 {
		t.Errorf("expected empty body, got %d bytes", len(resp.Body))
	}
}

// TestClientPostForm tests form submission.
func TestClientPostForm(t *testing.T) {
	t.Parallel()

	type received struct {
		contentType string
		body        string
	}
	requests := make(chan received, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		requests <- received{contentType: r.Header.Get("Content-Type"), body: string(data)}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("thanks"))
	}))
	defer server.Close()

	form := url.Values{}
	form.Set("email", "qa@shop.test")

	resp, err := NewClient(0).PostForm(t.Context(), server.URL+"/remind", form)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := <-requests
	if got.contentType != "application/x-www-form-urlencoded" {
		t.Errorf("unexpected content type %q", got.contentType)
	}
	if got.body != "email=qa%40shop.test" {
		t.Errorf("unexpected body %q", got.body)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

// TestClientDelay tests request pacing.
func TestClientDelay(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		times []time.Time
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		times = append(times, time.Now())
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(0, WithDelay(100*time.Millisecond))
	for range 3 {
		if _, err := c.Get(t.Context(), server.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(times) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(times))
	}
	if gap := times[2].Sub(times[0]); gap < 150*time.Millisecond {
		t.Errorf("expected requests to be paced, total gap was %v", gap)
	}
}

// roundTripFunc adapts a function to http.RoundTripper.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// TestClientWithHTTPClient tests that a supplied http.Client carries every request.
func TestClientWithHTTPClient(t *testing.T) {
	t.Parallel()

	var seen []string
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Body:       io.NopCloser(strings.NewReader("page")),
			Header:     make(http.Header),
			Request:    r,
		}, nil
	})}

	c := NewClient(time.Second, WithHTTPClient(hc))
	resp, err := c.Get(t.Context(), "http://shop.test/months/march")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Body) != "page" {
		t.Errorf("unexpected body %q", resp.Body)
	}
	if _, err := c.Head(t.Context(), "http://shop.test/img/a.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"GET /months/march", "HEAD /img/a.png"}
	if !slices.Equal(seen, want) {
		t.Errorf("expected requests %v, got %v", want, seen)
	}
}
