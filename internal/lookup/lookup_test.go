package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func podResponse(primary bool, plaintext string) string {
	p := "false"
	if primary {
		p = "true"
	}
	return `{"queryresult": {"success": true, "pods": [
		{"primary": false, "subpods": [{"plaintext": "prime 1000"}]},
		{"primary": ` + p + `, "subpods": [{"plaintext": "` + plaintext + `"}]}
	]}}`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL), WithAppID("test-app"))
}

func TestNthPrime_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "prime 1000", r.URL.Query().Get("input"))
		assert.Equal(t, "test-app", r.URL.Query().Get("appid"))
		w.Write([]byte(podResponse(true, "7919")))
	})

	v, ok := c.NthPrime(context.Background(), 1000)
	require.True(t, ok)
	assert.Equal(t, int64(7919), v)
}

func TestNthPrime_StripsDigitSeparators(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(podResponse(true, "104,729")))
	})

	v, ok := c.NthPrime(context.Background(), 10000)
	require.True(t, ok)
	assert.Equal(t, int64(104729), v)
}

func TestNthPrime_NoPrimaryPod(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(podResponse(false, "7919")))
	})

	_, ok := c.NthPrime(context.Background(), 1000)
	assert.False(t, ok)
}

func TestNthPrime_NonNumericAnswer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(podResponse(true, "(data not available)")))
	})

	_, ok := c.NthPrime(context.Background(), 1000)
	assert.False(t, ok)
}

func TestNthPrime_MalformedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"queryresult": [broken`))
	})

	_, ok := c.NthPrime(context.Background(), 1000)
	assert.False(t, ok)
}

func TestNthPrime_BadStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusTooManyRequests)
	})

	_, ok := c.NthPrime(context.Background(), 1000)
	assert.False(t, ok)
}

func TestNthPrime_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient(WithBaseURL(srv.URL))
	srv.Close() // connection refused from here on

	_, ok := c.NthPrime(context.Background(), 1000)
	assert.False(t, ok)
}

func TestNthPrime_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(podResponse(true, "7919")))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := c.NthPrime(ctx, 1000)
	assert.False(t, ok)
}

func TestNthPrime_EmptySubpods(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"queryresult": {"success": true, "pods": [{"primary": true, "subpods": []}]}}`))
	})

	_, ok := c.NthPrime(context.Background(), 1000)
	assert.False(t, ok)
}
