package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/listBans", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"ok":true,"data":[{"id":"a"},{"id":"b"}]}`))
	}))
	defer srv.Close()

	inv := NewInvoker(srv.URL, BearerToken("token-123"))
	res := inv.Invoke(context.Background(), "listBans", nil, true)

	require.False(t, res.Failed())
	var items []map[string]string
	require.NoError(t, res.Decode(&items))
	assert.Len(t, items, 2)
}

func TestInvokeNonOKStatusIsOperationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"ok":false,"error":"admin access required"}`))
	}))
	defer srv.Close()

	inv := NewInvoker(srv.URL, BearerToken("t"))
	res := inv.Invoke(context.Background(), "listBans", nil, true)

	require.True(t, res.Failed())
	var opErr *OperationError
	require.True(t, errors.As(res.Err, &opErr))
	assert.Equal(t, "listBans", opErr.Operation)
	assert.Equal(t, http.StatusForbidden, opErr.Status)
	assert.Contains(t, opErr.Message, "admin access required")
}

func TestInvokeOKFalseWith200IsStillFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"error":"something broke"}`))
	}))
	defer srv.Close()

	inv := NewInvoker(srv.URL, BearerToken("t"))
	res := inv.Invoke(context.Background(), "getStats", nil, true)

	require.True(t, res.Failed())
	var opErr *OperationError
	require.True(t, errors.As(res.Err, &opErr))
}

func TestInvokeTelegramStyleEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":{"id":42,"is_bot":true,"username":"test_bot"}}`))
	}))
	defer srv.Close()

	inv := NewInvoker(srv.URL, NoCredentials{})
	res := inv.Invoke(context.Background(), "getMe", struct{}{}, false)

	require.False(t, res.Failed())
	var me struct {
		Id       int64  `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, res.Decode(&me))
	assert.Equal(t, int64(42), me.Id)
	assert.Equal(t, "test_bot", me.Username)
}

func TestInvokeMissingCredentialsShortCircuits(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	inv := NewInvoker(srv.URL, NoCredentials{})
	res := inv.Invoke(context.Background(), "listBans", nil, true)

	require.True(t, res.Failed())
	assert.ErrorIs(t, res.Err, ErrNoCredentials)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits), "no network call should be made")
}

func TestInvokeMalformedJSONIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok": tru`))
	}))
	defer srv.Close()

	inv := NewInvoker(srv.URL, BearerToken("t"))
	res := inv.Invoke(context.Background(), "getStats", nil, true)

	require.True(t, res.Failed())
	assert.Contains(t, res.Err.Error(), "malformed JSON")
}

func TestInvokeInitDataHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "query_id=abc", r.Header.Get("X-Telegram-Init-Data"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"ok":true,"data":{}}`))
	}))
	defer srv.Close()

	creds := StaticCredentials{Cred: Credential{Kind: CredentialInitData, Value: "query_id=abc"}}
	inv := NewInvoker(srv.URL, creds)
	res := inv.Invoke(context.Background(), "session", nil, true)
	require.False(t, res.Failed())
}

func TestInvokeDedupesConcurrentIdenticalCalls(t *testing.T) {
	var hits int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		<-release
		w.Write([]byte(`{"ok":true,"data":{"value":1}}`))
	}))
	defer srv.Close()

	inv := NewInvoker(srv.URL, BearerToken("t"))

	const callers = 5
	var wg sync.WaitGroup
	results := make([]Result, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = inv.Invoke(context.Background(), "getStats", map[string]int{"page": 1}, true)
		}(i)
	}

	// Give all goroutines time to join the in-flight call.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "identical concurrent calls should share one request")
	for _, res := range results {
		require.False(t, res.Failed())
		var body map[string]int
		require.NoError(t, res.Decode(&body))
		assert.Equal(t, 1, body["value"])
	}
}

func TestInvokeDifferentBodiesAreNotDeduped(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"ok":true,"data":{}}`))
	}))
	defer srv.Close()

	inv := NewInvoker(srv.URL, BearerToken("t"))
	inv.Invoke(context.Background(), "getStats", map[string]int{"page": 1}, true)
	inv.Invoke(context.Background(), "getStats", map[string]int{"page": 2}, true)

	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestResultDecodeRaw(t *testing.T) {
	res := Result{Status: 200, Data: json.RawMessage(`{"a":1}`)}
	var out map[string]int
	require.NoError(t, res.Decode(&out))
	assert.Equal(t, 1, out["a"])
}
