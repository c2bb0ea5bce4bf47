package remote

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Invoker performs named backend operations over HTTP POST with a JSON
// body, attaches the current credential, and normalizes every outcome to
// a Result. It is stateless apart from the in-flight table and safe for
// concurrent use.
type Invoker struct {
	baseURL string
	client  *http.Client
	creds   CredentialSource

	// Identical concurrent calls (same operation + body) share one
	// request instead of firing twice on a double-submit.
	mu       sync.Mutex
	inflight map[string]*call
}

type call struct {
	done chan struct{}
	res  Result
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithHTTPClient overrides the HTTP client. Timeouts are whatever the
// supplied client carries; none are imposed here.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Invoker) { i.client = c }
}

// NewInvoker builds an invoker for the function endpoint root. Operation
// names resolve to <baseURL>/<operation>.
func NewInvoker(baseURL string, creds CredentialSource, opts ...Option) *Invoker {
	if creds == nil {
		creds = NoCredentials{}
	}
	inv := &Invoker{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   http.DefaultClient,
		creds:    creds,
		inflight: make(map[string]*call),
	}
	for _, o := range opts {
		o(inv)
	}
	return inv
}

// URL resolves an operation name to its function URL.
func (i *Invoker) URL(operation string) string {
	return i.baseURL + "/" + operation
}

// Invoke performs the named operation. When requireAuth is set and no
// credential is available, it returns ErrNoCredentials without dialing.
func (i *Invoker) Invoke(ctx context.Context, operation string, body interface{}, requireAuth bool) Result {
	cred, ok := i.creds.Credential()
	if requireAuth && !ok {
		return Result{Err: ErrNoCredentials}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Result{Err: fmt.Errorf("remote: encode request for %s: %w", operation, err)}
	}

	key := dedupeKey(operation, payload)

	i.mu.Lock()
	if existing, found := i.inflight[key]; found {
		i.mu.Unlock()
		select {
		case <-existing.done:
			return existing.res
		case <-ctx.Done():
			return Result{Err: &TransportError{Operation: operation, Cause: ctx.Err()}}
		}
	}
	c := &call{done: make(chan struct{})}
	i.inflight[key] = c
	i.mu.Unlock()

	c.res = i.do(ctx, operation, payload, cred, ok)

	i.mu.Lock()
	delete(i.inflight, key)
	i.mu.Unlock()
	close(c.done)

	return c.res
}

func (i *Invoker) do(ctx context.Context, operation string, payload []byte, cred Credential, haveCred bool) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.URL(operation), bytes.NewReader(payload))
	if err != nil {
		return Result{Err: &TransportError{Operation: operation, Cause: err}}
	}
	req.Header.Set("Content-Type", "application/json")
	if haveCred {
		switch cred.Kind {
		case CredentialInitData:
			req.Header.Set("X-Telegram-Init-Data", cred.Value)
		default:
			req.Header.Set("Authorization", "Bearer "+cred.Value)
		}
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return Result{Err: &TransportError{Operation: operation, Cause: err}}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Status: resp.StatusCode, Err: &TransportError{Operation: operation, Cause: err}}
	}

	return normalize(operation, resp.StatusCode, raw)
}

// normalize applies both failure signals: the HTTP status and, when the
// body is an {ok, data, error} envelope, the application-level ok flag.
func normalize(operation string, status int, raw []byte) Result {
	var env envelope
	enveloped := json.Unmarshal(raw, &env) == nil && env.OK != nil

	if status < 200 || status >= 300 {
		msg := env.message()
		if msg == "" {
			msg = extractMessage(raw)
		}
		return Result{Status: status, Err: &OperationError{Operation: operation, Status: status, Message: msg}}
	}

	if enveloped {
		if !*env.OK {
			return Result{Status: status, Err: &OperationError{Operation: operation, Status: status, Message: env.message()}}
		}
		return Result{Status: status, Data: env.payload()}
	}

	if len(raw) > 0 && !json.Valid(raw) {
		return Result{Status: status, Err: fmt.Errorf("remote: operation %s returned malformed JSON", operation)}
	}
	return Result{Status: status, Data: raw}
}

// extractMessage pulls a human-readable message out of common error body
// shapes so the panel layer has something to show.
func extractMessage(raw []byte) string {
	var m struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &m) == nil {
		if m.Error != "" {
			return m.Error
		}
		return m.Message
	}
	return ""
}

func dedupeKey(operation string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return operation + ":" + hex.EncodeToString(sum[:])
}
