package remote

import (
	"encoding/json"
	"fmt"
)

// Result is the normalized outcome of a remote operation call.
// Every caller gets the same three-part shape regardless of how the
// upstream function chose to encode its response.
type Result struct {
	// Status is the HTTP status code, or 0 when no call was made.
	Status int

	// Data holds the payload on success. When the upstream wrapped its
	// response in an {ok, data, error} envelope this is the inner data;
	// otherwise it is the raw body.
	Data json.RawMessage

	// Err is set for any failure: transport, missing credentials,
	// malformed body, non-2xx status, or an envelope with ok=false.
	Err error
}

// Failed reports whether the call must be treated as a failure.
// Both signals count: a transport/status error OR an ok=false envelope.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Decode unmarshals the payload into v. Decoding a failed result is an error.
func (r Result) Decode(v interface{}) error {
	if r.Err != nil {
		return r.Err
	}
	if len(r.Data) == 0 {
		return fmt.Errorf("remote: empty payload")
	}
	return json.Unmarshal(r.Data, v)
}

// envelope is the normalized upstream response wrapper. Upstream functions
// are inconsistent (some wrap, some return the payload directly, the
// Telegram Bot API uses ok/result/description); the invoker detects the
// wrapper once so callers never re-check it.
type envelope struct {
	OK          *bool           `json:"ok"`
	Data        json.RawMessage `json:"data"`
	Result      json.RawMessage `json:"result"`
	Error       string          `json:"error"`
	Description string          `json:"description"`
}

func (e envelope) payload() json.RawMessage {
	if len(e.Data) > 0 {
		return e.Data
	}
	return e.Result
}

func (e envelope) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Description
}
