package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ometa/lovemonster-cli-go/internal/core"
)

// PayloadKind discriminates the runtime shape of a decoded response body.
type PayloadKind int

// Payload shapes the server may return.
const (
	PayloadObject PayloadKind = iota
	PayloadArray
	PayloadString
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadObject:
		return "object"
	case PayloadArray:
		return "array"
	case PayloadString:
		return "string"
	}
	return "unknown"
}

// Payload is a decoded response body tagged with its shape. Exactly one of
// Object, Array, or Text is meaningful, per Kind.
type Payload struct {
	Kind   PayloadKind
	Object map[string]interface{}
	Array  []interface{}
	Text   string
}

// ObjectPayload wraps a decoded JSON object.
func ObjectPayload(obj map[string]interface{}) *Payload {
	return &Payload{Kind: PayloadObject, Object: obj}
}

// ArrayPayload wraps a decoded JSON array.
func ArrayPayload(arr []interface{}) *Payload {
	return &Payload{Kind: PayloadArray, Array: arr}
}

// StringPayload wraps a freeform string body.
func StringPayload(s string) *Payload {
	return &Payload{Kind: PayloadString, Text: s}
}

// renderPayload returns a string rendering of p for logging. Nil renders
// as "null", mirroring what gets logged for an absent body.
func renderPayload(p *Payload) string {
	if p == nil {
		return "null"
	}
	switch p.Kind {
	case PayloadObject:
		if data, err := json.Marshal(p.Object); err == nil {
			return string(data)
		}
	case PayloadArray:
		if data, err := json.Marshal(p.Array); err == nil {
			return string(data)
		}
	}
	return p.Text
}

// Completion is the terminal event for a single request. OK is true only
// for a 2xx response whose body (if any) decoded cleanly; otherwise Err
// and/or Payload describe the failure.
type Completion struct {
	OK         bool
	StatusCode int
	Payload    *Payload
	Err        error
}

// MalformedBodyError is returned when a response body cannot be decoded as
// JSON. Paired with an HTTP 200 status it is the signature of an expired
// session: the backend serves its HTML login page with a success status.
type MalformedBodyError struct {
	Cause error
}

func (e *MalformedBodyError) Error() string {
	return fmt.Sprintf("malformed response body: %v", e.Cause)
}

func (e *MalformedBodyError) Unwrap() error { return e.Cause }

// Transport issues HTTP requests and resolves each to a single Completion.
type Transport interface {
	Get(urlStr string, headers map[string]string) Completion
	Post(urlStr string, headers map[string]string, form url.Values) Completion
}

// HTTPTransport is the live Transport over net/http.
type HTTPTransport struct {
	httpClient *http.Client
	verbose    bool
}

// NewHTTPTransport creates a transport with a default request timeout.
// Timeout policy lives here, not in the client layer above.
func NewHTTPTransport(verbose bool) *HTTPTransport {
	return &HTTPTransport{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		verbose: verbose,
	}
}

// log writes a message to stderr if verbose mode is enabled.
func (t *HTTPTransport) log(msg string) {
	core.Eprint(fmt.Sprintf("[API] %s", msg), t.verbose)
}

// Get performs a GET request and decodes the JSON payload.
func (t *HTTPTransport) Get(urlStr string, headers map[string]string) Completion {
	return t.do(http.MethodGet, urlStr, headers, nil)
}

// Post performs a form-encoded POST request and decodes the JSON payload.
func (t *HTTPTransport) Post(urlStr string, headers map[string]string, form url.Values) Completion {
	return t.do(http.MethodPost, urlStr, headers, form)
}

func (t *HTTPTransport) do(method, urlStr string, headers map[string]string, form url.Values) Completion {
	t.log(fmt.Sprintf("%s %s", method, urlStr))

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, urlStr, body)
	if err != nil {
		return Completion{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	for name, value := range headers {
		req.Header.Set(name, value)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return Completion{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	t.log(fmt.Sprintf("Response: HTTP %d, %d bytes", resp.StatusCode, len(raw)))

	var payload *Payload
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 {
		var decoded interface{}
		if err := json.Unmarshal(trimmed, &decoded); err != nil {
			return Completion{StatusCode: resp.StatusCode, Err: &MalformedBodyError{Cause: err}}
		}
		payload = payloadOf(decoded, string(trimmed))
	}

	if resp.StatusCode >= 400 {
		return Completion{StatusCode: resp.StatusCode, Payload: payload}
	}

	return Completion{OK: true, StatusCode: resp.StatusCode, Payload: payload}
}

// payloadOf tags a decoded JSON value with its shape. Scalars other than
// strings are foreign to the protocol and carried as their raw text.
func payloadOf(decoded interface{}, raw string) *Payload {
	switch v := decoded.(type) {
	case map[string]interface{}:
		return ObjectPayload(v)
	case []interface{}:
		return ArrayPayload(v)
	case string:
		return StringPayload(v)
	case nil:
		return nil
	default:
		return StringPayload(raw)
	}
}
