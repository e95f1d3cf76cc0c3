package api

import "net/url"

// FakeTransport is an in-memory Transport for deterministic unit tests.
// Completions are scripted with Enqueue and returned in order; every
// request is recorded for assertions.
type FakeTransport struct {
	RequestLog  []FakeRequest
	completions []Completion
}

// FakeRequest records one request made through the transport.
type FakeRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Form    url.Values
}

// NewFakeTransport creates an empty fake transport.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{
		RequestLog:  make([]FakeRequest, 0),
		completions: make([]Completion, 0),
	}
}

// Enqueue scripts the completion for the next request.
func (t *FakeTransport) Enqueue(completions ...Completion) {
	t.completions = append(t.completions, completions...)
}

// RequestsMade returns the number of requests made to this transport.
func (t *FakeTransport) RequestsMade() int {
	return len(t.RequestLog)
}

// Get simulates a GET request.
func (t *FakeTransport) Get(urlStr string, headers map[string]string) Completion {
	return t.record("GET", urlStr, headers, nil)
}

// Post simulates a POST request.
func (t *FakeTransport) Post(urlStr string, headers map[string]string, form url.Values) Completion {
	return t.record("POST", urlStr, headers, copyForm(form))
}

func (t *FakeTransport) record(method, urlStr string, headers map[string]string, form url.Values) Completion {
	t.RequestLog = append(t.RequestLog, FakeRequest{
		Method:  method,
		URL:     urlStr,
		Headers: copyHeaders(headers),
		Form:    form,
	})

	if len(t.completions) == 0 {
		return Completion{OK: true, StatusCode: 200, Payload: ObjectPayload(map[string]interface{}{})}
	}

	next := t.completions[0]
	t.completions = t.completions[1:]
	return next
}

func copyHeaders(headers map[string]string) map[string]string {
	result := make(map[string]string, len(headers))
	for name, value := range headers {
		result[name] = value
	}
	return result
}

func copyForm(form url.Values) url.Values {
	result := make(url.Values, len(form))
	for name, values := range form {
		result[name] = append([]string(nil), values...)
	}
	return result
}
