package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Outcome is the classification of a completed request.
type Outcome int

// Each completion resolves to exactly one of these.
const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
	OutcomeAuthenticationFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeAuthenticationFailure:
		return "authenticationFailure"
	}
	return "unknown"
}

// Result is a classified completion. Payload is set only on success;
// Messages is non-nil (possibly empty) only on failure.
type Result struct {
	Outcome  Outcome
	Payload  *Payload
	Messages []string
}

// dispatcher classifies the completion of a single outstanding request.
//
// The transport cannot statically guarantee the shape of a response body,
// so the dispatcher is the real type gate: a success completion whose
// payload does not match the expected shape is converted into a failure
// with a synthesized diagnostic, never passed through.
type dispatcher struct {
	op       string
	expected PayloadKind
	log      func(string)
}

// dispatch classifies c and logs the outcome before it is acted on.
func (d dispatcher) dispatch(c Completion) Result {
	result := d.classify(c)
	d.log(fmt.Sprintf("method=%s outcome=%s statusCode=%d response=%s",
		d.op, result.Outcome, c.StatusCode, renderPayload(c.Payload)))
	return result
}

func (d dispatcher) classify(c Completion) Result {
	if c.OK {
		if c.Payload != nil && c.Payload.Kind == d.expected {
			return Result{Outcome: OutcomeSuccess, Payload: c.Payload}
		}

		actual := "null"
		if c.Payload != nil {
			actual = c.Payload.Kind.String()
		}
		message := fmt.Sprintf("expectedType=%s actualType=%s", d.expected, actual)
		return Result{Outcome: OutcomeFailure, Messages: []string{message}}
	}

	// An expired session comes back as HTTP 200 with the HTML login page
	// instead of JSON, which the decoder reports as a malformed body.
	var malformed *MalformedBodyError
	if c.StatusCode == http.StatusOK && errors.As(c.Err, &malformed) {
		return Result{Outcome: OutcomeAuthenticationFailure}
	}

	// May legitimately end up empty: no error payload, no error.
	messages := make([]string, 0, 2)
	if c.Payload != nil && c.Payload.Kind == PayloadObject {
		if serverError, ok := c.Payload.Object["errors"].(string); ok {
			messages = append(messages, serverError)
		}
	}
	if c.Err != nil {
		messages = append(messages, c.Err.Error())
	}

	return Result{Outcome: OutcomeFailure, Messages: messages}
}
