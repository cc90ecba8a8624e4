package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// TransportError is the single failure type for non-success HTTP responses
// and network-level errors. Message is ready to show to the operator.
type TransportError struct {
	Verb    string
	Message string
	Status  int
}

func (e *TransportError) Error() string {
	return e.Message
}

// TimeoutError marks a request cancelled by its deadline, so callers can
// present "request timed out" instead of a generic network error.
type TimeoutError struct {
	Verb string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s request timed out", e.Verb)
}

// IsTimeout reports whether err is (or wraps) a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// maximum error body we bother reading; backends occasionally echo huge
// payloads into error responses.
const maxErrorBody = 1 << 20

// errorFromResponse maps a non-2xx response to a TransportError. It prefers
// a human-readable detail or error field from a JSON body and falls back to
// a generic "<Verb> error (<status>)" when the body is not parseable.
func errorFromResponse(verb string, resp *http.Response) error {
	msg := fmt.Sprintf("%s error (%d)", verb, resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var payload struct {
			Detail string `json:"detail"`
			Err    string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			switch {
			case payload.Detail != "":
				msg = payload.Detail
			case payload.Err != "":
				msg = payload.Err
			}
		}
	}

	return &TransportError{Verb: verb, Message: msg, Status: resp.StatusCode}
}

// wrapSendError converts a failed http.Client.Do into the taxonomy:
// cancellation and deadline become TimeoutError, everything else a
// TransportError carrying the underlying message.
func wrapSendError(verb string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &TimeoutError{Verb: verb}
	}
	return &TransportError{Verb: verb, Message: fmt.Sprintf("%s request failed: %v", verb, err)}
}
