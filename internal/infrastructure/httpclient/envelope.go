package httpclient

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
)

// Envelope is the wrapper every backend response is assumed to use. Code is
// nil when the body carries no numeric code.
type Envelope struct {
	Code    *int
	Message string
	Data    json.RawMessage
	Success *bool
}

// Succeeded reports whether the envelope signals success. The backend is
// inconsistent about which signal it sets, so all three are honoured.
func (e Envelope) Succeeded() bool {
	if e.Code != nil && (*e.Code == CodeOK || *e.Code == http.StatusOK) {
		return true
	}
	return e.Success != nil && *e.Success
}

// code returns the envelope code, or fallback when there is none.
func (e Envelope) code(fallback int) int {
	if e.Code == nil {
		return fallback
	}
	return *e.Code
}

// decodeEnvelope reads each field on its own so a field of an unexpected
// type does not hide the others. It fails only when body is not a JSON
// object.
func decodeEnvelope(body []byte) (Envelope, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return Envelope{}, false
	}

	var env Envelope
	if raw, ok := fields["code"]; ok {
		var n float64
		if json.Unmarshal(raw, &n) == nil && n == math.Trunc(n) {
			code := int(n)
			env.Code = &code
		}
	}
	if raw, ok := fields["message"]; ok {
		var msg string
		if json.Unmarshal(raw, &msg) == nil {
			env.Message = msg
		}
	}
	if raw, ok := fields["success"]; ok {
		var success bool
		if json.Unmarshal(raw, &success) == nil {
			env.Success = &success
		}
	}
	env.Data = fields["data"]
	return env, true
}

// classify is the inbound stage: it maps a received HTTP response to either
// the envelope's data or a *RequestFailedError. It has no side effects.
func classify(status int, body []byte) (json.RawMessage, error) {
	env, ok := decodeEnvelope(body)

	if status < 200 || status > 299 {
		detail := "unknown error"
		code := status
		if ok {
			if env.Message != "" {
				detail = env.Message
			}
			if c := env.code(0); c != 0 {
				code = c
			}
		}
		return nil, &RequestFailedError{
			Status:  status,
			Code:    code,
			Message: fmt.Sprintf("server error (%d): %s", status, detail),
		}
	}

	if !ok {
		return nil, &RequestFailedError{
			Status:  status,
			Code:    CodeInvalidEnvelope,
			Message: MessageRequestFailed,
		}
	}

	if env.Succeeded() {
		if len(env.Data) == 0 {
			return json.RawMessage("null"), nil
		}
		return env.Data, nil
	}

	message := env.Message
	if message == "" {
		message = MessageRequestFailed
	}
	return nil, &RequestFailedError{
		Status:  status,
		Code:    env.code(CodeInvalidEnvelope),
		Message: message,
	}
}
