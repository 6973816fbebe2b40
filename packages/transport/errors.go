package transport

import (
	"github.com/tidwall/gjson"

	"github.com/objkit/objkit/packages/httpclient"
)

// StorageError describes a failed storage call. Message is always set; the
// other fields are only present when the server reported a structured error
// payload.
type StorageError struct {
	Message    string `json:"message"`
	ErrorCode  string `json:"error,omitempty"`
	StatusCode string `json:"statusCode,omitempty"`
}

func (e *StorageError) Error() string {
	return e.Message
}

// failure is the tagged outcome routed into normalization. Exactly one of
// resp/err is set: resp for a non-2xx transport response, err for any local
// or network failure.
type failure struct {
	resp *httpclient.Response
	err  error
}

func responseFailure(resp *httpclient.Response) failure {
	return failure{resp: resp}
}

func genericFailure(err error) failure {
	return failure{err: err}
}

// normalize converts a failure into the error the caller sees. A response
// body that is a JSON object carrying "message" is taken as the server's
// structured error shape; anything else is surfaced as opaque text.
func normalize(f failure) *StorageError {
	if f.resp == nil {
		return &StorageError{Message: f.err.Error()}
	}

	body := f.resp.Body
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		if parsed.IsObject() && parsed.Get("message").Type == gjson.String {
			return &StorageError{
				Message:    parsed.Get("message").String(),
				ErrorCode:  parsed.Get("error").String(),
				StatusCode: parsed.Get("statusCode").String(),
			}
		}
	}

	return &StorageError{Message: f.resp.BodyString()}
}
