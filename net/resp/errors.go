package resp

import (
	"net/http"
	"time"

	"github.com/ncobase/commerce/ecode"
)

// ErrorBody is the structured body written for every failed request.
type ErrorBody struct {
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Status    int               `json:"status"`
	Timestamp string            `json:"timestamp"`
	Path      string            `json:"path,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// now is replaced in tests.
var now = time.Now

// NewErrorBody builds the body for a classified error.
func NewErrorBody(e *ecode.Error, path string) *ErrorBody {
	return &ErrorBody{
		Error:     e.Kind,
		Message:   e.Message,
		Status:    e.HTTPStatus(),
		Timestamp: now().UTC().Format(time.RFC3339),
		Path:      path,
		Errors:    e.Fields,
	}
}

// Fail classifies err and writes {error, message, status, timestamp, path}.
// Unclassified errors are written as a generic 500.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	e := ecode.From(err)
	if e == nil {
		e = ecode.New(ecode.ServerErr)
	}
	if e.Code == ecode.ServerErr {
		e = ecode.New(ecode.ServerErr)
	}

	path := ""
	if r != nil && r.URL != nil {
		path = r.URL.Path
	}
	body := NewErrorBody(e, path)
	writeJSON(w, body.Status, body)
}

// TooManyRequests writes the rate-limit body {error, message, status, timestamp}.
func TooManyRequests(w http.ResponseWriter) {
	body := NewErrorBody(ecode.New(ecode.LimitExceed), "")
	writeJSON(w, body.Status, body)
}
