package types

import "time"

// KnownMethods is the set of HTTP methods the form can submit, in display order.
var KnownMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS", "HEAD"}

// MethodAllowsBody reports whether a request body is sent for the given method.
// GET and HEAD requests ignore any body the user typed.
func MethodAllowsBody(method string) bool {
	return method != "GET" && method != "HEAD"
}

// Request represents a single submission from the form or the CLI
type Request struct {
	Method   string            `json:"method" yaml:"method"`
	URL      string            `json:"url" yaml:"url"`
	Body     string            `json:"body,omitempty" yaml:"body,omitempty"`
	Headers  map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	CertFile string            `json:"certFile,omitempty" yaml:"certFile,omitempty"`
	Timeout  time.Duration     `json:"-" yaml:"-"`
}

// Header is a single response header pair, name cased as the transport gave it
type Header struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// HeaderList is an ordered collection of response headers. Duplicate header
// names collapse to the last value seen, matching header-map semantics.
type HeaderList []Header

// Get returns the value for a header name and whether it is present.
func (l HeaderList) Get(name string) (string, bool) {
	for _, h := range l {
		if h.Name == name {
			return h.Value, true
		}
	}
	return "", false
}

// ErrorKind names the classification of a failed or annotated dispatch
type ErrorKind string

const (
	KindInvalidURL          ErrorKind = "InvalidUrl"
	KindInvalidRequestBody  ErrorKind = "InvalidRequestBody"
	KindNetworkError        ErrorKind = "NetworkError"
	KindResponseDecodeError ErrorKind = "ResponseDecodeError"
	KindHTTPStatusError     ErrorKind = "HttpStatusError"
)

// Fatal reports whether the kind terminated the submission before or during
// transport. HttpStatusError and ResponseDecodeError still carry a real
// response and are merely annotated.
func (k ErrorKind) Fatal() bool {
	switch k {
	case KindInvalidURL, KindInvalidRequestBody, KindNetworkError:
		return true
	}
	return false
}

// ErrorDetail is the structured error block attached to a Result
type ErrorDetail struct {
	Kind    ErrorKind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
	Trace   string    `json:"trace,omitempty" yaml:"trace,omitempty"`
	Details string    `json:"details,omitempty" yaml:"details,omitempty"`
}

// Result is the uniform outcome of a dispatch. Every failure path still
// produces a Result; Status 0 is reserved for failures that happened before
// a response was obtained.
type Result struct {
	Status       int         `json:"status" yaml:"status"`
	StatusText   string      `json:"statusText" yaml:"statusText"`
	Headers      HeaderList  `json:"headers" yaml:"headers"`
	Body         string      `json:"body" yaml:"body"`
	JSON         interface{} `json:"-" yaml:"-"` // decoded body when JSON decoding succeeded
	Explanation  string      `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Duration     int64       `json:"duration" yaml:"duration"` // milliseconds
	RequestSize  int         `json:"requestSize" yaml:"requestSize"`
	ResponseSize int         `json:"responseSize" yaml:"responseSize"`
	Notes        string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Error        *ErrorDetail `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the response carries a success status (2xx/3xx).
func (r *Result) OK() bool {
	return r.Status >= 200 && r.Status < 400
}

// NoResponse reports whether the submission failed before any response was
// obtained (URL or body validation, or a transport failure).
func (r *Result) NoResponse() bool {
	return r.Status == 0
}
