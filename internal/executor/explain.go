package executor

import "strings"

// statusExplanation pairs a status predicate with human-readable text about
// the likely cause.
type statusExplanation struct {
	matches func(status int) bool
	text    string
}

func is(code int) func(int) bool {
	return func(status int) bool { return status == code }
}

// statusExplanations are evaluated in order; every matching entry contributes
// to the final explanation, so a 404 picks up both its own text and the
// client-error note.
var statusExplanations = []statusExplanation{
	{is(400), "400 Bad Request: the server could not understand the request. Check the body syntax and any required fields."},
	{is(401), "401 Unauthorized: authentication is required. Provide valid credentials in an Authorization header."},
	{is(403), "403 Forbidden: the credentials were accepted but lack sufficient permission for this resource."},
	{is(404), "404 Not Found: the requested resource was not found. Verify the URL path and any identifiers in it."},
	{is(405), "405 Method Not Allowed: this endpoint does not accept the chosen HTTP method."},
	{is(408), "408 Request Timeout: the server gave up waiting for the request."},
	{is(409), "409 Conflict: the request clashes with the current state of the resource."},
	{is(413), "413 Payload Too Large: the request body exceeds what the server accepts."},
	{is(415), "415 Unsupported Media Type: the server rejected the Content-Type of the body."},
	{is(429), "429 Too Many Requests: you are being rate limited. Wait and retry, honoring any Retry-After header."},
	{IsClientErrorStatus, "The request was rejected by the server before processing (client error)."},
	{is(500), "500 Internal Server Error: the server hit an unexpected condition. This is a server-side problem."},
	{is(501), "501 Not Implemented: the server does not support the functionality required for this request."},
	{is(502), "502 Bad Gateway: an upstream server returned an invalid response to the gateway."},
	{is(503), "503 Service Unavailable: the server is overloaded or down for maintenance. Retry later."},
	{is(504), "504 Gateway Timeout: an upstream server did not respond in time."},
	{IsServerErrorStatus, "The failure happened on the server side; the request itself may be fine."},
}

// Explain returns explanatory text for a non-success status. Every entry
// whose predicate matches contributes a line. Success statuses yield "".
func Explain(status int) string {
	if status >= 200 && status < 400 {
		return ""
	}

	var parts []string
	for _, e := range statusExplanations {
		if e.matches(status) {
			parts = append(parts, e.text)
		}
	}
	return strings.Join(parts, "\n")
}
