package executor

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/studiowebux/reqview/internal/types"
)

// DefaultTimeout is used when the request does not carry its own timeout
const DefaultTimeout = 30 * time.Second

// Options configures how requests are issued
type Options struct {
	Timeout            time.Duration
	InsecureSkipVerify bool
	FollowRedirects    bool
}

// Execute performs a single HTTP request and classifies its outcome.
// It never returns nil: validation and transport failures still produce a
// Result, with Status 0 reserved for failures that happened before a
// response was obtained.
func Execute(ctx context.Context, req *types.Request, opts *Options) *types.Result {
	if opts == nil {
		opts = &Options{Timeout: DefaultTimeout, FollowRedirects: true}
	}

	if err := validateURL(req.URL); err != nil {
		return failure(types.KindInvalidURL, err.Error(), fmt.Sprintf("offending url: %q", req.URL))
	}

	// A supplied body is ignored outright for GET/HEAD, not validated
	body := req.Body
	if !types.MethodAllowsBody(req.Method) {
		body = ""
	}
	if body != "" {
		if err := validateJSONBody(body); err != nil {
			return failure(types.KindInvalidRequestBody, "request body is not valid JSON: "+err.Error(), "")
		}
	}

	var bodyReader io.Reader
	requestSize := 0
	if body != "" {
		// The raw string is sent as-is, never a re-serialized form
		bodyReader = strings.NewReader(body)
		requestSize = len(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return failure(types.KindInvalidURL, "failed to build request: "+err.Error(), fmt.Sprintf("offending url: %q", req.URL))
	}

	if body != "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	// The certificate file is read and summarized only. Attaching it to the
	// connection is out of scope, matching the form's placeholder semantics.
	certNote := ""
	if req.CertFile != "" {
		certNote = summarizeCertificate(req.CertFile)
	}

	timeout := opts.Timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	client := buildHTTPClient(timeout, opts)

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		result := networkFailure(err)
		result.Duration = time.Since(start).Milliseconds()
		result.RequestSize = requestSize
		result.Notes = certNote
		return result
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	duration := time.Since(start).Milliseconds()

	result := &types.Result{
		Status:       resp.StatusCode,
		StatusText:   resp.Status,
		Headers:      collectHeaders(resp.Header),
		Duration:     duration,
		RequestSize:  requestSize,
		ResponseSize: len(bodyBytes),
		Notes:        certNote,
	}

	if readErr != nil {
		result.Body = fmt.Sprintf("(response body could not be read: %v)", readErr)
		result.Error = &types.ErrorDetail{
			Kind:    types.KindResponseDecodeError,
			Message: "failed to read response body: " + readErr.Error(),
		}
	} else {
		decodeBody(result, resp.Header.Get("Content-Type"), bodyBytes)
	}

	if !result.OK() {
		result.Explanation = Explain(resp.StatusCode)
		if result.Error == nil {
			result.Error = &types.ErrorDetail{
				Kind:    types.KindHTTPStatusError,
				Message: resp.Status,
				Details: result.Explanation,
			}
		}
	}

	return result
}

// validateURL checks that the target parses and carries a usable scheme and
// host before anything touches the network.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("invalid URL: missing scheme (did you mean https://%s?)", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL: unsupported protocol scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}
	return nil
}

// validateJSONBody parses the body solely to confirm syntax
func validateJSONBody(body string) error {
	var v interface{}
	return json.Unmarshal([]byte(body), &v)
}

// collectHeaders flattens the transport's header map into an ordered list.
// Names keep the transport's casing; duplicate values collapse to the last.
func collectHeaders(h http.Header) types.HeaderList {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	headers := make(types.HeaderList, 0, len(names))
	for _, name := range names {
		values := h[name]
		if len(values) == 0 {
			continue
		}
		headers = append(headers, types.Header{Name: name, Value: values[len(values)-1]})
	}
	return headers
}

// decodeBody fills in Body and JSON on the result. JSON content types are
// decoded; anything else is kept as text with an opportunistic JSON parse
// when the trimmed text looks like an object or array.
func decodeBody(result *types.Result, contentType string, raw []byte) {
	result.Body = string(raw)

	if strings.Contains(strings.ToLower(contentType), "application/json") {
		var decoded interface{}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			result.Body = fmt.Sprintf("(undecodable %s body, raw text follows)\n%s", contentType, string(raw))
			result.Error = &types.ErrorDetail{
				Kind:    types.KindResponseDecodeError,
				Message: "response declared application/json but failed to decode: " + err.Error(),
			}
			return
		}
		result.JSON = decoded
		return
	}

	trimmed := strings.TrimSpace(result.Body)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var decoded interface{}
		if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
			result.JSON = decoded
		}
	}
}

// failure builds a pre-dispatch Result with Status 0
func failure(kind types.ErrorKind, message, details string) *types.Result {
	return &types.Result{
		Status:  0,
		Headers: types.HeaderList{},
		Body:    message,
		Error: &types.ErrorDetail{
			Kind:    kind,
			Message: message,
			Details: details,
		},
	}
}

// networkFailure classifies a transport-level error into a Status 0 result
func networkFailure(err error) *types.Result {
	friendly := classifyError(err)

	detail := &types.ErrorDetail{
		Kind:    types.KindNetworkError,
		Message: friendly,
		Trace:   err.Error(),
	}
	if needsTroubleshooting(err.Error()) {
		detail.Details = troubleshootingNote
	}

	return &types.Result{
		Status:  0,
		Headers: types.HeaderList{},
		Body:    friendly,
		Error:   detail,
	}
}

// buildHTTPClient creates an HTTP client for a single dispatch
func buildHTTPClient(timeout time.Duration, opts *Options) *http.Client {
	transport := &http.Transport{}
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	client := &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
	if !opts.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}

// summarizeCertificate reads a PEM file and describes it without ever
// attaching it to the TLS configuration.
func summarizeCertificate(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("client certificate %s could not be read: %v (not applied)", path, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return fmt.Sprintf("client certificate %s read (%d bytes, not PEM encoded, not applied)", path, len(data))
	}

	if cert, err := x509.ParseCertificate(block.Bytes); err == nil {
		return fmt.Sprintf("client certificate %s read (%d bytes, subject %s, not applied)", path, len(data), cert.Subject.String())
	}
	return fmt.Sprintf("client certificate %s read (%d bytes, %s block, not applied)", path, len(data), block.Type)
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}

// IsClientErrorStatus returns true if status code is 4xx
func IsClientErrorStatus(status int) bool {
	return status >= 400 && status < 500
}

// IsServerErrorStatus returns true if status code is 5xx
func IsServerErrorStatus(status int) bool {
	return status >= 500 && status < 600
}
