package executor

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// troubleshootingNote is the extended checklist attached to connect-level
// failures where the request never reached a server.
const troubleshootingNote = `The request could not reach a server. Things to check:
  - Network connectivity: can this machine reach anything at all?
  - URL correctness: host, port, and scheme (http vs https)
  - CORS policy: if the target normally serves browsers, it may still reject unexpected origins
  - Certificate validity: expired or self-signed certificates abort the handshake
  - Firewall or proxy: corporate middleboxes silently drop unknown traffic
  - DNS: does the hostname resolve from this machine?`

// fetchFailureSignatures mark error strings that warrant the extended
// troubleshooting note: the connection never produced a response.
var fetchFailureSignatures = []string{
	"failed to fetch",
	"dial tcp",
	"no such host",
	"connection refused",
	"connection reset",
	"network is unreachable",
	"no route to host",
	"handshake",
	"certificate",
	"x509",
	"timeout",
	"timed out",
	"deadline exceeded",
}

// needsTroubleshooting reports whether an error string matches a known
// "never got a response" signature.
func needsTroubleshooting(errStr string) bool {
	errLower := strings.ToLower(errStr)
	for _, sig := range fetchFailureSignatures {
		if strings.Contains(errLower, sig) {
			return true
		}
	}
	return false
}

// classifyErrorString analyzes error strings from HTTP requests and provides
// actionable, user-friendly messages based on the error type.
func classifyErrorString(errStr string) string {
	if errStr == "" {
		return ""
	}

	errLower := strings.ToLower(errStr)

	// Context cancellation (user cancelled or timeout)
	if strings.Contains(errLower, "context canceled") ||
		strings.Contains(errLower, "context cancelled") {
		return "Request cancelled by user"
	}

	if strings.Contains(errLower, "context deadline exceeded") ||
		strings.Contains(errLower, "deadline exceeded") {
		return "Request timeout - check URL and try increasing the timeout in config.yaml (default: 30s)"
	}

	// Proxy errors (check before connection errors since proxy errors often contain "connection refused")
	if strings.Contains(errLower, "proxy") {
		return "Proxy connection failed - verify the proxy environment settings"
	}

	// DNS resolution errors
	if strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "dns") ||
		strings.Contains(errLower, "dial tcp: lookup") {
		return "DNS resolution failed - verify hostname is correct and network is available"
	}

	// Connection refused (server not running)
	if strings.Contains(errLower, "connection refused") {
		return "Connection refused - check if server is running and port is correct"
	}

	// Connection reset
	if strings.Contains(errLower, "connection reset") {
		return "Connection reset by server - server may have crashed or network issue occurred"
	}

	// Network unreachable
	if strings.Contains(errLower, "network is unreachable") ||
		strings.Contains(errLower, "no route to host") {
		return "Network unreachable - check network connection and firewall settings"
	}

	// TLS/SSL errors
	if strings.Contains(errLower, "tls") ||
		strings.Contains(errLower, "ssl") ||
		strings.Contains(errLower, "certificate") ||
		strings.Contains(errLower, "x509") {
		return classifySSLError(errStr)
	}

	// Too many redirects
	if strings.Contains(errLower, "stopped after") && strings.Contains(errLower, "redirect") {
		return "Too many redirects - check server configuration or URL"
	}

	// Invalid URL that slipped past validation
	if strings.Contains(errLower, "invalid url") ||
		strings.Contains(errLower, "unsupported protocol") {
		return "Invalid URL - verify the URL format and protocol (http/https)"
	}

	// EOF errors (connection closed unexpectedly)
	if strings.Contains(errLower, "eof") {
		return "Connection closed unexpectedly - server may have terminated the connection prematurely"
	}

	// Timeout (generic)
	if strings.Contains(errLower, "timeout") ||
		strings.Contains(errLower, "timed out") {
		return "Connection timeout - server took too long to respond, try increasing timeout"
	}

	// Browser-style fetch failure surfaced by an upstream gateway
	if strings.Contains(errLower, "failed to fetch") {
		return "Request failed before a response was obtained - see troubleshooting details"
	}

	// Return original error with a generic prefix if we can't categorize it
	return "Request failed: " + errStr
}

// classifySSLError provides specific guidance for TLS/SSL certificate errors
func classifySSLError(errStr string) string {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "certificate is not trusted") ||
		strings.Contains(errLower, "unknown authority") {
		return "TLS certificate verification failed - certificate is not trusted. Enable insecure mode in config.yaml to skip verification"
	}

	if strings.Contains(errLower, "certificate has expired") ||
		strings.Contains(errLower, "expired") {
		return "TLS certificate has expired - contact server administrator or skip verification (insecure)"
	}

	if strings.Contains(errLower, "certificate is valid for") ||
		strings.Contains(errLower, "name mismatch") ||
		strings.Contains(errLower, "doesn't match") {
		return "TLS hostname mismatch - certificate doesn't match the requested hostname"
	}

	if strings.Contains(errLower, "handshake") {
		return "TLS handshake failed - check TLS version compatibility and cipher suites"
	}

	if strings.Contains(errLower, "bad certificate") {
		return "TLS bad certificate - the certificate was rejected by the server"
	}

	if strings.Contains(errLower, "certificate required") {
		return "TLS client certificate required - the server demands a client certificate, which is not applied"
	}

	// Generic TLS error
	return "TLS/SSL error - check certificate configuration and TLS settings: " + errStr
}

// classifyError wraps classifyErrorString for Go error types. It unwraps the
// error chain to get the root cause before categorizing.
func classifyError(err error) string {
	if err == nil {
		return ""
	}

	var rootErr error = err
	for {
		unwrapped := errors.Unwrap(rootErr)
		if unwrapped == nil {
			break
		}
		rootErr = unwrapped
	}

	switch e := rootErr.(type) {
	case *url.Error:
		return classifyURLError(e)
	case *net.OpError:
		return classifyNetError(e)
	case x509.CertificateInvalidError:
		return "TLS certificate is invalid: " + e.Error()
	case x509.UnknownAuthorityError:
		return "TLS certificate signed by unknown authority - enable insecure mode in config.yaml to skip verification"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "Request timeout - check URL and try increasing the timeout in config.yaml (default: 30s)"
	}
	if errors.Is(err, context.Canceled) {
		return "Request cancelled by user"
	}

	return classifyErrorString(err.Error())
}

// classifyURLError provides specific handling for url.Error types
func classifyURLError(e *url.Error) string {
	if e.Timeout() {
		return "Request timeout - check URL and try increasing the timeout in config.yaml (default: 30s)"
	}
	if e.Err != nil {
		return classifyError(e.Err)
	}
	return classifyErrorString(e.Error())
}

// classifyNetError provides specific handling for net.OpError types
func classifyNetError(e *net.OpError) string {
	if e.Timeout() {
		return "Connection timeout - server took too long to respond, try increasing timeout"
	}

	if errno, ok := e.Err.(syscall.Errno); ok {
		switch errno {
		case syscall.ECONNREFUSED:
			return "Connection refused - check if server is running and port is correct"
		case syscall.ECONNRESET:
			return "Connection reset by server - server may have crashed or network issue occurred"
		case syscall.ENETUNREACH:
			return "Network unreachable - check network connection and firewall settings"
		case syscall.EHOSTUNREACH:
			return "Host unreachable - check if server is online and accessible"
		}
	}

	if e.Err != nil {
		return classifyErrorString(e.Err.Error())
	}
	return classifyErrorString(e.Error())
}
