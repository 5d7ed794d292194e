/*
Package executor issues HTTP requests and classifies their outcomes.

Every submission produces exactly one types.Result, whatever happens:

  - a malformed URL or an invalid JSON body is rejected before any network
    activity (kinds InvalidUrl and InvalidRequestBody)
  - a transport failure (DNS, connect, TLS, timeout) is classified into a
    friendly message, with an extended troubleshooting checklist when the
    request never reached a server (kind NetworkError)
  - a response with a non-2xx/3xx status is annotated with explanatory text
    keyed by status (kind HttpStatusError)
  - an undecodable body falls back to raw text with a placeholder (kind
    ResponseDecodeError)

Status 0 is reserved for failures that happened before a response was
obtained, so callers can always distinguish "no response" from "response
with an error status".
*/
package executor
