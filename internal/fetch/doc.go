// Package fetch issues the HTTP requests made during a verification run.
//
// Client wraps an *http.Client and offers the three request shapes the run
// needs: GET for pages, HEAD for existence probes and a form POST for the
// reminder endpoint. Any response, whatever its status code, is returned as a
// *Response. Only failures where no response was obtained are returned as an
// error, always of type *Error, so callers can tell "the server said no"
// apart from "the server could not be reached".
//
// Requests can be paced with WithDelay, which is backed by a
// golang.org/x/time/rate limiter. Pacing never reorders or drops requests.
package fetch
