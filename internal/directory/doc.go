// Package directory is the HTTP client for the remote user directory.
//
// One call to FetchUsers issues exactly one GET to
//
//	<endpoint>?results=<n>
//
// and decodes a body of the form
//
//	{"results": [{"name": {"first", "last"}, "location": {"country"}, "login": {"uuid"}}, ...]}
//
// into flat state.User values. Records without a usable login.uuid, and
// repeats of an already seen uuid, are dropped so the table can rely on ID
// uniqueness.
//
// # Errors
//
// Every failure is an *Error. Use errors.Is with ErrNetwork (transport
// failure, non-2xx status, service-reported error) or ErrParse (malformed
// JSON). There is no retry, backoff or client-side timeout; callers cancel
// through the context.
//
// # Logging
//
// Each fetch is tagged with a random request_id and logged through the
// hclog.Logger passed in Options.
package directory
