// Package client talks to the gophauth REST API.
//
// HTTPClient implements Client over net/http and maps responses to sentinel
// errors callers can match with errors.Is: ErrUnavailable when the server
// cannot be reached, ErrUnauthorized for 401, ErrNotFound for 404 and
// ErrRejected for other 4xx answers. The server's message is kept on
// *APIError.
package client
