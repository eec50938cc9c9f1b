// Package api is the client side of the catalog REST API.
//
// # Overview
//
// Client wraps the five entry operations (FetchAll, FetchByID, Create,
// Update, Delete) and the two-phase image sequence (UploadImage): request an
// upload slot and PUT the bytes to the presigned URL, then ask the server to
// sign a long-lived read URL for the stored object.
//
// # Error Handling
//
// Every failure is an *Error whose Kind is one of the sentinels below, so
// callers can branch with errors.Is:
//
//	ErrValidation  rejected locally before any request, or 400 on a write
//	ErrNetwork     the request never produced a response
//	ErrNotFound    404
//	ErrConflict    409, or an upload refused because the object exists
//	ErrPermission  401 / 403
//	ErrServer      5xx, or the image could not be signed
//	ErrRequest     any other non-2xx
//
// Nothing is retried.
package api
