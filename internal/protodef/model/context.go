package model

// gin context keys.
const (
	XLogKey            = "xlog"
	IdentityContextKey = "identity"
	UserIDContextKey   = "userId"
)

// HeaderTokenKey the request header carrying the bearer credential.
const HeaderTokenKey = "Authorization"

// RequestIDHeader request ID header.
const RequestIDHeader = "X-Reqid"
