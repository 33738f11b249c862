package constants

const (
	// ContextKeyRequestID is the gin context key holding the request id
	ContextKeyRequestID = "request_id"

	// HeaderRequestID is propagated from and echoed back to clients
	HeaderRequestID = "X-Request-ID"
)
