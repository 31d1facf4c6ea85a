package types

// ContextKey is the type for context values set by the server middleware.
type ContextKey string

const (
	// ContextKeyRequestID carries the per-request UUID.
	ContextKeyRequestID ContextKey = "request_id"
	// ContextKeyRequestSource identifies where the request came from
	// (http, cli).
	ContextKeyRequestSource ContextKey = "request_source"
)
