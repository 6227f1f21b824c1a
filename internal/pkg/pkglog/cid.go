package pkglog

import "context"

const invalidCorrelationID = "[invalid_chain_id]"

type correlationIDKey struct{}

// GetCorrelationID returns the correlation id stored in ctx by
// SetCorrelationID.
func GetCorrelationID(ctx context.Context) string {
	cid, ok := ctx.Value(correlationIDKey{}).(string)
	if !ok {
		return invalidCorrelationID
	}
	return cid
}

// SetCorrelationID returns a copy of ctx carrying cid.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}
