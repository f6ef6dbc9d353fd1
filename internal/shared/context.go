package shared

import "context"

type tenantContextKey struct{}

// ContextWithTenant stores the verified tenant id in context.
func ContextWithTenant(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, tenantContextKey{}, ownerID)
}

// TenantFromContext extracts the tenant id from context, empty when absent.
func TenantFromContext(ctx context.Context) string {
	ownerID, _ := ctx.Value(tenantContextKey{}).(string)
	return ownerID
}
