package auth

import "time"

// AuthMethod indicates how an identity was established.
type AuthMethod string

const (
	AuthMethodNone      AuthMethod = "none"
	AuthMethodJWT       AuthMethod = "jwt"
	AuthMethodAPIKey    AuthMethod = "api_key"
	AuthMethodAnonymous AuthMethod = "anonymous"
)

// Identity carries the authenticated caller that a resilience pipeline
// partitions rate limits and telemetry by. depline does not itself verify
// credentials; callers that sit behind an authenticating transport attach
// an Identity to the request context with WithIdentity, and the resilience
// package reads it back out via PartitionFromContext.
type Identity struct {
	// Principal is the unique caller identifier (user ID, service account, email).
	Principal string

	// TenantID is the tenant this identity belongs to, when the deployment
	// is multi-tenant. Rate-limit partitioning prefers TenantID over
	// Principal when both are set, so tenants share one partition across
	// their callers.
	TenantID string

	// Method records how the identity was established.
	Method AuthMethod

	// Claims carries any additional attributes the caller's authentication
	// layer wants to propagate alongside Principal/TenantID.
	Claims map[string]any

	// ExpiresAt is when this identity expires. Zero means it never expires.
	ExpiresAt time.Time

	// IssuedAt is when this identity was established.
	IssuedAt time.Time
}

// IsExpired reports whether the identity has passed its ExpiresAt.
func (id *Identity) IsExpired() bool {
	if id.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(id.ExpiresAt)
}

// IsAnonymous reports whether this is an anonymous identity.
func (id *Identity) IsAnonymous() bool {
	return id == nil || id.Method == AuthMethodAnonymous || id.Principal == ""
}

// PartitionKey derives the rate-limit partition key for this caller:
// tenant ID when multi-tenancy is in play, falling
// back to the principal, falling back to "anonymous" for a nil identity or
// one with neither set. Nil-receiver-safe so an unauthenticated request
// context (no Identity attached at all) partitions the same way as an
// explicit AnonymousIdentity().
func (id *Identity) PartitionKey() string {
	if id == nil {
		return "anonymous"
	}
	if id.TenantID != "" {
		return id.TenantID
	}
	if id.Principal != "" {
		return id.Principal
	}
	return "anonymous"
}

// AnonymousIdentity creates the default identity for unauthenticated callers.
func AnonymousIdentity() *Identity {
	return &Identity{
		Principal: "anonymous",
		Method:    AuthMethodAnonymous,
		Claims:    make(map[string]any),
	}
}
