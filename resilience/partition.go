package resilience

import (
	"context"

	"github.com/jonwraymond/depline/auth"
)

// PartitionFromContext derives a rate-limit partition key from the
// authenticated caller in ctx via Identity.PartitionKey: tenant ID when
// multi-tenancy is in play, falling back to the principal, falling back to
// "anonymous" for unauthenticated calls. Callers that already track their
// own partition scheme can bypass this and pass a literal string to Execute
// instead.
func PartitionFromContext(ctx context.Context) string {
	return auth.IdentityFromContext(ctx).PartitionKey()
}
