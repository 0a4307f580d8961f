// Package auth carries the authenticated caller identity that depline's
// resilience pipelines partition rate limits and telemetry by.
//
// depline does not authenticate requests itself — it expects a transport or
// middleware layer upstream to verify credentials and attach the result with
// WithIdentity. resilience.PartitionFromContext then reads the identity back
// out to derive a rate-limit partition key (tenant, falling back to
// principal, falling back to "anonymous"), so multi-tenant deployments can
// isolate one noisy caller's rate limiting from another's without the
// resilience package knowing anything about how identity was established.
package auth
