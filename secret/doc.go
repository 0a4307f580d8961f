// Package secret provides a small, dependency-light secret resolution layer
// for depline's endpoint configuration (see resilience/config.go).
//
// It supports:
//   - Strict environment expansion (see ExpandEnvStrict)
//   - Pluggable secret providers, registered directly on a Resolver (see
//     Provider + Resolver.Register)
//   - Resolving secret references embedded in configuration values, both as
//     a value's entire contents and inline within a larger string (see
//     Resolver.ResolveValue)
//
// References use the prefix "secretref:":
//   - Full value:  secretref:vault:api/movies/bearer-token
//   - Inline use:  Bearer secretref:vault:api/movies/bearer-token
package secret
