package consensus

import (
	"log/slog"
	"time"
)

type resolverOption func(Resolver) Resolver

// WithLogger replaces the logger the resolver reports skipped peers and
// chain replacements on.
func WithLogger(logger *slog.Logger) resolverOption {
	return func(r Resolver) Resolver {
		r.logger = logger
		return r
	}
}

// WithFetchTimeout bounds how long a single peer fetch may take before it is
// counted as unreachable.
func WithFetchTimeout(timeout time.Duration) resolverOption {
	return func(r Resolver) Resolver {
		r.fetchTimeout = timeout
		return r
	}
}
