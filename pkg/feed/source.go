package feed

import (
	"context"
	"errors"

	"github.com/matzehuels/depsolve/pkg/resolver"
)

var (
	// ErrNotFound is returned when a source has no listing for a package.
	ErrNotFound = errors.New("package not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Source lists the versions of a package.
type Source interface {
	// Name identifies the source in logs, metrics and cache keys.
	Name() string
	// Versions returns every known version of id. It returns an error
	// wrapping ErrNotFound when the source has no such package.
	Versions(ctx context.Context, id string) ([]resolver.Candidate, error)
}
