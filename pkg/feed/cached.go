package feed

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/depsolve/pkg/cache"
	"github.com/matzehuels/depsolve/pkg/observability"
	"github.com/matzehuels/depsolve/pkg/resolver"
)

// GatherCandidates returns the candidates reachable from roots like
// [Walker.Gather], but stores the result in opts.Cache under the universe
// key of roots, the walker's source names and its limits. A later call with
// the same inputs is answered from the cache without touching any source.
// With opts.Refresh the cache is bypassed and rewritten.
//
// Cache failures are never fatal.
func (w *Walker) GatherCandidates(ctx context.Context, opts ClientOptions, roots ...string) ([]resolver.Candidate, error) {
	opts = opts.WithDefaults()
	hooks := observability.Cache()
	key := opts.Keyer.UniverseKey(roots, cache.UniverseKeyOpts{
		Sources:  w.sourceNames(),
		MaxDepth: w.opts.MaxDepth,
		MaxNodes: w.opts.MaxNodes,
	})

	if !opts.Refresh {
		if cands, ok := w.cachedUniverse(ctx, opts.Cache, key); ok {
			hooks.OnCacheHit(ctx, "universe")
			return cands, nil
		}
		hooks.OnCacheMiss(ctx, "universe")
	}

	u, err := w.Gather(ctx, roots...)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(listings(u.Candidates)); err == nil {
		if err := opts.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			w.opts.Logger.Warn("store universe", "key", key, "err", err)
		} else {
			hooks.OnCacheSet(ctx, "universe", len(data))
		}
	}
	return u.Candidates, nil
}

func (w *Walker) cachedUniverse(ctx context.Context, c cache.Cache, key string) ([]resolver.Candidate, bool) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var ls []Listing
	if err := json.Unmarshal(data, &ls); err != nil {
		w.opts.Logger.Warn("corrupt cached universe", "key", key, "err", err)
		return nil, false
	}
	var out []resolver.Candidate
	for _, l := range ls {
		cands, err := l.Candidates()
		if err != nil {
			w.opts.Logger.Warn("corrupt cached universe", "key", key, "err", err)
			return nil, false
		}
		out = append(out, cands...)
	}
	return out, true
}

func (w *Walker) sourceNames() []string {
	names := make([]string, len(w.sources))
	for i, s := range w.sources {
		names[i] = s.Name()
	}
	return names
}

// listings groups candidates, which Gather returns sorted by identity, into
// one listing per identity.
func listings(cands []resolver.Candidate) []*Listing {
	var out []*Listing
	for i := 0; i < len(cands); {
		j := i + 1
		for j < len(cands) && cands[j].Key() == cands[i].Key() {
			j++
		}
		out = append(out, NewListing(cands[i].ID, cands[i:j]))
		i = j
	}
	return out
}
