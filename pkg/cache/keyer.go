package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"
)

// Keyer builds cache keys for the values depsolve stores.
type Keyer interface {
	// FeedKey is the key of one package's version listing from a source.
	FeedKey(source, id string) string
	// UniverseKey is the key of a gathered universe.
	UniverseKey(roots []string, opts UniverseKeyOpts) string
}

// UniverseKeyOpts are the crawl options that change a gathered universe.
type UniverseKeyOpts struct {
	Sources  []string `json:"sources"`
	MaxDepth int      `json:"max_depth"`
	MaxNodes int      `json:"max_nodes"`
}

// DefaultKeyer produces keys of the form "feed:<source>:<id>" and
// "universe:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FeedKey lower-cases id so that lookups differing only in case share an entry.
func (DefaultKeyer) FeedKey(source, id string) string {
	return "feed:" + source + ":" + strings.ToLower(strings.TrimSpace(id))
}

// UniverseKey hashes the sorted, lower-cased roots together with opts.
func (DefaultKeyer) UniverseKey(roots []string, opts UniverseKeyOpts) string {
	norm := make([]string, len(roots))
	for i, r := range roots {
		norm[i] = strings.ToLower(strings.TrimSpace(r))
	}
	slices.Sort(norm)
	data, _ := json.Marshal(struct {
		Roots []string        `json:"roots"`
		Opts  UniverseKeyOpts `json:"opts"`
	}{norm, opts})
	return "universe:" + digest(data)
}

// digest is the hex SHA-256 of data.
func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
