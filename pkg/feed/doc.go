// Package feed fetches candidate versions from package feeds.
//
// A [Source] lists every version of one package together with the
// dependency ranges each version declares. Two sources ship with depsolve:
//
//   - [HTTPSource] reads a JSON feed laid out as {base}/{id}/index.json,
//     caching responses through a [cache.Cache] and retrying transient
//     failures.
//   - [StaticSource] serves a fixed set of candidates, typically loaded
//     from a universe file.
//
// A [Walker] queries several sources at once. [Walker.FindBest] picks the
// best version of one package for a range across all sources, and
// [Walker.Gather] crawls the dependency closure of a set of roots and
// returns the candidate universe the resolver searches.
//
// # Feed format
//
//	{
//	  "id": "Log",
//	  "versions": [
//	    {"version": "1.4.0", "dependencies": [{"id": "fmt", "range": "[1.0, 2.0)"}]},
//	    {"version": "1.5.0-beta", "listed": false}
//	  ]
//	}
//
// A missing "listed" field means the version is listed.
//
// [cache.Cache]: github.com/matzehuels/depsolve/pkg/cache.Cache
package feed
