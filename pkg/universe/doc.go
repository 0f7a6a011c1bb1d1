// Package universe reads and writes resolve requests.
//
// A [Request] bundles everything a resolution needs: the required package
// ids, the version policy, soft preferences, the project's installed
// packages and the candidate universe itself. The same document, with only
// Packages filled in, is what `depsolve gather` writes.
//
// Requests are stored as TOML, YAML or JSON; [FormatFromPath] picks the
// codec from the file extension:
//
//	required = ["web"]
//	behavior = "highest-minor"
//
//	[preferred]
//	log = "1.4.0"
//
//	[[installed]]
//	id = "log"
//	version = "1.2.0"
//	allowed = "[1.0, 2.0)"
//
//	[[packages]]
//	id = "web"
//	version = "1.0.0"
//	dependencies = [{ id = "log", range = "[1.0, 2.0)" }]
//
// [Request.Context] validates the document and converts it into the
// resolver's input.
package universe
