// Package versioning parses and evaluates version ranges in interval
// notation.
//
// Versions are [semver.Version] values from github.com/Masterminds/semver/v3.
// Ranges accept the following forms:
//
//	1.0           at least 1.0.0
//	[1.0]         exactly 1.0.0
//	[1.0, )       at least 1.0.0
//	(1.0, 2.0]    above 1.0.0, up to and including 2.0.0
//	(, 2.0)       below 2.0.0
//	1.*           at least 1.0.0, preferring the highest 1.x release
//
// A nil *Range accepts every version, so a dependency without a range can
// carry a nil pointer instead of a sentinel value.
//
// # Rendering
//
// [Range.String] returns the normalized interval form used in files and the
// API; [Range.PrettyPrint] returns the human form used in diagnostics, for
// example "(≥ 1.0.0)" or "(≥ 1.0.0 && < 2.0.0)".
package versioning
