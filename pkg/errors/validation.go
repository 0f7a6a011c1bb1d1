package errors

import (
	"net/url"
	"regexp"
	"strings"
)

// MaxPackageIDLength is the longest package id feeds accept.
const MaxPackageIDLength = 100

// packageIDPattern is the feed id grammar: word runs joined by single dots
// or dashes, e.g. "Newtonsoft.Json" or "my-package".
var packageIDPattern = regexp.MustCompile(`^\w+([.-]\w+)*$`)

// ValidatePackageName checks that name is a well-formed package id. Ids end
// up in feed URLs and cache keys, so anything outside the grammar, including
// path separators and control characters, is rejected.
func ValidatePackageName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return New(ErrCodeInvalidPackage, "package id cannot be empty")
	case len(name) > MaxPackageIDLength:
		return New(ErrCodeInvalidPackage, "package id too long (max %d characters)", MaxPackageIDLength)
	case !packageIDPattern.MatchString(name):
		return New(ErrCodeInvalidPackage, "invalid package id %q: use letters, digits and underscores joined by '.' or '-'", name)
	}
	return nil
}

// ValidateURL checks that rawURL is an absolute http or https URL with a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}
