package universe

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/resolver"
	"github.com/matzehuels/depsolve/pkg/versioning"
)

// Request is a serialized resolve request or gathered universe.
type Request struct {
	Required  []string          `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	Targets   []string          `json:"targets,omitempty" yaml:"targets,omitempty" toml:"targets,omitempty"`
	Behavior  string            `json:"behavior,omitempty" yaml:"behavior,omitempty" toml:"behavior,omitempty"`
	Preferred map[string]string `json:"preferred,omitempty" yaml:"preferred,omitempty" toml:"preferred,omitempty"`
	Installed []Installed       `json:"installed,omitempty" yaml:"installed,omitempty" toml:"installed,omitempty"`
	Feeds     []string          `json:"feeds,omitempty" yaml:"feeds,omitempty" toml:"feeds,omitempty"`
	Packages  []Package         `json:"packages,omitempty" yaml:"packages,omitempty" toml:"packages,omitempty"`
}

// Package is one candidate version.
type Package struct {
	ID           string       `json:"id" yaml:"id" toml:"id"`
	Version      string       `json:"version" yaml:"version" toml:"version"`
	Unlisted     bool         `json:"unlisted,omitempty" yaml:"unlisted,omitempty" toml:"unlisted,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty" yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`
}

// Dependency is a declared dependency. An empty Range accepts any version.
type Dependency struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Range string `json:"range,omitempty" yaml:"range,omitempty" toml:"range,omitempty"`
}

// Installed describes a package already present in the project.
type Installed struct {
	ID      string `json:"id" yaml:"id" toml:"id"`
	Version string `json:"version" yaml:"version" toml:"version"`
	Allowed string `json:"allowed,omitempty" yaml:"allowed,omitempty" toml:"allowed,omitempty"`
}

// Candidates parses the package list.
func (r *Request) Candidates() ([]resolver.Candidate, error) {
	out := make([]resolver.Candidate, 0, len(r.Packages))
	for i, p := range r.Packages {
		if err := errors.ValidatePackageName(p.ID); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPackage, err, "packages[%d]", i)
		}
		v, err := versioning.ParseVersion(p.Version)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidVersion, err, "package %s", p.ID)
		}
		deps := make([]resolver.Dependency, 0, len(p.Dependencies))
		for _, d := range p.Dependencies {
			if err := errors.ValidatePackageName(d.ID); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidPackage, err, "package %s %s", p.ID, p.Version)
			}
			rng, err := versioning.Parse(d.Range)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidRange, err, "package %s %s dependency %s", p.ID, p.Version, d.ID)
			}
			deps = append(deps, resolver.Dependency{ID: d.ID, Range: rng})
		}
		c := resolver.NewCandidate(p.ID, v, deps...)
		c.Listed = !p.Unlisted
		out = append(out, c)
	}
	return out, nil
}

// Context validates the request and converts it into resolver input. When
// available is non-nil it replaces the request's own package list, which
// is how candidates gathered from feeds are used.
func (r *Request) Context(available []resolver.Candidate) (*resolver.Context, error) {
	if len(r.Required) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request lists no required packages")
	}
	for _, id := range slices.Concat(r.Required, r.Targets) {
		if err := errors.ValidatePackageName(id); err != nil {
			return nil, err
		}
	}

	behavior, err := resolver.ParseBehavior(r.Behavior)
	if err != nil {
		return nil, err
	}

	if available == nil {
		if available, err = r.Candidates(); err != nil {
			return nil, err
		}
	}

	c := &resolver.Context{
		Available: available,
		Required:  r.Required,
		Targets:   r.Targets,
		Behavior:  behavior,
	}
	if len(r.Preferred) > 0 {
		c.Preferred = make(map[string]*semver.Version, len(r.Preferred))
		for id, s := range r.Preferred {
			v, err := versioning.ParseVersion(s)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidVersion, err, "preferred version of %s", id)
			}
			c.Preferred[id] = v
		}
	}
	for _, in := range r.Installed {
		v, err := versioning.ParseVersion(in.Version)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidVersion, err, "installed %s", in.ID)
		}
		pkg := resolver.InstalledPackage{ID: in.ID, Version: v}
		if strings.TrimSpace(in.Allowed) != "" {
			if pkg.AllowedVersions, err = versioning.Parse(in.Allowed); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidRange, err, "allowed versions of %s", in.ID)
			}
		}
		c.Installed = append(c.Installed, pkg)
	}
	return c, nil
}

// FromCandidates converts candidates into the serialized package list.
// Absent placeholders are skipped.
func FromCandidates(cands []resolver.Candidate) []Package {
	out := make([]Package, 0, len(cands))
	for _, c := range cands {
		if c.Absent {
			continue
		}
		p := Package{ID: c.ID, Version: c.Version.Original(), Unlisted: !c.Listed}
		for _, d := range c.Dependencies {
			dep := Dependency{ID: d.ID}
			if !d.Range.IsAll() {
				dep.Range = d.Range.String()
			}
			p.Dependencies = append(p.Dependencies, dep)
		}
		out = append(out, p)
	}
	return out
}
