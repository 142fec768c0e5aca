package buildconfig

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VyperConstraint parses the pinned vyper range
func (c *BuildConfiguration) VyperConstraint() (*semver.Constraints, error) {
	rng := c.Compilers.Vyper.Version
	if strings.TrimSpace(rng) == "" {
		return nil, fmt.Errorf("compilers.vyper.version is not set")
	}
	constraint, err := semver.NewConstraint(rng)
	if err != nil {
		return nil, fmt.Errorf("parse vyper version range %q: %w", rng, err)
	}
	return constraint, nil
}

// SatisfiesVyper reports whether a concrete compiler version is allowed by
// the pinned range. Version strings may carry a leading "v" and vyper's
// "+commit.<hash>" build suffix.
func (c *BuildConfiguration) SatisfiesVyper(version string) (bool, error) {
	constraint, err := c.VyperConstraint()
	if err != nil {
		return false, err
	}
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return false, fmt.Errorf("parse vyper version %q: %w", version, err)
	}
	return constraint.Check(v), nil
}
