package dataset

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/dscache/pkg/errors"
	"github.com/hashicorp/go-version"
)

// ParseVersion parses a dataset version number such as "115" or "v115".
// Dataset versions are single positive integers; dotted or prerelease versions are rejected.
func ParseVersion(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, ".-+") {
		return 0, errors.Wrapf(errors.ErrInvalidVersion, "%q", s)
	}
	v, err := version.NewVersion(s)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidVersion, "%q", s)
	}
	n := v.Segments64()[0]
	if n < 1 {
		return 0, errors.Wrapf(errors.ErrInvalidVersion, "%q must be positive", s)
	}
	return int(n), nil
}

// NewerVersions returns the versions of d strictly greater than current, in listing order.
func (d Details) NewerVersions(current int) ([]VersionDetails, error) {
	constraint, err := version.NewConstraint(fmt.Sprintf("> %d", current))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build version constraint for %d", current)
	}

	var newer []VersionDetails
	for _, vd := range d.Versions {
		v, err := version.NewVersion(fmt.Sprintf("%d", vd.VersionNumber))
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidVersion, "%s lists version %d", d.Ref, vd.VersionNumber)
		}
		if constraint.Check(v) {
			newer = append(newer, vd)
		}
	}
	return newer, nil
}
