// SPDX-License-Identifier: MIT
//
// Package build provides the build information of the audioendpoints binary.
// Name, timestamp, Git commit and semantic version are embedded at compile
// time using linker flags, for example:
//
//	go build -ldflags "-X audioendpoints/pkg/build.buildName=audioendpoints \
//	  -X audioendpoints/pkg/build.buildVersion=0.1.0 ..."
//
// Development builds without ldflags fall back to placeholder values.
package build

import (
	"errors"
	"fmt"
)

const (
	defaultName        = "audioendpoints"
	defaultDescription = "List the active audio capture and render endpoints of this machine"
	unknown            = "unknown"
)

type ldFlags struct {
	Name        string
	Description string
	Time        string
	Commit      string
	Version     string
}

// String returns a one-line version banner.
func (f *ldFlags) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", f.Name, f.Version, f.Commit, f.Time)
}

// Package-level variables for build information. These are populated by -ldflags
// during compilation.
var (
	buildName    string
	buildTime    string
	buildCommit  string
	buildVersion string
	buildFlags   = defaultFlags()
)

func defaultFlags() *ldFlags {
	return &ldFlags{
		Name:        defaultName,
		Description: defaultDescription,
		Time:        unknown,
		Commit:      unknown,
		Version:     unknown,
	}
}

// Initialize validates and copies build information from ldflags variables
// into the buildFlags struct. It returns an error naming every missing flag;
// the flags that were set are applied either way.
func Initialize() error {
	var missing []error
	set := func(dst *string, val, name string) {
		if val == "" {
			missing = append(missing, fmt.Errorf("%s is required", name))
			return
		}
		*dst = val
	}

	set(&buildFlags.Name, buildName, "BuildName")
	set(&buildFlags.Time, buildTime, "BuildTime")
	set(&buildFlags.Commit, buildCommit, "BuildCommit")
	set(&buildFlags.Version, buildVersion, "BuildVersion")

	return errors.Join(missing...)
}

// GetBuildFlags returns the current build information. Call Initialize
// first to pick up ldflags values.
func GetBuildFlags() *ldFlags {
	return buildFlags
}
