/*
Copyright © 2022 - 2026 SUSE LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"
)

// SemanticVersion is a parsed version directory name. Raw keeps the name as
// found on disk, it is what nvm gets to see.
type SemanticVersion struct {
	Major uint64 `yaml:"major"`
	Minor uint64 `yaml:"minor"`
	Patch uint64 `yaml:"patch"`
	Raw   string `yaml:"raw"`
}

// ParseSemanticVersion parses a version directory name such as "v18.2.0".
// A single leading "v" is accepted. ok is false for anything that is not a
// strict MAJOR.MINOR.PATCH semantic version.
func ParseSemanticVersion(name string) (SemanticVersion, bool) {
	v, err := semver.StrictNewVersion(strings.TrimPrefix(name, "v"))
	if err != nil {
		return SemanticVersion{}, false
	}
	return SemanticVersion{
		Major: v.Major(),
		Minor: v.Minor(),
		Patch: v.Patch(),
		Raw:   name,
	}, true
}

// Compare returns -1, 0 or 1 comparing (major, minor, patch) of v and o.
func (v SemanticVersion) Compare(o SemanticVersion) int {
	for _, p := range [][2]uint64{{v.Major, o.Major}, {v.Minor, o.Minor}, {v.Patch, o.Patch}} {
		switch {
		case p[0] > p[1]:
			return 1
		case p[0] < p[1]:
			return -1
		}
	}
	return 0
}

func (v SemanticVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// InstalledVersion is a version directory found under the nvm node versions dir.
// Size is nil when it could not be measured.
type InstalledVersion struct {
	Version SemanticVersion `yaml:"version"`
	Path    string          `yaml:"path"`
	Size    *uint64         `yaml:"size,omitempty"`
}

// VersionPartition splits installed versions into the newest one of each
// major release line and the stale ones superseded within their line.
type VersionPartition struct {
	Kept  map[uint64]InstalledVersion `yaml:"kept"`
	Stale []InstalledVersion          `yaml:"stale"`
}

// KeptFor returns the kept version sharing the major of iv.
func (p VersionPartition) KeptFor(iv InstalledVersion) (InstalledVersion, bool) {
	k, ok := p.Kept[iv.Version.Major]
	return k, ok
}

// StaleVersions returns the raw version strings of the stale versions, in order.
func (p VersionPartition) StaleVersions() []string {
	versions := make([]string, 0, len(p.Stale))
	for _, iv := range p.Stale {
		versions = append(versions, iv.Version.Raw)
	}
	return versions
}

type OutcomeStatus string

const (
	Succeeded OutcomeStatus = "succeeded"
	Failed    OutcomeStatus = "failed"
)

type UninstallOutcome struct {
	Version string        `yaml:"version"`
	Status  OutcomeStatus `yaml:"status"`
	Detail  string        `yaml:"detail,omitempty"`
}

// UninstallReport holds exactly one outcome per requested version
type UninstallReport struct {
	Outcomes []UninstallOutcome `yaml:"outcomes"`
}

func (r UninstallReport) AllSucceeded() bool {
	for _, o := range r.Outcomes {
		if o.Status != Succeeded {
			return false
		}
	}
	return true
}

func (r UninstallReport) Failed() []UninstallOutcome {
	var failed []UninstallOutcome
	for _, o := range r.Outcomes {
		if o.Status != Succeeded {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err aggregates all failed outcomes, nil if every uninstall succeeded
func (r UninstallReport) Err() error {
	var err error
	for _, o := range r.Failed() {
		err = multierror.Append(err, fmt.Errorf("uninstalling %s: %s", o.Version, o.Detail))
	}
	return err
}
