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

package nvm

import (
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rancher-sandbox/nvm-prune/pkg/constants"
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
	"github.com/rancher-sandbox/nvm-prune/pkg/utils"
)

// ScanError is returned when the versions directory can not be listed
type ScanError struct {
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("failed to list installed versions in %s: %s", e.Path, e.Err.Error())
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

type ScannerOptions func(s *Scanner)

// WithSizes enables best effort size measurement of each version directory
func WithSizes(measure bool) ScannerOptions {
	return func(s *Scanner) {
		s.measureSize = measure
	}
}

// WithSizeJobs limits the number of directories measured concurrently
func WithSizeJobs(jobs int) ScannerOptions {
	return func(s *Scanner) {
		s.sizeJobs = jobs
	}
}

// Scanner lists the node versions installed by nvm
type Scanner struct {
	fs          v1.FS
	logger      v1.Logger
	measureSize bool
	sizeJobs    int
}

func NewScanner(cfg *v1.Config, opts ...ScannerOptions) *Scanner {
	s := &Scanner{
		fs:       cfg.Fs,
		logger:   cfg.Logger,
		sizeJobs: constants.SizeJobs,
	}
	for _, o := range opts {
		o(s)
	}
	if s.sizeJobs < 1 {
		s.sizeJobs = 1
	}
	return s
}

// VersionsDir returns the directory holding one subdirectory per installed node version
func VersionsDir(nvmDir string) string {
	return filepath.Join(nvmDir, constants.NodeVersionsDir)
}

// Scan returns the versions installed under root, newest first. Entries
// which are not directories or whose name is not a semantic version are
// skipped.
func (s Scanner) Scan(root string) ([]v1.InstalledVersion, error) {
	entries, err := s.fs.ReadDir(root)
	if err != nil {
		return nil, &ScanError{Path: root, Err: err}
	}

	var versions []v1.InstalledVersion
	for _, entry := range entries {
		if !entry.IsDir() {
			s.logger.Debugf("Skipping %s: not a directory", entry.Name())
			continue
		}
		version, ok := v1.ParseSemanticVersion(entry.Name())
		if !ok {
			s.logger.Debugf("Skipping %s: not a version directory", entry.Name())
			continue
		}
		versions = append(versions, v1.InstalledVersion{
			Version: version,
			Path:    filepath.Join(root, entry.Name()),
		})
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].Version.Compare(versions[j].Version) > 0
	})

	if s.measureSize {
		s.measure(versions)
	}

	return versions, nil
}

// measure sets the size of every version it manages to walk. Each goroutine
// only writes its own slice element.
func (s Scanner) measure(versions []v1.InstalledVersion) {
	var g errgroup.Group
	g.SetLimit(s.sizeJobs)
	for i := range versions {
		i := i
		g.Go(func() error {
			size, err := utils.DirSize(s.fs, versions[i].Path)
			if err != nil {
				s.logger.Debugf("Could not measure %s: %s", versions[i].Path, err.Error())
				return nil
			}
			versions[i].Size = &size
			return nil
		})
	}
	_ = g.Wait()
}
