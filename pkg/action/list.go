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

package action

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
)

const (
	keptStatus  = "kept"
	staleStatus = "stale"
)

type listEntry struct {
	Version string  `yaml:"version"`
	Status  string  `yaml:"status"`
	Path    string  `yaml:"path"`
	Size    *uint64 `yaml:"size,omitempty"`
	Keeping string  `yaml:"keeping,omitempty"`
}

type ListActionOption func(l *ListAction) error

func WithListOutput(w io.Writer) func(l *ListAction) error {
	return func(l *ListAction) error {
		l.out = w
		return nil
	}
}

// ListAction prints every installed node version marking which ones a prune
// would remove
type ListAction struct {
	cfg  *v1.Config
	spec *v1.PruneSpec
	out  io.Writer
}

func NewListAction(cfg *v1.Config, spec *v1.PruneSpec, opts ...ListActionOption) *ListAction {
	l := &ListAction{cfg: cfg, spec: spec, out: os.Stdout}
	for _, o := range opts {
		err := o(l)
		if err != nil {
			cfg.Logger.Errorf("error applying config option: %s", err.Error())
			return nil
		}
	}
	return l
}

func (l *ListAction) Run() error {
	versions, partition, err := scanAndPartition(l.cfg, l.spec)
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0, len(versions))
	stale := map[string]bool{}
	for _, iv := range partition.Stale {
		stale[iv.Path] = true
	}
	for _, iv := range versions {
		entry := listEntry{Version: iv.Version.Raw, Status: keptStatus, Path: iv.Path, Size: iv.Size}
		if stale[iv.Path] {
			entry.Status = staleStatus
			if kept, ok := partition.KeptFor(iv); ok {
				entry.Keeping = kept.Version.Raw
			}
		}
		entries = append(entries, entry)
	}

	if l.spec.Output == v1.YAMLOutput {
		return writeYAML(l.out, map[string]interface{}{"versions": entries})
	}

	if len(entries) == 0 {
		fmt.Fprintln(l.out, "No Node.js versions installed.")
		return nil
	}

	w := tabwriter.NewWriter(l.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tSTATUS\tSIZE\tPATH")
	for _, e := range entries {
		size := "-"
		if l.spec.MeasureSize {
			size = humanSize(e.Size)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Version, e.Status, size, e.Path)
	}
	return w.Flush()
}
