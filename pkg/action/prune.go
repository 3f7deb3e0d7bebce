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
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	pruneError "github.com/rancher-sandbox/nvm-prune/pkg/error"
	"github.com/rancher-sandbox/nvm-prune/pkg/nvm"
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
)

type pruneResult struct {
	Kept    map[uint64]v1.InstalledVersion `yaml:"kept"`
	Stale   []v1.InstalledVersion          `yaml:"stale"`
	DryRun  bool                           `yaml:"dry-run,omitempty"`
	Report  *v1.UninstallReport            `yaml:"report,omitempty"`
	Success bool                           `yaml:"success"`
}

type PruneActionOption func(p *PruneAction) error

func WithPruneConfirmer(c v1.Confirmer) func(p *PruneAction) error {
	return func(p *PruneAction) error {
		p.confirmer = c
		return nil
	}
}

func WithPruneOutput(w io.Writer) func(p *PruneAction) error {
	return func(p *PruneAction) error {
		p.out = w
		return nil
	}
}

// PruneAction removes every installed node version superseded by a newer one
// of the same major
type PruneAction struct {
	cfg       *v1.Config
	spec      *v1.PruneSpec
	confirmer v1.Confirmer
	out       io.Writer
}

func NewPruneAction(cfg *v1.Config, spec *v1.PruneSpec, opts ...PruneActionOption) *PruneAction {
	p := &PruneAction{cfg: cfg, spec: spec, out: os.Stdout}
	for _, o := range opts {
		err := o(p)
		if err != nil {
			cfg.Logger.Errorf("error applying config option: %s", err.Error())
			return nil
		}
	}
	if p.confirmer == nil {
		p.confirmer = v1.StdinConfirmer{In: os.Stdin, Out: os.Stderr}
	}
	return p
}

// Run scans, asks for confirmation and uninstalls the stale versions. The
// returned report is nil if nothing was attempted. A report with failures
// comes along with an error carrying the UninstallFailed exit code.
func (p *PruneAction) Run(ctx context.Context) (*v1.UninstallReport, error) {
	_, partition, err := scanAndPartition(p.cfg, p.spec)
	if err != nil {
		return nil, err
	}

	if len(partition.Stale) == 0 {
		p.cfg.Logger.Info("No old versions found; nothing to do")
		return nil, p.render(pruneResult{Kept: partition.Kept, Success: true})
	}
	p.cfg.Logger.Infof("Found %d old %s", len(partition.Stale), plural(len(partition.Stale), "version"))

	if p.spec.DryRun {
		p.cfg.Logger.Info("Dry run, nothing will be removed")
		return nil, p.render(pruneResult{Kept: partition.Kept, Stale: partition.Stale, DryRun: true, Success: true})
	}

	if !p.spec.AssumeYes {
		question := fmt.Sprintf("The following Node.js versions will be removed:\n\n%s\n\nProceed?", p.displayList(partition))
		ok, err := p.confirmer.Confirm(question)
		if err != nil {
			return nil, pruneError.NewFromError(err, pruneError.Confirmation)
		}
		if !ok {
			p.cfg.Logger.Info("Cancelled, nothing removed")
			return nil, nil
		}
	} else if p.spec.Output == v1.TextOutput {
		fmt.Fprintf(p.out, "Removing:\n%s\n", p.displayList(partition))
	}

	uninstaller := nvm.NewUninstaller(
		p.cfg,
		nvm.WithPolicy(p.spec.Policy),
		nvm.WithJobs(p.spec.Jobs),
		nvm.WithTimeout(p.spec.Timeout),
	)
	report := uninstaller.UninstallAll(ctx, partition.StaleVersions())

	result := pruneResult{Kept: partition.Kept, Stale: partition.Stale, Report: &report, Success: report.AllSucceeded()}
	if err := p.render(result); err != nil {
		return &report, err
	}

	if !report.AllSucceeded() {
		failed := report.Failed()
		p.cfg.Logger.Errorf("%d of %d %s could not be removed", len(failed), len(report.Outcomes), plural(len(report.Outcomes), "version"))
		return &report, pruneError.NewFromError(report.Err(), pruneError.UninstallFailed)
	}

	return &report, nil
}

// displayList renders one line per stale version naming the version kept in its place
func (p *PruneAction) displayList(partition v1.VersionPartition) string {
	lines := make([]string, 0, len(partition.Stale))
	for _, iv := range partition.Stale {
		keeping := "?"
		if kept, ok := partition.KeptFor(iv); ok {
			keeping = kept.Version.Raw
		}
		if p.spec.MeasureSize {
			lines = append(lines, fmt.Sprintf("- %s (%s in %s; keeping %s)", iv.Version.Raw, humanSize(iv.Size), iv.Path, keeping))
		} else {
			lines = append(lines, fmt.Sprintf("- %s (in %s; keeping %s)", iv.Version.Raw, iv.Path, keeping))
		}
	}
	return strings.Join(lines, "\n")
}

func (p *PruneAction) render(result pruneResult) error {
	if p.spec.Output == v1.YAMLOutput {
		return writeYAML(p.out, result)
	}
	if result.Report == nil {
		if result.DryRun {
			fmt.Fprintf(p.out, "Would remove:\n%s\n", p.displayList(v1.VersionPartition{Kept: result.Kept, Stale: result.Stale}))
		}
		return nil
	}

	// outcomes follow the order of Stale
	removed := []v1.InstalledVersion{}
	for i, o := range result.Report.Outcomes {
		if o.Status == v1.Succeeded {
			fmt.Fprintf(p.out, "Removed %s\n", o.Version)
			removed = append(removed, result.Stale[i])
		} else {
			fmt.Fprintf(p.out, "Failed to remove %s: %s\n", o.Version, o.Detail)
		}
	}
	if result.Success {
		if p.spec.MeasureSize {
			size := totalSize(removed)
			fmt.Fprintf(p.out, "Done; %s recovered\n", humanSize(&size))
		} else {
			fmt.Fprintln(p.out, "Done")
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
