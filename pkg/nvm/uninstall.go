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
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rancher-sandbox/nvm-prune/pkg/constants"
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
)

type UninstallerOptions func(u *Uninstaller)

func WithPolicy(policy v1.UninstallPolicy) UninstallerOptions {
	return func(u *Uninstaller) {
		u.policy = policy
	}
}

// WithJobs limits the concurrent uninstalls of the parallel policy
func WithJobs(jobs int) UninstallerOptions {
	return func(u *Uninstaller) {
		u.jobs = jobs
	}
}

// WithTimeout bounds each single nvm invocation, zero means no timeout
func WithTimeout(timeout time.Duration) UninstallerOptions {
	return func(u *Uninstaller) {
		u.timeout = timeout
	}
}

// WithProgress registers a callback invoked once per finished uninstall.
// With the parallel policy it is called from several goroutines.
func WithProgress(progress func(v1.UninstallOutcome)) UninstallerOptions {
	return func(u *Uninstaller) {
		u.progress = progress
	}
}

// Uninstaller removes node versions through nvm
type Uninstaller struct {
	nvm      *Nvm
	logger   v1.Logger
	policy   v1.UninstallPolicy
	jobs     int
	timeout  time.Duration
	progress func(v1.UninstallOutcome)
}

func NewUninstaller(cfg *v1.Config, opts ...UninstallerOptions) *Uninstaller {
	u := &Uninstaller{
		nvm:    NewNvm(cfg),
		logger: cfg.Logger,
		policy: v1.SequentialPolicy,
		jobs:   constants.DefaultJobs,
	}
	for _, o := range opts {
		o(u)
	}
	if u.jobs < 1 {
		u.jobs = 1
	}
	return u
}

// UninstallAll runs 'nvm uninstall' for every version and reports one
// outcome per version, in the same order as versions. A failed uninstall
// never stops the remaining ones and nothing is retried.
func (u Uninstaller) UninstallAll(ctx context.Context, versions []string) v1.UninstallReport {
	outcomes := make([]v1.UninstallOutcome, len(versions))

	switch u.policy {
	case v1.ParallelPolicy:
		var g errgroup.Group
		g.SetLimit(u.jobs)
		for i, version := range versions {
			i, version := i, version
			g.Go(func() error {
				outcomes[i] = u.uninstall(ctx, version)
				return nil
			})
		}
		_ = g.Wait()
	default:
		for i, version := range versions {
			outcomes[i] = u.uninstall(ctx, version)
		}
	}

	return v1.UninstallReport{Outcomes: outcomes}
}

func (u Uninstaller) uninstall(ctx context.Context, version string) v1.UninstallOutcome {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	u.logger.Infof("Removing %s...", version)
	outcome := v1.UninstallOutcome{Version: version, Status: v1.Succeeded}
	if _, _, err := u.nvm.Run(ctx, constants.UninstallCmd, version); err != nil {
		outcome.Status = v1.Failed
		outcome.Detail = failureDetail(err)
		u.logger.Warnf("Failed removing %s: %s", version, outcome.Detail)
	} else {
		u.logger.Infof("Removed %s", version)
	}

	if u.progress != nil {
		u.progress(outcome)
	}
	return outcome
}

// failureDetail prefers what nvm printed on stderr over the generic error
func failureDetail(err error) string {
	if procErr, ok := err.(*v1.ExternalProcessError); ok {
		if detail := strings.TrimSpace(procErr.Stderr); detail != "" {
			return detail
		}
	}
	return err.Error()
}
