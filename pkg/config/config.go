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

package config

import (
	"github.com/twpayne/go-vfs"

	"github.com/rancher-sandbox/nvm-prune/pkg/constants"
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
	"github.com/rancher-sandbox/nvm-prune/pkg/utils"
)

type GenericOptions func(a *v1.Config) error

func WithFs(fs v1.FS) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		r.Fs = fs
		return nil
	}
}

func WithLogger(logger v1.Logger) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		r.Logger = logger
		return nil
	}
}

func WithRunner(runner v1.Runner) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		r.Runner = runner
		return nil
	}
}

func WithNvmDir(dir string) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		r.NvmDir = dir
		return nil
	}
}

func WithNvmBin(bin string) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		r.NvmBin = bin
		return nil
	}
}

func WithShell(shell string) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		r.Shell = shell
		return nil
	}
}

// WithEnv sets the environment for nvm invocations from environ, usually
// os.Environ(), and the user provided overrides. See utils.SanitizeEnv.
func WithEnv(environ []string, overrides map[string]string) func(r *v1.Config) error {
	return func(r *v1.Config) error {
		r.Env = utils.SanitizeEnv(environ, overrides, r.NvmDir)
		return nil
	}
}

func NewConfig(opts ...GenericOptions) *v1.Config {
	log := v1.NewLogger()

	c := &v1.Config{
		Fs:     vfs.OSFS,
		Logger: log,
		Shell:  constants.DefaultShell,
	}
	for _, o := range opts {
		err := o(c)
		if err != nil {
			log.Errorf("error applying config option: %s", err.Error())
			return nil
		}
	}

	// delay runner creation after we have run over the options in case we use WithRunner
	if c.Runner == nil {
		c.Runner = &v1.RealRunner{Logger: c.Logger}
	}

	// Now check if the runner has a logger inside, otherwise point our logger into it
	// This can happen if we set the WithRunner option as that doesn't set a logger
	if c.Runner.GetLogger() == nil {
		c.Runner.SetLogger(c.Logger)
	}

	// NVM_DIR in the environment always matches the configured root, regardless
	// of the order WithEnv and WithNvmDir were given
	if c.Env == nil {
		c.Env = utils.SanitizeEnv(nil, nil, c.NvmDir)
	} else {
		c.Env = utils.SetEnv(c.Env, constants.NvmDirEnv, c.NvmDir)
	}

	return c
}

// NewPruneSpec returns a PruneSpec with the defaults applied
func NewPruneSpec() *v1.PruneSpec {
	return &v1.PruneSpec{
		Policy:      v1.SequentialPolicy,
		Jobs:        constants.DefaultJobs,
		MeasureSize: true,
		Output:      v1.TextOutput,
	}
}
