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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rancher-sandbox/nvm-prune/pkg/constants"
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
	"github.com/rancher-sandbox/nvm-prune/pkg/utils"
)

// Nvm runs nvm subcommands. nvm is a shell function, so unless an nvm
// executable is configured it is reached through a shell sourcing
// $NVM_DIR/nvm.sh.
type Nvm struct {
	cfg *v1.Config
}

func NewNvm(cfg *v1.Config) *Nvm {
	return &Nvm{cfg: cfg}
}

// Command returns the argument vector used to run nvm with the given
// subcommand and arguments.
func (n Nvm) Command(subcommand string, args ...string) []string {
	nvmArgs := append([]string{subcommand}, args...)
	if n.cfg.NvmBin != "" {
		return append([]string{n.cfg.NvmBin}, nvmArgs...)
	}
	shell := n.cfg.Shell
	if shell == "" {
		shell = constants.DefaultShell
	}
	return append([]string{shell, "-c", constants.NvmShimScript(), constants.ShimName}, nvmArgs...)
}

// Run executes nvm and returns its output. Any failure is an *v1.ExternalProcessError.
func (n Nvm) Run(ctx context.Context, subcommand string, args ...string) (stdout []byte, stderr []byte, err error) {
	cmdLine := strings.Join(append([]string{"nvm", subcommand}, args...), " ")

	if n.cfg.NvmBin == "" {
		script := filepath.Join(n.cfg.NvmDir, constants.NvmScript)
		if ok, _ := utils.Exists(n.cfg.Fs, script); !ok {
			return nil, nil, &v1.ExternalProcessError{
				Command:  cmdLine,
				ExitCode: -1,
				Err:      fmt.Errorf("%s not found, is nvm installed in %s?", script, n.cfg.NvmDir),
			}
		}
	}

	command := n.Command(subcommand, args...)
	stdout, stderr, err = n.cfg.Runner.Run(ctx, n.cfg.Env, command[0], command[1:]...)
	if err == nil {
		return stdout, stderr, nil
	}
	procErr := v1.ExternalProcessError{ExitCode: -1, Stderr: string(stderr), Err: err}
	if pErr, ok := err.(*v1.ExternalProcessError); ok {
		procErr = *pErr
	}
	// report the nvm call rather than the shim internals
	procErr.Command = cmdLine
	return stdout, stderr, &procErr
}
