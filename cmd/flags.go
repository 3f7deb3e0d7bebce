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

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/nvm-prune/pkg/constants"
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
)

// addNvmFlags adds flags related to how nvm is invoked
func addNvmFlags(cmd *cobra.Command) {
	cmd.Flags().String("nvm-bin", "", "Run this executable instead of sourcing $NVM_DIR/nvm.sh")
	cmd.Flags().String("shell", constants.DefaultShell, "Shell used to source nvm.sh")
	cmd.Flags().String("env-file", "", "Read extra environment variables for nvm from this file")
	cmd.Flags().StringToString("env", map[string]string{}, "Set extra environment variables for nvm (ex. --env NODE_OPTIONS=--no-warnings)")
}

// addListFlags adds flags shared between list and prune
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("size", true, "Measure the disk usage of every version")
	cmd.Flags().VarP(newEnumFlag([]string{v1.TextOutput, v1.YAMLOutput}, v1.TextOutput), "output", "o", "Output format")
}

// addPruneFlags adds flags controlling the removal
func addPruneFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().Bool("dry-run", false, "Only show what would be removed")
	cmd.Flags().Var(
		newEnumFlag([]string{string(v1.SequentialPolicy), string(v1.ParallelPolicy)}, string(v1.SequentialPolicy)),
		"policy", "Uninstall one version at a time or several at once",
	)
	cmd.Flags().IntP("jobs", "j", constants.DefaultJobs, "Maximum concurrent uninstalls with the parallel policy")
	cmd.Flags().Duration("timeout", 0, "Give up on a single uninstall after this long (0 means no limit)")
}

type enum struct {
	Allowed []string
	Value   string
}

// newEnum give a list of allowed flag parameters, where the second argument is the default
func newEnumFlag(allowed []string, d string) *enum {
	return &enum{
		Allowed: allowed,
		Value:   d,
	}
}

func (a enum) String() string {
	return a.Value
}

func (a *enum) Set(p string) error {
	for _, opt := range a.Allowed {
		if p == opt {
			a.Value = p
			return nil
		}
	}
	return fmt.Errorf("'%s' is not included in: %s", p, strings.Join(a.Allowed, ","))
}

func (a *enum) Type() string {
	return "string"
}
