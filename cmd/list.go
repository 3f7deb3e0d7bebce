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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rancher-sandbox/nvm-prune/cmd/config"
	"github.com/rancher-sandbox/nvm-prune/pkg/action"
)

func NewListCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List installed Node.js versions and which ones are stale",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.ReadConfigRun(viper.GetString("config-dir"), cmd.Flags())
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true
			spec, err := config.ReadPruneSpec(cfg, cmd.Flags())
			if err != nil {
				cfg.Logger.Errorf("invalid list command setup %v", err)
				return err
			}

			return action.NewListAction(cfg, spec).Run()
		},
	}
	root.AddCommand(c)
	addListFlags(c)
	return c
}

// register the subcommand into rootCmd
var _ = NewListCmd(rootCmd)
