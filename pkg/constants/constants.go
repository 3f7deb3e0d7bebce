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

package constants

const (
	// NvmDirEnv is the variable nvm itself uses to locate its installation root
	NvmDirEnv = "NVM_DIR"
	// NodeVersionsDir is where nvm installs node versions, relative to NVM_DIR
	NodeVersionsDir = "versions/node"
	// NvmScript is the nvm entry point sourced by the shell shim, relative to NVM_DIR
	NvmScript = "nvm.sh"

	UninstallCmd = "uninstall"
	DefaultShell = "bash"
	ShimName     = "nvm-prune"
	EnvPrefix    = "NVM_PRUNE"
	ConfigFile   = "config.yaml"
	DefaultJobs  = 4
	SizeJobs     = 8
	UnknownSize  = "unknown size"
)

// ReservedEnvPrefixes lists the upper cased variable prefixes owned by nvm and
// npm. They are stripped from the environment passed to nvm.
var ReservedEnvPrefixes = []string{"NVM_", "NPM_"}

// GetDefaultConfigDirs returns the directories searched for config.yaml when
// no --config-dir is given, in increasing precedence order.
func GetDefaultConfigDirs(home string) []string {
	dirs := []string{"/etc/nvm-prune"}
	if home != "" {
		dirs = append(dirs, home+"/.config/nvm-prune")
	}
	return dirs
}

// NvmShimScript sources nvm without activating any version and forwards the
// positional arguments to the nvm shell function.
func NvmShimScript() string {
	return `. "$` + NvmDirEnv + `/` + NvmScript + `" --no-use && nvm "$@"`
}
