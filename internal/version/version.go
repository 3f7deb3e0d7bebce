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

package version

import (
	"runtime"
)

var (
	version   = "v0.0.0"
	gitCommit = ""
)

type BuildInfo struct {
	Version   string
	GitCommit string
	GoVersion string
}

// Get returns the build information, version and gitCommit are overridden
// at link time with -ldflags "-X .../internal/version.version=..."
func Get() BuildInfo {
	return BuildInfo{
		Version:   version,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
	}
}
