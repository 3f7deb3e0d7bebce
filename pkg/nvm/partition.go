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
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
)

// Partition splits versions, which must be sorted newest first, into the
// newest version of each major and the stale ones. Versions of the same major
// are contiguous in such an ordering, so comparing each version with its
// predecessor is enough.
func Partition(ordered []v1.InstalledVersion) v1.VersionPartition {
	p := v1.VersionPartition{Kept: map[uint64]v1.InstalledVersion{}}
	for i, iv := range ordered {
		if i > 0 && ordered[i-1].Version.Major == iv.Version.Major {
			p.Stale = append(p.Stale, iv)
			continue
		}
		p.Kept[iv.Version.Major] = iv
	}
	return p
}
