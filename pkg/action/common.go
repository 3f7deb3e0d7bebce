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
	"io"

	units "github.com/docker/go-units"
	"gopkg.in/yaml.v3"

	"github.com/rancher-sandbox/nvm-prune/pkg/constants"
	pruneError "github.com/rancher-sandbox/nvm-prune/pkg/error"
	"github.com/rancher-sandbox/nvm-prune/pkg/nvm"
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
)

// scanAndPartition lists the installed node versions of cfg.NvmDir and splits
// them into kept and stale ones
func scanAndPartition(cfg *v1.Config, spec *v1.PruneSpec) ([]v1.InstalledVersion, v1.VersionPartition, error) {
	root := nvm.VersionsDir(cfg.NvmDir)
	cfg.Logger.Debugf("Analyzing installed versions of Node.js in %s", root)

	scanner := nvm.NewScanner(cfg, nvm.WithSizes(spec.MeasureSize))
	versions, err := scanner.Scan(root)
	if err != nil {
		cfg.Logger.Errorf("Failed to locate installed versions (is %s correct?): %s", constants.NvmDirEnv, err.Error())
		return nil, v1.VersionPartition{}, pruneError.NewFromError(err, pruneError.ScanVersions)
	}
	return versions, nvm.Partition(versions), nil
}

// humanSize formats a size in bytes, sizes which could not be measured are
// reported as unknown
func humanSize(size *uint64) string {
	if size == nil {
		return constants.UnknownSize
	}
	return units.HumanSize(float64(*size))
}

func totalSize(versions []v1.InstalledVersion) uint64 {
	var total uint64
	for _, iv := range versions {
		if iv.Size != nil {
			total += *iv.Size
		}
	}
	return total
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
