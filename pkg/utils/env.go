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

package utils

import (
	"sort"
	"strings"

	"github.com/rancher-sandbox/nvm-prune/pkg/constants"
)

// SanitizeEnv builds the environment for nvm invocations out of env, a list of
// KEY=VALUE pairs. Variables reserved by nvm or npm are dropped, overrides are
// applied and NVM_DIR is always set to nvmDir, whatever env or overrides say.
// The result is sorted by key.
func SanitizeEnv(env []string, overrides map[string]string, nvmDir string) []string {
	vars := EnvToMap(env)
	for k := range vars {
		if isReserved(k) {
			delete(vars, k)
		}
	}
	for k, v := range overrides {
		if k == constants.NvmDirEnv {
			continue
		}
		vars[k] = v
	}
	vars[constants.NvmDirEnv] = nvmDir

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+vars[k])
	}
	return result
}

// EnvToMap converts KEY=VALUE pairs into a map. Later duplicates win, entries
// without '=' are ignored.
func EnvToMap(env []string) map[string]string {
	vars := make(map[string]string, len(env))
	for _, kv := range env {
		k, v, found := strings.Cut(kv, "=")
		if !found || k == "" {
			continue
		}
		vars[k] = v
	}
	return vars
}

func isReserved(key string) bool {
	upper := strings.ToUpper(key)
	for _, prefix := range constants.ReservedEnvPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

// SetEnv returns a copy of env with key set to value, replacing any previous
// definition of key in place or appending it otherwise.
func SetEnv(env []string, key, value string) []string {
	result := make([]string, 0, len(env)+1)
	found := false
	for _, kv := range env {
		k, _, _ := strings.Cut(kv, "=")
		if k != key {
			result = append(result, kv)
			continue
		}
		if !found {
			result = append(result, key+"="+value)
			found = true
		}
	}
	if !found {
		result = append(result, key+"="+value)
	}
	return result
}
