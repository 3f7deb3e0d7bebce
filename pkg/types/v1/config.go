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

package v1

import (
	"fmt"
	"time"
)

// Config is the runtime configuration shared by all actions. Env is the
// already sanitized environment handed to every nvm invocation.
type Config struct {
	Logger Logger
	Fs     FS
	Runner Runner
	NvmDir string   `yaml:"nvm-dir,omitempty" mapstructure:"nvm-dir"`
	NvmBin string   `yaml:"nvm-bin,omitempty" mapstructure:"nvm-bin"`
	Shell  string   `yaml:"shell,omitempty" mapstructure:"shell"`
	Env    []string `yaml:"-" mapstructure:"-"`
}

type UninstallPolicy string

const (
	SequentialPolicy UninstallPolicy = "sequential"
	ParallelPolicy   UninstallPolicy = "parallel"
)

const (
	TextOutput = "text"
	YAMLOutput = "yaml"
)

// PruneSpec describes a single list or prune run
type PruneSpec struct {
	Policy      UninstallPolicy `yaml:"policy,omitempty" mapstructure:"policy"`
	Jobs        int             `yaml:"jobs,omitempty" mapstructure:"jobs"`
	Timeout     time.Duration   `yaml:"timeout,omitempty" mapstructure:"timeout"`
	DryRun      bool            `yaml:"dry-run,omitempty" mapstructure:"dry-run"`
	AssumeYes   bool            `yaml:"yes,omitempty" mapstructure:"yes"`
	MeasureSize bool            `yaml:"size,omitempty" mapstructure:"size"`
	Output      string          `yaml:"output,omitempty" mapstructure:"output"`
}

// Sanitize checks the spec values and fills in defaults
func (s *PruneSpec) Sanitize() error {
	switch s.Policy {
	case "":
		s.Policy = SequentialPolicy
	case SequentialPolicy, ParallelPolicy:
	default:
		return fmt.Errorf("unknown uninstall policy '%s'", s.Policy)
	}
	if s.Jobs < 1 {
		s.Jobs = 1
	}
	if s.Timeout < 0 {
		return fmt.Errorf("invalid negative timeout %s", s.Timeout)
	}
	switch s.Output {
	case "":
		s.Output = TextOutput
	case TextOutput, YAMLOutput:
	default:
		return fmt.Errorf("unknown output format '%s'", s.Output)
	}
	return nil
}

// ConfigurationError reports a required setting that could not be resolved
type ConfigurationError struct {
	Key  string
	Hint string
}

func (e *ConfigurationError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("required setting '%s' is not set", e.Key)
	}
	return fmt.Sprintf("required setting '%s' is not set: %s", e.Key, e.Hint)
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(question string) (bool, error)
}
