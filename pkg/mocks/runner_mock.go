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

package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
)

// FakeRunner records every command it is asked to run. It is safe for
// concurrent use.
type FakeRunner struct {
	mu          sync.Mutex
	cmds        [][]string
	envs        [][]string
	ReturnValue []byte
	SideEffect  func(command string, args ...string) ([]byte, error)
	ReturnError error
	Logger      v1.Logger
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{cmds: [][]string{}, ReturnValue: []byte{}}
}

// Run returns ReturnValue and ReturnError unless SideEffect is set. Errors
// which are not already an ExternalProcessError are wrapped into one, the
// error text becoming the captured stderr.
func (r *FakeRunner) Run(ctx context.Context, env []string, command string, args ...string) ([]byte, []byte, error) {
	r.debug(fmt.Sprintf("Running cmd: '%s %s'", command, strings.Join(args, " ")))

	r.mu.Lock()
	r.cmds = append(r.cmds, append([]string{command}, args...))
	r.envs = append(r.envs, append([]string{}, env...))
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, nil, &v1.ExternalProcessError{Command: command, ExitCode: -1, Stderr: "timed out", Err: err}
	}

	out, err := r.ReturnValue, r.ReturnError
	if r.SideEffect != nil {
		out, err = r.SideEffect(command, args...)
	}
	if err == nil {
		return out, nil, nil
	}

	r.error(fmt.Sprintf("Error running command: %s", err.Error()))
	procErr, ok := err.(*v1.ExternalProcessError)
	if !ok {
		procErr = &v1.ExternalProcessError{Command: command, ExitCode: 1, Stderr: err.Error(), Err: err}
	}
	return out, []byte(procErr.Stderr), procErr
}

func (r *FakeRunner) ClearCmds() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = [][]string{}
	r.envs = [][]string{}
}

// CmdsMatch matches the commands list in order. Note HasPrefix is being used to evaluate the
// match, so expecting initial part of the command is enough to get a match.
func (r *FakeRunner) CmdsMatch(cmdList [][]string) error {
	cmds := r.GetCmds()
	if len(cmdList) != len(cmds) {
		return fmt.Errorf("number of calls mismatch, expected %d calls but got %d", len(cmdList), len(cmds))
	}
	for i, cmd := range cmdList {
		expect := strings.Join(cmd[:], " ")
		got := strings.Join(cmds[i][:], " ")
		if !strings.HasPrefix(got, expect) {
			return fmt.Errorf("Expected command: '%s.*' got: '%s'", expect, got)
		}
	}
	return nil
}

// IncludesCmds checks the given commands were executed in any order.
// Note it uses HasPrefix to match commands, see CmdsMatch.
func (r *FakeRunner) IncludesCmds(cmdList [][]string) error {
	cmds := r.GetCmds()
	for _, cmd := range cmdList {
		expect := strings.Join(cmd[:], " ")
		found := false
		for _, rcmd := range cmds {
			got := strings.Join(rcmd[:], " ")
			if strings.HasPrefix(got, expect) {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("command '%s.*' not found", expect)
		}
	}
	return nil
}

// GetCmds returns the list of commands recorded by this FakeRunner instance
// this is helpful to debug tests
func (r *FakeRunner) GetCmds() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string{}, r.cmds...)
}

// GetEnvs returns the environment passed on each recorded command
func (r *FakeRunner) GetEnvs() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string{}, r.envs...)
}

func (r *FakeRunner) GetLogger() v1.Logger {
	return r.Logger
}

func (r *FakeRunner) SetLogger(logger v1.Logger) {
	r.Logger = logger
}

func (r *FakeRunner) error(msg string) {
	if r.Logger != nil {
		r.Logger.Error(msg)
	}
}

func (r *FakeRunner) debug(msg string) {
	if r.Logger != nil {
		r.Logger.Debug(msg)
	}
}
