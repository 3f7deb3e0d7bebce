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
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner spawns external processes with an explicit environment
type Runner interface {
	Run(ctx context.Context, env []string, command string, args ...string) (stdout []byte, stderr []byte, err error)
	GetLogger() Logger
	SetLogger(logger Logger)
}

// ExternalProcessError is returned when an external command exits with a
// non-zero status or could not be started at all. ExitCode is -1 when the
// process never ran to completion.
type ExternalProcessError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalProcessError) Error() string {
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	if e.ExitCode < 0 {
		return fmt.Sprintf("'%s' failed: %s", e.Command, detail)
	}
	if detail == "" {
		return fmt.Sprintf("'%s' exited with code %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("'%s' exited with code %d: %s", e.Command, e.ExitCode, detail)
}

func (e *ExternalProcessError) Unwrap() error {
	return e.Err
}

const waitDelay = 2 * time.Second

type RealRunner struct {
	Logger Logger
}

func (r RealRunner) Run(ctx context.Context, env []string, command string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer

	cmdLine := strings.TrimSpace(strings.Join(append([]string{command}, args...), " "))
	if r.Logger != nil {
		r.Logger.Debugf("Running cmd: '%s'", cmdLine)
	}

	cmd := exec.CommandContext(ctx, command, args...)
	// A nil Env would inherit the whole process environment
	cmd.Env = append([]string{}, env...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// children of a killed shell may keep the output pipes open
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), stderr.Bytes(), nil
	}

	procErr := &ExternalProcessError{
		Command:  cmdLine,
		ExitCode: -1,
		Stderr:   stderr.String(),
		Err:      err,
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		procErr.Err = fmt.Errorf("%w: %s", ctxErr, err.Error())
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			procErr.Stderr = "timed out"
			if detail := strings.TrimSpace(stderr.String()); detail != "" {
				procErr.Stderr = fmt.Sprintf("timed out: %s", detail)
			}
		}
		return stdout.Bytes(), stderr.Bytes(), procErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		procErr.ExitCode = exitErr.ExitCode()
	}
	return stdout.Bytes(), stderr.Bytes(), procErr
}

func (r RealRunner) GetLogger() Logger {
	return r.Logger
}

func (r *RealRunner) SetLogger(logger Logger) {
	r.Logger = logger
}
