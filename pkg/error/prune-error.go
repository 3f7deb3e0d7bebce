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

package error

import "errors"

// PruneError is our custom error to pass around exit codes in the error
type PruneError struct {
	err  error
	code int
}

func (e *PruneError) Error() string {
	return e.err.Error()
}

func (e *PruneError) ExitCode() int {
	return e.code
}

func (e *PruneError) Unwrap() error {
	return e.err
}

// NewFromError generates a PruneError from an existing error,
// keeping it reachable through errors.Is and errors.As
func NewFromError(err error, code int) error {
	if err == nil {
		return nil
	}
	return &PruneError{err: err, code: code}
}

// New generates a PruneError from a string
func New(err string, code int) error {
	return &PruneError{err: errors.New(err), code: code}
}

// ExitCode returns the exit code carried by err, Unknown if there is none
// and 0 for a nil error
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var pErr *PruneError
	if errors.As(err, &pErr) {
		return pErr.ExitCode()
	}
	return Unknown
}
