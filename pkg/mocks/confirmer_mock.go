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

import "errors"

// FakeConfirmer answers every question with Answer, or fails when
// ErrorOnConfirm is set
type FakeConfirmer struct {
	Answer         bool
	ErrorOnConfirm bool
	Questions      []string
}

func (c *FakeConfirmer) Confirm(question string) (bool, error) {
	c.Questions = append(c.Questions, question)
	if c.ErrorOnConfirm {
		return false, errors.New("confirm error")
	}
	return c.Answer, nil
}

func (c *FakeConfirmer) WasAsked() bool {
	return len(c.Questions) > 0
}
