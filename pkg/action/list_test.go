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

package action_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/twpayne/go-vfs/vfst"
	"gopkg.in/yaml.v3"

	"github.com/rancher-sandbox/nvm-prune/pkg/action"
	"github.com/rancher-sandbox/nvm-prune/pkg/config"
	pruneError "github.com/rancher-sandbox/nvm-prune/pkg/error"
	"github.com/rancher-sandbox/nvm-prune/pkg/mocks"
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
)

var _ = Describe("List action", Label("list", "action"), func() {
	var cfg *v1.Config
	var spec *v1.PruneSpec
	var runner *mocks.FakeRunner
	var fs *vfst.TestFS
	var cleanup func()
	var out *bytes.Buffer
	var err error

	BeforeEach(func() {
		runner = mocks.NewFakeRunner()
		out = &bytes.Buffer{}
		fs, cleanup, err = vfst.NewTestFS(map[string]interface{}{
			"/nvm/versions/node/v22.1.0/bin/node": "123",
			"/nvm/versions/node/v22.0.0/bin/node": "1",
			"/nvm/versions/node/latest/bin/node":  "x",
			"/nvm/versions/node/v20.3.1/bin/node": "12",
		})
		Expect(err).ShouldNot(HaveOccurred())
		cfg = config.NewConfig(
			config.WithFs(fs),
			config.WithLogger(v1.NewNullLogger()),
			config.WithRunner(runner),
			config.WithNvmDir("/nvm"),
		)
		spec = config.NewPruneSpec()
	})
	AfterEach(func() {
		cleanup()
	})

	It("lists every parsed version with its status", func() {
		Expect(action.NewListAction(cfg, spec, action.WithListOutput(out)).Run()).To(Succeed())
		lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
		Expect(lines).To(HaveLen(4), out.String())
		Expect(string(lines[0])).To(MatchRegexp(`^VERSION\s+STATUS\s+SIZE\s+PATH$`))
		Expect(string(lines[1])).To(MatchRegexp(`^v22\.1\.0\s+kept\s+3B\s+/nvm/versions/node/v22\.1\.0$`))
		Expect(string(lines[2])).To(MatchRegexp(`^v22\.0\.0\s+stale\s+1B\s+/nvm/versions/node/v22\.0\.0$`))
		Expect(string(lines[3])).To(MatchRegexp(`^v20\.3\.1\s+kept\s+2B\s+/nvm/versions/node/v20\.3\.1$`))
		Expect(out.String()).ToNot(ContainSubstring("latest"))
		Expect(runner.GetCmds()).To(BeEmpty())
	})
	It("omits sizes when measuring is disabled", func() {
		spec.MeasureSize = false
		Expect(action.NewListAction(cfg, spec, action.WithListOutput(out)).Run()).To(Succeed())
		Expect(out.String()).To(MatchRegexp(`v22\.0\.0\s+stale\s+-\s+/nvm`))
	})
	It("renders yaml", func() {
		spec.Output = v1.YAMLOutput
		Expect(action.NewListAction(cfg, spec, action.WithListOutput(out)).Run()).To(Succeed())

		var result struct {
			Versions []struct {
				Version string `yaml:"version"`
				Status  string `yaml:"status"`
				Keeping string `yaml:"keeping"`
				Size    uint64 `yaml:"size"`
			} `yaml:"versions"`
		}
		Expect(yaml.Unmarshal(out.Bytes(), &result)).To(Succeed(), out.String())
		Expect(result.Versions).To(HaveLen(3))
		Expect(result.Versions[1].Version).To(Equal("v22.0.0"))
		Expect(result.Versions[1].Status).To(Equal("stale"))
		Expect(result.Versions[1].Keeping).To(Equal("v22.1.0"))
		Expect(result.Versions[1].Size).To(Equal(uint64(1)))
	})
	It("reports an empty installation", func() {
		fs, cleanup2, err := vfst.NewTestFS(map[string]interface{}{
			"/nvm/versions/node": &vfst.Dir{Perm: 0o755},
		})
		Expect(err).ToNot(HaveOccurred())
		defer cleanup2()
		cfg.Fs = fs
		Expect(action.NewListAction(cfg, spec, action.WithListOutput(out)).Run()).To(Succeed())
		Expect(out.String()).To(Equal("No Node.js versions installed.\n"))
	})
	It("fails with the ScanVersions exit code on a missing versions dir", func() {
		cfg.NvmDir = "/missing"
		err := action.NewListAction(cfg, spec, action.WithListOutput(out)).Run()
		Expect(err).To(HaveOccurred())
		Expect(pruneError.ExitCode(err)).To(Equal(pruneError.ScanVersions))
	})
})
