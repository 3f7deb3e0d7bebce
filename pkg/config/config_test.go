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

package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/twpayne/go-vfs"
	"github.com/twpayne/go-vfs/vfst"

	"github.com/rancher-sandbox/nvm-prune/pkg/config"
	"github.com/rancher-sandbox/nvm-prune/pkg/constants"
	"github.com/rancher-sandbox/nvm-prune/pkg/mocks"
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
)

var _ = Describe("Config", Label("config"), func() {
	Describe("ConfigOptions", func() {
		It("Sets the proper interfaces in the config struct", func() {
			fs, cleanup, err := vfst.NewTestFS(map[string]interface{}{})
			Expect(err).ShouldNot(HaveOccurred())
			defer cleanup()
			runner := mocks.NewFakeRunner()
			logger := v1.NewNullLogger()
			c := config.NewConfig(
				config.WithFs(fs),
				config.WithRunner(runner),
				config.WithLogger(logger),
				config.WithNvmDir("/home/user/.nvm"),
				config.WithNvmBin("/usr/local/bin/nvm"),
				config.WithShell("zsh"),
			)
			Expect(c.Fs).To(Equal(fs))
			Expect(c.Runner).To(Equal(runner))
			Expect(c.Logger).To(Equal(logger))
			Expect(c.NvmDir).To(Equal("/home/user/.nvm"))
			Expect(c.NvmBin).To(Equal("/usr/local/bin/nvm"))
			Expect(c.Shell).To(Equal("zsh"))
			// runner got the config logger
			Expect(runner.GetLogger()).To(Equal(logger))
		})
		It("uses the real implementations by default", func() {
			c := config.NewConfig()
			Expect(c.Fs).To(Equal(vfs.OSFS))
			Expect(c.Shell).To(Equal(constants.DefaultShell))
			_, ok := c.Runner.(*v1.RealRunner)
			Expect(ok).To(BeTrue())
			Expect(c.Runner.GetLogger()).To(Equal(c.Logger))
		})
	})
	Describe("Environment", Label("env"), func() {
		environ := []string{
			"PATH=/usr/bin:/bin",
			"HOME=/home/user",
			"NVM_DIR=/stale/nvm",
			"NVM_BIN=/stale/nvm/versions/node/v16.0.0/bin",
			"npm_config_prefix=/tmp/prefix",
			"npm_lifecycle_event=prune",
		}
		It("sanitizes the environment regardless of the options order", func() {
			c := config.NewConfig(
				config.WithLogger(v1.NewNullLogger()),
				config.WithEnv(environ, map[string]string{"NVM_NODEJS_ORG_MIRROR": "https://mirror.example"}),
				config.WithNvmDir("/home/user/.nvm"),
			)
			Expect(c.Env).To(Equal([]string{
				"HOME=/home/user",
				"NVM_DIR=/home/user/.nvm",
				"NVM_NODEJS_ORG_MIRROR=https://mirror.example",
				"PATH=/usr/bin:/bin",
			}))
		})
		It("always defines NVM_DIR", func() {
			c := config.NewConfig(config.WithLogger(v1.NewNullLogger()), config.WithNvmDir("/opt/nvm"))
			Expect(c.Env).To(Equal([]string{"NVM_DIR=/opt/nvm"}))
		})
	})
	Describe("PruneSpec", func() {
		It("has sane defaults", func() {
			spec := config.NewPruneSpec()
			Expect(spec.Policy).To(Equal(v1.SequentialPolicy))
			Expect(spec.Jobs).To(Equal(constants.DefaultJobs))
			Expect(spec.MeasureSize).To(BeTrue())
			Expect(spec.Sanitize()).To(Succeed())
		})
	})
})
