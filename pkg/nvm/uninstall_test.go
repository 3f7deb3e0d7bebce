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

package nvm_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sanity-io/litter"
	"github.com/twpayne/go-vfs/vfst"

	"github.com/rancher-sandbox/nvm-prune/pkg/config"
	"github.com/rancher-sandbox/nvm-prune/pkg/mocks"
	"github.com/rancher-sandbox/nvm-prune/pkg/nvm"
	v1 "github.com/rancher-sandbox/nvm-prune/pkg/types/v1"
)

var _ = Describe("Uninstaller", Label("uninstall"), func() {
	var cfg *v1.Config
	var runner *mocks.FakeRunner
	var fs *vfst.TestFS
	var cleanup func()
	var err error

	failFor := func(failing ...string) func(string, ...string) ([]byte, error) {
		return func(_ string, args ...string) ([]byte, error) {
			version := args[len(args)-1]
			for _, f := range failing {
				if f == version {
					return nil, fmt.Errorf("nvm: cannot uninstall %s", version)
				}
			}
			return []byte("Uninstalled node " + version), nil
		}
	}

	BeforeEach(func() {
		runner = mocks.NewFakeRunner()
		fs, cleanup, err = vfst.NewTestFS(map[string]interface{}{
			"/nvm/nvm.sh": "nvm() { :; }",
		})
		Expect(err).ShouldNot(HaveOccurred())
		cfg = config.NewConfig(
			config.WithFs(fs),
			config.WithLogger(v1.NewNullLogger()),
			config.WithRunner(runner),
			config.WithNvmDir("/nvm"),
		)
	})
	AfterEach(func() {
		cleanup()
	})

	Describe("sequential policy", func() {
		It("reports a partial failure without stopping", func() {
			runner.SideEffect = failFor("16.0.0")
			report := nvm.NewUninstaller(cfg).UninstallAll(context.Background(), []string{"18.0.0", "16.0.0"})
			Expect(report.Outcomes).To(HaveLen(2))
			Expect(report.Outcomes[0]).To(Equal(v1.UninstallOutcome{Version: "18.0.0", Status: v1.Succeeded}))
			Expect(report.Outcomes[1].Version).To(Equal("16.0.0"))
			Expect(report.Outcomes[1].Status).To(Equal(v1.Failed))
			Expect(report.Outcomes[1].Detail).To(Equal("nvm: cannot uninstall 16.0.0"))
			Expect(report.AllSucceeded()).To(BeFalse())
		})
		It("runs nvm uninstall once per version, in order", func() {
			versions := []string{"v18.0.0", "v16.0.0", "v14.1.0"}
			report := nvm.NewUninstaller(cfg).UninstallAll(context.Background(), versions)
			Expect(report.AllSucceeded()).To(BeTrue())
			cmds := runner.GetCmds()
			Expect(cmds).To(HaveLen(3))
			for i, cmd := range cmds {
				Expect(cmd[len(cmd)-2:]).To(Equal([]string{"uninstall", versions[i]}))
			}
		})
		It("carries on after the first failure", func() {
			runner.SideEffect = failFor("v18.0.0", "v16.0.0")
			report := nvm.NewUninstaller(cfg).UninstallAll(context.Background(), []string{"v18.0.0", "v16.0.0", "v14.1.0"})
			Expect(runner.GetCmds()).To(HaveLen(3))
			Expect(report.Failed()).To(HaveLen(2))
			Expect(report.Outcomes[2].Status).To(Equal(v1.Succeeded))
		})
		It("reports nothing for nothing", func() {
			report := nvm.NewUninstaller(cfg).UninstallAll(context.Background(), nil)
			Expect(report.Outcomes).To(BeEmpty())
			Expect(report.AllSucceeded()).To(BeTrue())
			Expect(runner.GetCmds()).To(BeEmpty())
		})
	})

	Describe("parallel policy", func() {
		It("yields one outcome per version whatever fails", func() {
			var versions, failing []string
			for i := 0; i < 20; i++ {
				v := fmt.Sprintf("v%d.0.0", i)
				versions = append(versions, v)
				if i%3 == 0 {
					failing = append(failing, v)
				}
			}
			runner.SideEffect = failFor(failing...)
			report := nvm.NewUninstaller(cfg, nvm.WithPolicy(v1.ParallelPolicy), nvm.WithJobs(4)).
				UninstallAll(context.Background(), versions)
			Expect(report.Outcomes).To(HaveLen(len(versions)), litter.Sdump(report))
			Expect(report.Failed()).To(HaveLen(len(failing)))
			for i, o := range report.Outcomes {
				Expect(o.Version).To(Equal(versions[i]))
			}
			Expect(runner.GetCmds()).To(HaveLen(len(versions)))
		})
		It("calls the progress callback for every version", func() {
			var mu sync.Mutex
			seen := map[string]v1.OutcomeStatus{}
			runner.SideEffect = failFor("v16.0.0")
			report := nvm.NewUninstaller(cfg,
				nvm.WithPolicy(v1.ParallelPolicy),
				nvm.WithProgress(func(o v1.UninstallOutcome) {
					mu.Lock()
					defer mu.Unlock()
					seen[o.Version] = o.Status
				}),
			).UninstallAll(context.Background(), []string{"v18.0.0", "v16.0.0"})
			Expect(report.AllSucceeded()).To(BeFalse())
			Expect(seen).To(Equal(map[string]v1.OutcomeStatus{"v18.0.0": v1.Succeeded, "v16.0.0": v1.Failed}))
		})
	})

	Describe("cancellation", func() {
		It("marks every version failed once the context is done", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			report := nvm.NewUninstaller(cfg).UninstallAll(ctx, []string{"v18.0.0", "v16.0.0"})
			Expect(report.Outcomes).To(HaveLen(2))
			Expect(report.Failed()).To(HaveLen(2))
		})
	})

	Describe("timeouts", Label("slow"), func() {
		var tmpDir string

		BeforeEach(func() {
			tmpDir, err = os.MkdirTemp("", "nvm-prune")
			Expect(err).ToNot(HaveOccurred())
			DeferCleanup(os.RemoveAll, tmpDir)

			script := filepath.Join(tmpDir, "nvm")
			Expect(os.WriteFile(script, []byte("#!/bin/sh\ncase \"$2\" in v16*) exec sleep 5;; esac\necho removed \"$2\"\n"), 0o755)).To(Succeed())

			cfg.Runner = &v1.RealRunner{Logger: cfg.Logger}
			cfg.NvmBin = script
			cfg.Env = []string{"PATH=/usr/bin:/bin"}
		})
		It("fails only the version that timed out", func() {
			for _, policy := range []v1.UninstallPolicy{v1.SequentialPolicy, v1.ParallelPolicy} {
				start := time.Now()
				report := nvm.NewUninstaller(cfg, nvm.WithPolicy(policy), nvm.WithTimeout(200*time.Millisecond)).
					UninstallAll(context.Background(), []string{"v18.0.0", "v16.0.0", "v14.0.0"})
				Expect(time.Since(start)).To(BeNumerically("<", 4*time.Second))
				Expect(report.Outcomes).To(HaveLen(3), litter.Sdump(report))
				Expect(report.Outcomes[0].Status).To(Equal(v1.Succeeded))
				Expect(report.Outcomes[1].Status).To(Equal(v1.Failed))
				Expect(report.Outcomes[1].Detail).To(HavePrefix("timed out"))
				Expect(report.Outcomes[2].Status).To(Equal(v1.Succeeded))
			}
		})
	})

	It("reports a missing nvm installation as a failure of each version", func() {
		cfg.NvmDir = "/missing"
		report := nvm.NewUninstaller(cfg).UninstallAll(context.Background(), []string{"v18.0.0"})
		Expect(report.Outcomes).To(HaveLen(1))
		Expect(report.Outcomes[0].Status).To(Equal(v1.Failed))
		Expect(report.Outcomes[0].Detail).To(ContainSubstring("nvm.sh not found"))
		Expect(report.Err()).To(HaveOccurred())
	})
})
