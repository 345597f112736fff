// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/filamentenespanol/sitegen/cmd/app"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("sitegen", func() {
	var (
		root string
		out  bytes.Buffer
	)

	run := func(args ...string) error {
		cmd := app.NewCommand(context.Background())
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(args)
		return cmd.Execute()
	}
	path := func(name string) string {
		return filepath.Join(root, filepath.FromSlash(name))
	}
	sources := func() []string {
		return []string{
			"--config", path("site.yaml"),
			"--docs-dir", path("docs"),
			"--pages-dir", path("pages"),
			"--static-dir", path("static"),
		}
	}

	BeforeEach(func() {
		out.Reset()
		root = filepath.Join(os.TempDir(), "sitegen-app-"+uuid.New().String())
		Expect(os.MkdirAll(path("docs"), os.ModePerm)).To(Succeed())
		Expect(os.WriteFile(path("docs/intro.md"), []byte("# Introducción\n\nHola.\n"), 0644)).To(Succeed())
		Expect(run("init", "--config", path("site.yaml"))).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(root)).To(Succeed())
		for _, env := range []string{app.OptionsFileEnv, "SITEGEN_DESTINATION"} {
			Expect(os.Unsetenv(env)).To(Succeed())
		}
	})

	Describe("init", func() {
		It("writes the canonical configuration", func() {
			b, err := os.ReadFile(path("site.yaml"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(ContainSubstring("title: Filament en español"))
		})
		It("does not overwrite an existing configuration", func() {
			err := run("init", "--config", path("site.yaml"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("already exists"))
		})
	})

	Describe("config", func() {
		It("prints the resolved configuration", func() {
			Expect(run(append([]string{"config"}, sources()...)...)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("title: Filament en español"))
			Expect(out.String()).NotTo(ContainSubstring("{{"))
		})
		It("only validates", func() {
			Expect(run(append([]string{"config", "--validate-only"}, sources()...)...)).To(Succeed())
			Expect(out.String()).NotTo(ContainSubstring("title:"))
		})
		It("fails on a missing configuration", func() {
			err := run("config", "--config", path("missing.yaml"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("not found"))
		})
		It("fails on unknown fields", func() {
			Expect(os.WriteFile(path("bad.yaml"), []byte("title: x\nunknown: y\n"), 0644)).To(Succeed())
			Expect(run("config", "--config", path("bad.yaml"))).To(HaveOccurred())
		})
	})

	Describe("build", func() {
		It("writes the site to the destination", func() {
			Expect(run(append(sources(), "--destination", path("build"))...)).To(Succeed())
			Expect(path("build/index.html")).To(BeARegularFile())
			Expect(path("build/docs/intro/index.html")).To(BeARegularFile())
			Expect(path("build/404.html")).To(BeARegularFile())
			Expect(path("build/assets/css/cookie.css")).To(BeARegularFile())
		})
		It("takes the destination from the environment", func() {
			Expect(os.Setenv("SITEGEN_DESTINATION", path("env-build"))).To(Succeed())
			Expect(run(sources()...)).To(Succeed())
			Expect(path("env-build/index.html")).To(BeARegularFile())
		})
		It("reads options from the options file", func() {
			options := "destination: " + path("opt-build") + "\ndocument-workers: 2\n"
			Expect(os.WriteFile(path("options.yaml"), []byte(options), 0644)).To(Succeed())
			Expect(os.Setenv(app.OptionsFileEnv, path("options.yaml"))).To(Succeed())
			Expect(run(sources()...)).To(Succeed())
			Expect(path("opt-build/index.html")).To(BeARegularFile())
		})
		It("rejects an empty options file variable", func() {
			Expect(os.Setenv(app.OptionsFileEnv, "")).To(Succeed())
			Expect(run(sources()...)).To(MatchError(ContainSubstring(app.OptionsFileEnv)))
		})
		It("prints the file tree on dry run", func() {
			Expect(run(append(sources(), "--destination", "site", "--dry-run")...)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("site\n  404.html\n"))
			Expect(out.String()).To(ContainSubstring("    intro\n      index.html\n"))
			Expect(out.String()).To(ContainSubstring("Build finished in"))
			Expect(path("site")).NotTo(BeADirectory())
		})
	})

	Describe("version", func() {
		It("prints the version", func() {
			Expect(run("version")).To(Succeed())
			Expect(out.String()).To(Equal("binary was not built properly\n"))
		})
	})
})
