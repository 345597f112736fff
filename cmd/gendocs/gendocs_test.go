// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package gendocs_test

import (
	"os"
	"path/filepath"

	"github.com/filamentenespanol/sitegen/cmd/gendocs"
	"github.com/filamentenespanol/sitegen/pkg/docs"
	"github.com/filamentenespanol/sitegen/pkg/osfakes/osshim"
	"github.com/filamentenespanol/sitegen/pkg/writers"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func noop(*cobra.Command, []string) {}

var _ = Describe("gen-cmd-docs", func() {
	var (
		root *cobra.Command
		dir  string
	)

	BeforeEach(func() {
		dir = filepath.Join(os.TempDir(), "sitegen-cli-"+uuid.New().String())
		root = &cobra.Command{Use: "sitegen", Short: "Builds the site", Run: noop, DisableAutoGenTag: true}
		root.AddCommand(
			&cobra.Command{Use: "serve", Short: "Serves the site", Run: noop},
			&cobra.Command{Use: "config", Short: "Prints the configuration", Run: noop},
			&cobra.Command{Use: "secret", Hidden: true, Run: noop},
		)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("writes pages the docs collection orders and titles", func() {
		n, err := gendocs.Generate(root, &writers.FSWriter{Root: dir})
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(3))

		col, err := docs.Collect(&osshim.OsShim{}, dir, "/docs/cli/")
		Expect(err).NotTo(HaveOccurred())
		var routes, titles, labels []string
		for _, d := range col.Docs {
			routes = append(routes, d.Route)
			titles = append(titles, d.Title)
			labels = append(labels, d.SidebarLabel())
		}
		Expect(routes).To(Equal([]string{"/docs/cli/sitegen/", "/docs/cli/sitegen_config/", "/docs/cli/sitegen_serve/"}))
		Expect(titles).To(Equal([]string{"sitegen", "sitegen config", "sitegen serve"}))
		Expect(labels).To(Equal([]string{"sitegen", "config", "serve"}))
		Expect(col.Docs[1].FrontMatter.Description).To(Equal("Prints the configuration"))
	})

	It("links the pages to each other", func() {
		_, err := gendocs.Generate(root, &writers.FSWriter{Root: dir})
		Expect(err).NotTo(HaveOccurred())
		col, err := docs.Collect(&osshim.OsShim{}, dir, "/docs/cli/")
		Expect(err).NotTo(HaveOccurred())
		serve, ok := col.ByRoute("/docs/cli/sitegen_serve/")
		Expect(ok).To(BeTrue())
		resolved, handled, err := col.ResolveLink(serve, "sitegen.md")
		Expect(err).NotTo(HaveOccurred())
		Expect(handled).To(BeTrue())
		Expect(resolved).To(Equal("/docs/cli/sitegen/"))
		Expect(string(serve.Body)).To(ContainSubstring("(sitegen.md)"))
	})

	It("skips hidden commands", func() {
		_, err := gendocs.Generate(root, &writers.FSWriter{Root: dir})
		Expect(err).NotTo(HaveOccurred())
		_, statErr := os.Stat(filepath.Join(dir, "sitegen_secret.md"))
		Expect(os.IsNotExist(statErr)).To(BeTrue())
		Expect(gendocs.FileName(root.Commands()[0])).To(Equal("sitegen_config.md"))
	})
})
