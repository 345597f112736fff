// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package build_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/filamentenespanol/sitegen/pkg/build"
	"github.com/filamentenespanol/sitegen/pkg/components/consent"
	"github.com/filamentenespanol/sitegen/pkg/siteconfig"
	"github.com/filamentenespanol/sitegen/pkg/writers"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func writeTree(root string, files map[string]string) {
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		Expect(os.MkdirAll(filepath.Dir(p), os.ModePerm)).To(Succeed())
		Expect(os.WriteFile(p, []byte(content), 0644)).To(Succeed())
	}
}

func readFile(root, name string) string {
	b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	Expect(err).NotTo(HaveOccurred())
	return string(b)
}

var _ = Describe("Builder", func() {
	var (
		ctx     context.Context
		src     string
		dst     string
		cfg     siteconfig.Config
		options build.Options
		files   map[string]string
		site    *build.Site
		err     error
	)

	BeforeEach(func() {
		ctx = context.Background()
		src = filepath.Join(os.TempDir(), "sitegen-src-"+uuid.New().String())
		dst = filepath.Join(os.TempDir(), "sitegen-dst-"+uuid.New().String())
		cfg, err = siteconfig.Parse(siteconfig.DefaultTemplate(), map[string]string{"year": "2025"})
		Expect(err).NotTo(HaveOccurred())
		cfg.OnBrokenLinks = "throw"
		cfg.OnBrokenMarkdownLinks = "throw"
		options = build.Options{
			DocsDir:         filepath.Join(src, "docs"),
			PagesDir:        filepath.Join(src, "pages"),
			StaticDir:       filepath.Join(src, "static"),
			DocumentWorkers: 4,
			FailFast:        true,
		}
		files = map[string]string{
			"docs/intro.md":             "---\ntitle: Introducción\nsidebar_position: 1\ntranslated: true\n---\n\nLee sobre [tablas](tablas/columnas.md#uso).\n",
			"docs/tablas/columnas.md":   "---\nsidebar_position: 2\n---\n# Columnas\n\nVolver a la [introducción](../intro.md).\n",
			"pages/privacy.md":          "# Política de Privacidad\n\nUsamos cookies analíticas.\n",
			"static/img/favicon.svg":    "<svg/>",
			"static/img/traduccion.png": "png",
			"static/img/fix.png":        "png",
			"static/img/opensource.png": "png",
		}
	})

	JustBeforeEach(func() {
		writeTree(src, files)
		site, err = build.NewBuilder(cfg, options).Build(ctx)
	})

	AfterEach(func() {
		Expect(os.RemoveAll(src)).To(Succeed())
		Expect(os.RemoveAll(dst)).To(Succeed())
	})

	Describe("#Build", func() {
		It("builds home, docs, pages and search", func() {
			Expect(err).NotTo(HaveOccurred())
			var routes []string
			for _, p := range site.Pages {
				routes = append(routes, p.Route)
			}
			Expect(routes).To(Equal([]string{"/", "/docs/", "/docs/intro/", "/docs/tablas/columnas/", "/privacy/", "/search/"}))
			Expect(site.StaticFiles).To(ConsistOf("img/favicon.svg", "img/traduccion.png", "img/fix.png", "img/opensource.png"))
			Expect(site.Progress).To(Equal(25.0))
		})

		It("resolves markdown links to routes", func() {
			Expect(err).NotTo(HaveOccurred())
			p, ok := site.Page("/docs/intro/")
			Expect(ok).To(BeTrue())
			Expect(string(p.Body)).To(ContainSubstring(`href="/docs/tablas/columnas/#uso"`))
			Expect(p.EditURL).To(Equal("https://github.com/filamentenespanol/documentacion/tree/main/docs/intro.md"))
			Expect(p.Next.Href).To(Equal("/docs/tablas/columnas/"))
			Expect(p.Prev).To(BeNil())
		})

		It("redirects the docs root to the first doc", func() {
			Expect(err).NotTo(HaveOccurred())
			p, ok := site.Page("/docs/")
			Expect(ok).To(BeTrue())
			Expect(p.Redirect).To(Equal("/docs/intro/"))
		})

		It("looks pages up with or without trailing slash", func() {
			Expect(err).NotTo(HaveOccurred())
			_, ok := site.Page("/privacy")
			Expect(ok).To(BeTrue())
			_, ok = site.Page("/nada/")
			Expect(ok).To(BeFalse())
		})

		Context("with progress from docs", func() {
			BeforeEach(func() {
				options.ProgressFromDocs = true
			})
			It("uses the share of translated docs", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(site.Progress).To(Equal(50.0))
				home, _ := site.Page("/")
				Expect(string(home.Body)).To(ContainSubstring("<strong>50% completado</strong>"))
			})
		})

		Context("with progress from a third of the docs", func() {
			BeforeEach(func() {
				options.ProgressFromDocs = true
				files["docs/tablas/filas.md"] = "---\nsidebar_position: 3\n---\n# Filas\n"
			})
			It("rounds to one decimal", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(site.Progress).To(Equal(33.3))
				home, _ := site.Page("/")
				Expect(string(home.Body)).To(ContainSubstring("<strong>33.3% completado</strong>"))
			})
		})

		Context("with a page on the consent route", func() {
			BeforeEach(func() {
				files["pages/consent.md"] = "# Consentimiento\n"
			})
			It("fails", func() {
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("page consent.md uses the reserved route /consent/"))
			})
		})

		Context("with a custom progress value", func() {
			BeforeEach(func() {
				cfg.CustomFields["translationProgress"] = 37.5
			})
			It("shows the configured value", func() {
				Expect(err).NotTo(HaveOccurred())
				home, _ := site.Page("/")
				Expect(string(home.Body)).To(ContainSubstring("<strong>37.5% completado</strong>"))
			})
		})

		Context("with a broken markdown link", func() {
			BeforeEach(func() {
				files["docs/roto.md"] = "# Roto\n\n[falta](falta.md)\n"
			})
			It("fails when onBrokenMarkdownLinks is throw", func() {
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("falta.md"))
			})
			Context("and severity warn", func() {
				BeforeEach(func() {
					cfg.OnBrokenMarkdownLinks = "warn"
				})
				It("keeps the link", func() {
					Expect(err).NotTo(HaveOccurred())
					p, _ := site.Page("/docs/roto/")
					Expect(string(p.Body)).To(ContainSubstring(`href="falta.md"`))
				})
			})
		})

		Context("with an invalid configuration", func() {
			BeforeEach(func() {
				cfg.Title = ""
			})
			It("fails", func() {
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("title is required"))
			})
		})
	})

	Describe("#Write", func() {
		var writeErr error

		JustBeforeEach(func() {
			Expect(err).NotTo(HaveOccurred())
			writeErr = build.NewBuilder(cfg, options).Write(ctx, site, &writers.FSWriter{Root: dst})
		})

		It("writes the site", func() {
			Expect(writeErr).NotTo(HaveOccurred())
			index := readFile(dst, "index.html")
			Expect(index).To(ContainSubstring(`<section class="features">`))
			Expect(index).To(ContainSubstring("<strong>25% completado</strong>"))
			Expect(index).To(ContainSubstring(`class="cookie-container"`))
			Expect(strings.Count(index, `class="col col--4"`)).To(Equal(3))

			intro := readFile(dst, "docs/intro/index.html")
			Expect(intro).To(ContainSubstring("<title>Introducción | Filament en español</title>"))
			Expect(intro).To(ContainSubstring(`class="cookie-container"`))

			Expect(readFile(dst, "privacy/index.html")).To(ContainSubstring("Usamos cookies analíticas."))
			Expect(readFile(dst, "404.html")).To(ContainSubstring("Página no encontrada"))
			Expect(readFile(dst, "search/index.html")).To(ContainSubstring(`id="docsearch-page"`))
			Expect(readFile(dst, "assets/css/cookie.css")).To(ContainSubstring(".cookie-container"))
			Expect(readFile(dst, "assets/js/consent.js")).To(ContainSubstring("data-consent-cookie"))
			Expect(readFile(dst, "img/favicon.svg")).To(Equal("<svg/>"))
		})

		Context("with a dangling internal link", func() {
			BeforeEach(func() {
				files["docs/otro.md"] = "# Otro\n\n[ruta](/docs/no-existe/)\n"
			})
			It("fails when onBrokenLinks is throw", func() {
				Expect(writeErr).To(HaveOccurred())
				Expect(writeErr.Error()).To(ContainSubstring("broken link /docs/no-existe/ on page /docs/otro/"))
			})
		})

		Context("with an empty static file", func() {
			BeforeEach(func() {
				files["static/.nojekyll"] = ""
			})
			It("copies it", func() {
				Expect(writeErr).NotTo(HaveOccurred())
				Expect(readFile(dst, ".nojekyll")).To(BeEmpty())
			})
		})

		Context("with a missing static image and severity warn", func() {
			BeforeEach(func() {
				delete(files, "static/img/fix.png")
				cfg.OnBrokenLinks = "warn"
			})
			It("writes the site", func() {
				Expect(writeErr).NotTo(HaveOccurred())
			})
		})
	})

	Describe("dry run", func() {
		It("lists the written files", func() {
			Expect(err).NotTo(HaveOccurred())
			var out bytes.Buffer
			factory := writers.NewDryRunWritersFactory(&out)
			Expect(build.NewBuilder(cfg, options).Write(ctx, site, factory.GetWriter("build"))).To(Succeed())
			Expect(factory.Flush()).To(BeTrue())
			Expect(out.String()).To(HavePrefix("build\n  404.html\n  assets\n"))
			Expect(out.String()).To(ContainSubstring("    intro\n      index.html\n"))
			_, statErr := os.Stat(dst)
			Expect(os.IsNotExist(statErr)).To(BeTrue())
		})
	})

	Describe("rendering for a visitor", func() {
		It("omits the banner once consent is recorded", func() {
			Expect(err).NotTo(HaveOccurred())
			p, _ := site.Page("/")
			var b bytes.Buffer
			Expect(site.Render(&b, p, consent.Declined)).To(Succeed())
			Expect(b.String()).NotTo(ContainSubstring(`class="cookie-container"`))
			b.Reset()
			Expect(site.Render(&b, p, consent.Unknown)).To(Succeed())
			Expect(b.String()).To(ContainSubstring(`class="cookie-container"`))
		})
	})
})
