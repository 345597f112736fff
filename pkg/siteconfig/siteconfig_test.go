// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package siteconfig_test

import (
	"errors"
	"os"

	"github.com/filamentenespanol/sitegen/pkg/osfakes/osshim/osshimfakes"
	"github.com/filamentenespanol/sitegen/pkg/siteconfig"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"k8s.io/utils/pointer"
)

var _ = Describe("Site configuration", func() {
	var (
		vars map[string]string
		cfg  siteconfig.Config
		err  error
	)

	BeforeEach(func() {
		vars = map[string]string{"year": "2031"}
	})

	JustBeforeEach(func() {
		cfg, err = siteconfig.Parse(siteconfig.DefaultTemplate(), vars)
	})

	Describe("#Parse", func() {
		It("parses the canonical configuration", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Title).To(Equal("Filament en español"))
			Expect(cfg.URL).To(Equal("https://docs.filamentenespanol.com/"))
			Expect(cfg.BaseURL).To(Equal("/"))
			Expect(cfg.OnBrokenLinks).To(Equal("warn"))
			Expect(cfg.I18n.DefaultLocale).To(Equal("es"))
			Expect(cfg.I18n.Locales).To(Equal([]string{"es"}))
			Expect(cfg.ThemeConfig.Prism).To(Equal(siteconfig.Prism{Theme: "github", DarkTheme: "dracula"}))
			Expect(cfg.Validate()).To(Succeed())
		})

		It("keeps the optional flags", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Future).To(Equal(&siteconfig.Future{V4: pointer.BoolPtr(true)}))
			Expect(cfg.ThemeConfig.Algolia.ContextualSearch).To(Equal(pointer.BoolPtr(true)))
			preset, ok := cfg.Preset(siteconfig.ClassicPreset)
			Expect(ok).To(BeTrue())
			Expect(preset.Blog.ShowReadingTime).To(Equal(pointer.BoolPtr(true)))
			Expect(preset.Blog.FeedOptions.XSLT).To(Equal(pointer.BoolPtr(true)))
		})

		It("expands the year variable", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.ThemeConfig.Footer.Copyright).To(HavePrefix("Traducción comunitaria © 2031 Filament en Español bajo"))
		})

		Context("when a referenced variable is missing", func() {
			BeforeEach(func() {
				vars = nil
			})
			It("fails", func() {
				Expect(err).To(HaveOccurred())
			})
		})

		It("rejects unknown fields", func() {
			_, err := siteconfig.Parse([]byte("title: a\nurl: https://a.b/\nunknownField: x\n"), nil)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknownField"))
		})

		It("applies generator defaults", func() {
			c, err := siteconfig.Parse([]byte("title: a\nurl: https://a.b/\n"), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.BaseURL).To(Equal("/"))
			Expect(c.OnBrokenLinks).To(Equal("throw"))
			Expect(c.OnBrokenMarkdownLinks).To(Equal("warn"))
			Expect(c.I18n).To(Equal(siteconfig.I18n{DefaultLocale: "en", Locales: []string{"en"}}))
		})
	})

	Describe("#Marshal", func() {
		It("round-trips field for field", func() {
			b, err := cfg.Marshal()
			Expect(err).NotTo(HaveOccurred())
			got, err := siteconfig.Parse(b, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(cfg))
		})

		It("round-trips whole float custom fields", func() {
			cfg.CustomFields["translationProgress"] = 30.0
			cfg.CustomFields["extra"] = map[string]interface{}{"levels": []interface{}{1.0, 2.5}}
			b, err := cfg.Marshal()
			Expect(err).NotTo(HaveOccurred())
			got, err := siteconfig.Parse(b, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(cfg))
			p, ok := got.TranslationProgress()
			Expect(ok).To(BeTrue())
			Expect(p).To(Equal(30.0))
		})

		It("escapes template delimiters", func() {
			c := cfg
			c.Tagline = "literal {{ .year }}"
			b, err := c.Marshal()
			Expect(err).NotTo(HaveOccurred())
			got, err := siteconfig.Parse(b, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Tagline).To(Equal("literal {{ .year }}"))
		})
	})

	Describe("navbar and footer", func() {
		It("keeps the configured navbar order", func() {
			var labels []string
			for _, it := range cfg.ThemeConfig.Navbar.Items {
				labels = append(labels, it.Label)
			}
			Expect(labels).To(Equal([]string{"Documentación", "Blog", "GitHub"}))
			Expect(cfg.ThemeConfig.Navbar.Left()).To(HaveLen(2))
			Expect(cfg.ThemeConfig.Navbar.Left()[1].Label).To(Equal("Blog"))
			Expect(cfg.ThemeConfig.Navbar.Right()).To(ConsistOf(cfg.ThemeConfig.Navbar.Items[2]))
		})

		It("keeps the configured footer groups order", func() {
			var titles []string
			for _, g := range cfg.ThemeConfig.Footer.Links {
				titles = append(titles, g.Title)
			}
			Expect(titles).To(Equal([]string{"Documentación", "Enlaces Oficiales", "Filament en Español"}))
			Expect(cfg.ThemeConfig.Footer.Links[1].Items).To(HaveLen(4))
		})
	})

	Describe("accessors", func() {
		It("resolves routes against the base URL", func() {
			c := cfg
			c.BaseURL = "/es/"
			Expect(c.Route("/docs/")).To(Equal("/es/docs/"))
			Expect(c.Route("")).To(Equal("/es/"))
			Expect(c.SearchRoute()).To(Equal("/es/search/"))
		})

		It("reads the docs preset and progress", func() {
			Expect(cfg.Docs().EditURL).To(Equal("https://github.com/filamentenespanol/documentacion/tree/main/"))
			p, ok := cfg.TranslationProgress()
			Expect(ok).To(BeTrue())
			Expect(p).To(Equal(25.0))
		})
	})

	DescribeTable("#Validate",
		func(mutate func(c *siteconfig.Config), want string) {
			Expect(err).NotTo(HaveOccurred())
			c := cfg
			c.ThemeConfig.Navbar.Items = append([]siteconfig.NavbarItem(nil), cfg.ThemeConfig.Navbar.Items...)
			c.ThemeConfig.Footer.Links = append([]siteconfig.FooterLinkGroup(nil), cfg.ThemeConfig.Footer.Links...)
			mutate(&c)
			verr := c.Validate()
			Expect(verr).To(HaveOccurred())
			Expect(verr.Error()).To(ContainSubstring(want))
		},
		Entry("missing title", func(c *siteconfig.Config) { c.Title = " " }, "title is required"),
		Entry("relative url", func(c *siteconfig.Config) { c.URL = "docs" }, "must be an absolute URL"),
		Entry("base url without slash", func(c *siteconfig.Config) { c.BaseURL = "docs" }, "must start and end with /"),
		Entry("unknown broken links severity", func(c *siteconfig.Config) { c.OnBrokenLinks = "explode" }, "onBrokenLinks"),
		Entry("default locale not listed", func(c *siteconfig.Config) { c.I18n.DefaultLocale = "pt" }, "i18n.defaultLocale"),
		Entry("navbar item with two targets", func(c *siteconfig.Config) {
			c.ThemeConfig.Navbar.Items[1].To = "/blog"
		}, "navbar.items[1] must define exactly one of href, to or type"),
		Entry("doc sidebar without id", func(c *siteconfig.Config) {
			c.ThemeConfig.Navbar.Items[0].SidebarID = ""
		}, "sidebarId is required"),
		Entry("navbar item wrong position", func(c *siteconfig.Config) {
			c.ThemeConfig.Navbar.Items[2].Position = "center"
		}, "must be left or right"),
		Entry("footer link without target", func(c *siteconfig.Config) {
			c.ThemeConfig.Footer.Links = []siteconfig.FooterLinkGroup{{Title: "x", Items: []siteconfig.FooterLink{{Label: "y"}}}}
		}, "footer.links[0].items[0] must define exactly one of href or to"),
		Entry("incomplete algolia", func(c *siteconfig.Config) {
			c.ThemeConfig.Algolia = &siteconfig.Algolia{AppID: "a"}
		}, "algolia requires"),
		Entry("missing prism theme", func(c *siteconfig.Config) { c.ThemeConfig.Prism.DarkTheme = "" }, "prism requires"),
	)

	Describe("#Load", func() {
		var fakeOs *osshimfakes.FakeOs

		BeforeEach(func() {
			fakeOs = &osshimfakes.FakeOs{}
		})

		It("reads and parses the file", func() {
			fakeOs.ReadFileReturns(siteconfig.DefaultTemplate(), nil)
			c, err := siteconfig.Load(fakeOs, "site.yaml", vars)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Title).To(Equal("Filament en español"))
			Expect(fakeOs.ReadFileArgsForCall(0)).To(Equal("site.yaml"))
		})

		It("reports a missing file", func() {
			fakeOs.IsDirReturns(false, os.ErrNotExist)
			fakeOs.IsNotExistReturns(true)
			_, err := siteconfig.Load(fakeOs, "site.yaml", vars)
			Expect(err).To(MatchError("site configuration site.yaml not found"))
			Expect(fakeOs.ReadFileCallCount()).To(Equal(0))
		})

		It("refuses directories", func() {
			fakeOs.IsDirReturns(true, nil)
			_, err := siteconfig.Load(fakeOs, "conf", vars)
			Expect(err).To(MatchError("site configuration conf is a directory"))
		})

		It("wraps read errors", func() {
			readErr := errors.New("boom")
			fakeOs.ReadFileReturns(nil, readErr)
			_, err := siteconfig.Load(fakeOs, "site.yaml", vars)
			Expect(errors.Is(err, readErr)).To(BeTrue())
		})
	})
})
