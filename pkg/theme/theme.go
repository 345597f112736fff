// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package theme

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/filamentenespanol/sitegen/pkg/components/consent"
	"github.com/filamentenespanol/sitegen/pkg/docs"
	"github.com/filamentenespanol/sitegen/pkg/internal/must"
	"github.com/filamentenespanol/sitegen/pkg/markdown"
	"github.com/filamentenespanol/sitegen/pkg/siteconfig"
	"github.com/filamentenespanol/sitegen/pkg/util/urls"
)

const (
	// AssetsDir is the output directory of the theme assets
	AssetsDir = "assets"
	// DocSidebarType is the navbar item type linking to the docs sidebar
	DocSidebarType = "docSidebar"
)

var (
	//go:embed templates/*.html
	templatesFS embed.FS
	//go:embed assets
	assetsFS embed.FS

	stylesheets = []string{"css/custom.css", "css/features.css", "css/progress.css", "css/cookie.css"}
)

// Assets returns the theme stylesheets and scripts, rooted at the assets directory
func Assets() fs.FS {
	return must.Succeed(fs.Sub(assetsFS, AssetsDir))
}

// Link is a resolved navigation link
type Link struct {
	Label    string
	Href     string
	External bool
	Active   bool
}

// Page is the content of a page, rendered inside the layout
type Page struct {
	Route       string
	Title       string
	Description string
	Body        template.HTML
	// Redirect sends the visitor to another route
	Redirect string
	// Docs pages only
	Sidebar []*docs.SidebarItem
	EditURL string
	Prev    *Link
	Next    *Link
}

// Theme renders pages of a site with its navbar, footer, search and consent banner
type Theme struct {
	Config siteconfig.Config
	// DocsRoute is the target of docSidebar navbar items
	DocsRoute string
	banner    consent.Banner
	copyright template.HTML
	tmpl      *template.Template
}

// New creates a Theme for the site configuration c
func New(c siteconfig.Config, docsRoute string) (*Theme, error) {
	tmpl, err := template.New("theme").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing theme templates failed: %w", err)
	}
	if docsRoute == "" {
		docsRoute = c.Route("docs/")
	}
	return &Theme{
		Config:    c,
		DocsRoute: docsRoute,
		banner:    consent.NewBanner(c.Route),
		copyright: markdown.Sanitize(c.ThemeConfig.Footer.Copyright),
		tmpl:      tmpl,
	}, nil
}

// Banner returns the consent banner of the site
func (t *Theme) Banner() consent.Banner {
	return t.banner
}

// Root renders children unchanged, followed by the consent banner when the
// visitor has not decided yet
func (t *Theme) Root(children template.HTML, state consent.State) (template.HTML, error) {
	if !consent.ShouldShowPrompt(state) {
		return children, nil
	}
	var b bytes.Buffer
	b.WriteString(string(children))
	if err := t.banner.Render(&b); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

// Render writes page p inside the site layout, wrapped by Root with state
func (t *Theme) Render(w io.Writer, p Page, state consent.State) error {
	main := p.Body
	if p.Sidebar != nil {
		var b bytes.Buffer
		if err := t.tmpl.ExecuteTemplate(&b, "docpage", t.docPage(p)); err != nil {
			return err
		}
		main = template.HTML(b.String())
	}
	main, err := t.Root(main, state)
	if err != nil {
		return err
	}
	return t.tmpl.ExecuteTemplate(w, "layout", t.layout(p, main))
}

// Fragment renders one of the theme partials: "home", "search", "redirect" or "notfound"
func (t *Theme) Fragment(name string, data interface{}) (template.HTML, error) {
	var b bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

type layoutData struct {
	Lang          string
	Title         string
	Description   string
	Image         string
	Canonical     string
	Redirect      string
	Favicon       string
	Stylesheets   []string
	ThemeScript   string
	ConsentScript string
	Home          string
	Prism         siteconfig.Prism
	Navbar        navbarData
	Footer        footerData
	Search        *searchData
	Main          template.HTML
}

type navbarData struct {
	Title string
	Logo  *siteconfig.Logo
	Left  []Link
	Right []Link
}

type footerData struct {
	Style     string
	Groups    []footerGroup
	Copyright template.HTML
}

type footerGroup struct {
	Title string
	Links []Link
}

type searchData struct {
	AppID         string
	APIKey        string
	IndexName     string
	Contextual    bool
	LanguageFacet string
}

func (t *Theme) layout(p Page, main template.HTML) layoutData {
	c := t.Config
	title := c.Title
	if p.Title != "" && p.Title != c.Title {
		title = p.Title + " | " + c.Title
	}
	description := p.Description
	if description == "" {
		description = c.Tagline
	}
	d := layoutData{
		Lang:          c.I18n.DefaultLocale,
		Title:         title,
		Description:   description,
		Favicon:       t.asset(c.Favicon),
		ThemeScript:   c.Route(AssetsDir + "/js/theme.js"),
		ConsentScript: c.Route(AssetsDir + "/js/consent.js"),
		Home:          c.Route(""),
		Redirect:      p.Redirect,
		Prism:         c.ThemeConfig.Prism,
		Main:          main,
	}
	if c.ThemeConfig.Image != "" {
		d.Image = t.absolute(c.ThemeConfig.Image)
	}
	if p.Route != "" {
		d.Canonical = t.absolute(p.Route)
	}
	for _, s := range stylesheets {
		d.Stylesheets = append(d.Stylesheets, c.Route(AssetsDir+"/"+s))
	}
	d.Navbar = navbarData{
		Title: c.ThemeConfig.Navbar.Title,
		Left:  t.navLinks(c.ThemeConfig.Navbar.Left(), p.Route),
		Right: t.navLinks(c.ThemeConfig.Navbar.Right(), p.Route),
	}
	if l := c.ThemeConfig.Navbar.Logo; l != nil {
		d.Navbar.Logo = &siteconfig.Logo{Alt: l.Alt, Src: t.asset(l.Src)}
	}
	d.Footer = footerData{
		Style:     c.ThemeConfig.Footer.Style,
		Copyright: t.copyright,
	}
	for _, g := range c.ThemeConfig.Footer.Links {
		fg := footerGroup{Title: g.Title}
		for _, it := range g.Items {
			l := Link{Label: it.Label, External: it.External()}
			if l.External {
				l.Href = it.Href
			} else {
				l.Href = c.Route(it.To)
			}
			fg.Links = append(fg.Links, l)
		}
		d.Footer.Groups = append(d.Footer.Groups, fg)
	}
	if a := c.ThemeConfig.Algolia; a != nil {
		d.Search = &searchData{
			AppID:      a.AppID,
			APIKey:     a.APIKey,
			IndexName:  a.IndexName,
			Contextual: a.ContextualSearch != nil && *a.ContextualSearch,
		}
		d.Search.LanguageFacet = "language:" + c.I18n.DefaultLocale
	}
	return d
}

// navLinks resolves navbar items to links, in configured order
func (t *Theme) navLinks(items []siteconfig.NavbarItem, current string) []Link {
	var links []Link
	for _, it := range items {
		l := Link{Label: it.Label, External: it.External()}
		switch {
		case l.External:
			l.Href = it.Href
		case it.Type == DocSidebarType:
			l.Href = t.DocsRoute
			l.Active = strings.HasPrefix(current, t.Config.Route("docs/"))
		default:
			l.Href = t.Config.Route(it.To)
			l.Active = l.Href != t.Config.Route("") && strings.HasPrefix(current, l.Href)
		}
		links = append(links, l)
	}
	return links
}

type sidebarNode struct {
	Label  string
	Href   string
	Active bool
	Items  []sidebarNode
}

type docPageData struct {
	Sidebar sidebarNode
	Body    template.HTML
	EditURL string
	Prev    *Link
	Next    *Link
}

func (t *Theme) docPage(p Page) docPageData {
	return docPageData{
		Sidebar: sidebarNode{Items: sidebarNodes(p.Sidebar, p.Route)},
		Body:    p.Body,
		EditURL: p.EditURL,
		Prev:    p.Prev,
		Next:    p.Next,
	}
}

func sidebarNodes(items []*docs.SidebarItem, current string) []sidebarNode {
	var nodes []sidebarNode
	for _, it := range items {
		nodes = append(nodes, sidebarNode{
			Label:  it.Label,
			Href:   it.Route,
			Active: it.Contains(current),
			Items:  sidebarNodes(it.Items, current),
		})
	}
	return nodes
}

// asset resolves a static file path against the base URL, external URLs are kept
func (t *Theme) asset(p string) string {
	if p == "" || urls.IsExternal(p) {
		return p
	}
	return t.Config.Route(p)
}

// absolute returns the canonical URL of a site path
func (t *Theme) absolute(p string) string {
	if urls.IsExternal(p) {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = t.Config.Route(p)
	}
	return strings.TrimSuffix(t.Config.URL, "/") + p
}
