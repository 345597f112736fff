// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package siteconfig

// Config is the site configuration consumed once per build. Field names
// on disk are the ones the classic documentation generator expects.
// A Config is never mutated after Parse returns it.
type Config struct {
	Title                 string                 `yaml:"title"`
	Tagline               string                 `yaml:"tagline,omitempty"`
	Favicon               string                 `yaml:"favicon,omitempty"`
	Future                *Future                `yaml:"future,omitempty"`
	URL                   string                 `yaml:"url"`
	BaseURL               string                 `yaml:"baseUrl"`
	OrganizationName      string                 `yaml:"organizationName,omitempty"`
	ProjectName           string                 `yaml:"projectName,omitempty"`
	OnBrokenLinks         string                 `yaml:"onBrokenLinks,omitempty"`
	OnBrokenMarkdownLinks string                 `yaml:"onBrokenMarkdownLinks,omitempty"`
	I18n                  I18n                   `yaml:"i18n"`
	Presets               []Preset               `yaml:"presets,omitempty"`
	ThemeConfig           ThemeConfig            `yaml:"themeConfig"`
	CustomFields          map[string]interface{} `yaml:"customFields,omitempty"`
}

// Future holds compatibility flags
type Future struct {
	V4 *bool `yaml:"v4,omitempty"`
}

// I18n is the locale setup. Only the default locale is rendered.
type I18n struct {
	DefaultLocale string   `yaml:"defaultLocale"`
	Locales       []string `yaml:"locales"`
}

// Preset is a named bundle of generator behavior with its options
type Preset struct {
	Name    string        `yaml:"name"`
	Options PresetOptions `yaml:"options"`
}

// PresetOptions groups the per-plugin options of a preset
type PresetOptions struct {
	Docs  *DocsOptions  `yaml:"docs,omitempty"`
	Blog  *BlogOptions  `yaml:"blog,omitempty"`
	Theme *ThemeOptions `yaml:"theme,omitempty"`
}

// DocsOptions configures documentation pages
type DocsOptions struct {
	SidebarPath string `yaml:"sidebarPath,omitempty"`
	// EditURL is the prefix of "edit this page" links. Empty disables them.
	EditURL string `yaml:"editUrl,omitempty"`
}

// BlogOptions configures the blog plugin
type BlogOptions struct {
	ShowReadingTime        *bool        `yaml:"showReadingTime,omitempty"`
	FeedOptions            *FeedOptions `yaml:"feedOptions,omitempty"`
	EditURL                string       `yaml:"editUrl,omitempty"`
	OnInlineTags           string       `yaml:"onInlineTags,omitempty"`
	OnInlineAuthors        string       `yaml:"onInlineAuthors,omitempty"`
	OnUntruncatedBlogPosts string       `yaml:"onUntruncatedBlogPosts,omitempty"`
}

// FeedOptions configures blog feeds
type FeedOptions struct {
	Type []string `yaml:"type,omitempty"`
	XSLT *bool    `yaml:"xslt,omitempty"`
}

// ThemeOptions configures the theme plugin
type ThemeOptions struct {
	CustomCSS string `yaml:"customCss,omitempty"`
}

// ThemeConfig is the theme section: navbar, footer, search and highlighting
type ThemeConfig struct {
	Image   string   `yaml:"image,omitempty"`
	Algolia *Algolia `yaml:"algolia,omitempty"`
	Navbar  Navbar   `yaml:"navbar"`
	Footer  Footer   `yaml:"footer"`
	Prism   Prism    `yaml:"prism"`
}

// Algolia holds the hosted search credentials. The values are passed
// through to the search widget as they are.
type Algolia struct {
	APIKey           string `yaml:"apiKey"`
	IndexName        string `yaml:"indexName"`
	AppID            string `yaml:"appId"`
	ContextualSearch *bool  `yaml:"contextualSearch,omitempty"`
	SearchPagePath   string `yaml:"searchPagePath,omitempty"`
}

// Navbar is the top navigation bar
type Navbar struct {
	Title string       `yaml:"title,omitempty"`
	Logo  *Logo        `yaml:"logo,omitempty"`
	Items []NavbarItem `yaml:"items,omitempty"`
}

// Logo of the navbar
type Logo struct {
	Alt string `yaml:"alt,omitempty"`
	Src string `yaml:"src"`
}

// NavbarItem is a navbar entry. Exactly one of Href, To or
// Type=docSidebar defines its target.
type NavbarItem struct {
	Type      string `yaml:"type,omitempty"`
	SidebarID string `yaml:"sidebarId,omitempty"`
	Label     string `yaml:"label"`
	Href      string `yaml:"href,omitempty"`
	To        string `yaml:"to,omitempty"`
	Position  string `yaml:"position,omitempty"`
}

// Footer is the page footer
type Footer struct {
	Style     string            `yaml:"style,omitempty"`
	Links     []FooterLinkGroup `yaml:"links,omitempty"`
	Copyright string            `yaml:"copyright,omitempty"`
}

// FooterLinkGroup is a titled column of footer links
type FooterLinkGroup struct {
	Title string       `yaml:"title"`
	Items []FooterLink `yaml:"items"`
}

// FooterLink is a footer entry with either an internal (To) or
// external (Href) target
type FooterLink struct {
	Label string `yaml:"label"`
	To    string `yaml:"to,omitempty"`
	Href  string `yaml:"href,omitempty"`
}

// Prism names the light and dark syntax highlighting themes
type Prism struct {
	Theme     string `yaml:"theme"`
	DarkTheme string `yaml:"darkTheme"`
}
