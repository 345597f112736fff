// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package siteconfig

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/filamentenespanol/sitegen/pkg/osfakes/osshim"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

const (
	// ClassicPreset is the name of the preset providing docs, blog and theme
	ClassicPreset = "classic"
	// TranslationProgressField is the custom field holding the homepage progress value
	TranslationProgressField = "translationProgress"
	// YearVariable is the template variable set to the current year
	YearVariable = "year"
)

//go:embed site.yaml.tmpl
var defaultTemplate []byte

// DefaultTemplate returns the unexpanded canonical site configuration file
func DefaultTemplate() []byte {
	return append([]byte(nil), defaultTemplate...)
}

// Default returns the canonical site configuration expanded for the current year
func Default() (Config, error) {
	return Parse(defaultTemplate, DefaultVariables(time.Now()))
}

// DefaultVariables returns the variables every configuration file can
// reference, evaluated at now
func DefaultVariables(now time.Time) map[string]string {
	return map[string]string{
		YearVariable: strconv.Itoa(now.Year()),
	}
}

// Load reads the configuration file at path and parses it with vars
func Load(os osshim.Os, path string, vars map[string]string) (Config, error) {
	isDir, err := os.IsDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("site configuration %s not found", path)
		}
		return Config{}, err
	}
	if isDir {
		return Config{}, fmt.Errorf("site configuration %s is a directory", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read site configuration %s: %w", path, err)
	}
	cfg, err := Parse(b, vars)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse site configuration %s: %w", path, err)
	}
	klog.V(6).Infof("site configuration loaded from %s", path)
	return cfg, nil
}

// Parse resolves b as a template with vars and decodes the result. Fields
// that are not part of the configuration schema are rejected.
func Parse(b []byte, vars map[string]string) (Config, error) {
	resolved, err := resolve(b, vars)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(resolved))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func resolve(b []byte, vars map[string]string) ([]byte, error) {
	tpl, err := template.New("").Option("missingkey=error").Parse(string(b))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, vars); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "/"
	}
	if c.OnBrokenLinks == "" {
		c.OnBrokenLinks = "throw"
	}
	if c.OnBrokenMarkdownLinks == "" {
		c.OnBrokenMarkdownLinks = "warn"
	}
	if c.I18n.DefaultLocale == "" {
		c.I18n.DefaultLocale = "en"
	}
	if len(c.I18n.Locales) == 0 {
		c.I18n.Locales = []string{c.I18n.DefaultLocale}
	}
	for k, v := range c.CustomFields {
		c.CustomFields[k] = normalizeNumbers(v)
	}
}

// normalizeNumbers turns the integers YAML yields for whole numbers into
// float64, so 30.0 and 30 decode to the same custom field value
func normalizeNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case map[string]interface{}:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
	case []interface{}:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
	}
	return v
}

// Marshal serializes the configuration. Parsing the result yields a
// value equal to c.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	// the output is parsed as a template again
	return escapeTemplateDelims(buf.Bytes()), nil
}

func escapeTemplateDelims(b []byte) []byte {
	if !bytes.Contains(b, []byte("{{")) {
		return b
	}
	r := strings.NewReplacer("{{", `{{"{{"}}`)
	return []byte(r.Replace(string(b)))
}

// Preset returns the options of the preset with name
func (c Config) Preset(name string) (PresetOptions, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p.Options, true
		}
	}
	return PresetOptions{}, false
}

// Docs returns the docs options of the classic preset
func (c Config) Docs() DocsOptions {
	if o, ok := c.Preset(ClassicPreset); ok && o.Docs != nil {
		return *o.Docs
	}
	return DocsOptions{}
}

// TranslationProgress returns the numeric custom field translationProgress
func (c Config) TranslationProgress() (float64, bool) {
	switch v := c.CustomFields[TranslationProgressField].(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// Route returns the site path for rel, prefixed with the base URL
func (c Config) Route(rel string) string {
	base := c.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + strings.TrimPrefix(rel, "/")
}

// SearchRoute returns the route of the search page or "" when search is not configured
func (c Config) SearchRoute() string {
	a := c.ThemeConfig.Algolia
	if a == nil || a.SearchPagePath == "" {
		return ""
	}
	return c.Route(strings.Trim(a.SearchPagePath, "/") + "/")
}

// Left returns the items positioned left, in configured order
func (n Navbar) Left() []NavbarItem {
	return n.byPosition("left")
}

// Right returns the items positioned right, in configured order
func (n Navbar) Right() []NavbarItem {
	return n.byPosition("right")
}

func (n Navbar) byPosition(position string) []NavbarItem {
	var items []NavbarItem
	for _, it := range n.Items {
		p := it.Position
		if p == "" {
			p = "left"
		}
		if p == position {
			items = append(items, it)
		}
	}
	return items
}

// External reports whether the item links outside the site
func (i NavbarItem) External() bool {
	return i.Href != ""
}

// External reports whether the link points outside the site
func (l FooterLink) External() bool {
	return l.Href != ""
}
