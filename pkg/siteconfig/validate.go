// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package siteconfig

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const docSidebarType = "docSidebar"

var reportingSeverities = []string{"ignore", "log", "warn", "throw"}

// Validate checks the configuration against the schema the site
// generator enforces and returns all violations at once
func (c Config) Validate() error {
	var errs *multierror.Error
	if strings.TrimSpace(c.Title) == "" {
		errs = multierror.Append(errs, fmt.Errorf("title is required"))
	}
	if c.URL == "" {
		errs = multierror.Append(errs, fmt.Errorf("url is required"))
	} else if u, err := url.Parse(c.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = multierror.Append(errs, fmt.Errorf("url %q must be an absolute URL", c.URL))
	}
	if !strings.HasPrefix(c.BaseURL, "/") || !strings.HasSuffix(c.BaseURL, "/") {
		errs = multierror.Append(errs, fmt.Errorf("baseUrl %q must start and end with /", c.BaseURL))
	}
	if err := checkSeverity("onBrokenLinks", c.OnBrokenLinks); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := checkSeverity("onBrokenMarkdownLinks", c.OnBrokenMarkdownLinks); err != nil {
		errs = multierror.Append(errs, err)
	}
	if !contains(c.I18n.Locales, c.I18n.DefaultLocale) {
		errs = multierror.Append(errs, fmt.Errorf("i18n.defaultLocale %q is not listed in i18n.locales", c.I18n.DefaultLocale))
	}
	for i, p := range c.Presets {
		if p.Name == "" {
			errs = multierror.Append(errs, fmt.Errorf("presets[%d].name is required", i))
		}
	}
	errs = multierror.Append(errs, c.ThemeConfig.validate()...)
	return errs.ErrorOrNil()
}

func (t ThemeConfig) validate() []error {
	var errs []error
	for i, it := range t.Navbar.Items {
		field := fmt.Sprintf("themeConfig.navbar.items[%d]", i)
		targets := 0
		for _, s := range []string{it.Href, it.To} {
			if s != "" {
				targets++
			}
		}
		if it.Type != "" {
			if it.Type != docSidebarType {
				errs = append(errs, fmt.Errorf("%s.type %q is not supported", field, it.Type))
			} else if it.SidebarID == "" {
				errs = append(errs, fmt.Errorf("%s.sidebarId is required for type %s", field, docSidebarType))
			}
			targets++
		}
		if targets != 1 {
			errs = append(errs, fmt.Errorf("%s must define exactly one of href, to or type", field))
		}
		if it.Label == "" {
			errs = append(errs, fmt.Errorf("%s.label is required", field))
		}
		if it.Position != "" && it.Position != "left" && it.Position != "right" {
			errs = append(errs, fmt.Errorf("%s.position %q must be left or right", field, it.Position))
		}
	}
	for i, g := range t.Footer.Links {
		field := fmt.Sprintf("themeConfig.footer.links[%d]", i)
		if g.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", field))
		}
		for j, l := range g.Items {
			if l.Label == "" {
				errs = append(errs, fmt.Errorf("%s.items[%d].label is required", field, j))
			}
			if (l.Href == "") == (l.To == "") {
				errs = append(errs, fmt.Errorf("%s.items[%d] must define exactly one of href or to", field, j))
			}
		}
	}
	if a := t.Algolia; a != nil {
		if a.AppID == "" || a.APIKey == "" || a.IndexName == "" {
			errs = append(errs, fmt.Errorf("themeConfig.algolia requires appId, apiKey and indexName"))
		}
	}
	if t.Prism.Theme == "" || t.Prism.DarkTheme == "" {
		errs = append(errs, fmt.Errorf("themeConfig.prism requires theme and darkTheme"))
	}
	return errs
}

func checkSeverity(field, value string) error {
	if !contains(reportingSeverities, value) {
		return fmt.Errorf("%s %q must be one of %v", field, value, reportingSeverities)
	}
	return nil
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
