// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/filamentenespanol/sitegen/pkg/components/consent"
	"github.com/filamentenespanol/sitegen/pkg/docs"
	"github.com/filamentenespanol/sitegen/pkg/siteconfig"
	"github.com/filamentenespanol/sitegen/pkg/theme"
)

// NotFoundFile is the output file of the not found page
const NotFoundFile = "404.html"

// Page is a built page
type Page struct {
	theme.Page
	// File is the output path relative to the destination
	File string
}

// Site is the result of a build. It is not modified after Build returns.
type Site struct {
	Config siteconfig.Config
	Theme  *theme.Theme
	Docs   *docs.Collection
	// Pages are sorted by route
	Pages    []*Page
	NotFound *Page
	// StaticFiles are slash separated paths relative to the static directory
	StaticFiles []string
	// Progress is the value shown by the translation progress banner
	Progress float64
	byRoute  map[string]*Page
}

func newSite(c siteconfig.Config, t *theme.Theme) *Site {
	return &Site{
		Config:  c,
		Theme:   t,
		byRoute: map[string]*Page{},
	}
}

func (s *Site) add(p *Page) error {
	if other, ok := s.byRoute[p.Route]; ok {
		return fmt.Errorf("pages %q and %q have the same route %s", other.Title, p.Title, p.Route)
	}
	if p.File == "" {
		p.File = s.file(p.Route)
	}
	s.byRoute[p.Route] = p
	s.Pages = append(s.Pages, p)
	return nil
}

func (s *Site) sort() {
	sort.Slice(s.Pages, func(i, j int) bool { return s.Pages[i].Route < s.Pages[j].Route })
}

// file maps a route to its index.html file relative to the destination
func (s *Site) file(route string) string {
	rel := strings.TrimPrefix(route, s.Config.Route(""))
	return path.Join(rel, "index.html")
}

// Page returns the page built for route. Routes are matched with or
// without the trailing slash.
func (s *Site) Page(route string) (*Page, bool) {
	if p, ok := s.byRoute[route]; ok {
		return p, true
	}
	if !strings.HasSuffix(route, "/") {
		p, ok := s.byRoute[route+"/"]
		return p, ok
	}
	return nil, false
}

// Render writes the complete HTML of p for a visitor with consent state
func (s *Site) Render(w io.Writer, p *Page, state consent.State) error {
	return s.Theme.Render(w, p.Page, state)
}
