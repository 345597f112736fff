// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package linkcheck

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/filamentenespanol/sitegen/pkg/util/urls"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/net/html"
	"k8s.io/klog/v2"
)

// Severity values of onBrokenLinks and onBrokenMarkdownLinks
const (
	Ignore = "ignore"
	Log    = "log"
	Warn   = "warn"
	Throw  = "throw"
)

// Severities lists the accepted severity values
var Severities = []string{Ignore, Log, Warn, Throw}

// linkAttrs are the attributes holding links, per element
var linkAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"source": "src",
	"iframe": "src",
}

// BrokenLink is a link on a page that does not resolve to a built page or file
type BrokenLink struct {
	Page string
	Link string
}

func (b BrokenLink) Error() string {
	return fmt.Sprintf("broken link %s on page %s", b.Link, b.Page)
}

// Extract returns the link targets of the HTML document in document order
func Extract(r io.Reader) ([]string, error) {
	var links []string
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return links, nil
			}
			return nil, z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			attr, ok := linkAttrs[string(name)]
			if !ok {
				continue
			}
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = z.TagAttr()
				if string(k) == attr && len(v) > 0 {
					links = append(links, string(v))
				}
			}
		}
	}
}

// Index is the set of site paths that links may point to
type Index struct {
	mux   sync.RWMutex
	paths map[string]struct{}
}

// NewIndex creates an empty Index
func NewIndex() *Index {
	return &Index{paths: map[string]struct{}{}}
}

// Add registers site paths, such as page routes and written files
func (i *Index) Add(paths ...string) {
	i.mux.Lock()
	defer i.mux.Unlock()
	for _, p := range paths {
		i.paths[p] = struct{}{}
	}
}

// Has reports whether p, a site path without query or fragment, resolves.
// A route matches with or without its trailing slash, a directory matches its
// index.html file.
func (i *Index) Has(p string) bool {
	i.mux.RLock()
	defer i.mux.RUnlock()
	candidates := []string{p}
	if strings.HasSuffix(p, "/") {
		candidates = append(candidates, p+"index.html")
	} else if urls.Ext(p) == "" {
		candidates = append(candidates, p+"/", p+"/index.html")
	}
	for _, c := range candidates {
		if _, ok := i.paths[c]; ok {
			return true
		}
	}
	return false
}

// Checker finds internal links that do not resolve against an Index
type Checker struct {
	Index *Index
}

// Check returns the broken internal links of the HTML page rendered at route
func (c *Checker) Check(route string, page []byte) ([]BrokenLink, error) {
	links, err := Extract(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing page %s failed: %w", route, err)
	}
	base, err := url.Parse(route)
	if err != nil {
		return nil, err
	}
	var broken []BrokenLink
	seen := map[string]bool{}
	for _, l := range links {
		if seen[l] || skip(l) {
			continue
		}
		seen[l] = true
		u, err := url.Parse(l)
		if err != nil {
			broken = append(broken, BrokenLink{Page: route, Link: l})
			continue
		}
		target := base.ResolveReference(u).Path
		if target == "" {
			continue
		}
		target = path.Clean(target) + trailingSlash(target)
		if !c.Index.Has(target) {
			broken = append(broken, BrokenLink{Page: route, Link: l})
		}
	}
	return broken, nil
}

func skip(link string) bool {
	return link == "" || strings.HasPrefix(link, "#") || urls.IsExternal(link)
}

func trailingSlash(p string) string {
	if strings.HasSuffix(p, "/") && p != "/" {
		return "/"
	}
	return ""
}

// Report handles broken links according to severity: ignore drops them, log
// and warn log them, throw returns them aggregated
func Report(severity string, broken []BrokenLink) error {
	if len(broken) == 0 {
		return nil
	}
	sort.Slice(broken, func(i, j int) bool {
		if broken[i].Page != broken[j].Page {
			return broken[i].Page < broken[j].Page
		}
		return broken[i].Link < broken[j].Link
	})
	switch severity {
	case Ignore:
		return nil
	case Log:
		for _, b := range broken {
			klog.Info(b.Error())
		}
	case Warn:
		for _, b := range broken {
			klog.Warning(b.Error())
		}
	case Throw:
		var errs *multierror.Error
		for _, b := range broken {
			errs = multierror.Append(errs, b)
		}
		return errs.ErrorOrNil()
	default:
		return fmt.Errorf("unknown broken links severity %q", severity)
	}
	return nil
}
