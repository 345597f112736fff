// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package docs

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/filamentenespanol/sitegen/pkg/markdown"
	"github.com/filamentenespanol/sitegen/pkg/osfakes/osshim"
	"github.com/filamentenespanol/sitegen/pkg/util/urls"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"k8s.io/klog/v2"
)

// FrontMatter holds the recognized front matter keys of a document
type FrontMatter struct {
	Title           string   `yaml:"title,omitempty"`
	Description     string   `yaml:"description,omitempty"`
	SidebarLabel    string   `yaml:"sidebar_label,omitempty"`
	SidebarPosition *float64 `yaml:"sidebar_position,omitempty"`
	Slug            string   `yaml:"slug,omitempty"`
	Translated      *bool    `yaml:"translated,omitempty"`
}

// Doc is a markdown source document
type Doc struct {
	// Source is the slash separated path relative to the collection directory
	Source      string
	Route       string
	Title       string
	FrontMatter FrontMatter
	Body        []byte
}

// SidebarLabel returns the label of the doc in the sidebar
func (d *Doc) SidebarLabel() string {
	if d.FrontMatter.SidebarLabel != "" {
		return d.FrontMatter.SidebarLabel
	}
	return d.Title
}

// Translated reports whether the doc is marked as translated
func (d *Doc) Translated() bool {
	return d.FrontMatter.Translated != nil && *d.FrontMatter.Translated
}

// isIndex reports whether the doc represents its directory
func (d *Doc) isIndex() bool {
	switch strings.ToLower(baseName(d.Source)) {
	case "index", "readme":
		return true
	}
	return false
}

// Collection is the set of documents found under a directory
type Collection struct {
	Dir string
	// Prefix is the route all document routes start with
	Prefix string
	// Docs are ordered as in the sidebar
	Docs     []*Doc
	sidebar  []*SidebarItem
	bySource map[string]*Doc
	byRoute  map[string]*Doc
}

var titleCaser = cases.Title(language.Spanish)

// Collect reads the .md and .mdx documents under dir. A missing dir yields
// an empty collection.
func Collect(os osshim.Os, dir string, prefix string) (*Collection, error) {
	c := &Collection{
		Dir:      dir,
		Prefix:   prefix,
		bySource: map[string]*Doc{},
		byRoute:  map[string]*Doc{},
	}
	isDir, err := os.IsDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			klog.V(6).Infof("documents directory %s not found", dir)
			return c, nil
		}
		return nil, err
	}
	if !isDir {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	var docs []*Doc
	err = os.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isMarkdownFile(d.Name()) || strings.HasPrefix(d.Name(), "_") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s failed: %w", p, err)
		}
		doc, err := newDoc(filepath.ToSlash(rel), b, prefix)
		if err != nil {
			return fmt.Errorf("document %s: %w", p, err)
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if other, ok := c.byRoute[d.Route]; ok {
			return nil, fmt.Errorf("documents %s and %s have the same route %s", other.Source, d.Source, d.Route)
		}
		c.byRoute[d.Route] = d
		c.bySource[d.Source] = d
	}
	c.sidebar = buildTree(docs)
	c.Docs = flatten(c.sidebar)
	klog.V(6).Infof("collected %d documents from %s", len(c.Docs), dir)
	return c, nil
}

func newDoc(source string, b []byte, prefix string) (*Doc, error) {
	d := &Doc{Source: source}
	body, err := markdown.SplitDocument(b, &d.FrontMatter)
	if err != nil {
		return nil, err
	}
	d.Body = body
	d.Route = route(prefix, source, d.FrontMatter.Slug)
	d.Title = d.FrontMatter.Title
	if d.Title == "" {
		d.Title = markdown.FirstHeading(body)
	}
	if d.Title == "" {
		name := baseName(source)
		if d.isIndex() {
			name = path.Base(path.Dir(source))
			if name == "." {
				name = "inicio"
			}
		}
		d.Title = titleFromName(name)
	}
	return d, nil
}

// route maps a source path to its site route. Index and readme documents take
// the route of their directory. An absolute slug is relative to prefix, a
// relative slug replaces the file name.
func route(prefix, source, slug string) string {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	dir := path.Dir(source)
	if dir == "." {
		dir = ""
	}
	var rel string
	switch {
	case strings.HasPrefix(slug, "/"):
		rel = strings.Trim(slug, "/")
	case slug != "":
		rel = path.Join(dir, strings.Trim(slug, "/"))
	default:
		switch strings.ToLower(baseName(source)) {
		case "index", "readme":
			rel = dir
		default:
			rel = path.Join(dir, baseName(source))
		}
	}
	if rel == "" {
		return prefix
	}
	return prefix + rel + "/"
}

func isMarkdownFile(name string) bool {
	return urls.IsMarkdown(name)
}

func baseName(source string) string {
	b := path.Base(source)
	return strings.TrimSuffix(b, path.Ext(b))
}

// titleFromName turns a file name such as "primeros-pasos" into "Primeros Pasos"
func titleFromName(name string) string {
	name = strings.TrimLeft(name, "0123456789")
	name = strings.Trim(strings.NewReplacer("-", " ", "_", " ").Replace(name), " ")
	return titleCaser.String(name)
}

// Lookup returns the document with the source path relative to the collection directory
func (c *Collection) Lookup(source string) (*Doc, bool) {
	d, ok := c.bySource[source]
	return d, ok
}

// ByRoute returns the document rendered at route
func (c *Collection) ByRoute(route string) (*Doc, bool) {
	d, ok := c.byRoute[route]
	return d, ok
}

// FirstRoute returns the route of the first document in sidebar order, or the
// collection prefix when there are no documents
func (c *Collection) FirstRoute() string {
	if len(c.Docs) == 0 {
		return c.Prefix
	}
	return c.Docs[0].Route
}

// Neighbours returns the previous and next documents of d in sidebar order
func (c *Collection) Neighbours(d *Doc) (prev *Doc, next *Doc) {
	for i, o := range c.Docs {
		if o != d {
			continue
		}
		if i > 0 {
			prev = c.Docs[i-1]
		}
		if i < len(c.Docs)-1 {
			next = c.Docs[i+1]
		}
		break
	}
	return
}

// Progress returns the percentage of documents marked as translated, or nil
// for an empty collection
func (c *Collection) Progress() *float64 {
	if len(c.Docs) == 0 {
		return nil
	}
	var translated int
	for _, d := range c.Docs {
		if d.Translated() {
			translated++
		}
	}
	p := float64(translated) * 100 / float64(len(c.Docs))
	return &p
}

// ResolveLink resolves a markdown link written in from to the route of the
// document it names. Links that are not relative markdown links are reported
// as not handled.
func (c *Collection) ResolveLink(from *Doc, dest string) (resolved string, handled bool, err error) {
	if dest == "" || urls.IsExternal(dest) || !urls.IsMarkdown(dest) {
		return dest, false, nil
	}
	p, suffix := urls.SplitFragment(dest)
	var source string
	if strings.HasPrefix(p, "/") {
		source = strings.TrimPrefix(path.Clean(p), "/")
	} else {
		source = path.Join(path.Dir(from.Source), p)
	}
	target, ok := c.bySource[source]
	if !ok {
		return dest, true, fmt.Errorf("markdown link %s in %s does not resolve to a document", dest, from.Source)
	}
	return target.Route + suffix, true, nil
}

// sort helpers

func position(d *Doc) (float64, bool) {
	if d == nil || d.FrontMatter.SidebarPosition == nil {
		return 0, false
	}
	return *d.FrontMatter.SidebarPosition, true
}

// less orders by position, positioned entries first, then by name
func less(pi float64, iok bool, ni string, pj float64, jok bool, nj string) bool {
	if iok != jok {
		return iok
	}
	if iok && pi != pj {
		return pi < pj
	}
	return ni < nj
}

func sortEntries(entries []*SidebarItem) {
	sort.SliceStable(entries, func(i, j int) bool {
		pi, iok := entries[i].position()
		pj, jok := entries[j].position()
		return less(pi, iok, entries[i].name, pj, jok, entries[j].name)
	})
}
