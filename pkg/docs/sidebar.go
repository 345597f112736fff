// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package docs

import "path"

// SidebarItem is a sidebar entry. Entries with Items are categories, a
// category with an index document links to it.
type SidebarItem struct {
	Label string
	Route string
	Doc   *Doc
	Items []*SidebarItem
	// sort key
	name string
}

// Category reports whether the item groups other items
func (s *SidebarItem) Category() bool {
	return len(s.Items) > 0
}

// Contains reports whether route is the item route or the route of a descendant
func (s *SidebarItem) Contains(route string) bool {
	if s.Route != "" && s.Route == route {
		return true
	}
	for _, it := range s.Items {
		if it.Contains(route) {
			return true
		}
	}
	return false
}

func (s *SidebarItem) position() (float64, bool) {
	return position(s.Doc)
}

// Sidebar returns the docs navigation ordered by directory, then sidebar
// position, then name
func (c *Collection) Sidebar() []*SidebarItem {
	return c.sidebar
}

func buildTree(docs []*Doc) []*SidebarItem {
	root := &SidebarItem{}
	cats := map[string]*SidebarItem{"": root}
	var category func(dir string) *SidebarItem
	category = func(dir string) *SidebarItem {
		if c, ok := cats[dir]; ok {
			return c
		}
		parentDir := path.Dir(dir)
		if parentDir == "." {
			parentDir = ""
		}
		parent := category(parentDir)
		c := &SidebarItem{
			Label: titleFromName(path.Base(dir)),
			name:  path.Base(dir),
		}
		cats[dir] = c
		parent.Items = append(parent.Items, c)
		return c
	}
	for _, d := range docs {
		dir := path.Dir(d.Source)
		if dir == "." {
			dir = ""
		}
		if d.isIndex() && dir != "" {
			c := category(dir)
			c.Doc = d
			c.Label = d.SidebarLabel()
			c.Route = d.Route
			continue
		}
		category(dir).Items = append(category(dir).Items, &SidebarItem{
			Label: d.SidebarLabel(),
			Route: d.Route,
			Doc:   d,
			name:  baseName(d.Source),
		})
	}
	sortTree(root)
	return root.Items
}

func sortTree(s *SidebarItem) {
	sortEntries(s.Items)
	for _, it := range s.Items {
		sortTree(it)
	}
}

// flatten lists documents depth first, a category document before its children
func flatten(items []*SidebarItem) []*Doc {
	var docs []*Doc
	for _, it := range items {
		if it.Doc != nil {
			docs = append(docs, it.Doc)
		}
		docs = append(docs, flatten(it.Items)...)
	}
	return docs
}
