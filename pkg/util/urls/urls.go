// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package urls

import (
	"net/url"
	"strings"
)

const (
	// PathSeparator is the URL paths separator character
	PathSeparator = '/'
)

// Ext returns the resource name extension used by URL path.
// The extension is the suffix beginning at the final dot
// in the final element of path; it is empty if there is
// no dot.
func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != PathSeparator; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return ""
}

// SplitFragment separates the path part of a link from its query and fragment suffix
func SplitFragment(link string) (path string, suffix string) {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		return link[:i], link[i:]
	}
	return link, ""
}

// IsExternal reports whether link has a scheme or host, or is protocol relative
func IsExternal(link string) bool {
	if strings.HasPrefix(link, "//") {
		return true
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme != "" || u.Host != ""
}

// IsMarkdown reports whether the path part of link names a markdown file
func IsMarkdown(link string) bool {
	p, _ := SplitFragment(link)
	switch strings.ToLower(Ext(p)) {
	case "md", "mdx":
		return true
	}
	return false
}
