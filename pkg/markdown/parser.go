// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var (
	// parser extension for GitHub Flavored Markdown & Frontmatter support
	extensions = []goldmark.Extender{
		extension.GFM,
		meta.Meta,
	}
	// goldmark.Markdown with GFM extensions and heading anchors
	gm = goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span", "div")
	p.AllowAttrs("target").Matching(bluemonday.Paragraph).OnElements("a")
	p.AddTargetBlankToFullyQualifiedLinks(false)
	return p
}

// Parse markdown content and returns AST node or error
func Parse(source []byte) (ast.Node, error) {
	reader := text.NewReader(source)
	context := parser.NewContext()
	doc := gm.Parser().Parse(reader, parser.WithContext(context))
	fmb, err := meta.TryGet(context)
	if err != nil {
		return nil, err
	}
	if doc.Kind() == ast.KindDocument {
		doc.(*ast.Document).SetMeta(fmb)
	}
	return doc, nil
}

// Render converts markdown source to sanitized HTML
func Render(source []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := gm.Convert(source, &buf); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

// ResolveLink rewrites a link or image destination. Returning the
// destination unchanged keeps the link as written.
type ResolveLink func(dest string, isImage bool) (string, error)

// RenderWithLinks converts markdown source to sanitized HTML, passing every
// link and image destination through resolve. The first resolve error aborts
// rendering.
func RenderWithLinks(source []byte, resolve ResolveLink) (template.HTML, error) {
	doc, err := Parse(source)
	if err != nil {
		return "", err
	}
	var resolveErr error
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest []byte
		var isImage bool
		switch l := n.(type) {
		case *ast.Link:
			dest = l.Destination
		case *ast.Image:
			dest, isImage = l.Destination, true
		default:
			return ast.WalkContinue, nil
		}
		d, err := resolve(string(dest), isImage)
		if err != nil {
			resolveErr = err
			return ast.WalkStop, nil
		}
		if isImage {
			n.(*ast.Image).Destination = []byte(d)
		} else {
			n.(*ast.Link).Destination = []byte(d)
		}
		return ast.WalkContinue, nil
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	var buf bytes.Buffer
	if err := gm.Renderer().Render(&buf, source, doc); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

// RenderInline renders a single paragraph fragment without the
// enclosing <p> element
func RenderInline(source string) (template.HTML, error) {
	h, err := Render([]byte(source))
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(h))
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") && strings.Count(s, "<p>") == 1 {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "<p>"), "</p>")
	}
	return template.HTML(s), nil
}

// Sanitize cleans trusted-but-unchecked HTML fragments such as the footer copyright
func Sanitize(fragment string) template.HTML {
	return template.HTML(policy.Sanitize(fragment))
}

// FirstHeading returns the text of the first level one heading, if any
func FirstHeading(source []byte) string {
	doc, err := Parse(source)
	if err != nil {
		return ""
	}
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = string(h.Text(source))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}
