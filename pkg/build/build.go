// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"path/filepath"
	"sync"

	"github.com/filamentenespanol/sitegen/pkg/components/consent"
	"github.com/filamentenespanol/sitegen/pkg/components/features"
	"github.com/filamentenespanol/sitegen/pkg/components/progress"
	"github.com/filamentenespanol/sitegen/pkg/docs"
	"github.com/filamentenespanol/sitegen/pkg/internal/link"
	"github.com/filamentenespanol/sitegen/pkg/jobs"
	"github.com/filamentenespanol/sitegen/pkg/linkcheck"
	"github.com/filamentenespanol/sitegen/pkg/markdown"
	"github.com/filamentenespanol/sitegen/pkg/osfakes/osshim"
	"github.com/filamentenespanol/sitegen/pkg/siteconfig"
	"github.com/filamentenespanol/sitegen/pkg/theme"
	"k8s.io/klog/v2"
)

// Options configure a build
type Options struct {
	// DocsDir holds the documentation markdown files
	DocsDir string
	// PagesDir holds standalone markdown pages, such as the privacy policy
	PagesDir string
	// StaticDir is copied verbatim to the destination
	StaticDir string
	// DocumentWorkers is the number of parallel page renderers
	DocumentWorkers int
	// FailFast stops the build on the first page error
	FailFast bool
	// ProgressFromDocs computes the translation progress from the
	// translated front matter flag of the docs
	ProgressFromDocs bool
}

// Builder builds the site described by Config
type Builder struct {
	Config  siteconfig.Config
	Options Options
	Os      osshim.Os
}

// NewBuilder creates a Builder reading sources from the file system
func NewBuilder(c siteconfig.Config, o Options) *Builder {
	return &Builder{Config: c, Options: o, Os: &osshim.OsShim{}}
}

// Build collects the sources and renders the body of every page
func (b *Builder) Build(ctx context.Context) (*Site, error) {
	c := b.Config
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid site configuration: %w", err)
	}
	docsCol, err := docs.Collect(b.Os, b.Options.DocsDir, c.Route("docs/"))
	if err != nil {
		return nil, fmt.Errorf("collecting docs failed: %w", err)
	}
	var pagesCol *docs.Collection
	if b.Options.PagesDir != "" {
		if pagesCol, err = docs.Collect(b.Os, b.Options.PagesDir, c.Route("")); err != nil {
			return nil, fmt.Errorf("collecting pages failed: %w", err)
		}
		if d, ok := pagesCol.ByRoute(c.Route(consent.Route + "/")); ok {
			return nil, fmt.Errorf("page %s uses the reserved route %s", d.Source, d.Route)
		}
	}
	t, err := theme.New(c, docsCol.FirstRoute())
	if err != nil {
		return nil, err
	}
	site := newSite(c, t)
	site.Docs = docsCol
	site.Progress = b.progress(docsCol)

	home, err := b.home(site)
	if err != nil {
		return nil, err
	}
	if err := site.add(home); err != nil {
		return nil, err
	}
	if err := b.docsRedirect(site); err != nil {
		return nil, err
	}
	if r := c.SearchRoute(); r != "" {
		body, err := t.Fragment("search", c)
		if err != nil {
			return nil, err
		}
		if err := site.add(&Page{Page: theme.Page{Route: r, Title: "Buscar", Body: body}}); err != nil {
			return nil, err
		}
	}
	notFound, err := t.Fragment("notfound", struct{ Home string }{c.Route("")})
	if err != nil {
		return nil, err
	}
	site.NotFound = &Page{Page: theme.Page{Title: "Página no encontrada", Body: notFound}, File: NotFoundFile}

	var tasks []interface{}
	for _, d := range docsCol.Docs {
		tasks = append(tasks, &docTask{col: docsCol, doc: d, sidebar: true})
	}
	if pagesCol != nil {
		for _, d := range pagesCol.Docs {
			tasks = append(tasks, &docTask{col: pagesCol, doc: d})
		}
	}
	var mux sync.Mutex
	job := &jobs.Job{
		ID:         "Render",
		MinWorkers: 1,
		MaxWorkers: b.workers(),
		FailFast:   b.Options.FailFast,
		Worker: jobs.WorkerFunc(func(ctx context.Context, task interface{}) *jobs.WorkerError {
			dt := task.(*docTask)
			p, err := b.docPage(dt)
			if err != nil {
				return jobs.NewWorkerError(fmt.Errorf("rendering %s failed: %w", filepath.Join(dt.col.Dir, filepath.FromSlash(dt.doc.Source)), err), 0)
			}
			mux.Lock()
			defer mux.Unlock()
			if err := site.add(p); err != nil {
				return jobs.NewWorkerError(err, 0)
			}
			return nil
		}),
	}
	if err := job.Dispatch(ctx, tasks); err != nil {
		return nil, err
	}
	site.sort()

	if site.StaticFiles, err = b.staticFiles(); err != nil {
		return nil, err
	}
	klog.Infof("built %d pages, %d docs", len(site.Pages), len(docsCol.Docs))
	return site, nil
}

func (b *Builder) workers() int {
	if b.Options.DocumentWorkers < 1 {
		return 1
	}
	return b.Options.DocumentWorkers
}

// progress prefers the docs derived value when requested, then the
// translationProgress custom field, then the banner default
func (b *Builder) progress(col *docs.Collection) float64 {
	if b.Options.ProgressFromDocs {
		if p := col.Progress(); p != nil {
			return math.Round(*p*10) / 10
		}
		klog.Warning("no docs to compute the translation progress from")
	}
	if p, ok := b.Config.TranslationProgress(); ok {
		return p
	}
	return progress.New(nil).Progress
}

type homeData struct {
	Title    string
	Tagline  string
	DocsHref string
	Progress template.HTML
	Features template.HTML
}

func (b *Builder) home(site *Site) (*Page, error) {
	c := b.Config
	var pb, fb bytes.Buffer
	p := site.Progress
	if err := progress.New(&p).Render(&pb); err != nil {
		return nil, err
	}
	if err := features.New(c.Route).Render(&fb); err != nil {
		return nil, err
	}
	body, err := site.Theme.Fragment("home", homeData{
		Title:    c.Title,
		Tagline:  c.Tagline,
		DocsHref: site.Docs.FirstRoute(),
		Progress: template.HTML(pb.String()),
		Features: template.HTML(fb.String()),
	})
	if err != nil {
		return nil, err
	}
	return &Page{Page: theme.Page{Route: c.Route(""), Title: c.Title, Description: c.Tagline, Body: body}}, nil
}

// docsRedirect adds a page at the docs root leading to the first doc, unless
// a doc is rendered there
func (b *Builder) docsRedirect(site *Site) error {
	root := b.Config.Route("docs/")
	if len(site.Docs.Docs) == 0 {
		return nil
	}
	if _, ok := site.Docs.ByRoute(root); ok {
		return nil
	}
	target := site.Docs.FirstRoute()
	body, err := site.Theme.Fragment("redirect", struct{ Target string }{target})
	if err != nil {
		return err
	}
	return site.add(&Page{Page: theme.Page{Route: root, Title: "Documentación", Body: body, Redirect: target}})
}

type docTask struct {
	col     *docs.Collection
	doc     *docs.Doc
	sidebar bool
}

func (b *Builder) docPage(t *docTask) (*Page, error) {
	d := t.doc
	body, err := markdown.RenderWithLinks(d.Body, func(dest string, isImage bool) (string, error) {
		resolved, handled, err := t.col.ResolveLink(d, dest)
		if !handled {
			return dest, nil
		}
		if err != nil {
			return dest, b.onBrokenMarkdownLink(err)
		}
		return resolved, nil
	})
	if err != nil {
		return nil, err
	}
	p := &Page{Page: theme.Page{
		Route:       d.Route,
		Title:       d.Title,
		Description: d.FrontMatter.Description,
		Body:        body,
	}}
	if t.sidebar {
		p.Sidebar = t.col.Sidebar()
		p.EditURL = b.editURL(d)
		prev, next := t.col.Neighbours(d)
		if prev != nil {
			p.Prev = &theme.Link{Label: prev.SidebarLabel(), Href: prev.Route}
		}
		if next != nil {
			p.Next = &theme.Link{Label: next.SidebarLabel(), Href: next.Route}
		}
	}
	return p, nil
}

func (b *Builder) onBrokenMarkdownLink(err error) error {
	switch b.Config.OnBrokenMarkdownLinks {
	case linkcheck.Throw:
		return err
	case linkcheck.Warn:
		klog.Warning(err.Error())
	case linkcheck.Log:
		klog.Info(err.Error())
	}
	return nil
}

// editURL is the docs editUrl followed by the doc path in the repository
func (b *Builder) editURL(d *docs.Doc) string {
	base := b.Config.Docs().EditURL
	if base == "" {
		return ""
	}
	dir := filepath.ToSlash(filepath.Base(filepath.Clean(b.Options.DocsDir)))
	u, err := link.Build(base, dir, d.Source)
	if err != nil {
		klog.Warningf("no edit link for %s: %v", d.Source, err)
		return ""
	}
	return u
}

func (b *Builder) staticFiles() ([]string, error) {
	dir := b.Options.StaticDir
	if dir == "" {
		return nil, nil
	}
	if _, err := b.Os.IsDir(dir); err != nil {
		if b.Os.IsNotExist(err) {
			klog.V(6).Infof("static directory %s not found", dir)
			return nil, nil
		}
		return nil, err
	}
	var files []string
	err := b.Os.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing static files failed: %w", err)
	}
	return files, nil
}
