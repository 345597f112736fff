// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sync"

	"github.com/filamentenespanol/sitegen/pkg/components/consent"
	"github.com/filamentenespanol/sitegen/pkg/jobs"
	"github.com/filamentenespanol/sitegen/pkg/linkcheck"
	"github.com/filamentenespanol/sitegen/pkg/theme"
	"github.com/filamentenespanol/sitegen/pkg/writers"
	"k8s.io/klog/v2"
)

// Write renders the complete pages of site for a visitor without a consent
// decision, writes them with the theme assets and the static files, and
// checks the internal links of every page
func (b *Builder) Write(ctx context.Context, site *Site, w writers.Writer) error {
	if err := writeAssets(w); err != nil {
		return err
	}
	if err := b.writeStatic(site, w); err != nil {
		return err
	}

	checker := &linkcheck.Checker{Index: b.index(site)}
	var (
		mux    sync.Mutex
		broken []linkcheck.BrokenLink
	)
	tasks := make([]interface{}, 0, len(site.Pages)+1)
	for _, p := range site.Pages {
		tasks = append(tasks, p)
	}
	if site.NotFound != nil {
		tasks = append(tasks, site.NotFound)
	}
	job := &jobs.Job{
		ID:         "Write",
		MinWorkers: 1,
		MaxWorkers: b.workers(),
		FailFast:   b.Options.FailFast,
		Worker: jobs.WorkerFunc(func(ctx context.Context, task interface{}) *jobs.WorkerError {
			p := task.(*Page)
			var buf bytes.Buffer
			if err := site.Render(&buf, p, consent.Unknown); err != nil {
				return jobs.NewWorkerError(fmt.Errorf("rendering page %s failed: %w", p.File, err), 0)
			}
			if err := w.Write(path.Base(p.File), path.Dir(p.File), buf.Bytes()); err != nil {
				return jobs.NewWorkerError(err, 0)
			}
			if b.Config.OnBrokenLinks == linkcheck.Ignore {
				return nil
			}
			route := p.Route
			if route == "" {
				route = b.Config.Route(p.File)
			}
			found, err := checker.Check(route, buf.Bytes())
			if err != nil {
				return jobs.NewWorkerError(err, 0)
			}
			mux.Lock()
			broken = append(broken, found...)
			mux.Unlock()
			return nil
		}),
	}
	if err := job.Dispatch(ctx, tasks); err != nil {
		return err
	}
	if err := linkcheck.Report(b.Config.OnBrokenLinks, broken); err != nil {
		return fmt.Errorf("broken links found: %w", err)
	}
	klog.Infof("wrote %d pages, %d static files", len(tasks), len(site.StaticFiles))
	return nil
}

// index lists every site path a link may resolve to
func (b *Builder) index(site *Site) *linkcheck.Index {
	c := b.Config
	idx := linkcheck.NewIndex()
	for _, p := range site.Pages {
		idx.Add(p.Route)
	}
	if site.NotFound != nil {
		idx.Add(c.Route(site.NotFound.File))
	}
	for _, f := range site.StaticFiles {
		idx.Add(c.Route(f))
	}
	_ = fs.WalkDir(theme.Assets(), ".", func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			idx.Add(c.Route(path.Join(theme.AssetsDir, p)))
		}
		return err
	})
	return idx
}

func writeAssets(w writers.Writer) error {
	assets := theme.Assets()
	return fs.WalkDir(assets, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := fs.ReadFile(assets, p)
		if err != nil {
			return err
		}
		return w.Write(path.Base(p), path.Join(theme.AssetsDir, path.Dir(p)), content)
	})
}

func (b *Builder) writeStatic(site *Site, w writers.Writer) error {
	for _, f := range site.StaticFiles {
		content, err := b.Os.ReadFile(filepath.Join(b.Options.StaticDir, filepath.FromSlash(f)))
		if err != nil {
			return fmt.Errorf("reading static file %s failed: %w", f, err)
		}
		if err := w.Write(path.Base(f), path.Dir(f), content); err != nil {
			return err
		}
	}
	return nil
}
