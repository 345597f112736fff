// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package writers

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"k8s.io/klog/v2"
)

// DryRunWriter is the functional interface for working
// with dry run writers
type DryRunWriter interface {
	// GetWriter creates DryRunWriters writing to the
	// same backend but for different roots
	GetWriter(root string) Writer
	// Flush wraps up dryrun writing and flushes
	// results to the underlying writer (e.g. os.Stdout)
	Flush() bool
}

type dryRunWriter struct {
	Writer io.Writer
	mux    sync.Mutex
	files  []*file
	t1     time.Time
}

type file struct {
	path string
	size int
}

type writer struct {
	root    string
	factory *dryRunWriter
}

// NewDryRunWritersFactory creates factory for DryRunWriters
// writing to the same backend but for different roots
func NewDryRunWritersFactory(w io.Writer) DryRunWriter {
	return &dryRunWriter{
		Writer: w,
		files:  []*file{},
		t1:     time.Now(),
	}
}

func (d *dryRunWriter) GetWriter(root string) Writer {
	return &writer{
		root:    root,
		factory: d,
	}
}

func (w *writer) Write(name, p string, content []byte) error {
	f := &file{
		path: path.Join(w.root, p, name),
		size: len(content),
	}
	w.factory.mux.Lock()
	defer w.factory.mux.Unlock()
	w.factory.files = append(w.factory.files, f)
	return nil
}

// Flush formats and writes the dry-run result to the
// underlying writer
func (d *dryRunWriter) Flush() bool {
	var b bytes.Buffer
	d.mux.Lock()
	defer d.mux.Unlock()

	sort.Slice(d.files, func(i, j int) bool { return d.files[i].path < d.files[j].path })
	format(d.files, &b)

	var total int
	for _, f := range d.files {
		total += f.size
	}
	b.WriteString(fmt.Sprintf("\n%d files, %d bytes\n", len(d.files), total))
	b.WriteString(fmt.Sprintf("Build finished in %f seconds\n", time.Since(d.t1).Seconds()))

	if _, err := d.Writer.Write(b.Bytes()); err != nil {
		klog.Errorf("writing dry run results failed: %v", err)
		return false
	}
	return true
}

// format writes files as an indented tree. Files must be sorted by path.
func format(files []*file, b *bytes.Buffer) {
	seen := map[string]bool{}
	for _, f := range files {
		segments := strings.Split(f.path, "/")
		for i, s := range segments {
			p := strings.Join(segments[:i+1], "/")
			if seen[p] {
				continue
			}
			seen[p] = true
			b.WriteString(fmt.Sprintf("%s%s\n", strings.Repeat("  ", i), s))
		}
	}
}
