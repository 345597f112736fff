// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// ErrFrontMatterNotClosed is raised to signal
// that the rules for defining a frontmatter element
// in a markdown document have been violated
var ErrFrontMatterNotClosed = errors.New("missing closing frontmatter `---`")

// StripFrontMatter splits a provided document into front-matter
// and content. Only blank lines may precede the opening fence,
// otherwise the whole document is content.
func StripFrontMatter(b []byte) ([]byte, []byte, error) {
	var (
		offset  int
		fmStart = -1
	)
	for offset < len(b) {
		end := bytes.IndexByte(b[offset:], '\n')
		next := len(b)
		if end >= 0 {
			next = offset + end + 1
		}
		line := bytes.TrimSpace(b[offset:next])
		switch {
		case fmStart < 0 && len(line) == 0:
		case fmStart < 0 && string(line) == fence:
			fmStart = next
		case fmStart < 0:
			return nil, b, nil
		case string(line) == fence:
			return b[fmStart:offset], b[next:], nil
		}
		offset = next
	}
	if fmStart >= 0 {
		return nil, nil, ErrFrontMatterNotClosed
	}
	return nil, b, nil
}

// InsertFrontMatter prepends the content bytes with
// front matter enclosed in the standard marks ---
func InsertFrontMatter(fm []byte, content []byte) []byte {
	if len(fm) < 1 {
		return content
	}
	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	buf.Write(fm)
	if !bytes.HasSuffix(fm, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString(fence + "\n")
	buf.Write(content)
	return buf.Bytes()
}

// SplitDocument separates the front matter of a document and decodes it into fm
func SplitDocument(b []byte, fm interface{}) ([]byte, error) {
	rawFM, content, err := StripFrontMatter(b)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(rawFM)) == 0 {
		return content, nil
	}
	if err := yaml.Unmarshal(rawFM, fm); err != nil {
		return nil, fmt.Errorf("invalid frontmatter: %w", err)
	}
	return content, nil
}
