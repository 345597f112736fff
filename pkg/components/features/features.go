// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package features

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/filamentenespanol/sitegen/pkg/markdown"
)

// Visual is the illustration of a feature card. It is one of
// NoVisual, ImageVisual or GraphicVisual.
type Visual interface {
	kind() string
}

// NoVisual renders no illustration
type NoVisual struct{}

// ImageVisual references an image relative to the site root
type ImageVisual struct {
	Src string
}

// GraphicVisual is inline vector markup
type GraphicVisual struct {
	Name string
	SVG  template.HTML
}

func (NoVisual) kind() string      { return "" }
func (ImageVisual) kind() string   { return "image" }
func (GraphicVisual) kind() string { return "graphic" }

// Item is one card of the homepage feature grid
type Item struct {
	Title  string
	Visual Visual
	// Description is a markdown fragment
	Description string
}

var items = []Item{
	{
		Title:  "Traducción Fiel",
		Visual: ImageVisual{Src: "img/traduccion.png"},
		Description: "Mantenemos una traducción fiel y actualizada de la documentación oficial " +
			"de Filament v4, respetando la estructura y el contenido original.",
	},
	{
		Title:  "Comunidad Hispanohablante",
		Visual: ImageVisual{Src: "img/fix.png"},
		Description: "Creado por y para la comunidad de desarrolladores que hablan español. " +
			"Colabora con nosotros a través de `issues` y `pull requests`.",
	},
	{
		Title:  "Código Abierto",
		Visual: ImageVisual{Src: "img/opensource.png"},
		Description: "Este proyecto es completamente open source. Puedes contribuir, " +
			"reportar errores o sugerir mejoras en nuestro repositorio de GitHub.",
	},
}

// Items returns the fixed list of homepage features
func Items() []Item {
	return append([]Item(nil), items...)
}

// Validate checks the item has a title and an illustration
func (i Item) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("feature title is required")
	}
	if i.Visual == nil || i.Visual.kind() == "" {
		return fmt.Errorf("feature %q has no image or graphic", i.Title)
	}
	return nil
}

// Grid renders feature items in a three column layout
type Grid struct {
	Items []Item
	// Resolve maps image sources to site paths
	Resolve func(string) string
}

// New creates the homepage grid over the fixed feature list
func New(resolve func(string) string) *Grid {
	return &Grid{Items: Items(), Resolve: resolve}
}

type card struct {
	Title       string
	Kind        string
	Src         string
	SVG         template.HTML
	Description template.HTML
}

var gridTemplate = template.Must(template.New("features").Parse(`<section class="features">
  <div class="container">
    <div class="row">
{{- range . }}
      <div class="col col--4">
        <div class="text--center">
{{- if eq .Kind "image" }}
          <img src="{{ .Src }}" class="featureImg" alt="{{ .Title }}">
{{- else if eq .Kind "graphic" }}
          <span class="featureSvg" role="img" aria-label="{{ .Title }}">{{ .SVG }}</span>
{{- end }}
        </div>
        <div class="text--center padding-horiz--md">
          <h3>{{ .Title }}</h3>
          <p>{{ .Description }}</p>
        </div>
      </div>
{{- end }}
    </div>
  </div>
</section>
`))

// Render writes the grid, one card per item
func (g *Grid) Render(w io.Writer) error {
	cards := make([]card, 0, len(g.Items))
	for _, it := range g.Items {
		desc, err := markdown.RenderInline(it.Description)
		if err != nil {
			return fmt.Errorf("feature %q: %w", it.Title, err)
		}
		c := card{Title: it.Title, Description: desc}
		switch v := it.Visual.(type) {
		case ImageVisual:
			c.Kind, c.Src = v.kind(), v.Src
			if g.Resolve != nil {
				c.Src = g.Resolve(v.Src)
			}
		case GraphicVisual:
			c.Kind, c.SVG = v.kind(), v.SVG
		}
		cards = append(cards, c)
	}
	return gridTemplate.Execute(w, cards)
}
