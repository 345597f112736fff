// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"html/template"
	"io"
	"strconv"
)

const (
	// DefaultProgress is shown when no value is supplied
	DefaultProgress = 25
	// ContributingURL is the contribution guide of the translation project
	ContributingURL = "https://github.com/filamentenespanol/documentacion/blob/main/CONTRIBUTING.md"
	// IssuesURL lists the pending translation tasks
	IssuesURL = "https://github.com/filamentenespanol/documentacion/issues"
)

// Banner is the translation progress banner. Progress is a percentage
// and is rendered as given, values outside 0-100 are not clamped.
type Banner struct {
	Progress float64
}

// New creates a banner for progress, defaulting to DefaultProgress when nil
func New(progress *float64) Banner {
	if progress == nil {
		return Banner{Progress: DefaultProgress}
	}
	return Banner{Progress: *progress}
}

// Percent formats the progress value without trailing zeros
func (b Banner) Percent() string {
	return strconv.FormatFloat(b.Progress, 'f', -1, 64)
}

// Label is the summary text of the banner
func (b Banner) Label() string {
	return b.Percent() + "% completado"
}

// Width is the CSS width of the bar fill
func (b Banner) Width() string {
	return b.Percent() + "%"
}

var bannerTemplate = template.Must(template.New("progress").Parse(`<section class="translationProgressSection">
  <div class="container">
    <div class="alert alert--warning progressAlert">
      <div class="progressHeader">
        <h3 class="progressTitle">🚧 Traducción en Progreso</h3>
      </div>
      <p class="progressDescription">
        Este proyecto está siendo traducido activamente por la comunidad.
        Actualmente tenemos un <strong>{{ .Label }}</strong>.
      </p>
      <div class="progressBarContainer">
        <div class="progressBarBackground">
          <div class="progressBar" style="width: {{ .Width }}">
            <span class="progressText">{{ .Width }}</span>
          </div>
        </div>
      </div>
      <div class="callToAction">
        <p>
          <strong>¿Quieres ayudar?</strong> Consulta nuestra
          <a href="{{ .ContributingURL }}" target="_blank" rel="noopener noreferrer" class="contributeLink">guía de contribución</a>
          o revisa las
          <a href="{{ .IssuesURL }}" target="_blank" rel="noopener noreferrer" class="contributeLink">tareas pendientes</a>.
        </p>
      </div>
    </div>
  </div>
</section>
`))

// Render writes the banner markup
func (b Banner) Render(w io.Writer) error {
	return bannerTemplate.Execute(w, struct {
		Label           string
		Width           string
		ContributingURL string
		IssuesURL       string
	}{
		Label:           b.Label(),
		Width:           b.Width(),
		ContributingURL: ContributingURL,
		IssuesURL:       IssuesURL,
	})
}
