// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package consent

import (
	"html/template"
	"io"
	"net/http"
	"time"
)

const (
	// CookieName is the cookie recording the visitor decision
	CookieName = "filament_es_cookie_consent"
	// ExpiryDays is the lifetime of the decision cookie
	ExpiryDays = 365
	// DecisionField is the form field carrying the decision
	DecisionField = "decision"
	// Route is where the banner form posts, relative to the site base URL
	Route = "consent"
)

// State is the visitor's cookie-use decision
type State int

const (
	// Unknown means no decision has been recorded yet
	Unknown State = iota
	// Accepted means the visitor accepted cookies
	Accepted
	// Declined means the visitor declined cookies
	Declined
)

// Value returns the cookie value of s, empty for Unknown
func (s State) Value() string {
	switch s {
	case Accepted:
		return "accepted"
	case Declined:
		return "declined"
	}
	return ""
}

func (s State) String() string {
	if v := s.Value(); v != "" {
		return v
	}
	return "unknown"
}

// ParseState maps a cookie value to a State. Unrecognized values are Unknown.
func ParseState(value string) State {
	switch value {
	case Accepted.Value():
		return Accepted
	case Declined.Value():
		return Declined
	}
	return Unknown
}

// StateFromRequest reads the decision cookie of r
func StateFromRequest(r *http.Request) State {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Unknown
	}
	return ParseState(c.Value)
}

// ShouldShowPrompt reports whether the consent banner must be displayed
func ShouldShowPrompt(s State) bool {
	return s == Unknown
}

// NewCookie creates the decision cookie for s, valid ExpiryDays from now
func NewCookie(s State, path string, now time.Time) *http.Cookie {
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    s.Value(),
		Path:     path,
		Expires:  now.Add(ExpiryDays * 24 * time.Hour),
		MaxAge:   ExpiryDays * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	}
}

// Banner is the consent prompt fixed to the bottom of the viewport
type Banner struct {
	Text         string
	PrivacyLabel string
	PrivacyHref  string
	AcceptText   string
	DeclineText  string
	// Action is the endpoint receiving the decision form
	Action string
	// CookiePath is the path scope of the decision cookie
	CookiePath string
}

// NewBanner creates the site banner with routes resolved by route
func NewBanner(route func(string) string) Banner {
	return Banner{
		Text:         "🍪 Usamos cookies para mejorar la experiencia y analizar el tráfico.",
		PrivacyLabel: "Política de Privacidad",
		PrivacyHref:  route("privacy"),
		AcceptText:   "Aceptar",
		DeclineText:  "Rechazar",
		Action:       route(Route),
		CookiePath:   route(""),
	}
}

var bannerTemplate = template.Must(template.New("consent").Parse(`<div class="cookie-container" data-consent-cookie="{{ .CookieName }}" data-consent-days="{{ .ExpiryDays }}" data-consent-path="{{ .CookiePath }}">
  <form method="post" action="{{ .Action }}">
    <div class="cookie-content">{{ .Text }} <a href="{{ .PrivacyHref }}">{{ .PrivacyLabel }}</a></div>
    <div class="cookie-buttons">
      <button type="submit" name="{{ .DecisionField }}" value="{{ .Declined }}" class="cookie-decline">{{ .DeclineText }}</button>
      <button type="submit" name="{{ .DecisionField }}" value="{{ .Accepted }}" class="cookie-accept">{{ .AcceptText }}</button>
    </div>
  </form>
</div>
`))

// Render writes the banner markup
func (b Banner) Render(w io.Writer) error {
	return bannerTemplate.Execute(w, struct {
		Banner
		CookieName    string
		ExpiryDays    int
		DecisionField string
		Accepted      string
		Declined      string
	}{
		Banner:        b,
		CookieName:    CookieName,
		ExpiryDays:    ExpiryDays,
		DecisionField: DecisionField,
		Accepted:      Accepted.Value(),
		Declined:      Declined.Value(),
	})
}
