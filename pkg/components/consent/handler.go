// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package consent

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"k8s.io/klog/v2"
)

// Handler records consent decisions posted by the banner form
type Handler struct {
	// CookiePath scopes the cookie, usually the site base URL
	CookiePath string
	// Now is the clock used for the cookie expiry
	Now func() time.Time
}

// ServeHTTP sets the decision cookie and redirects back to the referring page
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	state := ParseState(r.PostFormValue(DecisionField))
	if state == Unknown {
		http.Error(w, "decision must be accepted or declined", http.StatusBadRequest)
		return
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	http.SetCookie(w, NewCookie(state, h.CookiePath, now()))
	klog.V(6).Infof("consent %s recorded", state)
	http.Redirect(w, r, h.redirectTarget(r), http.StatusSeeOther)
}

func (h *Handler) redirectTarget(r *http.Request) string {
	target := h.CookiePath
	if target == "" {
		target = "/"
	}
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" {
		return target
	}
	// only same-host referrers are followed
	if ref.Host != "" && ref.Host != r.Host {
		return target
	}
	// browsers read "//host" and "/\\host" as a different origin
	if !strings.HasPrefix(ref.Path, target) || strings.HasPrefix(ref.Path, "//") || strings.HasPrefix(ref.Path, "/\\") {
		return target
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
