package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/hnrobert/envportal/internal/flow"
	"github.com/hnrobert/envportal/internal/flows"
	"github.com/hnrobert/envportal/internal/logger"
)

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func (a *App) baseData(r *http.Request) *ViewData {
	site := a.siteConfig()
	return &ViewData{
		Nav:    site.Navigation(isSignedIn(r)),
		Footer: RenderMarkdown(site.FooterMarkdown),
	}
}

func (a *App) handlePortal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	data := a.baseData(r)
	data.Intro = RenderMarkdown(a.siteConfig().PortalMarkdown)
	for _, d := range a.flows.All() {
		data.Flows = append(data.Flows, FlowLink{Title: d.Title, Path: flows.Path(d.Name)})
	}
	a.renderPage(w, "portal", data)
}

// handleFlowPage serves one flow. GET mounts a fresh instance and renders it.
// POST is the no-script path: a fresh instance receives every posted field in
// declaration order, then one submit signal.
func (a *App) handleFlowPage(n flow.Name) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		ctrl, err := a.flows.Start(n, flow.WithObserver(a.observer("page", remoteIP(r))))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if r.Method == http.MethodPost {
			_ = r.ParseForm()
			applyForm(ctrl, r)
		}
		data := a.baseData(r)
		data.Form = formView(ctrl.Definition(), ctrl.Snapshot())
		a.renderPage(w, "flow", data)
	}
}

func applyForm(ctrl *flow.Controller, r *http.Request) {
	for _, f := range ctrl.Definition().Fields {
		if vals, ok := r.PostForm[f.ID]; ok && len(vals) > 0 {
			ctrl.SetField(f.ID, vals[0])
		}
	}
	keyCode, _ := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("keyCode")))
	which, _ := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("which")))
	if keyCode != 0 || which != 0 {
		ctrl.KeyPress(flow.KeyEvent{KeyCode: keyCode, Which: which})
		return
	}
	ctrl.Activate()
}

func formView(d flow.Definition, snap flow.Snapshot) *FormView {
	v := &FormView{
		Flow:           string(d.Name),
		Title:          d.Title,
		Intro:          d.Intro,
		SubmitLabel:    d.SubmitLabel,
		Links:          d.Links,
		SubmitDisabled: snap.SubmitDisabled,
		Flash:          snap.Message,
	}
	if snap.Message != "" {
		v.FlashKind = "ok"
		if snap.IsError {
			v.FlashKind = "err"
		}
	}
	for _, f := range d.Fields {
		fv := FieldView{
			ID:          f.ID,
			Label:       f.Label,
			Type:        string(f.Type),
			Placeholder: f.Placeholder,
			Required:    d.IsRequired(f.ID),
		}
		if !f.Secret() {
			fv.Value = snap.Fields.Get(f.ID)
		}
		v.Fields = append(v.Fields, fv)
	}
	return v
}

func (a *App) renderPage(w http.ResponseWriter, page string, data *ViewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	t := a.pages[page]
	if t == nil {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		logger.Error("renderPage template execution failed for %s: %v", page, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
