package server

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"github.com/hnrobert/envportal/internal/auth"
	"github.com/hnrobert/envportal/internal/config"
	"github.com/hnrobert/envportal/internal/flow"
	"github.com/hnrobert/envportal/internal/flows"
	"github.com/hnrobert/envportal/internal/logger"
	"github.com/hnrobert/envportal/internal/metric"
	"github.com/hnrobert/envportal/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

type App struct {
	secret    []byte
	pages     map[string]*template.Template
	flows     *flows.Registry
	site      *config.Store
	instances *session.Store
	metrics   *metric.Metrics
	upgrader  websocket.Upgrader
}

type ViewData struct {
	Nav    config.Navigation
	Footer template.HTML

	// portal
	Intro template.HTML
	Flows []FlowLink

	// flow pages
	Form *FormView
}

type FlowLink struct {
	Title string
	Path  string
}

type FormView struct {
	Flow           string
	Title          string
	Intro          string
	SubmitLabel    string
	Fields         []FieldView
	Links          []flow.Link
	SubmitDisabled bool
	Flash          string
	FlashKind      string // ok|err|""
}

type FieldView struct {
	ID          string
	Label       string
	Type        string
	Placeholder string
	Value       string
	Required    bool
}

type appOptions struct {
	sitePath string
	secret   string
	registry *flows.Registry
}

func newApp(opts appOptions) (*App, error) {
	secretText := opts.secret
	if secretText == "" {
		// Tokens only need to outlive the process.
		s, err := auth.NewRandomSecretB64(32)
		if err != nil {
			return nil, err
		}
		secretText = s
	}

	registry := opts.registry
	if registry == nil {
		r, err := flows.NewRegistry(nil)
		if err != nil {
			return nil, err
		}
		registry = r
	}

	siteStore := config.NewStore(opts.sitePath)
	if err := siteStore.Ensure(); err != nil {
		logger.Warn("Could not create site config %s: %v", opts.sitePath, err)
	}
	site, err := siteStore.Get()
	if err != nil {
		logger.Warn("Using default site config: %v", err)
		site = config.DefaultSite()
	}

	base := template.New("layout.html").Funcs(template.FuncMap{
		"flowPath": func(n string) string { return flows.Path(flow.Name(n)) },
	})
	pages := map[string]*template.Template{}
	for _, page := range []string{"portal", "flow"} {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		// Each page file overrides the title/content blocks of the layout.
		if _, err := t.ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html"); err != nil {
			return nil, err
		}
		pages[page] = t
	}

	m := metric.New()
	return &App{
		secret:    auth.DecodeSecret(secretText),
		pages:     pages,
		flows:     registry,
		site:      siteStore,
		instances: session.NewStore(site.InstanceTTL, m.SessionHooks()),
		metrics:   m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     sameOrigin,
		},
	}, nil
}

func (a *App) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/{$}", a.handlePortal)
	for _, d := range a.flows.All() {
		mux.HandleFunc(flows.Path(d.Name), a.handleFlowPage(d.Name))
		mux.HandleFunc("/ws/"+string(d.Name), a.handleFlowSocket(d.Name))
	}

	mux.HandleFunc("/api/flows/{flow}", a.handleAPIInstance)
	mux.HandleFunc("/api/flows/{flow}/fields", a.requireInstance(a.handleAPIField))
	mux.HandleFunc("/api/flows/{flow}/submit", a.requireInstance(a.handleAPISubmit))
	mux.HandleFunc("/api/site", a.handleAPISite)
	mux.Handle("/metrics", a.metrics.Handler())

	mux.HandleFunc("/api/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{\"ok\":true}\n"))
	})

	return a.withInstanceContext(mux)
}

// siteConfig never fails; a broken file falls back to the defaults.
func (a *App) siteConfig() config.Site {
	site, err := a.site.Get()
	if err != nil {
		logger.Warn("Using default site config: %v", err)
		return config.DefaultSite()
	}
	return site
}

// isSignedIn has no session to consult yet, so the signed-out navigation is
// always shown.
func isSignedIn(*http.Request) bool {
	return false
}

func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}
