package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leadscout-engine/internal/metrics"
)

// NewRouter assembles the full API surface.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Recover(d.Log))
	r.Use(AccessLog(d.Log))
	r.Use(Cors)
	r.Use(metrics.Middleware())

	hh := HealthHandler{}
	r.Get("/", hh.Index)
	r.Get("/health", hh.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	eh := EventsHandler{Hub: d.Hub}
	r.Get("/events", eh.ServeSSE)

	sh := SearchHandler{Deps: d}
	lh := LeadsHandler{Store: d.Store, Hub: d.Hub, Archive: d.Archive}
	rh := ReportHandler{Store: d.Store, CfgVal: d.CfgVal}
	ph := PersistHandler{Store: d.Store, CfgVal: d.CfgVal}
	ah := ArchiveHandler{Archive: d.Archive}
	plh := PollHandler{Poller: d.Poller}
	ch := ConfigHandler{CfgVal: d.CfgVal, UserCfgPath: d.UserCfgPath, LoadCfg: d.LoadCfg}
	sech := SecretsHandler{CfgVal: d.CfgVal}

	r.Get("/config", ch.Get)
	r.Put("/config", ch.Put)
	r.Get("/config/path", ch.Path)
	r.Get("/config/validate", ch.Validate)

	r.Route("/api", func(r chi.Router) {
		r.Post("/search/people", sh.People)
		r.Post("/search/companies", sh.Companies)
		r.Post("/search/combined", sh.Combined)
		r.Post("/search/name", sh.ByName)

		r.Get("/leads", lh.List)
		r.Get("/leads/{id}", lh.Get)
		r.Get("/leads/tags/{tag}", lh.ByTag)
		r.Get("/leads/categories/{category}", lh.ByCategory)
		r.Post("/tag", lh.Tag)

		r.Get("/report", rh.Summary)
		r.Post("/report/export", rh.Export)

		r.Post("/save", ph.Save)
		r.Post("/load", ph.Load)

		r.Get("/archive", ah.Recent)
		r.Get("/archive/stats", ah.Stats)

		r.Get("/poll/status", plh.Status)
		r.Post("/poll/run", plh.Run)

		r.Post("/secrets/imap", sech.SetIMAPPassword)
		r.Post("/secrets/remote-token", sech.SetRemoteToken)
	})

	return r
}
