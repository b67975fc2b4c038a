package poll

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/metrics"
	"leadscout-engine/internal/scheduler"
	"leadscout-engine/internal/store"
)

// Status is the poller's last-run snapshot, served by the HTTP API.
type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastAdded int    `json:"last_added"`
	Running   bool   `json:"running"`
}

// Poller drives PollOnce on a ticker and on manual triggers. At most one
// run is in flight at a time; a trigger that loses the race is rejected,
// never queued.
type Poller struct {
	cfgVal *atomic.Value
	store  *store.LeadStore
	hub    *events.Hub
	log    *zap.Logger
	onNew  func(domain.Lead, string)

	status  atomic.Value // Status
	running atomic.Bool

	// run is swappable in tests; defaults to PollOnce.
	run func(ctx context.Context, cfg config.Config, st *store.LeadStore, log *zap.Logger, onNew func(domain.Lead, string)) (int, error)
}

func NewPoller(cfgVal *atomic.Value, st *store.LeadStore, hub *events.Hub, log *zap.Logger, onNew func(domain.Lead, string)) *Poller {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Poller{
		cfgVal: cfgVal,
		store:  st,
		hub:    hub,
		log:    log,
		onNew:  onNew,
		run:    PollOnce,
	}
	p.status.Store(Status{})
	return p
}

func (p *Poller) Status() Status {
	return p.status.Load().(Status)
}

// TryRun runs one poll cycle unless one is already in flight. Reports
// whether this call started the run.
func (p *Poller) TryRun(ctx context.Context) bool {
	if !p.running.CompareAndSwap(false, true) {
		return false
	}
	defer p.running.Store(false)
	p.runOnce(ctx)
	return true
}

// TriggerAsync starts one poll cycle in the background for the manual
// endpoint. Reports whether this call started the run.
func (p *Poller) TriggerAsync(ctx context.Context) bool {
	if !p.running.CompareAndSwap(false, true) {
		return false
	}
	go func() {
		defer p.running.Store(false)
		p.runOnce(ctx)
	}()
	return true
}

// Start launches the ticker loop until ctx is done. Ticks are skipped
// while polling is disabled or a run is still in flight; the interval
// tracks config changes between ticks.
func (p *Poller) Start(ctx context.Context) {
	go scheduler.Every(ctx, p.interval, "poll", p.log, func(ctx context.Context) error {
		cfg, ok := p.config()
		if !ok || !cfg.Polling.Enabled {
			return nil
		}
		p.TryRun(ctx)
		return nil
	})
}

func (p *Poller) runOnce(ctx context.Context) {
	cfg, ok := p.config()
	if !ok {
		return
	}

	st := p.Status()
	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	p.status.Store(st)

	added, err := p.run(ctx, cfg, p.store, p.log, p.onNew)

	st = p.Status()
	st.Running = false
	st.LastAdded = added

	if err != nil {
		st.LastError = err.Error()
		metrics.PollRunsTotal.WithLabelValues("error").Inc()
		p.log.Error("poll failed", zap.Error(err))
	} else {
		st.LastError = ""
		st.LastOkAt = time.Now().Format(time.RFC3339)
		metrics.PollRunsTotal.WithLabelValues("ok").Inc()
		p.log.Info("poll ok", zap.Int("added", added))
	}
	metrics.PollLastNewLeads.Set(float64(added))
	p.status.Store(st)

	if p.hub != nil {
		p.hub.Publish(events.MakeEvent("", events.TypePollFinished, 1, map[string]any{
			"added": added,
			"ok":    err == nil,
		}))
	}
}

func (p *Poller) config() (config.Config, bool) {
	v := p.cfgVal.Load()
	if v == nil {
		return config.Config{}, false
	}
	return v.(config.Config), true
}

func (p *Poller) interval() time.Duration {
	cfg, ok := p.config()
	if !ok || cfg.Polling.IntervalSeconds <= 0 {
		return time.Duration(config.DefaultPollSeconds) * time.Second
	}
	return time.Duration(cfg.Polling.IntervalSeconds) * time.Second
}
