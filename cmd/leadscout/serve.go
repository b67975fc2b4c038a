package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"leadscout-engine/internal/archive"
	"leadscout-engine/internal/classify"
	"leadscout-engine/internal/config"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/httpapi"
	"leadscout-engine/internal/metrics"
	"leadscout-engine/internal/poll"
	"leadscout-engine/internal/search"
	"leadscout-engine/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP engine",
	Long: `Starts the lead engine: HTTP API, SSE event stream, prometheus
metrics, the sqlite archive and the saved-search poller.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, userCfgPath, err := bootstrapConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	normalized, vr := config.NormalizeAndValidate(cfg)
	for _, warn := range vr.Warnings {
		log.Warn("config", zap.String("warning", warn))
	}
	if !vr.OK() {
		return fmt.Errorf("config %s invalid:\n- %s", userCfgPath, strings.Join(vr.Errors, "\n- "))
	}
	cfg = normalized

	var cfgVal atomic.Value
	cfgVal.Store(cfg)
	loadCfg := func() (config.Config, error) { return config.Load(userCfgPath) }

	metrics.RegisterLeadMetrics()

	st := store.New(log)
	hub := events.NewHub()

	var arc *archive.DB
	if cfg.Archive.Enabled {
		path := cfg.Archive.Filename
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.App.DataDir, path)
		}
		arc, err = archive.Open(path)
		if err != nil {
			return fmt.Errorf("archive open (%s): %w", path, err)
		}
		defer arc.Close()
		if err := archive.Migrate(arc.Pool); err != nil {
			return fmt.Errorf("archive migrate: %w", err)
		}
		log.Info("archive open", zap.String("path", path))
	}

	// Every new lead, from any source, passes through here: metrics,
	// write-through archive, SSE fan-out.
	onNew := func(l domain.Lead, src string) {
		metrics.LeadsIngestedTotal.WithLabelValues(string(l.LeadKind()), src).Inc()
		if arc != nil {
			added, err := archive.InsertLeadIgnore(arc.Pool, l, src)
			switch {
			case err != nil:
				metrics.ArchiveInsertsTotal.WithLabelValues("error").Inc()
				log.Warn("archive insert failed", zap.String("id", l.LeadID()), zap.Error(err))
			case added:
				metrics.ArchiveInsertsTotal.WithLabelValues("added").Inc()
			default:
				metrics.ArchiveInsertsTotal.WithLabelValues("duplicate").Inc()
			}
		}
		hub.Publish(events.MakeEvent("", events.TypeLeadCreated, 1, map[string]any{
			"id":     l.LeadID(),
			"kind":   string(l.LeadKind()),
			"source": src,
		}))
	}

	poller := poll.NewPoller(&cfgVal, st, hub, log, onNew)
	pollCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	poller.Start(pollCtx)

	deps := httpapi.Deps{
		Store:       st,
		Archive:     arc,
		Hub:         hub,
		Poller:      poller,
		Log:         log,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		NewOrchestrator: func(cfg config.Config) (*search.Orchestrator, error) {
			src, ok := poll.BuildSearchSource(cfg, log)
			if !ok {
				return nil, fmt.Errorf("%w: no result source enabled", domain.ErrSourceUnavailable)
			}
			orch := search.New(src, st, classify.Tagger{Extra: cfg.Tagging.RoleRules}, log)
			orch.OnNew = onNew
			return orch, nil
		},
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// The desktop shell stops the engine through POST /shutdown; the
	// token file keeps other local processes from doing the same.
	token, err := randomToken(16)
	if err != nil {
		return err
	}
	tokenPath := filepath.Join(cfg.App.DataDir, "shutdown.token")
	if err := os.WriteFile(tokenPath, []byte(token), 0o600); err != nil {
		return fmt.Errorf("shutdown token: %w", err)
	}
	defer os.Remove(tokenPath)

	outer := http.NewServeMux()
	outer.HandleFunc("/shutdown", shutdownHandler(&token, srv))
	outer.Handle("/", httpapi.NewRouter(deps))
	srv.Handler = outer

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("engine listening",
			zap.String("addr", "http://"+addr),
			zap.String("config", userCfgPath),
			zap.String("data_dir", cfg.App.DataDir),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
		<-errCh
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	}

	stopPoller()
	log.Info("engine stopped")
	return nil
}
