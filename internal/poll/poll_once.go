package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"leadscout-engine/internal/classify"
	"leadscout-engine/internal/config"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/search"
	"leadscout-engine/internal/secrets"
	"leadscout-engine/internal/source"
	"leadscout-engine/internal/source/mailbox"
	"leadscout-engine/internal/source/remote"
	"leadscout-engine/internal/source/sample"
	"leadscout-engine/internal/store"
)

type laneResult struct {
	name  string
	added int
}

// PollOnce replays every saved search and drains the alert mailbox, each
// in its own lane. Lane failures are logged and joined into the returned
// error; one broken lane never hides what the others added.
func PollOnce(ctx context.Context, cfg config.Config, st *store.LeadStore, log *zap.Logger, onNew func(domain.Lead, string)) (added int, err error) {
	type lane struct {
		name    string
		timeout time.Duration
		run     func(ctx context.Context) (int, error)
	}

	var lanes []lane

	if src, ok := BuildSearchSource(cfg, log); ok && len(cfg.Polling.Searches) > 0 {
		lanes = append(lanes, lane{
			name:    "searches",
			timeout: 5 * time.Minute,
			run: func(ctx context.Context) (int, error) {
				return runSearches(ctx, cfg, src, st, log, onNew)
			},
		})
	}

	if cfg.Sources.Mailbox.Enabled {
		lanes = append(lanes, lane{
			name:    "mailbox",
			timeout: 2 * time.Minute,
			run: func(ctx context.Context) (int, error) {
				return runMailbox(ctx, cfg, st, onNew, log)
			},
		})
	}

	// Nothing enabled, skip quietly.
	if len(lanes) == 0 {
		return 0, nil
	}

	var g errgroup.Group

	results := make(chan laneResult, len(lanes))
	failures := make(chan error, len(lanes))

	for _, l := range lanes {
		l := l

		g.Go(func() error {
			lctx, cancel := context.WithTimeout(ctx, l.timeout)
			defer cancel()

			log.Info("poll lane running", zap.String("lane", l.name))
			n, err := l.run(lctx)
			// Leads ingested before a failure are already in the store,
			// so the count is reported even when the lane errors.
			results <- laneResult{name: l.name, added: n}
			if err != nil {
				log.Error("poll lane failed", zap.String("lane", l.name), zap.Error(err))
				failures <- fmt.Errorf("%s: %w", l.name, err)
			}
			return nil
		})
	}

	_ = g.Wait()
	close(results)
	close(failures)

	for r := range results {
		log.Info("poll lane done", zap.String("lane", r.name), zap.Int("added", r.added))
		added += r.added
	}

	var laneErrs []error
	for e := range failures {
		laneErrs = append(laneErrs, e)
	}
	return added, errors.Join(laneErrs...)
}

// BuildSearchSource picks the result source saved searches run against.
// Remote wins over sample when both are enabled.
func BuildSearchSource(cfg config.Config, log *zap.Logger) (source.Source, bool) {
	switch {
	case cfg.Sources.Remote.Enabled:
		token, err := secrets.GetRemoteToken(secrets.RemoteKeyringAccount(cfg))
		if err != nil {
			log.Warn("remote token missing, requests go unauthenticated", zap.Error(err))
		}
		limiter := remote.NewHostLimiter(cfg.Sources.Remote.RatePerSec, cfg.Sources.Remote.Burst)
		return remote.New(remote.Config{
			BaseURL: cfg.Sources.Remote.BaseURL,
			Token:   token,
			Timeout: time.Duration(cfg.Sources.Remote.TimeoutSeconds) * time.Second,
		}, limiter, log), true
	case cfg.Sources.Sample.Enabled:
		return sample.New(cfg.Sources.Sample.Seed), true
	}
	return nil, false
}

func runSearches(ctx context.Context, cfg config.Config, src source.Source, st *store.LeadStore, log *zap.Logger, onNew func(domain.Lead, string)) (int, error) {
	orch := search.New(src, st, classify.Tagger{Extra: cfg.Tagging.RoleRules}, log)
	orch.OnNew = onNew

	added := 0
	var errs []error
	for _, s := range cfg.Polling.Searches {
		p := search.Params{
			Keywords: s.Keywords,
			Location: s.Location,
			Industry: s.Industry,
			Size:     s.Size,
			Limit:    s.Limit,
			AutoTag:  s.AutoTag,
		}

		if s.Kind == "company" {
			companies, err := orch.SearchCompanies(ctx, p)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			added += len(companies)
			continue
		}

		people, err := orch.SearchPeople(ctx, p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		added += len(people)
	}
	return added, errors.Join(errs...)
}

func runMailbox(ctx context.Context, cfg config.Config, st *store.LeadStore, onNew func(domain.Lead, string), log *zap.Logger) (int, error) {
	password, err := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(cfg))
	if err != nil {
		return 0, err
	}

	res, err := mailbox.RunOnce(ctx, cfg, password, log)
	if err != nil {
		return 0, err
	}
	if len(res.Records) == 0 {
		return 0, nil
	}

	leads, err := st.Ingest(domain.KindPerson, res.Records)
	if err != nil {
		return 0, err
	}
	if onNew != nil {
		for _, l := range leads {
			onNew(l, "mailbox")
		}
	}
	return len(leads), nil
}
