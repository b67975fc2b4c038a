package poll

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leadscout-engine/internal/config"
	"leadscout-engine/internal/domain"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/store"
)

func cfgValue(cfg config.Config) *atomic.Value {
	v := &atomic.Value{}
	v.Store(cfg)
	return v
}

func TestPollOnceNothingEnabled(t *testing.T) {
	st := store.New(nil)

	added, err := PollOnce(context.Background(), config.Config{}, st, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Empty(t, st.All())
}

func TestPollOnceSampleSearches(t *testing.T) {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	cfg.Sources.Sample.Enabled = true
	cfg.Sources.Sample.Seed = 11
	cfg.Polling.Searches = []config.SavedSearch{
		{Kind: "person", Keywords: "software", Limit: 3, AutoTag: true},
		{Kind: "company", Keywords: "software", Limit: 2},
	}

	st := store.New(nil)
	var seen []string
	added, err := PollOnce(context.Background(), cfg, st, zap.NewNop(), func(l domain.Lead, src string) {
		assert.Equal(t, "sample", src)
		seen = append(seen, l.LeadID())
	})
	require.NoError(t, err)
	assert.Equal(t, 5, added)
	assert.Len(t, st.All(), 5)
	assert.Len(t, seen, 5)
}

func TestPollOnceBadSearchSurfacesError(t *testing.T) {
	var cfg config.Config
	cfg.Sources.Sample.Enabled = true
	cfg.Polling.Searches = []config.SavedSearch{
		{Kind: "person", Keywords: "", Limit: 2},
		{Kind: "person", Keywords: "software", Limit: 2},
	}

	st := store.New(nil)
	added, err := PollOnce(context.Background(), cfg, st, zap.NewNop(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Equal(t, 2, added)
}

func TestBuildSearchSourceSample(t *testing.T) {
	var cfg config.Config
	cfg.Sources.Sample.Enabled = true

	src, ok := BuildSearchSource(cfg, zap.NewNop())
	require.True(t, ok)
	assert.Equal(t, "sample", src.Name())

	_, ok = BuildSearchSource(config.Config{}, zap.NewNop())
	assert.False(t, ok)
}

func TestTryRunGuardsOverlap(t *testing.T) {
	p := NewPoller(cfgValue(config.Default()), store.New(nil), events.NewHub(), zap.NewNop(), nil)

	release := make(chan struct{})
	started := make(chan struct{})
	p.run = func(context.Context, config.Config, *store.LeadStore, *zap.Logger, func(domain.Lead, string)) (int, error) {
		close(started)
		<-release
		return 2, nil
	}

	done := make(chan bool, 1)
	go func() { done <- p.TryRun(context.Background()) }()

	<-started
	assert.False(t, p.TriggerAsync(context.Background()))
	assert.True(t, p.Status().Running)

	close(release)
	assert.True(t, <-done)

	st := p.Status()
	assert.False(t, st.Running)
	assert.Equal(t, 2, st.LastAdded)
	assert.Empty(t, st.LastError)
	assert.NotEmpty(t, st.LastOkAt)
}

func TestRunOnceRecordsFailure(t *testing.T) {
	p := NewPoller(cfgValue(config.Default()), store.New(nil), nil, zap.NewNop(), nil)
	p.run = func(context.Context, config.Config, *store.LeadStore, *zap.Logger, func(domain.Lead, string)) (int, error) {
		return 0, errors.New("imap: connection refused")
	}

	require.True(t, p.TryRun(context.Background()))

	st := p.Status()
	assert.Contains(t, st.LastError, "connection refused")
	assert.Empty(t, st.LastOkAt)
	assert.Zero(t, st.LastAdded)
	assert.NotEmpty(t, st.LastRunAt)
}

func TestPollPublishesFinishedEvent(t *testing.T) {
	hub := events.NewHub()
	ch := hub.Subscribe()
	t.Cleanup(func() { hub.Unsubscribe(ch) })

	p := NewPoller(cfgValue(config.Default()), store.New(nil), hub, zap.NewNop(), nil)
	p.run = func(context.Context, config.Config, *store.LeadStore, *zap.Logger, func(domain.Lead, string)) (int, error) {
		return 4, nil
	}

	require.True(t, p.TryRun(context.Background()))

	var e events.Event
	require.NoError(t, json.Unmarshal([]byte(<-ch), &e))
	assert.Equal(t, events.TypePollFinished, e.Type)
	assert.JSONEq(t, `{"added":4,"ok":true}`, string(e.Data))
}
