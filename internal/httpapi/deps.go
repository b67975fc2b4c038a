package httpapi

import (
	"sync/atomic"

	"go.uber.org/zap"

	"leadscout-engine/internal/archive"
	"leadscout-engine/internal/config"
	"leadscout-engine/internal/events"
	"leadscout-engine/internal/poll"
	"leadscout-engine/internal/search"
	"leadscout-engine/internal/store"
)

type Deps struct {
	Store   *store.LeadStore
	Archive *archive.DB // nil when the archive is disabled
	Hub     *events.Hub
	Poller  *poll.Poller
	Log     *zap.Logger

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Search entrypoint (inject for testability)
	NewOrchestrator func(cfg config.Config) (*search.Orchestrator, error)
}
