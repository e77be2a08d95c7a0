package api

import (
	"time"

	"github.com/pawhaven/petbattle/internal/notify"
	"github.com/pawhaven/petbattle/internal/service"
	"github.com/pawhaven/petbattle/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo          storage.Repository
	locks         *service.BattleLocks
	hub           *notify.Hub
	items         service.ItemCatalog
	actionTimeout time.Duration
}

// NewBattleHandler creates a BattleHandler with the given repository,
// notification hub, configured item catalog and per-turn action timeout.
func NewBattleHandler(repo storage.Repository, hub *notify.Hub, items service.ItemCatalog, actionTimeout time.Duration) *BattleHandler {
	return &BattleHandler{
		repo:          repo,
		locks:         service.NewBattleLocks(),
		hub:           hub,
		items:         items,
		actionTimeout: actionTimeout,
	}
}
