package service

import (
	"time"

	"github.com/pawhaven/petbattle/internal/game"
	"github.com/pawhaven/petbattle/internal/storage"
)

// BattleRepo is the minimal repository interface required by the battle
// coordinator. Using a small interface simplifies testing.
type BattleRepo interface {
	GetTeamPets(ownerID string, petIDs []uint) ([]game.Pet, error)
	ListPetsByOwner(ownerID string) ([]game.Pet, error)
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	RecordTurns(b *game.Battle, turns []game.BattleTurn) error
	ConsumeItem(ownerID, itemKey string) error
	AdjustPoints(userID string, delta int) error
	ApplySettlement(b *game.Battle, credits []storage.PointsCredit, pets []storage.PetProgress) error
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)
}

// ItemCatalog maps item keys to their configured battle effects. Loaded
// from the server config at startup; never persisted.
type ItemCatalog map[string]game.Item

// Notifier pushes battle events to connected clients. Delivery is
// fire-and-forget: the coordinator never depends on it succeeding.
type Notifier interface {
	BattleTurn(battleID uint, turn *game.BattleTurn)
	BattleStatus(b *game.Battle)
}

// NoopNotifier satisfies Notifier for tests and headless runs.
type NoopNotifier struct{}

func (NoopNotifier) BattleTurn(uint, *game.BattleTurn) {}
func (NoopNotifier) BattleStatus(*game.Battle)         {}
