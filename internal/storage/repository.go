package storage

import (
	"errors"
	"time"

	"github.com/pawhaven/petbattle/internal/game"
)

var (
	// ErrAlreadySettled is returned by ApplySettlement when the battle row
	// already carries the completed status, so the payout must not run again.
	ErrAlreadySettled = errors.New("battle is already settled")
	// ErrItemUnavailable is returned by ConsumeItem when the owner has no
	// remaining stock of the requested item.
	ErrItemUnavailable = errors.New("no such item in inventory")
	// ErrInsufficientPoints is returned by AdjustPoints when a debit would
	// push a profile's balance below zero.
	ErrInsufficientPoints = errors.New("not enough pet points")
)

// PointsCredit is one profile-level settlement line: points to add plus
// the aggregate win/played counters to bump.
type PointsCredit struct {
	UserID string
	Points int
	Won    bool
}

// PetProgress is the post-rollover level and experience to write back to
// one pet row at settlement.
type PetProgress struct {
	PetID      uint
	Level      int
	Experience int
}

type Repository interface {
	// Pets
	ListPetsByOwner(ownerID string) ([]game.Pet, error)
	GetTeamPets(ownerID string, petIDs []uint) ([]game.Pet, error)
	CreatePet(p *game.Pet) error

	// Battles
	CreateBattle(b *game.Battle) error
	GetBattleByID(id uint) (*game.Battle, error)
	// RecordTurns saves the battle aggregate and its new turn-log rows in
	// one transaction. A failed save leaves neither behind, so a retry
	// recomputes the same turn numbers without colliding with orphan rows.
	RecordTurns(b *game.Battle, turns []game.BattleTurn) error
	// FindTimedOutBattles returns battles that are still active and whose
	// action deadline is at or before the provided time. The caller
	// decides how to resolve them.
	FindTimedOutBattles(now time.Time) ([]game.Battle, error)

	// Turn log, append-only and ordered by turn number.
	ListTurns(battleID uint) ([]game.BattleTurn, error)

	// Inventory
	ConsumeItem(ownerID, itemKey string) error
	GrantItem(ownerID, itemKey string, quantity int) error
	ListInventory(ownerID string) ([]game.InventoryItem, error)

	// Profiles
	UpsertProfile(userID, username, email string) error
	GetProfileByUserID(userID string) (*game.Profile, error)
	// AdjustPoints adds delta to a profile's balance; debits that would go
	// negative fail with ErrInsufficientPoints.
	AdjustPoints(userID string, delta int) error
	GetTopProfiles(limit int) ([]game.Profile, error)

	// ApplySettlement flips the battle to completed and writes every
	// payout line in one transaction. A battle that is already completed
	// fails the whole transaction with ErrAlreadySettled.
	ApplySettlement(b *game.Battle, credits []PointsCredit, pets []PetProgress) error
}
