package service

import (
	"time"

	"github.com/pawhaven/petbattle/internal/game"
	"github.com/pawhaven/petbattle/internal/storage"
)

// mockRepo is an in-memory BattleRepo shared by the coordinator tests.
type mockRepo struct {
	pets    map[uint]game.Pet
	battles map[uint]*game.Battle
	nextID  uint

	turns      []game.BattleTurn
	points     map[string]int
	consumeErr error
	consumed   []string
	recordErr  error

	applied        int
	appliedCredits []storage.PointsCredit
	appliedPets    []storage.PetProgress
	updatedBattle  *game.Battle
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		pets:    make(map[uint]game.Pet),
		battles: make(map[uint]*game.Battle),
		points:  make(map[string]int),
		nextID:  1,
	}
}

func (m *mockRepo) GetTeamPets(ownerID string, petIDs []uint) ([]game.Pet, error) {
	var out []game.Pet
	for _, id := range petIDs {
		if p, ok := m.pets[id]; ok && p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) ListPetsByOwner(ownerID string) ([]game.Pet, error) {
	var out []game.Pet
	for _, p := range m.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) CreateBattle(b *game.Battle) error {
	b.ID = m.nextID
	m.nextID++
	m.battles[b.ID] = b
	return nil
}

// GetBattleByID hands out a deep copy the way a real repository hands
// out a fresh row, so mutations lost to a failed save never leak back.
func (m *mockRepo) GetBattleByID(id uint) (*game.Battle, error) {
	b, ok := m.battles[id]
	if !ok {
		return nil, ErrBattleNotFound
	}
	cp := *b
	cp.Sides = make([]game.Side, len(b.Sides))
	for i, s := range b.Sides {
		cp.Sides[i] = s
		cp.Sides[i].Combatants = append([]game.Combatant(nil), s.Combatants...)
	}
	return &cp, nil
}

func (m *mockRepo) RecordTurns(b *game.Battle, turns []game.BattleTurn) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.updatedBattle = b
	m.battles[b.ID] = b
	m.turns = append(m.turns, turns...)
	return nil
}

func (m *mockRepo) ConsumeItem(ownerID, itemKey string) error {
	if m.consumeErr != nil {
		return m.consumeErr
	}
	m.consumed = append(m.consumed, itemKey)
	return nil
}

func (m *mockRepo) AdjustPoints(userID string, delta int) error {
	if delta < 0 && m.points[userID] < -delta {
		return storage.ErrInsufficientPoints
	}
	m.points[userID] += delta
	return nil
}

func (m *mockRepo) ApplySettlement(b *game.Battle, credits []storage.PointsCredit, pets []storage.PetProgress) error {
	if b.Status == game.StatusCompleted {
		return storage.ErrAlreadySettled
	}
	b.Status = game.StatusCompleted
	b.Settled = true
	m.battles[b.ID] = b
	m.applied++
	m.appliedCredits = credits
	m.appliedPets = pets
	return nil
}

func (m *mockRepo) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var out []game.Battle
	for _, b := range m.battles {
		if b.Status == game.StatusActive && !b.ActionDeadline.IsZero() && !b.ActionDeadline.After(now) {
			out = append(out, *b)
		}
	}
	return out, nil
}
