package service

import (
	"errors"
	"testing"
	"time"

	"github.com/pawhaven/petbattle/internal/game"
	"github.com/pawhaven/petbattle/internal/storage"
)

func fighter(name string, hp int) game.Combatant {
	return game.Combatant{PetName: name, Element: game.Light, MaxHealth: hp, CurrentHealth: hp,
		Attack: 20, Defense: 5, Speed: 10}
}

func pvpBattle(mr *mockRepo) *game.Battle {
	b := &game.Battle{
		Status: game.StatusActive, Phase: game.PhaseInProgress,
		Weather: game.WeatherClear, Seed: 42,
		Sides: []game.Side{
			{UserID: "u1", Role: game.RoleAttacker, Combatants: []game.Combatant{fighter("A", 500)}},
			{UserID: "u2", Role: game.RoleDefender, Combatants: []game.Combatant{fighter("B", 500)}},
		},
	}
	_ = mr.CreateBattle(b)
	return b
}

func aiBattle(mr *mockRepo) *game.Battle {
	b := &game.Battle{
		Status: game.StatusActive, Phase: game.PhaseInProgress,
		Weather: game.WeatherClear, Seed: 42, IsAIBattle: true,
		Sides: []game.Side{
			{UserID: "u1", Role: game.RoleAttacker, Combatants: []game.Combatant{fighter("A", 500)}},
			{UserID: AIOpponentID, Role: game.RoleDefender, Combatants: []game.Combatant{fighter("B", 500)}},
		},
	}
	_ = mr.CreateBattle(b)
	return b
}

func TestSubmitTurn_ResolvesAndLogs(t *testing.T) {
	mr := newMockRepo()
	b := pvpBattle(mr)
	locks := NewBattleLocks()

	got, res, err := SubmitTurn(mr, NoopNotifier{}, locks, nil, b.ID, "u1", TurnRequest{Action: game.ActionAttack}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || res.Actor != game.RoleAttacker {
		t.Fatalf("expected an attacker turn result, got %+v", res)
	}
	if len(mr.turns) != 1 || mr.turns[0].TurnNumber != 1 {
		t.Fatalf("expected one logged turn numbered 1, got %+v", mr.turns)
	}
	if got.TurnCount != 1 {
		t.Fatalf("expected turn count 1, got %d", got.TurnCount)
	}
	if mr.updatedBattle == nil {
		t.Fatalf("expected the battle to be persisted")
	}
	if got.ActionDeadline.IsZero() {
		t.Fatalf("expected the deadline to reset for the next turn")
	}
}

func TestSubmitTurn_AlternatesTurns(t *testing.T) {
	mr := newMockRepo()
	b := pvpBattle(mr)
	locks := NewBattleLocks()

	if _, _, err := SubmitTurn(mr, NoopNotifier{}, locks, nil, b.ID, "u2", TurnRequest{Action: game.ActionAttack}, time.Minute); err != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn for the defender opening, got %v", err)
	}
	if _, _, err := SubmitTurn(mr, NoopNotifier{}, locks, nil, b.ID, "u1", TurnRequest{Action: game.ActionAttack}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := SubmitTurn(mr, NoopNotifier{}, locks, nil, b.ID, "u1", TurnRequest{Action: game.ActionAttack}, time.Minute); err != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn for a double submission, got %v", err)
	}
	if _, _, err := SubmitTurn(mr, NoopNotifier{}, locks, nil, b.ID, "u2", TurnRequest{Action: game.ActionAttack}, time.Minute); err != nil {
		t.Fatalf("unexpected error on the defender's reply: %v", err)
	}
}

func TestSubmitTurn_RejectsConcurrentSubmission(t *testing.T) {
	mr := newMockRepo()
	b := pvpBattle(mr)
	locks := NewBattleLocks()
	if !locks.TryLock(b.ID) {
		t.Fatalf("setup lock failed")
	}

	if _, _, err := SubmitTurn(mr, NoopNotifier{}, locks, nil, b.ID, "u1", TurnRequest{Action: game.ActionAttack}, time.Minute); err != ErrBattleBusy {
		t.Fatalf("expected ErrBattleBusy, got %v", err)
	}
}

func TestSubmitTurn_RejectsOutsiders(t *testing.T) {
	mr := newMockRepo()
	b := pvpBattle(mr)

	if _, _, err := SubmitTurn(mr, NoopNotifier{}, NewBattleLocks(), nil, b.ID, "intruder", TurnRequest{Action: game.ActionAttack}, time.Minute); err != ErrNotParticipant {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestSubmitTurn_AIBattleCountersInline(t *testing.T) {
	mr := newMockRepo()
	b := aiBattle(mr)

	got, _, err := SubmitTurn(mr, NoopNotifier{}, NewBattleLocks(), nil, b.ID, "u1", TurnRequest{Action: game.ActionAttack}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mr.turns) != 2 {
		t.Fatalf("expected the AI counter-turn to be logged, got %d turns", len(mr.turns))
	}
	if mr.turns[1].ActorRole != game.RoleDefender {
		t.Fatalf("expected the second turn to belong to the AI, got %s", mr.turns[1].ActorRole)
	}
	if got.TurnCount != 2 {
		t.Fatalf("expected two turns counted, got %d", got.TurnCount)
	}
}

func TestSubmitTurn_FailedSaveLeavesNoTurnRows(t *testing.T) {
	mr := newMockRepo()
	b := pvpBattle(mr)
	locks := NewBattleLocks()

	mr.recordErr = errors.New("database is locked")
	if _, _, err := SubmitTurn(mr, NoopNotifier{}, locks, nil, b.ID, "u1", TurnRequest{Action: game.ActionAttack}, time.Minute); err == nil {
		t.Fatalf("expected the failed save to surface")
	}
	if len(mr.turns) != 0 {
		t.Fatalf("a failed save must not leave turn rows behind, got %d", len(mr.turns))
	}
	if got, _ := mr.GetBattleByID(b.ID); got.TurnCount != 0 {
		t.Fatalf("the stored battle must stay untouched, turn count %d", got.TurnCount)
	}

	// The retry replays the same turn from the unchanged counter instead
	// of colliding with an orphan log row.
	mr.recordErr = nil
	got, _, err := SubmitTurn(mr, NoopNotifier{}, locks, nil, b.ID, "u1", TurnRequest{Action: game.ActionAttack}, time.Minute)
	if err != nil {
		t.Fatalf("retry after a failed save should succeed, got %v", err)
	}
	if got.TurnCount != 1 || len(mr.turns) != 1 || mr.turns[0].TurnNumber != 1 {
		t.Fatalf("expected the retried turn logged as number 1, got count=%d turns=%+v", got.TurnCount, mr.turns)
	}
}

func TestSubmitTurn_ItemWithoutStockStillSpendsTurn(t *testing.T) {
	mr := newMockRepo()
	mr.consumeErr = storage.ErrItemUnavailable
	b := pvpBattle(mr)
	items := ItemCatalog{"potion": {Key: "potion", Name: "Potion", Effect: game.ItemEffect{Heal: 50}}}

	got, res, err := SubmitTurn(mr, NoopNotifier{}, NewBattleLocks(), items, b.ID, "u1", TurnRequest{Action: game.ActionItem, ItemKey: "potion"}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ItemUsed != "" {
		t.Fatalf("no item effect should apply, got %q", res.ItemUsed)
	}
	if got.TurnCount != 1 {
		t.Fatalf("the wasted turn must still count, got %d", got.TurnCount)
	}
}

func TestSubmitTurn_UnknownItemRejected(t *testing.T) {
	mr := newMockRepo()
	b := pvpBattle(mr)

	if _, _, err := SubmitTurn(mr, NoopNotifier{}, NewBattleLocks(), ItemCatalog{}, b.ID, "u1", TurnRequest{Action: game.ActionItem, ItemKey: "nope"}, time.Minute); err != ErrUnknownItem {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}
}
