package engine

import (
	"testing"

	"github.com/pawhaven/petbattle/internal/game"
)

func standing(name string, slot, hp int) game.Combatant {
	return game.Combatant{PetName: name, Element: game.Light, SlotIndex: slot,
		MaxHealth: 100, CurrentHealth: hp, Attack: 50, Speed: 5}
}

func newTeamBattle(defHP0 int) *game.Battle {
	return &game.Battle{
		Status:  game.StatusActive,
		Phase:   game.PhaseInProgress,
		Weather: game.WeatherClear,
		Sides: []game.Side{
			{UserID: "u1", Role: game.RoleAttacker, Combatants: []game.Combatant{standing("A0", 0, 100)}},
			{UserID: "u2", Role: game.RoleDefender, Combatants: []game.Combatant{
				standing("D0", 0, defHP0),
				standing("D1", 1, 100),
				standing("D2", 2, 100),
			}},
		},
	}
}

func TestAdvance_FaintSelectsLowestStandingSlot(t *testing.T) {
	b := newTeamBattle(10)

	if _, err := ResolveTurn(b, game.RoleAttacker, Action{Kind: game.ActionAttack}, &scriptRNG{floats: neutralRolls()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def := b.SideByRole(game.RoleDefender)
	if !def.Combatants[0].Fainted {
		t.Fatalf("expected slot 0 to faint")
	}
	if def.ActiveSlot != 1 {
		t.Fatalf("expected active slot 1 after faint, got %d", def.ActiveSlot)
	}
	if b.Phase != game.PhaseInProgress {
		t.Fatalf("battle should continue, phase %q", b.Phase)
	}
}

func TestValidateSwitch_RejectsFaintedAndInvalidSlots(t *testing.T) {
	b := newTeamBattle(10)
	if _, err := ResolveTurn(b, game.RoleAttacker, Action{Kind: game.ActionAttack}, &scriptRNG{floats: neutralRolls()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def := b.SideByRole(game.RoleDefender)
	if err := ValidateSwitch(def, 0); err != ErrTargetFainted {
		t.Fatalf("expected ErrTargetFainted for fainted slot 0, got %v", err)
	}
	if err := ValidateSwitch(def, 1); err != ErrInvalidSlot {
		t.Fatalf("expected ErrInvalidSlot for the already-active slot, got %v", err)
	}
	if err := ValidateSwitch(def, 9); err != ErrInvalidSlot {
		t.Fatalf("expected ErrInvalidSlot for out-of-range slot, got %v", err)
	}
	if err := ValidateSwitch(def, 2); err != nil {
		t.Fatalf("expected slot 2 to be switchable, got %v", err)
	}
}

func TestResolveTurn_SwitchConsumesTurn(t *testing.T) {
	b := newTeamBattle(100)
	def := b.SideByRole(game.RoleDefender)

	if _, err := ResolveTurn(b, game.RoleDefender, Action{Kind: game.ActionSwitch, SwitchSlot: 2}, &scriptRNG{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.ActiveSlot != 2 {
		t.Fatalf("expected active slot 2, got %d", def.ActiveSlot)
	}
	if b.TurnCount != 1 {
		t.Fatalf("switch must consume the turn, turn count %d", b.TurnCount)
	}
}

func TestAdvance_LastFaintCompletesBattle(t *testing.T) {
	b := &game.Battle{
		Status:  game.StatusActive,
		Phase:   game.PhaseInProgress,
		Weather: game.WeatherClear,
		Sides: []game.Side{
			{UserID: "u1", Role: game.RoleAttacker, Combatants: []game.Combatant{standing("A0", 0, 100)}},
			{UserID: "u2", Role: game.RoleDefender, Combatants: []game.Combatant{standing("D0", 0, 10)}},
		},
	}

	if _, err := ResolveTurn(b, game.RoleAttacker, Action{Kind: game.ActionAttack}, &scriptRNG{floats: neutralRolls()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Phase != game.PhaseCompleted {
		t.Fatalf("expected completed phase, got %q", b.Phase)
	}
	if b.WinnerID != "u1" {
		t.Fatalf("expected winner u1, got %q", b.WinnerID)
	}
	if b.Status != game.StatusActive {
		t.Fatalf("status must stay active until settlement, got %q", b.Status)
	}
	if b.CompletedAt.IsZero() {
		t.Fatalf("expected completion timestamp to be set")
	}
}

func TestAdvance_SimultaneousKnockoutFavorsStriker(t *testing.T) {
	// The attacker's burn tick will fell it on the same turn its strike
	// fells the last defender. The side whose attack caused the last
	// elimination wins.
	b := &game.Battle{
		Status:  game.StatusActive,
		Phase:   game.PhaseInProgress,
		Weather: game.WeatherClear,
		Sides: []game.Side{
			{UserID: "u1", Role: game.RoleAttacker, Combatants: []game.Combatant{{
				PetName: "Martyr", Element: game.Light, MaxHealth: 100, CurrentHealth: 5,
				Attack: 50, Speed: 5, Status: game.StatusBurn, StatusTurns: 2,
			}}},
			{UserID: "u2", Role: game.RoleDefender, Combatants: []game.Combatant{standing("D0", 0, 10)}},
		},
	}

	if _, err := ResolveTurn(b, game.RoleAttacker, Action{Kind: game.ActionAttack}, &scriptRNG{floats: neutralRolls()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.SideByRole(game.RoleAttacker).Exhausted() || !b.SideByRole(game.RoleDefender).Exhausted() {
		t.Fatalf("expected both sides down")
	}
	if b.WinnerID != "u1" {
		t.Fatalf("expected the striking side to win the tie-break, got %q", b.WinnerID)
	}
}

func TestResolveTurn_RejectsCompletedBattle(t *testing.T) {
	b := newTeamBattle(100)
	b.Phase = game.PhaseCompleted
	if _, err := ResolveTurn(b, game.RoleAttacker, Action{Kind: game.ActionAttack}, &scriptRNG{}); err != ErrBattleNotInProgress {
		t.Fatalf("expected ErrBattleNotInProgress, got %v", err)
	}
}
