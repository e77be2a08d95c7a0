package service

import (
	"testing"
	"time"

	"github.com/pawhaven/petbattle/internal/game"
)

func finishedBattle(mr *mockRepo, winner string, wager int) *game.Battle {
	a := fighter("A", 500)
	a.PetID = 1
	a.Level = 5
	d := fighter("B", 0)
	d.PetID = 2
	d.Level = 4
	d.Fainted = true
	b := &game.Battle{
		Status: game.StatusActive, Phase: game.PhaseCompleted,
		Weather: game.WeatherClear, Seed: 42,
		WinnerID: winner, WagerAmount: wager,
		CompletedAt: time.Now(),
		Sides: []game.Side{
			{UserID: "u1", Role: game.RoleAttacker, DamageDealt: 250, Combatants: []game.Combatant{a}},
			{UserID: "u2", Role: game.RoleDefender, DamageDealt: 90, Combatants: []game.Combatant{d}},
		},
	}
	_ = mr.CreateBattle(b)
	return b
}

func TestSettleBattle_PaysWinnerOnce(t *testing.T) {
	mr := newMockRepo()
	mr.pets[1] = healthyPet(1, "u1", 5)
	mr.pets[2] = healthyPet(2, "u2", 4)
	b := finishedBattle(mr, "u1", 30)

	got, err := SettleBattle(mr, NoopNotifier{}, b.ID, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != game.StatusCompleted || !got.Settled {
		t.Fatalf("expected a completed settled battle, got %s settled=%v", got.Status, got.Settled)
	}
	// Level 5 winner with 250 damage: (50+50)*2 points, (30+25)*2 exp.
	if got.RewardPoints != 200 || got.RewardExperience != 110 {
		t.Fatalf("expected rewards 200/110, got %d/%d", got.RewardPoints, got.RewardExperience)
	}
	if len(mr.appliedCredits) != 2 {
		t.Fatalf("expected credits for both sides, got %+v", mr.appliedCredits)
	}
	for _, c := range mr.appliedCredits {
		switch c.UserID {
		case "u1":
			// Points plus both escrowed stakes back.
			if c.Points != 260 || !c.Won {
				t.Fatalf("winner credit wrong: %+v", c)
			}
		case "u2":
			if c.Points != 10 || c.Won {
				t.Fatalf("loser consolation wrong: %+v", c)
			}
		default:
			t.Fatalf("unexpected credit %+v", c)
		}
	}
	if len(mr.appliedPets) != 2 {
		t.Fatalf("expected experience grants for both lead pets, got %+v", mr.appliedPets)
	}

	// A duplicate settle must not pay again.
	again, err := SettleBattle(mr, NoopNotifier{}, b.ID, "u2")
	if err != nil {
		t.Fatalf("duplicate settle should be a no-op, got %v", err)
	}
	if mr.applied != 1 {
		t.Fatalf("expected exactly one settlement application, got %d", mr.applied)
	}
	if again.RewardPoints != 200 {
		t.Fatalf("duplicate settle should return stored rewards, got %d", again.RewardPoints)
	}
}

func TestSettleBattle_ExperienceRollsOver(t *testing.T) {
	mr := newMockRepo()
	winnerPet := healthyPet(1, "u1", 1)
	winnerPet.Experience = 80
	mr.pets[1] = winnerPet
	mr.pets[2] = healthyPet(2, "u2", 4)
	b := finishedBattle(mr, "u1", 0)
	b.Sides[0].Combatants[0].Level = 1

	// The level-1 winner with 250 damage earns (30+5)*2 = 70 exp, which
	// pushes 80 stored exp past the level-1 threshold of 100.
	if _, err := SettleBattle(mr, NoopNotifier{}, b.ID, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range mr.appliedPets {
		if p.PetID == 1 {
			if p.Level != 2 || p.Experience != 50 {
				t.Fatalf("expected level 2 with 50 exp, got %d/%d", p.Level, p.Experience)
			}
			return
		}
	}
	t.Fatalf("winner pet progress missing: %+v", mr.appliedPets)
}

func TestSettleBattle_RejectsActiveBattle(t *testing.T) {
	mr := newMockRepo()
	b := pvpBattle(mr)

	if _, err := SettleBattle(mr, NoopNotifier{}, b.ID, "u1"); err != ErrBattleStillActive {
		t.Fatalf("expected ErrBattleStillActive, got %v", err)
	}
}

func TestSettleBattle_RejectsNonParticipant(t *testing.T) {
	mr := newMockRepo()
	mr.pets[1] = healthyPet(1, "u1", 5)
	b := finishedBattle(mr, "u1", 0)

	if _, err := SettleBattle(mr, NoopNotifier{}, b.ID, "intruder"); err != ErrNotParticipant {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestSettleBattle_AISideNeverCredited(t *testing.T) {
	mr := newMockRepo()
	mr.pets[1] = healthyPet(1, "u1", 5)
	b := finishedBattle(mr, AIOpponentID, 0)
	b.Sides[1].UserID = AIOpponentID
	b.IsAIBattle = true

	if _, err := SettleBattle(mr, NoopNotifier{}, b.ID, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mr.appliedCredits) != 1 || mr.appliedCredits[0].UserID != "u1" {
		t.Fatalf("only the human side may be credited, got %+v", mr.appliedCredits)
	}
	if mr.appliedCredits[0].Points != 10 || mr.appliedCredits[0].Won {
		t.Fatalf("expected loss consolation for the human, got %+v", mr.appliedCredits[0])
	}
}
