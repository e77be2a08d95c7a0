package service

import (
	"testing"
	"time"

	"github.com/pawhaven/petbattle/internal/game"
)

func TestHandleTimedOutBattle_ExpiresWithoutPayout(t *testing.T) {
	mr := newMockRepo()
	b := pvpBattle(mr)
	b.ActionDeadline = time.Now().Add(-time.Minute)

	if err := HandleTimedOutBattle(mr, NoopNotifier{}, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != game.StatusCompleted || b.Phase != game.PhaseCompleted {
		t.Fatalf("expected the battle closed, got %s/%s", b.Status, b.Phase)
	}
	if b.WinnerID != "" {
		t.Fatalf("an expired battle has no winner, got %q", b.WinnerID)
	}
	if len(mr.appliedCredits) != 0 || len(mr.appliedPets) != 0 {
		t.Fatalf("expiry must not pay out, got %+v / %+v", mr.appliedCredits, mr.appliedPets)
	}

	// Expiring again is a no-op.
	if err := HandleTimedOutBattle(mr, NoopNotifier{}, b); err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}
	if mr.applied != 1 {
		t.Fatalf("expected one settlement application, got %d", mr.applied)
	}
}

func TestExpireTimedOutBattles_ScansOverdueOnly(t *testing.T) {
	mr := newMockRepo()
	overdue := pvpBattle(mr)
	overdue.ActionDeadline = time.Now().Add(-time.Minute)
	fresh := pvpBattle(mr)
	fresh.ActionDeadline = time.Now().Add(time.Minute)

	ExpireTimedOutBattles(mr, NoopNotifier{}, time.Now())

	if got, _ := mr.GetBattleByID(overdue.ID); got.Status != game.StatusCompleted {
		t.Fatalf("expected the overdue battle expired, got %s", got.Status)
	}
	if got, _ := mr.GetBattleByID(fresh.ID); got.Status != game.StatusActive {
		t.Fatalf("the fresh battle must stay active, got %s", got.Status)
	}
}
