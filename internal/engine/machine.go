package engine

import (
	"time"

	"github.com/pawhaven/petbattle/internal/game"
)

// execSwitch swaps the active combatant of a side for the team member in
// the requested slot. Fainted and out-of-range targets are rejected
// before any state changes.
func (tc *turnContext) execSwitch(side *game.Side, slot int) error {
	if err := ValidateSwitch(side, slot); err != nil {
		return err
	}
	side.ActiveSlot = slot
	tc.add("%s, I choose you!", side.Active().PetName)
	return nil
}

// ValidateSwitch checks that a switch target exists, is not the current
// active combatant, and has not fainted.
func ValidateSwitch(side *game.Side, slot int) error {
	if slot == side.ActiveSlot {
		return ErrInvalidSlot
	}
	for i := range side.Combatants {
		if side.Combatants[i].SlotIndex != slot {
			continue
		}
		if side.Combatants[i].Fainted {
			return ErrTargetFainted
		}
		return nil
	}
	return ErrInvalidSlot
}

// advance runs the between-turn state machine: mark faints, auto-advance
// fainted active slots, detect the terminal state and otherwise hand the
// battle back to in_progress with the turn counter bumped.
//
// On a simultaneous knockout (counter damage or status ticks felling the
// actor in the same turn its strike felled the defender) the side whose
// attack caused the last elimination wins, so the defender's exhaustion
// is checked first.
func advance(b *game.Battle, actor game.Role, tc *turnContext) {
	for i := range b.Sides {
		markFaints(&b.Sides[i], tc)
	}

	opp := b.SideByRole(actor.Opponent())
	self := b.SideByRole(actor)

	if opp.Exhausted() {
		complete(b, self.UserID, tc)
		return
	}
	if self.Exhausted() {
		complete(b, opp.UserID, tc)
		return
	}

	b.TurnCount++

	for _, side := range []*game.Side{self, opp} {
		if side.Active() == nil {
			if next, ok := nextStanding(side); ok {
				side.ActiveSlot = next
				tc.add("%s was sent out!", side.Active().PetName)
			}
		}
	}
	b.Phase = game.PhaseInProgress
}

// markFaints flags every combatant whose health hit zero this turn.
func markFaints(side *game.Side, tc *turnContext) {
	for i := range side.Combatants {
		c := &side.Combatants[i]
		if !c.Fainted && c.CurrentHealth <= 0 {
			c.Fainted = true
			c.Status = game.StatusNone
			c.StatusTurns = 0
			tc.add("%s fainted!", c.PetName)
		}
	}
}

// nextStanding returns the lowest-slot standing combatant of a side.
func nextStanding(side *game.Side) (int, bool) {
	best, found := 0, false
	for i := range side.Combatants {
		c := &side.Combatants[i]
		if c.Fainted {
			continue
		}
		if !found || c.SlotIndex < best {
			best, found = c.SlotIndex, true
		}
	}
	return best, found
}

// complete moves the battle into its terminal phase. Status stays active
// until settlement pays out and flips it, so an engine-side completion
// can never race the idempotent reward path.
func complete(b *game.Battle, winnerID string, tc *turnContext) {
	b.Phase = game.PhaseCompleted
	b.WinnerID = winnerID
	b.CompletedAt = time.Now().UTC()
	tc.add("The battle is over!")
}
