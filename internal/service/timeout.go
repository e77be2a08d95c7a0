package service

import (
	"errors"
	"time"

	"github.com/pawhaven/petbattle/internal/constants"
	"github.com/pawhaven/petbattle/internal/game"
	"github.com/pawhaven/petbattle/internal/logging"
	"github.com/pawhaven/petbattle/internal/storage"
)

// HandleTimedOutBattle expires a single battle whose action deadline has
// passed: it completes with no winner and no payout, flipping the status
// through the settlement transaction so a racing settle cannot pay out
// afterwards.
func HandleTimedOutBattle(repo BattleRepo, notifier Notifier, b *game.Battle) error {
	if b.Status != game.StatusActive {
		return nil
	}

	b.Phase = game.PhaseCompleted
	b.WinnerID = ""
	b.CompletedAt = time.Now().UTC()
	b.ActionDeadline = time.Time{}
	b.Message = "The battle expired due to inactivity."

	if err := repo.ApplySettlement(b, nil, nil); err != nil {
		if errors.Is(err, storage.ErrAlreadySettled) {
			return nil
		}
		return err
	}

	logging.Info("battle expired due to inactivity", logging.Fields{constants.LogFieldBattleID: b.ID})
	notifier.BattleStatus(b)
	return nil
}

// ExpireTimedOutBattles scans for overdue battles and expires each one.
// Called periodically from the server's background ticker.
func ExpireTimedOutBattles(repo BattleRepo, notifier Notifier, now time.Time) {
	battles, err := repo.FindTimedOutBattles(now)
	if err != nil {
		logging.Error("timeout scan failed", err, nil)
		return
	}
	for i := range battles {
		if err := HandleTimedOutBattle(repo, notifier, &battles[i]); err != nil {
			logging.Error("failed to expire battle", err, logging.Fields{constants.LogFieldBattleID: battles[i].ID})
		}
	}
}
