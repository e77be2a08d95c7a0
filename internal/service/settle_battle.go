package service

import (
	"errors"
	"fmt"

	"github.com/pawhaven/petbattle/internal/constants"
	"github.com/pawhaven/petbattle/internal/dedupe"
	"github.com/pawhaven/petbattle/internal/engine"
	"github.com/pawhaven/petbattle/internal/game"
	"github.com/pawhaven/petbattle/internal/logging"
	"github.com/pawhaven/petbattle/internal/storage"
)

var ErrBattleStillActive = errors.New("battle has not finished yet")

// SettleBattle computes and applies the final payout for a finished
// battle. It is idempotent: duplicate calls collapse onto one in-flight
// computation via singleflight, and a battle that already carries the
// completed status returns its stored rewards without paying again.
//
// Rewards derive from server-recorded damage totals only; whatever the
// client reported along the way is ignored.
func SettleBattle(repo BattleRepo, notifier Notifier, battleID uint, userID string) (*game.Battle, error) {
	v, err, _ := dedupe.SettleGroup.Do(fmt.Sprintf("battle:%d", battleID), func() (interface{}, error) {
		return settle(repo, notifier, battleID, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.Battle), nil
}

func settle(repo BattleRepo, notifier Notifier, battleID uint, userID string) (*game.Battle, error) {
	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, ErrBattleNotFound
	}
	if b.SideByUser(userID) == nil {
		return nil, ErrNotParticipant
	}
	if b.Phase != game.PhaseCompleted {
		return nil, ErrBattleStillActive
	}
	if b.Status == game.StatusCompleted {
		// Already paid out; hand back the recorded result.
		return b, nil
	}

	credits, pets := settlementLines(repo, b)
	if err := repo.ApplySettlement(b, credits, pets); err != nil {
		if errors.Is(err, storage.ErrAlreadySettled) {
			return repo.GetBattleByID(battleID)
		}
		return nil, err
	}

	logging.Info("battle settled", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldUserID:   b.WinnerID,
		"points":                   b.RewardPoints,
		"experience":               b.RewardExperience,
	})
	notifier.BattleStatus(b)
	return b, nil
}

// settlementLines computes every payout row for a finished battle: one
// points credit per human side and one experience grant per lead pet.
// The winner's wager payout returns both escrowed stakes.
func settlementLines(repo BattleRepo, b *game.Battle) ([]storage.PointsCredit, []storage.PetProgress) {
	var credits []storage.PointsCredit
	var pets []storage.PetProgress

	for i := range b.Sides {
		side := &b.Sides[i]
		lead := leadCombatant(side)
		if lead == nil {
			continue
		}
		won := b.WinnerID != "" && side.UserID == b.WinnerID
		rewards := engine.ComputeRewards(won, lead.Level, side.DamageDealt)

		if won {
			b.RewardPoints = rewards.Points
			b.RewardExperience = rewards.Experience
		}

		if side.UserID == AIOpponentID {
			continue
		}

		points := rewards.Points
		if won && b.WagerAmount > 0 {
			points += b.WagerAmount * 2
		}
		credits = append(credits, storage.PointsCredit{UserID: side.UserID, Points: points, Won: won})

		if lead.PetID != 0 {
			if progress, ok := petProgress(repo, side.UserID, lead.PetID, rewards.Experience); ok {
				pets = append(pets, progress)
			}
		}
	}
	return credits, pets
}

// leadCombatant returns the side's slot-zero team member, the one whose
// level anchors the reward formula.
func leadCombatant(side *game.Side) *game.Combatant {
	for i := range side.Combatants {
		if side.Combatants[i].SlotIndex == 0 {
			return &side.Combatants[i]
		}
	}
	if len(side.Combatants) > 0 {
		return &side.Combatants[0]
	}
	return nil
}

// petProgress rolls earned experience into the pet's persisted level,
// looping over level thresholds for multi-level gains.
func petProgress(repo BattleRepo, ownerID string, petID uint, earned int) (storage.PetProgress, bool) {
	pets, err := repo.GetTeamPets(ownerID, []uint{petID})
	if err != nil || len(pets) == 0 {
		logging.Error("settlement could not load pet for experience grant", err, logging.Fields{constants.LogFieldUserID: ownerID, "pet_id": petID})
		return storage.PetProgress{}, false
	}
	level, exp := engine.ApplyExperience(pets[0].Level, pets[0].Experience, earned)
	return storage.PetProgress{PetID: petID, Level: level, Experience: exp}, true
}
