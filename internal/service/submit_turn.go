package service

import (
	"errors"
	"strings"
	"time"

	"github.com/pawhaven/petbattle/internal/constants"
	"github.com/pawhaven/petbattle/internal/engine"
	"github.com/pawhaven/petbattle/internal/game"
	"github.com/pawhaven/petbattle/internal/logging"
	"github.com/pawhaven/petbattle/internal/storage"
)

var (
	ErrBattleNotFound   = errors.New("battle not found")
	ErrBattleNotActive  = errors.New("battle is not active")
	ErrBattleOver       = errors.New("battle is over; settle it to collect rewards")
	ErrNotParticipant   = errors.New("you are not part of this battle")
	ErrNotYourTurn      = errors.New("it is not your turn")
	ErrBattleBusy       = errors.New("another action for this battle is still resolving")
	ErrUnknownItem      = errors.New("unknown item")
	ErrInvalidTurnInput = errors.New("invalid turn request")
)

type TurnRequest struct {
	Action     game.ActionKind `json:"action"`
	SkillName  string          `json:"skill_name"`
	ItemKey    string          `json:"item_key"`
	SwitchSlot int             `json:"switch_slot"`
	TargetSlot int             `json:"target_slot"`
}

// SubmitTurn resolves one player action against a battle. Submissions for
// the same battle are serialized by a try-lock: a concurrent second
// submission is rejected immediately rather than queued. In AI battles
// the opponent's counter-turn resolves inline, so the client observes
// both turns in one response.
//
// The aggregate and the new turn-log rows commit in one transaction. A
// failed save leaves the stored battle untouched, and a retry replays
// the same turn from the unchanged counter and seed.
func SubmitTurn(repo BattleRepo, notifier Notifier, locks *BattleLocks, items ItemCatalog, battleID uint, userID string, req TurnRequest, actionTimeout time.Duration) (*game.Battle, *engine.TurnResult, error) {
	if !locks.TryLock(battleID) {
		return nil, nil, ErrBattleBusy
	}
	defer locks.Unlock(battleID)

	b, err := repo.GetBattleByID(battleID)
	if err != nil || b == nil {
		return nil, nil, ErrBattleNotFound
	}
	if b.Status != game.StatusActive {
		return nil, nil, ErrBattleNotActive
	}
	if b.Phase == game.PhaseCompleted {
		return nil, nil, ErrBattleOver
	}
	side := b.SideByUser(userID)
	if side == nil {
		return nil, nil, ErrNotParticipant
	}
	if side.Role != roleOnTurn(b) {
		return nil, nil, ErrNotYourTurn
	}

	act, err := buildAction(repo, items, userID, req)
	if err != nil {
		return nil, nil, err
	}

	var entries []game.BattleTurn
	res, err := resolveTurn(b, side.Role, act, &entries)
	if err != nil {
		return nil, nil, err
	}

	// The AI answers immediately while the battle is still open.
	if b.IsAIBattle && b.Phase != game.PhaseCompleted {
		aiRNG := engine.TurnRNG(b.Seed, b.TurnCount)
		aiAct := engine.ChooseAIAction(b, aiRNG)
		if _, err := resolveTurn(b, game.RoleDefender, aiAct, &entries); err != nil {
			logging.Error("ai turn failed", err, logging.Fields{constants.LogFieldBattleID: b.ID})
		}
	}

	if b.Phase == game.PhaseCompleted {
		b.ActionDeadline = time.Time{}
	} else {
		b.ActionDeadline = time.Now().Add(actionTimeout)
	}

	if err := repo.RecordTurns(b, entries); err != nil {
		return nil, nil, err
	}

	// Notifications go out only for state that actually persisted.
	for i := range entries {
		notifier.BattleTurn(b.ID, &entries[i])
	}
	if b.Phase == game.PhaseCompleted {
		notifier.BattleStatus(b)
	}
	return b, res, nil
}

// roleOnTurn derives whose turn it is from the turn counter: the
// challenger opens on turn zero and the sides alternate. AI battles are
// always on the human's turn because the AI acts inline.
func roleOnTurn(b *game.Battle) game.Role {
	if b.IsAIBattle {
		return game.RoleAttacker
	}
	if b.TurnCount%2 == 0 {
		return game.RoleAttacker
	}
	return game.RoleDefender
}

// buildAction translates a turn request into an engine action, consuming
// inventory for item uses. A failed consume still produces a valid item
// action with no effect: the turn is spent either way.
func buildAction(repo BattleRepo, items ItemCatalog, userID string, req TurnRequest) (engine.Action, error) {
	act := engine.Action{
		Kind:       req.Action,
		SkillName:  req.SkillName,
		SwitchSlot: req.SwitchSlot,
		TargetSlot: req.TargetSlot,
	}
	switch req.Action {
	case game.ActionAttack, game.ActionSkill, game.ActionSpecial, game.ActionDefend, game.ActionDodge, game.ActionSwitch:
		return act, nil
	case game.ActionItem:
		item, ok := items[req.ItemKey]
		if !ok {
			return act, ErrUnknownItem
		}
		if err := repo.ConsumeItem(userID, req.ItemKey); err != nil {
			if errors.Is(err, storage.ErrItemUnavailable) {
				logging.Info("item use without stock; turn wasted", logging.Fields{constants.LogFieldUserID: userID, constants.LogFieldItem: req.ItemKey})
				return act, nil
			}
			return act, err
		}
		act.Item = &item
		return act, nil
	}
	return act, ErrInvalidTurnInput
}

// resolveTurn runs one engine turn and collects its log entry; the
// caller persists all entries with the aggregate in one transaction.
func resolveTurn(b *game.Battle, actor game.Role, act engine.Action, entries *[]game.BattleTurn) (*engine.TurnResult, error) {
	turnNumber := b.TurnCount + 1
	rng := engine.TurnRNG(b.Seed, b.TurnCount)

	res, err := engine.ResolveTurn(b, actor, act, rng)
	if err != nil {
		return nil, err
	}

	*entries = append(*entries, game.BattleTurn{
		BattleID:    b.ID,
		TurnNumber:  turnNumber,
		ActorRole:   actor,
		Action:      res.Action,
		SkillUsed:   res.SkillUsed,
		ItemUsed:    res.ItemUsed,
		DamageDealt: res.Damage,
		AttackerHP:  activeHP(b, game.RoleAttacker),
		DefenderHP:  activeHP(b, game.RoleDefender),
		Summary:     strings.Join(res.Events, " "),
	})
	return res, nil
}

func activeHP(b *game.Battle, role game.Role) int {
	side := b.SideByRole(role)
	if side == nil {
		return 0
	}
	if c := side.Active(); c != nil {
		return c.CurrentHealth
	}
	return 0
}
