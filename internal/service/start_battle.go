package service

import (
	"errors"
	"time"

	"github.com/pawhaven/petbattle/internal/constants"
	"github.com/pawhaven/petbattle/internal/engine"
	"github.com/pawhaven/petbattle/internal/game"
	"github.com/pawhaven/petbattle/internal/logging"
)

var (
	ErrEmptyTeam           = errors.New("a team needs at least one pet")
	ErrTeamTooLarge        = errors.New("a team holds at most three pets")
	ErrPetNotOwned         = errors.New("team contains a pet you do not own")
	ErrPetNotBattleReady   = errors.New("pet is too weak to battle (needs health >= 50 and energy >= 30)")
	ErrOpponentHasNoPets   = errors.New("opponent has no battle-ready pets")
	ErrWagerNotCovered     = errors.New("wager exceeds available pet points")
	ErrOpponentWagerNotMet = errors.New("opponent cannot cover the wager")
)

const maxTeamSize = 3

// AIOpponentID marks the defending side of AI battles. No profile row
// exists for it and settlement never credits it.
const AIOpponentID = "ai"

type StartBattleRequest struct {
	UserID     string
	PetIDs     []uint
	OpponentID string
	Wager      int
	VsAI       bool
}

// StartBattle validates the caller's team, escrows any wager, generates
// the opposing side and persists the new battle aggregate. The battle's
// RNG seed is fixed here; every later turn derives its dice from it.
func StartBattle(repo BattleRepo, req StartBattleRequest, actionTimeout time.Duration) (*game.Battle, error) {
	team, err := loadTeam(repo, req.UserID, req.PetIDs)
	if err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	rng := engine.NewRNG(seed)

	attacker := game.Side{UserID: req.UserID, Role: game.RoleAttacker}
	for slot, p := range team {
		pet := p
		attacker.Combatants = append(attacker.Combatants, engine.BuildCombatant(&pet, slot))
	}

	var defender game.Side
	if req.VsAI {
		defender = aiSide(team[0].Level, len(team), rng)
	} else {
		defender, err = opponentSide(repo, req.OpponentID, len(team))
		if err != nil {
			return nil, err
		}
	}

	if req.Wager > 0 {
		if err := escrowWager(repo, req, &defender); err != nil {
			return nil, err
		}
	}

	b := &game.Battle{
		Sides:          []game.Side{attacker, defender},
		Weather:        engine.RandomWeather(rng),
		Status:         game.StatusActive,
		Phase:          game.PhaseInProgress,
		Seed:           seed,
		IsAIBattle:     req.VsAI,
		WagerAmount:    req.Wager,
		ActionDeadline: time.Now().Add(actionTimeout),
		Message:        "The battle has started. Choose your action.",
	}
	if err := repo.CreateBattle(b); err != nil {
		return nil, err
	}

	logging.Info("battle started", logging.Fields{
		constants.LogFieldBattleID: b.ID,
		constants.LogFieldUserID:   req.UserID,
		constants.LogFieldWeather:  string(b.Weather),
		"vs_ai":                    req.VsAI,
	})
	return b, nil
}

// loadTeam fetches and validates the caller's selected pets, preserving
// the requested slot order.
func loadTeam(repo BattleRepo, userID string, petIDs []uint) ([]game.Pet, error) {
	if len(petIDs) == 0 {
		return nil, ErrEmptyTeam
	}
	if len(petIDs) > maxTeamSize {
		return nil, ErrTeamTooLarge
	}
	pets, err := repo.GetTeamPets(userID, petIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]game.Pet, len(pets))
	for _, p := range pets {
		byID[p.ID] = p
	}
	team := make([]game.Pet, 0, len(petIDs))
	for _, id := range petIDs {
		p, ok := byID[id]
		if !ok {
			return nil, ErrPetNotOwned
		}
		if p.Health < 50 || p.Energy < 30 {
			return nil, ErrPetNotBattleReady
		}
		team = append(team, p)
	}
	return team, nil
}

// opponentSide builds the defending side of a PvP battle from the
// opponent's battle-ready pets, capped at the challenger's team size.
func opponentSide(repo BattleRepo, opponentID string, size int) (game.Side, error) {
	pets, err := repo.ListPetsByOwner(opponentID)
	if err != nil {
		return game.Side{}, err
	}
	side := game.Side{UserID: opponentID, Role: game.RoleDefender}
	for _, p := range pets {
		if p.Health < 50 || p.Energy < 30 {
			continue
		}
		pet := p
		side.Combatants = append(side.Combatants, engine.BuildCombatant(&pet, len(side.Combatants)))
		if len(side.Combatants) == size {
			break
		}
	}
	if len(side.Combatants) == 0 {
		return game.Side{}, ErrOpponentHasNoPets
	}
	return side, nil
}

// escrowWager debits the stake from every human participant up front.
// Settlement later pays the winner double; a failed opponent debit rolls
// back the caller's.
func escrowWager(repo BattleRepo, req StartBattleRequest, defender *game.Side) error {
	if err := repo.AdjustPoints(req.UserID, -req.Wager); err != nil {
		return ErrWagerNotCovered
	}
	if req.VsAI {
		return nil
	}
	if err := repo.AdjustPoints(defender.UserID, -req.Wager); err != nil {
		if refundErr := repo.AdjustPoints(req.UserID, req.Wager); refundErr != nil {
			logging.Error("wager refund failed", refundErr, logging.Fields{constants.LogFieldUserID: req.UserID})
		}
		return ErrOpponentWagerNotMet
	}
	return nil
}

var aiSpecies = []struct {
	Name    string
	Species string
	Element game.Element
	Skill   game.Skill
}{
	{"Cinderfang", "drakeling", game.Fire, game.Skill{Name: "Flame Burst", Power: 35, Element: game.Fire}},
	{"Ripple", "axolotl", game.Water, game.Skill{Name: "Tidal Slam", Power: 35, Element: game.Water}},
	{"Boulder", "tortoise", game.Earth, game.Skill{Name: "Rock Throw", Power: 35, Element: game.Earth}},
	{"Zephyr", "falcon", game.Air, game.Skill{Name: "Gale Cutter", Power: 35, Element: game.Air}},
	{"Lumen", "foxkit", game.Light, game.Skill{Name: "Radiant Beam", Power: 30, Element: game.Light}},
}

// aiSide generates an ephemeral opposing team near the challenger's lead
// level. AI pets get solid care stats so the fight is not a pushover.
func aiSide(leadLevel, size int, rng engine.RNG) game.Side {
	side := game.Side{UserID: AIOpponentID, Role: game.RoleDefender}
	for slot := 0; slot < size; slot++ {
		tpl := aiSpecies[rng.Intn(len(aiSpecies))]
		level := leadLevel - 2 + rng.Intn(5)
		if level < 1 {
			level = 1
		}
		pet := game.Pet{
			Name:      tpl.Name,
			Species:   tpl.Species,
			Element:   tpl.Element,
			Level:     level,
			Health:    80,
			Energy:    80,
			Hunger:    20,
			Happiness: 80,
			Skills:    []game.Skill{tpl.Skill},
		}
		side.Combatants = append(side.Combatants, engine.BuildCombatant(&pet, slot))
	}
	return side
}
