package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/pawhaven/petbattle/internal/game"
)

// Tuning constants for the strike pipeline.
const (
	minDamage            = 5
	critBase             = 0.15
	critPerSpeed         = 0.001
	critMultiplier       = 1.5
	comboStep            = 0.15
	dodgePerSpeed        = 0.02
	dodgeCap             = 0.3
	paralysisFailChance  = 0.25
	dodgeStanceChance    = 0.75
	statusInflictChance  = 0.15
	statusDuration       = 3
	burnDamageFraction   = 0.08
	poisonDamageFraction = 0.06
	specialCooldownTurns = 3
)

var (
	ErrNoActiveCombatant   = errors.New("side has no active combatant")
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrUnknownSkill        = errors.New("combatant does not know that skill")
	ErrSpecialOnCooldown   = errors.New("special attack is on cooldown")
	ErrInvalidSlot         = errors.New("invalid team slot")
	ErrTargetFainted       = errors.New("target combatant has fainted")
	ErrTargetNotFainted    = errors.New("target combatant has not fainted")
)

// Action is one submitted battle action, already validated and resolved
// against external stores by the coordinator (the item descriptor comes
// from the config catalog; a nil Item on an item action means the
// inventory consume failed and the turn is spent with no effect).
type Action struct {
	Kind       game.ActionKind
	SkillName  string
	Item       *game.Item
	SwitchSlot int
	TargetSlot int
}

// TurnResult reports everything one resolved turn did, with no hidden
// state: the battle aggregate passed in carries all cross-turn counters.
type TurnResult struct {
	Actor           game.Role
	Action          game.ActionKind
	SkillUsed       string
	ItemUsed        string
	Damage          int
	CounterDamage   int
	Crit            bool
	Dodged          bool
	Failed          bool
	StatusInflicted game.StatusKind
	ComboBonus      float64
	Events          []string
}

type turnContext struct {
	b      *game.Battle
	rng    RNG
	events []string
}

func (tc *turnContext) add(format string, args ...interface{}) {
	tc.events = append(tc.events, fmt.Sprintf(format, args...))
}

// ResolveTurn resolves a single action for the acting side against the
// opposing side, mutating the battle aggregate and returning the outcome.
//
// Dice are consumed in a fixed order so a turn replays exactly from the
// battle seed: paralysis, dodge stance, natural dodge, crit, damage
// spread, status infliction.
func ResolveTurn(b *game.Battle, actor game.Role, act Action, rng RNG) (*TurnResult, error) {
	if b.Status != game.StatusActive || b.Phase == game.PhaseCompleted {
		return nil, ErrBattleNotInProgress
	}
	self := b.SideByRole(actor)
	opp := b.SideByRole(actor.Opponent())
	if self == nil || opp == nil {
		return nil, ErrBattleNotInProgress
	}
	attacker := self.Active()
	if attacker == nil {
		return nil, ErrNoActiveCombatant
	}

	b.Phase = game.PhaseResolving
	tc := &turnContext{b: b, rng: rng}
	res := &TurnResult{Actor: actor, Action: act.Kind, ComboBonus: 1}

	// A new action always drops last turn's stances.
	attacker.IsDefending = false
	attacker.IsDodging = false

	var err error
	switch act.Kind {
	case game.ActionAttack, game.ActionSkill, game.ActionSpecial:
		err = tc.execStrike(self, opp, attacker, act, res)
	case game.ActionDefend:
		attacker.IsDefending = true
		tc.add("%s took a defensive stance!", attacker.PetName)
	case game.ActionDodge:
		attacker.IsDodging = true
		tc.add("%s prepares to dodge and counter!", attacker.PetName)
	case game.ActionItem:
		tc.execItem(self, attacker, act, res)
	case game.ActionSwitch:
		err = tc.execSwitch(self, act.SwitchSlot)
	default:
		err = fmt.Errorf("unknown action kind %q", act.Kind)
	}
	if err != nil {
		b.Phase = game.PhaseInProgress
		return nil, err
	}

	tc.endOfTurn(attacker, act.Kind)
	advance(b, actor, tc)

	res.Events = tc.events
	return res, nil
}

// execStrike runs the offensive pipeline shared by basic attacks, element
// skills and the special attack.
func (tc *turnContext) execStrike(self, opp *game.Side, attacker *game.Combatant, act Action, res *TurnResult) error {
	defender := opp.Active()
	if defender == nil {
		return ErrNoActiveCombatant
	}

	power, element, name, err := tc.strikeProfile(attacker, act)
	if err != nil {
		return err
	}
	res.SkillUsed = name

	// Frozen pets cannot act at all; the wasted turn still ticks the
	// status counter down in endOfTurn.
	if attacker.Status == game.StatusFreeze {
		res.Failed = true
		tc.add("%s is frozen and can't attack!", attacker.PetName)
		return nil
	}
	if attacker.Status == game.StatusParalysis && tc.rng.Float64() < paralysisFailChance {
		res.Failed = true
		tc.add("%s is paralyzed and can't move!", attacker.PetName)
		return nil
	}

	// The cooldown arms only once the special actually fires; a turn lost
	// to freeze or paralysis leaves it ready.
	if act.Kind == game.ActionSpecial {
		attacker.SpecialCooldown = specialCooldownTurns
	}

	// Combo bookkeeping happens even if the hit later misses: the element
	// was committed the moment the move was chosen.
	comboBonus := tc.trackCombo(attacker, act.Kind, element)
	res.ComboBonus = comboBonus

	// A dodging defender evades entirely and counters with half its own
	// attack before the strike connects.
	if defender.IsDodging {
		defender.IsDodging = false
		if tc.rng.Float64() < dodgeStanceChance {
			counter := int(math.Floor(float64(attackWithBoost(defender)) * 0.5))
			attacker.CurrentHealth = maxInt(0, attacker.CurrentHealth-counter)
			opp.DamageDealt += counter
			res.Dodged = true
			res.CounterDamage = counter
			tc.add("%s dodged the attack!", defender.PetName)
			tc.add("%s countered for %d damage!", defender.PetName, counter)
			return nil
		}
	}

	// Natural dodge from outspeeding the attacker.
	speedDiff := float64(speedWithBoost(defender) - speedWithBoost(attacker))
	dodgeChance := clamp(0, dodgeCap, speedDiff*dodgePerSpeed)
	if tc.rng.Float64() < dodgeChance {
		res.Dodged = true
		tc.add("%s dodged the attack!", defender.PetName)
		return nil
	}

	critChance := critBase + float64(speedWithBoost(attacker))*critPerSpeed
	crit := 1.0
	if tc.rng.Float64() < critChance {
		crit = critMultiplier
		res.Crit = true
	}

	typeMult := TypeEffectiveness(element, defender.Element)
	weatherMult := WeatherBonus(element, tc.b.Weather)
	randomFactor := 0.85 + tc.rng.Float64()*0.3

	raw := (float64(power) - float64(defenseWithBoost(defender))/2) *
		typeMult * weatherMult * crit * comboBonus * randomFactor
	if defender.IsDefending {
		raw *= 0.5
	}
	damage := maxInt(minDamage, int(math.Floor(raw)))

	defender.CurrentHealth = maxInt(0, defender.CurrentHealth-damage)
	defender.IsDefending = false
	self.DamageDealt += damage
	res.Damage = damage

	tc.add("%s used %s! Dealt %d damage!", attacker.PetName, name, damage)
	if res.Crit {
		tc.add("Critical hit!")
	}
	if typeMult > 1 {
		tc.add("It's super effective!")
	}
	if typeMult < 1 {
		tc.add("It's not very effective...")
	}
	if comboBonus > 1 {
		tc.add("%dx Combo!", attacker.ComboCount+1)
	}
	if weatherMult > 1 {
		tc.add("Weather boosted!")
	}

	// Elemental status infliction, first status wins until it expires.
	if status := game.InflictedStatus(attacker.Element); status != game.StatusNone && defender.Status == game.StatusNone {
		if tc.rng.Float64() < statusInflictChance {
			defender.Status = status
			defender.StatusTurns = statusDuration
			res.StatusInflicted = status
			tc.add("%s was %s!", defender.PetName, statusLabel(status))
		}
	}
	return nil
}

// strikeProfile resolves the power, element and display name of an
// offensive action against the attacker's skill snapshot.
func (tc *turnContext) strikeProfile(attacker *game.Combatant, act Action) (int, game.Element, string, error) {
	switch act.Kind {
	case game.ActionAttack:
		return attackWithBoost(attacker), attacker.Element, "Basic Attack", nil
	case game.ActionSpecial:
		if attacker.SpecialCooldown > 0 {
			return 0, "", "", ErrSpecialOnCooldown
		}
		return attackWithBoost(attacker) * 2, attacker.Element, "Special Attack", nil
	case game.ActionSkill:
		for i := range attacker.Skills {
			if attacker.Skills[i].Name == act.SkillName {
				return attacker.Skills[i].Power, attacker.Skills[i].Element, attacker.Skills[i].Name, nil
			}
		}
		return 0, "", "", ErrUnknownSkill
	}
	return 0, "", "", fmt.Errorf("action %q is not a strike", act.Kind)
}

// trackCombo updates the consecutive same-element counter and returns the
// resulting damage bonus. Basic attacks break the chain; named moves
// (skills and the special attack) extend it.
func (tc *turnContext) trackCombo(attacker *game.Combatant, kind game.ActionKind, element game.Element) float64 {
	if kind == game.ActionAttack {
		attacker.ComboCount = 0
		attacker.LastSkillUsed = ""
		return 1
	}
	if attacker.LastSkillUsed == element {
		attacker.ComboCount++
	} else {
		attacker.ComboCount = 0
	}
	attacker.LastSkillUsed = element
	return 1 + float64(attacker.ComboCount)*comboStep
}

// execItem applies a consumable's effect to the acting side. A nil item
// means the inventory consume failed: the turn is spent with no effect.
func (tc *turnContext) execItem(self *game.Side, attacker *game.Combatant, act Action, res *TurnResult) {
	if act.Item == nil {
		tc.add("%s fumbled for an item, but found nothing!", attacker.PetName)
		return
	}
	eff := act.Item.Effect
	res.ItemUsed = act.Item.Key

	if eff.Revive {
		for i := range self.Combatants {
			c := &self.Combatants[i]
			if c.SlotIndex == act.TargetSlot && c.Fainted {
				pct := eff.ReviveHealthPercent
				if pct <= 0 {
					pct = 50
				}
				c.Fainted = false
				c.CurrentHealth = maxInt(1, c.MaxHealth*pct/100)
				tc.add("%s was revived with %d HP!", c.PetName, c.CurrentHealth)
				return
			}
		}
		tc.add("The %s had no one to revive!", act.Item.Name)
		return
	}

	if eff.Heal > 0 {
		healed := minInt(attacker.MaxHealth, attacker.CurrentHealth+eff.Heal)
		tc.add("%s recovered %d HP!", attacker.PetName, healed-attacker.CurrentHealth)
		attacker.CurrentHealth = healed
	}
	if eff.CureStatus && attacker.Status != game.StatusNone {
		tc.add("%s was cured of %s!", attacker.PetName, attacker.Status)
		attacker.Status = game.StatusNone
		attacker.StatusTurns = 0
	}
	if eff.BoostTurns > 0 {
		attacker.BoostAttackPercent = eff.AttackBoostPercent
		attacker.BoostDefensePercent = eff.DefenseBoostPercent
		attacker.BoostSpeedPercent = eff.SpeedBoostPercent
		attacker.BoostTurns = eff.BoostTurns
		tc.add("%s is powered up by the %s!", attacker.PetName, act.Item.Name)
	}
}

// endOfTurn applies status damage to the acting side and ticks every
// per-turn counter down exactly once, regardless of whether the action
// succeeded.
func (tc *turnContext) endOfTurn(c *game.Combatant, acted game.ActionKind) {
	if c.Status != game.StatusNone && c.StatusTurns > 0 {
		var damage int
		switch c.Status {
		case game.StatusBurn:
			damage = int(math.Floor(float64(c.MaxHealth) * burnDamageFraction))
			tc.add("%s took %d burn damage!", c.PetName, damage)
		case game.StatusPoison:
			damage = int(math.Floor(float64(c.MaxHealth) * poisonDamageFraction))
			tc.add("%s took %d poison damage!", c.PetName, damage)
		}
		c.CurrentHealth = maxInt(0, c.CurrentHealth-damage)
		c.StatusTurns--
		if c.StatusTurns <= 0 {
			tc.add("%s recovered from %s!", c.PetName, c.Status)
			c.Status = game.StatusNone
			c.StatusTurns = 0
		}
	}

	if c.BoostTurns > 0 {
		c.BoostTurns--
		if c.BoostTurns == 0 {
			c.BoostAttackPercent = 0
			c.BoostDefensePercent = 0
			c.BoostSpeedPercent = 0
		}
	}

	// The turn that fired the special does not eat into its own cooldown.
	if c.SpecialCooldown > 0 && acted != game.ActionSpecial {
		c.SpecialCooldown--
	}
}

func statusLabel(s game.StatusKind) string {
	switch s {
	case game.StatusBurn:
		return "burned"
	case game.StatusFreeze:
		return "frozen"
	case game.StatusParalysis:
		return "paralyzed"
	case game.StatusPoison:
		return "poisoned"
	}
	return string(s)
}

func clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
