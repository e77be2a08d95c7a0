package engine

import (
	"math"

	"github.com/pawhaven/petbattle/internal/game"
)

// CareMultiplier derives the scalar that scales a pet's battle stats from
// its care vector at team-selection time. Neglect compounds: every band a
// stat falls into multiplies into the product. A pet in excellent shape
// across the board earns a 1.2x bonus on top.
func CareMultiplier(p *game.Pet) float64 {
	mult := 1.0

	switch {
	case p.Health < 30:
		mult *= 0.6
	case p.Health < 60:
		mult *= 0.8
	}

	switch {
	case p.Energy < 30:
		mult *= 0.7
	case p.Energy < 60:
		mult *= 0.9
	}

	switch {
	case p.Hunger > 70:
		mult *= 0.7
	case p.Hunger >= 40:
		mult *= 0.85
	}

	switch {
	case p.Happiness < 30:
		mult *= 0.75
	case p.Happiness < 60:
		mult *= 0.9
	}

	if p.Health >= 80 && p.Energy >= 80 && p.Hunger <= 30 && p.Happiness >= 80 {
		mult *= 1.2
	}

	return mult
}

// BuildCombatant computes a pet's battle stats for the given team slot.
// Max health depends only on level; attack, defense and speed scale with
// the care-quality multiplier.
func BuildCombatant(p *game.Pet, slot int) game.Combatant {
	mult := CareMultiplier(p)
	maxHealth := 100 + p.Level*20
	return game.Combatant{
		PetID:         p.ID,
		PetName:       p.Name,
		Species:       p.Species,
		Element:       p.Element,
		Level:         p.Level,
		SlotIndex:     slot,
		MaxHealth:     maxHealth,
		CurrentHealth: maxHealth,
		Attack:        int(math.Floor(float64(10+p.Level*3) * mult)),
		Defense:       int(math.Floor(float64(5+p.Level*2) * mult)),
		Speed:         int(math.Floor(float64(8+p.Level*2) * mult)),
		Skills:        p.Skills,
	}
}

// --- Modifier helpers --------------------------------------------------

func attackWithBoost(c *game.Combatant) int {
	a := c.Attack
	if c.BoostTurns > 0 && c.BoostAttackPercent > 0 {
		a = int(float64(a) * (1.0 + float64(c.BoostAttackPercent)/100.0))
	}
	if a < 0 {
		a = 0
	}
	return a
}

func defenseWithBoost(c *game.Combatant) int {
	d := c.Defense
	if c.BoostTurns > 0 && c.BoostDefensePercent > 0 {
		d = int(float64(d) * (1.0 + float64(c.BoostDefensePercent)/100.0))
	}
	if d < 0 {
		d = 0
	}
	return d
}

func speedWithBoost(c *game.Combatant) int {
	s := c.Speed
	if c.BoostTurns > 0 && c.BoostSpeedPercent > 0 {
		s = int(float64(s) * (1.0 + float64(c.BoostSpeedPercent)/100.0))
	}
	if s < 0 {
		s = 0
	}
	return s
}
