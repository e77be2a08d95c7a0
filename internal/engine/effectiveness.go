package engine

import "github.com/pawhaven/petbattle/internal/game"

// typeChart holds the asymmetric element matchup table. Missing pairs
// (including every identity pair) resolve to 1.
var typeChart = map[game.Element]map[game.Element]float64{
	game.Fire:  {game.Earth: 2, game.Water: 0.5},
	game.Water: {game.Fire: 2, game.Earth: 0.5},
	game.Earth: {game.Water: 2, game.Air: 0.5},
	game.Air:   {game.Earth: 2, game.Fire: 0.5},
	game.Light: {game.Fire: 1.2, game.Water: 1.2, game.Earth: 1.2, game.Air: 1.2},
}

// TypeEffectiveness returns the damage multiplier for an attack element
// against a defender element. The table is intentionally one-directional:
// fire beats earth, but earth is not weak to fire.
func TypeEffectiveness(attack, defense game.Element) float64 {
	if row, ok := typeChart[attack]; ok {
		if m, ok := row[defense]; ok {
			return m
		}
	}
	return 1
}
