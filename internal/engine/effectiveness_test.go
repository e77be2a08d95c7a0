package engine

import (
	"testing"

	"github.com/pawhaven/petbattle/internal/game"
)

func TestTypeEffectiveness_FullTable(t *testing.T) {
	want := map[game.Element]map[game.Element]float64{
		game.Light: {game.Light: 1, game.Fire: 1.2, game.Water: 1.2, game.Earth: 1.2, game.Air: 1.2},
		game.Fire:  {game.Light: 1, game.Fire: 1, game.Water: 0.5, game.Earth: 2, game.Air: 1},
		game.Water: {game.Light: 1, game.Fire: 2, game.Water: 1, game.Earth: 0.5, game.Air: 1},
		game.Earth: {game.Light: 1, game.Fire: 1, game.Water: 2, game.Earth: 1, game.Air: 0.5},
		game.Air:   {game.Light: 1, game.Fire: 0.5, game.Water: 1, game.Earth: 2, game.Air: 1},
	}
	for _, atk := range game.Elements {
		for _, def := range game.Elements {
			if got := TypeEffectiveness(atk, def); got != want[atk][def] {
				t.Errorf("%s vs %s: expected %v, got %v", atk, def, want[atk][def], got)
			}
		}
	}
}

func TestTypeEffectiveness_IsAsymmetric(t *testing.T) {
	if got := TypeEffectiveness(game.Fire, game.Earth); got != 2 {
		t.Fatalf("fire vs earth should be 2, got %v", got)
	}
	if got := TypeEffectiveness(game.Earth, game.Fire); got != 1 {
		t.Fatalf("earth vs fire should be neutral, got %v", got)
	}
}
