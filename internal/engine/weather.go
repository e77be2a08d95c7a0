package engine

import "github.com/pawhaven/petbattle/internal/game"

// weatherChart maps element -> weather -> damage multiplier. "clear" is
// always neutral and therefore never listed.
var weatherChart = map[game.Element]map[game.Weather]float64{
	game.Fire:  {game.WeatherSunny: 1.5, game.WeatherRainy: 0.7},
	game.Water: {game.WeatherRainy: 1.5, game.WeatherSunny: 0.7},
	game.Air:   {game.WeatherWindy: 1.5, game.WeatherRocky: 0.7},
	game.Earth: {game.WeatherRocky: 1.5, game.WeatherWindy: 0.7},
	game.Light: {game.WeatherSunny: 1.3},
}

// WeatherBonus returns the damage multiplier the current weather applies
// to attacks of the given element.
func WeatherBonus(e game.Element, w game.Weather) float64 {
	if row, ok := weatherChart[e]; ok {
		if m, ok := row[w]; ok {
			return m
		}
	}
	return 1
}

// RandomWeather picks the battle-wide weather at session start.
func RandomWeather(rng RNG) game.Weather {
	return game.Weathers[rng.Intn(len(game.Weathers))]
}
