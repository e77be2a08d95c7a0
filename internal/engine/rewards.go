package engine

// Reward tuning. Points and experience scale with the lead pet's level,
// and a winner gets a bonus for total damage dealt as a rough proxy for
// the size of the team that fought.
const (
	winPointsBase       = 50
	winPointsPerLevel   = 10
	winExpBase          = 30
	winExpPerLevel      = 5
	lossPoints          = 10
	lossExperience      = 5
	damagePerTeamFactor = 100
)

// Rewards is the settlement payout for one participant.
type Rewards struct {
	Points     int `json:"pet_points"`
	Experience int `json:"experience"`
}

// ComputeRewards derives the payout from the battle outcome. Damage is
// the server-recorded cumulative total for the participant's own side;
// it only widens the winner's payout, it never decides the outcome.
func ComputeRewards(won bool, petLevel, damageDealt int) Rewards {
	if !won {
		return Rewards{Points: lossPoints, Experience: lossExperience}
	}
	factor := damageDealt / damagePerTeamFactor
	if factor < 1 {
		factor = 1
	}
	return Rewards{
		Points:     (winPointsBase + petLevel*winPointsPerLevel) * factor,
		Experience: (winExpBase + petLevel*winExpPerLevel) * factor,
	}
}

// ApplyExperience adds earned experience to a pet, rolling the total over
// level thresholds as many times as it clears them. The threshold for
// leaving level L is L*100.
func ApplyExperience(level, exp, earned int) (newLevel, newExp int) {
	newLevel, newExp = level, exp+earned
	for newExp >= newLevel*100 {
		newExp -= newLevel * 100
		newLevel++
	}
	return newLevel, newExp
}
