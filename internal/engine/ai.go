package engine

import "github.com/pawhaven/petbattle/internal/game"

// ChooseAIAction picks the opponent move for AI battles. The policy is
// deliberately simple: fire the special when it is ready, lean on element
// skills to build combos, occasionally guard when badly hurt.
func ChooseAIAction(b *game.Battle, rng RNG) Action {
	side := b.SideByRole(game.RoleDefender)
	if side == nil {
		return Action{Kind: game.ActionAttack}
	}
	active := side.Active()
	if active == nil {
		if next, ok := nextStanding(side); ok {
			return Action{Kind: game.ActionSwitch, SwitchSlot: next}
		}
		return Action{Kind: game.ActionAttack}
	}

	if active.CurrentHealth*4 < active.MaxHealth && rng.Float64() < 0.25 {
		return Action{Kind: game.ActionDefend}
	}
	if active.SpecialCooldown == 0 && rng.Float64() < 0.35 {
		return Action{Kind: game.ActionSpecial}
	}
	if len(active.Skills) > 0 && rng.Float64() < 0.7 {
		// Repeating the last element extends the combo chain, so bias
		// toward the skill the AI used last when it knows one.
		if active.LastSkillUsed != "" {
			for i := range active.Skills {
				if active.Skills[i].Element == active.LastSkillUsed && rng.Float64() < 0.6 {
					return Action{Kind: game.ActionSkill, SkillName: active.Skills[i].Name}
				}
			}
		}
		pick := active.Skills[rng.Intn(len(active.Skills))]
		return Action{Kind: game.ActionSkill, SkillName: pick.Name}
	}
	return Action{Kind: game.ActionAttack}
}
