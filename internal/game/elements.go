package game

// Element is one of the five pet elements. Using a dedicated type instead
// of plain string makes code safer and self-documenting.
type Element string

const (
	Light Element = "light"
	Fire  Element = "fire"
	Water Element = "water"
	Earth Element = "earth"
	Air   Element = "air"
)

// Elements lists every valid element in a stable order.
var Elements = []Element{Light, Fire, Water, Earth, Air}

// Weather is chosen once per battle and fixed for its duration.
type Weather string

const (
	WeatherSunny Weather = "sunny"
	WeatherRainy Weather = "rainy"
	WeatherWindy Weather = "windy"
	WeatherRocky Weather = "rocky"
	WeatherClear Weather = "clear"
)

// Weathers lists every weather condition a battle can roll.
var Weathers = []Weather{WeatherSunny, WeatherRainy, WeatherWindy, WeatherRocky, WeatherClear}

// StatusKind is an active status effect on a combatant. The empty string
// means no status. At most one status is active at a time; applying a new
// one while another is active is a no-op.
type StatusKind string

const (
	StatusNone      StatusKind = ""
	StatusBurn      StatusKind = "burn"
	StatusFreeze    StatusKind = "freeze"
	StatusParalysis StatusKind = "paralysis"
	StatusPoison    StatusKind = "poison"
)

// InflictedStatus maps an attacker element to the status its hits may
// inflict. Light inflicts nothing.
func InflictedStatus(e Element) StatusKind {
	switch e {
	case Fire:
		return StatusBurn
	case Water:
		return StatusFreeze
	case Air:
		return StatusParalysis
	case Earth:
		return StatusPoison
	}
	return StatusNone
}

// ActionKind is a string alias representing a combatant's chosen action.
type ActionKind string

const (
	ActionNone    ActionKind = ""
	ActionAttack  ActionKind = "attack"
	ActionSkill   ActionKind = "skill"
	ActionSpecial ActionKind = "special"
	ActionDefend  ActionKind = "defend"
	ActionDodge   ActionKind = "dodge"
	ActionItem    ActionKind = "item"
	ActionSwitch  ActionKind = "switch"
)

// Role identifies one of the two battle sides.
type Role string

const (
	RoleAttacker Role = "attacker"
	RoleDefender Role = "defender"
)

// Opponent returns the other side's role.
func (r Role) Opponent() Role {
	if r == RoleAttacker {
		return RoleDefender
	}
	return RoleAttacker
}

// Battle lifecycle. Status tracks the persisted record lifecycle
// (settlement flips Active to Completed exactly once); Phase tracks the
// state machine within an active battle. Teams are fixed at creation
// and faints auto-advance to the next standing slot, so in_progress,
// resolving and completed are the only phases a battle enters.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"

	PhaseInProgress = "in_progress"
	PhaseResolving  = "resolving"
	PhaseCompleted  = "completed"
)
