package game

import (
	"time"

	"gorm.io/gorm"
)

// Skill is one of a pet's learned moves. Stored as a JSON column on the
// pet row and snapshotted onto combatants at battle start so mid-battle
// edits to a pet cannot change an ongoing fight.
type Skill struct {
	Name    string  `json:"name"`
	Power   int     `json:"power"`
	Element Element `json:"element"`
}

// Pet is the repository-owned pet row. The battle engine only reads pets
// (team selection snapshots) and emits experience/level deltas back
// through the repository at settlement; it never mutates care stats.
type Pet struct {
	gorm.Model
	OwnerID    string  `json:"owner_id" gorm:"index"`
	Name       string  `json:"name"`
	Species    string  `json:"species"`
	Element    Element `json:"element"`
	Level      int     `json:"level"`
	Experience int     `json:"experience"`
	// Care vector (0-100 each). Captured into the care-quality multiplier
	// at team selection time.
	Health    int     `json:"health"`
	Energy    int     `json:"energy"`
	Hunger    int     `json:"hunger"`
	Happiness int     `json:"happiness"`
	Skills    []Skill `json:"skills" gorm:"serializer:json"`
}

// Combatant is one battle-ready pet snapshot with derived battle stats.
// Stats are computed once at battle start and never recomputed mid-battle
// except through temporary boosts.
type Combatant struct {
	gorm.Model
	SideID    uint    `json:"-"`
	PetID     uint    `json:"pet_id"`
	PetName   string  `json:"pet_name"`
	Species   string  `json:"species"`
	Element   Element `json:"element"`
	Level     int     `json:"level"`
	SlotIndex int     `json:"slot_index"`

	MaxHealth     int `json:"max_health"`
	CurrentHealth int `json:"current_health"`
	Attack        int `json:"attack"`
	Defense       int `json:"defense"`
	Speed         int `json:"speed"`

	Skills []Skill `json:"skills" gorm:"serializer:json"`

	Status      StatusKind `json:"status"`
	StatusTurns int        `json:"status_turns"`

	// Stat boosts from consumable items. The three percents share one
	// remaining-turns counter and expire as a unit.
	BoostAttackPercent  int `json:"boost_attack_percent"`
	BoostDefensePercent int `json:"boost_defense_percent"`
	BoostSpeedPercent   int `json:"boost_speed_percent"`
	BoostTurns          int `json:"boost_turns"`

	IsDefending     bool    `json:"is_defending"`
	IsDodging       bool    `json:"is_dodging"`
	SpecialCooldown int     `json:"special_cooldown"`
	ComboCount      int     `json:"combo_count"`
	LastSkillUsed   Element `json:"last_skill_element"`
	Fainted         bool    `json:"fainted"`
}

// Side is one battle participant: a user (or the AI) and their ordered
// team of up to three combatants, exactly one of which is active.
type Side struct {
	gorm.Model
	BattleID    uint        `json:"-"`
	UserID      string      `json:"user_id"`
	Role        Role        `json:"role"`
	ActiveSlot  int         `json:"active_slot"`
	DamageDealt int         `json:"damage_dealt"`
	Combatants  []Combatant `json:"combatants"`
}

// Store per-battle participants in a dedicated table for clarity.
func (Side) TableName() string { return "battle_sides" }

// Active returns the side's active combatant, or nil when the active slot
// points at a fainted or missing team member.
func (s *Side) Active() *Combatant {
	for i := range s.Combatants {
		if s.Combatants[i].SlotIndex == s.ActiveSlot && !s.Combatants[i].Fainted {
			return &s.Combatants[i]
		}
	}
	return nil
}

// Exhausted reports whether every team member has fainted.
func (s *Side) Exhausted() bool {
	for i := range s.Combatants {
		if !s.Combatants[i].Fainted {
			return false
		}
	}
	return true
}

// Battle is the aggregate owned by the session coordinator. It is created
// at session start, mutated turn by turn through the engine, and becomes
// immutable once settlement flips Status to completed.
type Battle struct {
	gorm.Model
	Sides      []Side  `json:"sides"`
	Weather    Weather `json:"weather"`
	Status     string  `json:"status"`
	Phase      string  `json:"phase"`
	TurnCount  int     `json:"turn_count"`
	Seed       int64   `json:"-"`
	IsAIBattle bool    `json:"is_ai_battle"`

	WagerAmount int    `json:"wager_amount"`
	WinnerID    string `json:"winner_id"`

	RewardPoints     int  `json:"rewards_petpoints"`
	RewardExperience int  `json:"rewards_experience"`
	Settled          bool `json:"-"`

	ActionDeadline time.Time `json:"action_deadline"`
	CompletedAt    time.Time `json:"completed_at"`
	Message        string    `json:"message"`
}

// SideByRole returns the side playing the given role, or nil.
func (b *Battle) SideByRole(r Role) *Side {
	for i := range b.Sides {
		if b.Sides[i].Role == r {
			return &b.Sides[i]
		}
	}
	return nil
}

// SideByUser returns the side owned by the given user, or nil.
func (b *Battle) SideByUser(userID string) *Side {
	for i := range b.Sides {
		if b.Sides[i].UserID == userID {
			return &b.Sides[i]
		}
	}
	return nil
}

// BattleTurn is one immutable entry of the append-only turn log, ordered
// by TurnNumber within a battle. Entries are never edited.
type BattleTurn struct {
	gorm.Model
	BattleID    uint       `json:"battle_id" gorm:"uniqueIndex:idx_battle_turns_number"`
	TurnNumber  int        `json:"turn_number" gorm:"uniqueIndex:idx_battle_turns_number"`
	ActorRole   Role       `json:"actor_type"`
	Action      ActionKind `json:"action_type"`
	SkillUsed   string     `json:"skill_used"`
	ItemUsed    string     `json:"item_used"`
	DamageDealt int        `json:"damage_dealt"`
	AttackerHP  int        `json:"attacker_hp"`
	DefenderHP  int        `json:"defender_hp"`
	Summary     string     `json:"summary" gorm:"size:1024"`
}

// Profile stores unique player identity, currency and aggregate stats.
type Profile struct {
	gorm.Model
	UserID        string `json:"user_id" gorm:"uniqueIndex"`
	Username      string `json:"username"`
	Email         string `json:"email" gorm:"uniqueIndex"`
	PetPoints     int    `json:"pet_points"`
	Wins          int    `json:"wins"`
	BattlesPlayed int    `json:"battles_played"`
}

// Unify the global users table name as "player_profiles".
func (Profile) TableName() string { return "player_profiles" }

// InventoryItem is a stack of consumables owned by a user. The engine
// never touches this table directly; the coordinator consumes one unit
// per item action through the repository.
type InventoryItem struct {
	gorm.Model
	OwnerID  string `json:"owner_id" gorm:"uniqueIndex:idx_inventory_owner_item"`
	ItemKey  string `json:"item_key" gorm:"uniqueIndex:idx_inventory_owner_item"`
	Quantity int    `json:"quantity"`
}

// ItemEffect is a flexible description of what a consumable does in
// battle. All fields are optional and applied when present. Effects come
// from the server config (petbattle_config.json) and are not persisted.
type ItemEffect struct {
	// Instant effects
	Heal       int  `json:"heal"`
	CureStatus bool `json:"cure_status"`
	// Revive restores a fainted teammate to the given percent of max health.
	Revive              bool `json:"revive"`
	ReviveHealthPercent int  `json:"revive_health_percent"`

	// Multi-turn stat boosts. The three percents share one duration and
	// expire together.
	AttackBoostPercent  int `json:"attack_boost_percent"`
	DefenseBoostPercent int `json:"defense_boost_percent"`
	SpeedBoostPercent   int `json:"speed_boost_percent"`
	BoostTurns          int `json:"boost_turns"`
}

// Item combines the human-readable metadata of a consumable with its
// structured battle effect. Configured, never persisted.
type Item struct {
	Key    string     `json:"key"`
	Name   string     `json:"name"`
	Effect ItemEffect `json:"effect"`
}
