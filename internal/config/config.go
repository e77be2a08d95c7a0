package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pawhaven/petbattle/internal/game"
)

type itemEntry struct {
	Key    string          `json:"key"`
	Name   string          `json:"name"`
	Effect game.ItemEffect `json:"effect"`
}

type rawConfig struct {
	ItemList []itemEntry `json:"item_list"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
	DatabasePath string `json:"database_path"`
	// Seconds a participant has to submit their action before the battle
	// expires; also bounds the background scan interval.
	ActionTimeoutSeconds int `json:"action_timeout_seconds"`
	TimeoutScanSeconds   int `json:"timeout_scan_seconds"`
}

// LoadedConfig contains the consumable item catalog and server settings.
type LoadedConfig struct {
	Items         map[string]game.Item
	ServerAddress string
	DatabasePath  string
	ActionTimeout time.Duration
	ScanInterval  time.Duration
}

// LoadConfig reads the configuration file at path. It requires the key
// `item_list` (snake_case) naming every consumable usable in battle.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.ItemList) == 0 {
		return nil, fmt.Errorf("config file %s: item_list is empty (provide 'item_list' array)", path)
	}

	items := make(map[string]game.Item, len(rc.ItemList))
	for _, e := range rc.ItemList {
		key := strings.TrimSpace(e.Key)
		if key == "" {
			return nil, fmt.Errorf("config file %s: item entry missing 'key'", path)
		}
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("config file %s: item '%s' missing 'name'", path, key)
		}
		if _, exists := items[key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate item key '%s'", path, key)
		}
		if err := validateEffect(e.Effect); err != nil {
			return nil, fmt.Errorf("config file %s: item '%s': %w", path, key, err)
		}
		items[key] = game.Item{Key: key, Name: e.Name, Effect: e.Effect}
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	dbPath := rc.DatabasePath
	if dbPath == "" {
		dbPath = "petbattle.db"
	}
	actionTimeout := 120 * time.Second
	if rc.ActionTimeoutSeconds > 0 {
		actionTimeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}
	scanInterval := 30 * time.Second
	if rc.TimeoutScanSeconds > 0 {
		scanInterval = time.Duration(rc.TimeoutScanSeconds) * time.Second
	}

	return &LoadedConfig{
		Items:         items,
		ServerAddress: addr,
		DatabasePath:  dbPath,
		ActionTimeout: actionTimeout,
		ScanInterval:  scanInterval,
	}, nil
}

func validateEffect(e game.ItemEffect) error {
	if e.Heal < 0 {
		return fmt.Errorf("'heal' must not be negative")
	}
	if e.Revive && (e.ReviveHealthPercent < 0 || e.ReviveHealthPercent > 100) {
		return fmt.Errorf("'revive_health_percent' must be between 0 and 100")
	}
	hasBoost := e.AttackBoostPercent != 0 || e.DefenseBoostPercent != 0 || e.SpeedBoostPercent != 0
	if hasBoost && e.BoostTurns <= 0 {
		return fmt.Errorf("stat boosts require a positive 'boost_turns'")
	}
	if e.BoostTurns > 0 && !hasBoost {
		return fmt.Errorf("'boost_turns' set without any stat boost")
	}
	if e.Heal == 0 && !e.CureStatus && !e.Revive && !hasBoost {
		return fmt.Errorf("item has no effect")
	}
	return nil
}
