package storage

import (
	"github.com/pawhaven/petbattle/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Keep the schema updated via AutoMigrate. The turn-log and inventory
	// unique indexes come from the model struct tags.
	err = db.AutoMigrate(
		&game.Pet{},
		&game.Battle{},
		&game.Side{},
		&game.Combatant{},
		&game.BattleTurn{},
		&game.Profile{},
		&game.InventoryItem{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
