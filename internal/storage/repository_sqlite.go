package storage

import (
	"time"

	"github.com/pawhaven/petbattle/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) ListPetsByOwner(ownerID string) ([]game.Pet, error) {
	var pets []game.Pet
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at asc").Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *sqliteRepository) GetTeamPets(ownerID string, petIDs []uint) ([]game.Pet, error) {
	var pets []game.Pet
	err := r.db.Where("owner_id = ? AND id IN ?", ownerID, petIDs).Find(&pets).Error
	return pets, err
}

func (r *sqliteRepository) CreatePet(p *game.Pet) error {
	return r.db.Create(p).Error
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.Preload("Sides.Combatants").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// RecordTurns commits the mutated aggregate together with the log rows
// the resolution produced. The unique turn-number index still guards
// against double inserts from outside this path.
func (r *sqliteRepository) RecordTurns(b *game.Battle, turns []game.BattleTurn) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error; err != nil {
			return err
		}
		for i := range turns {
			if err := tx.Create(&turns[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.Battle, error) {
	var battles []game.Battle
	err := r.db.Preload("Sides.Combatants").
		Where("status = ? AND action_deadline <= ?", game.StatusActive, now).
		Find(&battles).Error
	return battles, err
}

func (r *sqliteRepository) ListTurns(battleID uint) ([]game.BattleTurn, error) {
	var turns []game.BattleTurn
	err := r.db.Where("battle_id = ?", battleID).Order("turn_number asc").Find(&turns).Error
	return turns, err
}

func (r *sqliteRepository) ConsumeItem(ownerID, itemKey string) error {
	res := r.db.Model(&game.InventoryItem{}).
		Where("owner_id = ? AND item_key = ? AND quantity > 0", ownerID, itemKey).
		Update("quantity", gorm.Expr("quantity - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemUnavailable
	}
	return nil
}

func (r *sqliteRepository) GrantItem(ownerID, itemKey string, quantity int) error {
	item := game.InventoryItem{OwnerID: ownerID, ItemKey: itemKey, Quantity: quantity}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "item_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", quantity)}),
	}).Create(&item).Error
}

func (r *sqliteRepository) ListInventory(ownerID string) ([]game.InventoryItem, error) {
	var items []game.InventoryItem
	err := r.db.Where("owner_id = ? AND quantity > 0", ownerID).Find(&items).Error
	return items, err
}

func (r *sqliteRepository) UpsertProfile(userID, username, email string) error {
	var p game.Profile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			p = game.Profile{UserID: userID}
		} else {
			return err
		}
	}
	p.Username = username
	p.Email = email
	return r.db.Save(&p).Error
}

func (r *sqliteRepository) GetProfileByUserID(userID string) (*game.Profile, error) {
	var p game.Profile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) AdjustPoints(userID string, delta int) error {
	if delta >= 0 {
		res := r.db.Model(&game.Profile{}).Where("user_id = ?", userID).
			Update("pet_points", gorm.Expr("pet_points + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}
	// Debits are conditional so a concurrent spend cannot overdraw.
	res := r.db.Model(&game.Profile{}).
		Where("user_id = ? AND pet_points >= ?", userID, -delta).
		Update("pet_points", gorm.Expr("pet_points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientPoints
	}
	return nil
}

// GetTopProfiles returns the top N profiles ordered by wins, then battles
// played.
func (r *sqliteRepository) GetTopProfiles(limit int) ([]game.Profile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []game.Profile
	if err := r.db.Model(&game.Profile{}).
		Order("wins DESC").
		Order("battles_played DESC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *sqliteRepository) ApplySettlement(b *game.Battle, credits []PointsCredit, pets []PetProgress) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Re-read the status inside the transaction so two racing
		// settlements cannot both pay out.
		var current game.Battle
		if err := tx.Select("status").First(&current, b.ID).Error; err != nil {
			return err
		}
		if current.Status == game.StatusCompleted {
			return ErrAlreadySettled
		}

		b.Status = game.StatusCompleted
		b.Settled = true
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error; err != nil {
			return err
		}

		for _, c := range credits {
			updates := map[string]interface{}{
				"pet_points":     gorm.Expr("pet_points + ?", c.Points),
				"battles_played": gorm.Expr("battles_played + 1"),
			}
			if c.Won {
				updates["wins"] = gorm.Expr("wins + 1")
			}
			res := tx.Model(&game.Profile{}).Where("user_id = ?", c.UserID).Updates(updates)
			if res.Error != nil {
				return res.Error
			}
		}

		for _, p := range pets {
			if err := tx.Model(&game.Pet{}).Where("id = ?", p.PetID).
				Updates(map[string]interface{}{"level": p.Level, "experience": p.Experience}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
