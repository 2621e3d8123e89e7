package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAssignmentNotFound = errors.New("manager assignment not found")

// ManagerAssignment holds at most one row per canteen: the active manager.
type ManagerAssignment struct {
	ID         uint      `gorm:"primaryKey"`
	CanteenID  uint      `gorm:"not null;uniqueIndex"`
	Canteen    Canteen   `gorm:"foreignKey:CanteenID;constraint:OnDelete:CASCADE"`
	UserID     uint      `gorm:"not null;index"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AssignedAt time.Time `gorm:"not null"`
}

type AssignmentDAO struct {
	db *gorm.DB
}

func NewAssignmentDAO(db *gorm.DB) *AssignmentDAO {
	return &AssignmentDAO{
		db: db,
	}
}

// Upsert makes the assignment's user the canteen's manager, replacing any previous one.
func (d *AssignmentDAO) Upsert(ctx context.Context, assignment ManagerAssignment) (ManagerAssignment, error) {
	result := d.db.WithContext(ctx).
		Omit("Canteen", "User").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "canteen_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "assigned_at"}),
		}).
		Create(&assignment)
	if result.Error != nil {
		return ManagerAssignment{}, result.Error
	}

	return d.FindByCanteenID(ctx, assignment.CanteenID)
}

func (d *AssignmentDAO) FindByCanteenID(ctx context.Context, canteenID uint) (ManagerAssignment, error) {
	var assignment ManagerAssignment

	result := d.db.WithContext(ctx).First(&assignment, "canteen_id = ?", canteenID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ManagerAssignment{}, ErrAssignmentNotFound
		}

		return ManagerAssignment{}, result.Error
	}

	return assignment, nil
}

func (d *AssignmentDAO) FindCanteenIDsByUserID(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).
		Model(&ManagerAssignment{}).
		Where("user_id = ?", userID).
		Order("canteen_id").
		Pluck("canteen_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

func (d *AssignmentDAO) FindCanteensByUserID(ctx context.Context, userID uint) ([]Canteen, error) {
	var canteens []Canteen

	result := d.db.WithContext(ctx).
		Joins("JOIN manager_assignments ON manager_assignments.canteen_id = canteens.id").
		Where("manager_assignments.user_id = ?", userID).
		Order("canteens.id").
		Find(&canteens)
	if result.Error != nil {
		return nil, result.Error
	}

	return canteens, nil
}
