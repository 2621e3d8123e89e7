package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCanteenNotFound    = errors.New("canteen not found")
	ErrQRCodeNotFound     = errors.New("qr code not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrItemOptionNotFound = errors.New("item option not found")
	ErrSeatExists         = errors.New("seat number already exists in lab")
)

const seatNumberConstraint = "idx_seats_lab_number"

type Canteen struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"not null"`
	IsActive  bool       `gorm:"not null"`
	Labs      []Lab      `gorm:"foreignKey:CanteenID"`
	MenuItems []MenuItem `gorm:"foreignKey:CanteenID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Lab struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"not null"`
	CanteenID uint    `gorm:"not null;index"`
	Canteen   Canteen `gorm:"foreignKey:CanteenID;constraint:OnDelete:CASCADE"`
	Seats     []Seat  `gorm:"foreignKey:LabID"`
}

type Seat struct {
	ID         uint    `gorm:"primaryKey"`
	LabID      uint    `gorm:"not null;uniqueIndex:idx_seats_lab_number"`
	Lab        Lab     `gorm:"foreignKey:LabID;constraint:OnDelete:CASCADE"`
	SeatNumber string  `gorm:"size:20;not null;uniqueIndex:idx_seats_lab_number"`
	QRCode     *QRCode `gorm:"foreignKey:SeatID"`
}

type QRCode struct {
	ID        uint      `gorm:"primaryKey"`
	SeatID    uint      `gorm:"not null;uniqueIndex"`
	Seat      Seat      `gorm:"foreignKey:SeatID;constraint:OnDelete:CASCADE"`
	Token     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (QRCode) TableName() string {
	return "qr_codes"
}

type MenuItem struct {
	ID          uint         `gorm:"primaryKey"`
	CanteenID   uint         `gorm:"not null;index"`
	Canteen     Canteen      `gorm:"foreignKey:CanteenID;constraint:OnDelete:CASCADE"`
	Name        string       `gorm:"size:100;not null"`
	IsAvailable bool         `gorm:"not null"`
	Options     []ItemOption `gorm:"foreignKey:MenuItemID"`
}

type ItemOption struct {
	ID         uint     `gorm:"primaryKey"`
	MenuItemID uint     `gorm:"not null;index"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	Name       string   `gorm:"size:50;not null"`
}

type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{
		db: db,
	}
}

func (d *CatalogDAO) InsertCanteen(ctx context.Context, canteen Canteen) (Canteen, error) {
	if err := d.db.WithContext(ctx).Create(&canteen).Error; err != nil {
		return Canteen{}, err
	}

	return canteen, nil
}

func (d *CatalogDAO) InsertLab(ctx context.Context, lab Lab) (Lab, error) {
	if err := d.db.WithContext(ctx).Omit("Canteen").Create(&lab).Error; err != nil {
		return Lab{}, err
	}

	return lab, nil
}

// InsertSeatWithQRCode creates a seat and its QR binding in one transaction.
func (d *CatalogDAO) InsertSeatWithQRCode(ctx context.Context, seat Seat, qr QRCode) (Seat, QRCode, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lab", "QRCode").Create(&seat).Error; err != nil {
			if isUniqueViolation(err, seatNumberConstraint) {
				return ErrSeatExists
			}

			return err
		}

		qr.SeatID = seat.ID
		return tx.Omit("Seat").Create(&qr).Error
	})
	if err != nil {
		return Seat{}, QRCode{}, err
	}

	return seat, qr, nil
}

func (d *CatalogDAO) InsertMenuItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	if err := d.db.WithContext(ctx).Omit("Canteen").Create(&item).Error; err != nil {
		return MenuItem{}, err
	}

	return item, nil
}

func (d *CatalogDAO) FindCanteenByID(ctx context.Context, id uint) (Canteen, error) {
	var canteen Canteen

	result := d.db.WithContext(ctx).First(&canteen, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Canteen{}, ErrCanteenNotFound
		}

		return Canteen{}, result.Error
	}

	return canteen, nil
}

// FindQRCodeByToken loads the QR code with its seat, lab and canteen.
func (d *CatalogDAO) FindQRCodeByToken(ctx context.Context, token uuid.UUID) (QRCode, error) {
	var qr QRCode

	result := d.db.WithContext(ctx).
		Preload("Seat.Lab.Canteen").
		First(&qr, "token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return QRCode{}, ErrQRCodeNotFound
		}

		return QRCode{}, result.Error
	}

	return qr, nil
}

func (d *CatalogDAO) FindActiveQRCodes(ctx context.Context) ([]QRCode, error) {
	var codes []QRCode

	result := d.db.WithContext(ctx).
		Preload("Seat.Lab").
		Where("is_active = ?", true).
		Order("id").
		Find(&codes)
	if result.Error != nil {
		return nil, result.Error
	}

	return codes, nil
}

func (d *CatalogDAO) UpdateQRCodeActive(ctx context.Context, token uuid.UUID, active bool) (QRCode, error) {
	result := d.db.WithContext(ctx).
		Model(&QRCode{}).
		Where("token = ?", token).
		Update("is_active", active)
	if result.Error != nil {
		return QRCode{}, result.Error
	}
	if result.RowsAffected == 0 {
		return QRCode{}, ErrQRCodeNotFound
	}

	return d.FindQRCodeByToken(ctx, token)
}

func (d *CatalogDAO) FindMenuItemByID(ctx context.Context, id uint) (MenuItem, error) {
	var item MenuItem

	result := d.db.WithContext(ctx).First(&item, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return MenuItem{}, ErrMenuItemNotFound
		}

		return MenuItem{}, result.Error
	}

	return item, nil
}

func (d *CatalogDAO) FindItemOptionByID(ctx context.Context, id uint) (ItemOption, error) {
	var option ItemOption

	result := d.db.WithContext(ctx).First(&option, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ItemOption{}, ErrItemOptionNotFound
		}

		return ItemOption{}, result.Error
	}

	return option, nil
}

// FindAvailableMenuItems returns the available items of a canteen with their options in insertion order.
func (d *CatalogDAO) FindAvailableMenuItems(ctx context.Context, canteenID uint) ([]MenuItem, error) {
	var items []MenuItem

	result := d.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("item_options.id")
		}).
		Where("canteen_id = ? AND is_available = ?", canteenID, true).
		Order("id").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}
