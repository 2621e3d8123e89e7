package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Canteen{},
		&Lab{},
		&Seat{},
		&QRCode{},
		&MenuItem{},
		&ItemOption{},
		&Order{},
		&ManagerAssignment{},
	)
}

// isUniqueViolation reports whether err is a postgres unique violation on the given constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}

	return constraint == "" || pgErr.ConstraintName == constraint
}
