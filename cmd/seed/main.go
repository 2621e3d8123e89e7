// Command seed loads a demo canteen into an empty database: two labs with QR
// bound seats, a small menu, an admin and a manager assigned to the canteen.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"go.uber.org/zap"

	"github.com/seatserve/canteen-api/cmd/app"
	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/repository"
	"github.com/seatserve/canteen-api/internal/repository/dao"
	"github.com/seatserve/canteen-api/internal/service"
)

type menuEntry struct {
	name    string
	options []string
}

var (
	labs = map[string][]string{
		"Lab 1": {"C1", "C2", "C3", "C4"},
		"Lab 2": {"D1", "D2"},
	}

	menu = []menuEntry{
		{name: "Tea", options: []string{"No Sugar", "Less Sugar", "Extra Sugar"}},
		{name: "Coffee", options: []string{"Black", "With Milk"}},
		{name: "Sandwich", options: []string{"Veg", "Cheese"}},
		{name: "Samosa"},
	}
)

func main() {
	configPath := flag.String("config", app.ConfigPath, "path to the config file")
	canteenName := flag.String("canteen", "Main Canteen", "name of the seeded canteen")
	adminEmail := flag.String("admin-email", "admin@example.com", "email of the admin account")
	managerEmail := flag.String("manager-email", "manager@example.com", "email of the manager account")
	password := flag.String("password", "changeme123", "password of both seeded accounts")
	flag.Parse()

	if err := run(*configPath, *canteenName, *adminEmail, *managerEmail, *password); err != nil {
		panic(err)
	}
}

func run(configPath, canteenName, adminEmail, managerEmail, password string) error {
	conf, err := app.Bootstrap(configPath)
	if err != nil {
		return err
	}

	db, err := app.OpenPostgres(conf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	catalog := repository.NewCatalogRepository(dao.NewCatalogDAO(db), dao.NewAssignmentDAO(db))
	authSvc := service.NewAuthService(userRepo)

	canteen, err := catalog.CreateCanteen(ctx, domain.Canteen{Name: canteenName, IsActive: true})
	if err != nil {
		return fmt.Errorf("catalog.CreateCanteen -> %w", err)
	}

	for labName, seatNumbers := range labs {
		lab, err := catalog.CreateLab(ctx, domain.Lab{Name: labName, CanteenID: canteen.ID})
		if err != nil {
			return fmt.Errorf("catalog.CreateLab -> %w", err)
		}

		for _, number := range seatNumbers {
			seat, qr, err := catalog.CreateSeat(ctx, domain.Seat{LabID: lab.ID, SeatNumber: number})
			if err != nil {
				return fmt.Errorf("catalog.CreateSeat -> %w", err)
			}
			zap.L().Info("seat created",
				zap.String("lab", lab.Name),
				zap.String("seat", seat.SeatNumber),
				zap.String("qr_token", qr.Token.String()),
			)
		}
	}

	for _, entry := range menu {
		options := make([]domain.ItemOption, len(entry.options))
		for i, name := range entry.options {
			options[i] = domain.ItemOption{Name: name}
		}

		item, err := catalog.CreateMenuItem(ctx, domain.MenuItem{
			Name:        entry.name,
			CanteenID:   canteen.ID,
			IsAvailable: true,
			Options:     options,
		})
		if err != nil {
			return fmt.Errorf("catalog.CreateMenuItem -> %w", err)
		}
		zap.L().Info("menu item created", zap.String("name", item.Name), zap.Int("options", len(item.Options)))
	}

	if _, err = authSvc.Signup(ctx, domain.User{
		Email:    adminEmail,
		Password: password,
		Name:     "Admin",
		Role:     domain.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("authSvc.Signup admin -> %w", err)
	}

	manager, err := authSvc.Signup(ctx, domain.User{
		Email:    managerEmail,
		Password: password,
		Name:     "Canteen Manager",
		Role:     domain.RoleManager,
	})
	if err != nil {
		return fmt.Errorf("authSvc.Signup manager -> %w", err)
	}

	if _, err = catalog.AssignManager(ctx, domain.ManagerAssignment{
		CanteenID:  canteen.ID,
		UserID:     manager.ID,
		AssignedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("catalog.AssignManager -> %w", err)
	}

	zap.L().Info("seed completed", zap.Uint("canteen_id", canteen.ID), zap.String("manager", manager.Email))

	return nil
}
