// Command qrgen writes a PNG for every active seat QR code. Each image encodes
// the scan URL of its token and is named after the lab and the seat.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"go.uber.org/zap"

	"github.com/seatserve/canteen-api/cmd/app"
	"github.com/seatserve/canteen-api/internal/pkg/qrimage"
	"github.com/seatserve/canteen-api/internal/repository"
	"github.com/seatserve/canteen-api/internal/repository/dao"
)

func main() {
	configPath := flag.String("config", app.ConfigPath, "path to the config file")
	outputDir := flag.String("out", "", "output directory, defaults to qr.output_dir")
	flag.Parse()

	if err := run(*configPath, *outputDir); err != nil {
		panic(err)
	}
}

func run(configPath, outputDir string) error {
	conf, err := app.Bootstrap(configPath)
	if err != nil {
		return err
	}

	if outputDir == "" {
		outputDir = conf.QR.OutputDir
	}

	db, err := app.OpenPostgres(conf)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	catalog := repository.NewCatalogRepository(dao.NewCatalogDAO(db), dao.NewAssignmentDAO(db))
	locations, err := catalog.FindActiveSeatLocations(ctx)
	if err != nil {
		return fmt.Errorf("catalog.FindActiveSeatLocations -> %w", err)
	}

	renderer := qrimage.NewRenderer(conf.QR.ScanBaseURL, conf.QR.Size)
	for _, loc := range locations {
		path, err := renderer.WriteFile(outputDir, loc.Lab.Name, loc.Seat.SeatNumber, loc.QRCode.Token.String())
		if err != nil {
			return fmt.Errorf("renderer.WriteFile -> %w", err)
		}
		zap.L().Info("qr code written", zap.String("path", path), zap.String("url", renderer.ScanURL(loc.QRCode.Token.String())))
	}

	zap.L().Info("qr generation completed", zap.Int("count", len(locations)))

	return nil
}
