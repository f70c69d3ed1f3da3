package main

import (
	"context"

	"dealspot/client/internal/config"
	"dealspot/client/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting Dealspot client...")

	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Info("Configuration loaded successfully")

	// Initialize container with all dependencies
	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	// Restore the session and run the initial sync
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("Application exited with error: %v", err)
	}

	session := app.Session.Snapshot()
	catalog := app.Catalog.Snapshot()
	favorites := app.Favorites.Snapshot()

	log.Infof("Session: authenticated=%v onboarded=%v",
		session.IsAuthenticated, session.HasCompletedOnboarding)
	log.Infof("Catalog: %d offers (page %d of %d), %d trending, %d categories, %d brands, %d banners",
		len(catalog.Offers), catalog.Cursor.Page, catalog.Cursor.TotalPages,
		len(catalog.TrendingOffers), len(catalog.Categories), len(catalog.Brands), len(catalog.Banners))
	log.Infof("Favorites: %d offers", len(favorites.Favorites))

	log.Info("Application finished successfully")
}
