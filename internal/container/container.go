package container

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dealspot/client/internal/client"
	"dealspot/client/internal/config"
	"dealspot/client/internal/repository"
	"dealspot/client/internal/storage"
	"dealspot/client/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Storage storage.Store
	Gateway *client.Gateway

	Offers        client.OfferService
	Categories    client.CategoryService
	Subcategories client.SubcategoryService
	Brands        client.BrandService
	Banners       client.BannerService
	Users         client.UserService
	FavoritesAPI  client.FavoritesService

	Session   *store.SessionStore
	Catalog   *store.CatalogStore
	Favorites *store.FavoritesStore

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	// Durable local storage backend
	var st storage.Store
	switch cfg.Storage.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")
		container.redis = rdb
		st = storage.NewRedisStore(rdb, cfg.Storage.Namespace)
	default:
		st = storage.NewFileStore(cfg.Storage.Path, cfg.Storage.Namespace)
	}
	container.Storage = st

	gateway := client.NewGateway(cfg.API, st)
	container.Gateway = gateway

	container.Offers = client.NewOfferService(gateway)
	container.Categories = client.NewCategoryService(gateway)
	container.Subcategories = client.NewSubcategoryService(gateway)
	container.Brands = client.NewBrandService(gateway)
	container.Banners = client.NewBannerService(gateway)
	container.Users = client.NewUserService(gateway)
	container.FavoritesAPI = client.NewFavoritesService(gateway)

	// Optional offline catalog mirror
	var mirror repository.OfferRepository
	if cfg.Mirror.Enabled {
		db, err := pgxpool.New(context.Background(),
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mirror database: %w", err)
		}
		container.db = db
		mirror = repository.NewOfferRepository(db)
		log.Info("✅ Offline catalog mirror enabled")
	}

	container.Session = store.NewSessionStore(container.Users, st)
	container.Catalog = store.NewCatalogStore(
		container.Offers,
		container.Categories,
		container.Brands,
		container.Banners,
		mirror,
		cfg.API.PageSize,
	)
	container.Favorites = store.NewFavoritesStore(container.FavoritesAPI, st)

	return container, nil
}

// Run restores the session and performs the initial sync. Individual
// fetch failures degrade to stale-or-empty state with a logged message;
// nothing here is fatal.
func (c *Container) Run(ctx context.Context) error {
	if err := c.Session.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := c.Catalog.FetchAll(ctx, 1); err != nil {
			log.Warnf("Initial offer fetch failed: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := c.Catalog.FetchTrending(ctx); err != nil {
			log.Warnf("Trending fetch failed: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := c.Catalog.FetchCategories(ctx); err != nil {
			log.Warnf("Category fetch failed: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := c.Catalog.FetchBrands(ctx); err != nil {
			log.Warnf("Brand fetch failed: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := c.Catalog.FetchBanners(ctx); err != nil {
			log.Warnf("Banner fetch failed: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		// Fast path from the offline cache, then the authoritative list
		if err := c.Favorites.LoadFromStorage(ctx); err != nil {
			log.Warnf("Favorites cache load failed: %v", err)
		}
		if err := c.Favorites.LoadFromBackend(ctx); err != nil {
			log.Warnf("Favorites load failed: %v", err)
		}
		return nil
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		c.redis.Close()
	}

	log.Info("Container shut down successfully")
	return nil
}
