package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/intercel/backend/internal/application/catalog"
	siteconfigapp "github.com/intercel/backend/internal/application/siteconfig"
	"github.com/intercel/backend/internal/infrastructure/auth"
	"github.com/intercel/backend/internal/infrastructure/config"
	"github.com/intercel/backend/internal/infrastructure/logger"
	"github.com/intercel/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		adminToken   bool
		adminSubject string
		tokenTTL     time.Duration
		skipCatalog  bool
		catalogFile  string
	)
	flag.BoolVar(&adminToken, "admin-token", false, "Print a signed admin access token after seeding")
	flag.StringVar(&adminSubject, "admin-name", "admin", "Username embedded in the admin token")
	flag.DurationVar(&tokenTTL, "token-ttl", 0, "Admin token lifetime (default: jwt.access_token_expiration)")
	flag.StringVar(&catalogFile, "catalog", "", "Load categories and plans from a CSV file instead of the built-in catalog")
	flag.BoolVar(&skipCatalog, "skip-catalog", false, "Only print the admin token, leave the database untouched")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if !skipCatalog {
		catalog := defaultCatalog
		if catalogFile != "" {
			catalog, err = loadCatalogFile(catalogFile)
			if err != nil {
				log.Fatal("Failed to read catalog file", zap.String("path", catalogFile), zap.Error(err))
			}
		}
		seedDatabase(log, cfg, catalog)
	}

	if adminToken {
		jwtCfg := cfg.JWT
		if tokenTTL > 0 {
			jwtCfg.AccessTokenExpiration = tokenTTL
		}
		token, expiresAt, err := auth.NewJWTService(jwtCfg).GenerateAccessToken(auth.GenerateTokenInput{
			UserID:   uuid.New(),
			Username: adminSubject,
			Roles:    []string{cfg.JWT.AdminRole},
		})
		if err != nil {
			log.Fatal("Failed to sign admin token", zap.Error(err))
		}
		log.Info("Admin token issued", zap.Time("expires_at", expiresAt))
		fmt.Println(token)
	}
}

func seedDatabase(log *zap.Logger, cfg *config.Config, catalog []seedCategory) {
	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, cfg.Database.LogLevel, cfg.Database.SlowThreshold))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	if db.Driver() == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate SQLite schema", zap.Error(err))
		}
	}

	serviceCfg := catalogapp.ServiceConfig{
		CategoryRepo: persistence.NewGormCategoryRepository(db.DB),
		PlanRepo:     persistence.NewGormPlanRepository(db.DB),
		TxScope:      persistence.NewGormTransactionScope(db.DB),
		Logger:       log,
	}
	s := &seeder{
		categories: catalogapp.NewCategoryService(serviceCfg),
		plans:      catalogapp.NewPlanService(serviceCfg),
		settings:   siteconfigapp.NewService(persistence.NewGormSiteConfigRepository(db.DB), log),
		logger:     log,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := s.Run(ctx, catalog, defaultSettings)
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}
	log.Info("Seeding completed",
		zap.Int("categories_created", result.CategoriesCreated),
		zap.Int("categories_updated", result.CategoriesUpdated),
		zap.Int("categories_removed", result.CategoriesRemoved),
		zap.Int("plans_removed", result.PlansRemoved),
		zap.Int("plans_created", result.PlansCreated),
		zap.Int("settings", result.SettingsUpserted),
	)
}
