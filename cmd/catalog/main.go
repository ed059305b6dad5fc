package main

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"PetStore/internal/catalog"
	"PetStore/pkg/kit"
)

const startupTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("METRICS_ENABLED", false)
	viper.SetDefault("METRICS_TOKEN", "")
	viper.AutomaticEnv()

	service := "catalog"
	log := kit.NewLogger(service, viper.GetString("LOG_LEVEL"))
	defer func() { _ = log.Sync() }()

	st, err := openStore(viper.GetString("DATABASE_URL"))
	if err != nil {
		log.Fatal("open store failed", zap.Error(err))
	}

	seedCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	if err := catalog.SeedDefaults(seedCtx, st); err != nil {
		log.Warn("seed products failed", zap.Error(err))
	}
	cancel()

	s := &catalog.Server{Store: st, Log: log}

	reg := prometheus.NewRegistry()
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: viper.GetBool("METRICS_ENABLED"),
		MetricsToken:   viper.GetString("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+viper.GetString("PORT"), h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(databaseURL string) (catalog.Store, error) {
	if databaseURL == "" {
		return catalog.NewMemStore(), nil
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	st := catalog.NewPostgresStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := st.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return st, nil
}
