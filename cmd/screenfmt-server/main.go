package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	// mysql driver registration
	_ "github.com/jinzhu/gorm/dialects/mysql"

	"github.com/goliatone/go-screenfmt/pkg/render"
	"github.com/goliatone/go-screenfmt/pkg/renderers/htmltable"
	"github.com/goliatone/go-screenfmt/pkg/renderers/texttable"
	"github.com/goliatone/go-screenfmt/pkg/screen"
	"github.com/goliatone/go-screenfmt/pkg/store"
	"github.com/goliatone/go-screenfmt/pkg/store/gormstore"
	"github.com/goliatone/go-screenfmt/pkg/web"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := screen.Config{
		DataDir:     envOr("SCREENFMT_DATA_DIR", "data"),
		TestDataDir: envOr("SCREENFMT_TEST_DATA_DIR", "testdata"),
		Fields:      screen.FieldsDir(envOr("SCREENFMT_FIELD_DIR", "fields")),
	}
	defaults := store.NewDefaultsDir(envOr("SCREENFMT_DEFAULT_DIR", "defaults"))

	backing, cleanup, err := openStore(logger)
	if err != nil {
		log.Fatalf("open formatter store: %v", err)
	}
	defer cleanup()

	manager := store.NewManager(backing, defaults, store.WithLogger(logger))

	registry := render.NewRegistry()
	html, err := htmltable.New()
	if err != nil {
		log.Fatalf("configure html renderer: %v", err)
	}
	registry.MustRegister(html)
	registry.MustRegister(texttable.New())

	handlers := web.New(cfg, manager, registry, web.WithLogger(logger))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(web.RequestLogger(logger))
	handlers.Routes(r)

	addr := fmt.Sprintf(":%s", envOr("SCREENFMT_PORT", "8080"))
	logger.Info().Str("addr", addr).Msg("starting screenfmt server")
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// openStore connects to MySQL when SCREENFMT_DB_DSN is set and falls back to
// the in-memory store otherwise, which keeps local previews dependency-free.
func openStore(logger zerolog.Logger) (store.Store, func(), error) {
	dsn := os.Getenv("SCREENFMT_DB_DSN")
	if dsn == "" {
		logger.Warn().Msg("SCREENFMT_DB_DSN not set, using in-memory formatter store")
		return store.NewMemory(), func() {}, nil
	}

	db, err := gorm.Open("mysql", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := gormstore.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return gormstore.New(db), func() { db.Close() }, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
