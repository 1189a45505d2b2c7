package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jrabinat-art/agenda/internal/config"
	"github.com/jrabinat-art/agenda/internal/database"
	"github.com/jrabinat-art/agenda/internal/filestore"
	"github.com/jrabinat-art/agenda/internal/router"

	"github.com/robfig/cron/v3"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// file store for the local contact list dashboard
	contacts, err := filestore.New(cfg.Files.Dir)
	if err != nil {
		log.Fatalf("init filestore: %v", err)
	}

	// nightly cleanup of dead sessions
	jobs := cron.New()
	if _, err := jobs.AddFunc("@daily", func() {
		n, err := database.PurgeExpiredSessions(db)
		if err != nil {
			log.Printf("session sweep: %v", err)
			return
		}
		if n > 0 {
			log.Printf("session sweep: removed %d sessions", n)
		}
	}); err != nil {
		log.Fatalf("schedule session sweep: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	// setup router
	r := router.SetupRouter(cfg, db, contacts)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
