package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkwell/blog-backend/internal/config"
	"github.com/inkwell/blog-backend/internal/migration"
	pkglogger "github.com/inkwell/blog-backend/pkg/logger"
)

// Standalone migration runner for deployments where the API process must not
// own schema changes.
func main() {
	defaultPath := "configs/config.local.yaml"
	if env := os.Getenv("APP_ENV"); env != "" {
		defaultPath = fmt.Sprintf("configs/config.%s.yaml", env)
	}
	configPath := flag.String("config", defaultPath, "path to config file")
	flag.Parse()

	config.LoadDotEnv()
	pkglogger.InitStructured("local")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Info),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Run(db, cfg); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	pkglogger.Info("Migration complete")
}
