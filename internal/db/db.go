package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/paulinho121/organizador/internal/models"
)

// ConnectAndMigrate opens the configured database and brings the schema up to
// date. Postgres is the default; DB_DRIVER=sqlite switches to a local file
// (dev convenience, same driver the tests use in-memory).
func ConnectAndMigrate() (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	if strings.EqualFold(os.Getenv("DB_DRIVER"), "sqlite") {
		path := os.Getenv("DATABASE_DSN")
		if path == "" {
			path = "organizador.db"
		}
		conn, err = gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	} else {
		dsn := GetNormalizedDSN()
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_DSN is empty; check the environment configuration")
		}
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			fmt.Println("Retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to connect database after retries: %w", err)
		}
		masked := dsn
		if strings.Contains(masked, "password=") {
			re := regexp.MustCompile(`(password=)([^\s]+)`)
			masked = re.ReplaceAllString(masked, `${1}***`)
		}
		fmt.Println("[DB] Using DSN:", masked)
		// MIGRATIONS=1 runs sql migrations via golang-migrate; otherwise
		// AutoMigrate below (dev convenience).
		if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
			if err := runSQLMigrations(dsn); err != nil {
				return nil, fmt.Errorf("sql migrations failed: %w", err)
			}
			return conn, checkTables(conn)
		}
	}

	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	if err := AutoMigrate(conn); err != nil {
		return nil, err
	}
	return conn, checkTables(conn)
}

// AutoMigrate applies the gorm schema for every entity.
func AutoMigrate(conn *gorm.DB) error {
	for _, m := range []interface{}{
		&models.User{}, &models.Client{}, &models.Meeting{}, &models.Sale{}, &models.Quote{}, &models.Reminder{},
	} {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// sanity check: required core tables must exist after migration
func checkTables(conn *gorm.DB) error {
	for _, table := range []string{"users", "clients", "quotes", "sales"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}
