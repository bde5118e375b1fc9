package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/KromaEnergia/api-colaborador/internal/config"
)

// ConnectDataBase abre o banco configurado e aplica os limites do pool.
func ConnectDataBase(cfg config.DBConfig, log hclog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(dsnSQLite(cfg.Path))
	default:
		var sslMode string
		if cfg.SSLDisable {
			sslMode = " sslmode=disable"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
			cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode)
		dialector = postgres.Open(dsn)
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(log.Named("gorm")),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir banco: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("falha ao obter *sql.DB: %w", err)
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 10
	}
	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 25
	}
	lifetime, idleTime := 5*time.Minute, 10*time.Minute
	if cfg.Driver == config.DriverSQLite {
		lifetime, idleTime = 0, 0
		// cada conexão ":memory:" seria um banco diferente
		if emMemoria(cfg.Path) {
			maxOpen = 1
		}
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(lifetime)
	sqlDB.SetConnMaxIdleTime(idleTime)

	log.Info("banco conectado",
		"driver", cfg.Driver,
		"database", cfg.Name,
		"max_idle_conns", maxIdle,
		"max_open_conns", maxOpen,
	)
	return database, nil
}

func emMemoria(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

// dsnSQLite faz toda transação abrir com BEGIN IMMEDIATE: o sqlite ignora
// FOR UPDATE, então é o lock de escrita que serializa leitura+insert.
func dsnSQLite(path string) string {
	if emMemoria(path) {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_txlock=immediate&_busy_timeout=5000&_journal_mode=WAL"
}
