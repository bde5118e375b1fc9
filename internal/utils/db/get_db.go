package db

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/KromaEnergia/api-colaborador/internal/config"
	"github.com/KromaEnergia/api-colaborador/internal/models"
)

// GetDB conecta e roda o AutoMigrate de todos os modelos.
func GetDB(cfg config.DBConfig, log hclog.Logger) (*gorm.DB, error) {
	database, err := ConnectDataBase(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&models.Colaborador{},
		&models.AvaliacaoComportamento{},
		&models.Entrega{},
	); err != nil {
		return fmt.Errorf("erro no AutoMigrate: %w", err)
	}
	return nil
}
