package avaliacao

import (
	"errors"

	"gorm.io/gorm"

	"github.com/KromaEnergia/api-colaborador/internal/models"
)

type Repository interface {
	Criar(db *gorm.DB, a *models.AvaliacaoComportamento) error
	BuscarPorColaborador(db *gorm.DB, matricula string) (*models.AvaliacaoComportamento, error)
	Atualizar(db *gorm.DB, a *models.AvaliacaoComportamento) error
	DeletarPorColaborador(db *gorm.DB, matricula string) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, a *models.AvaliacaoComportamento) error {
	return db.Create(a).Error
}

// BuscarPorColaborador devolve nil, nil quando o colaborador não tem avaliação.
func (r *repositoryImpl) BuscarPorColaborador(db *gorm.DB, matricula string) (*models.AvaliacaoComportamento, error) {
	var a models.AvaliacaoComportamento
	err := db.Where("colaborador_matricula = ?", matricula).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, a *models.AvaliacaoComportamento) error {
	return db.Save(a).Error
}

// DeletarPorColaborador informa se havia avaliação para remover.
func (r *repositoryImpl) DeletarPorColaborador(db *gorm.DB, matricula string) (bool, error) {
	res := db.Where("colaborador_matricula = ?", matricula).Delete(&models.AvaliacaoComportamento{})
	return res.RowsAffected > 0, res.Error
}
