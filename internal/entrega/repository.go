package entrega

import (
	"gorm.io/gorm"

	"github.com/KromaEnergia/api-colaborador/internal/models"
)

type Repository interface {
	Criar(db *gorm.DB, e *models.Entrega) error
	ListarPorColaborador(db *gorm.DB, matricula string) ([]models.Entrega, error)
	ContarPorColaborador(db *gorm.DB, matricula string) (int64, error)
	BuscarPorID(db *gorm.DB, id uint) (*models.Entrega, error)
	Atualizar(db *gorm.DB, e *models.Entrega) error
	Deletar(db *gorm.DB, e *models.Entrega) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, e *models.Entrega) error {
	return db.Create(e).Error
}

func (r *repositoryImpl) ListarPorColaborador(db *gorm.DB, matricula string) ([]models.Entrega, error) {
	entregas := []models.Entrega{}
	err := db.Where("colaborador_matricula = ?", matricula).Order("id ASC").Find(&entregas).Error
	return entregas, err
}

func (r *repositoryImpl) ContarPorColaborador(db *gorm.DB, matricula string) (int64, error) {
	var n int64
	err := db.Model(&models.Entrega{}).Where("colaborador_matricula = ?", matricula).Count(&n).Error
	return n, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*models.Entrega, error) {
	var e models.Entrega
	if err := db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, e *models.Entrega) error {
	return db.Save(e).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, e *models.Entrega) error {
	return db.Delete(e).Error
}
