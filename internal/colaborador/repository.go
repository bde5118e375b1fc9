package colaborador

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KromaEnergia/api-colaborador/internal/models"
	"github.com/KromaEnergia/api-colaborador/internal/utils"
)

type Repository interface {
	Salvar(db *gorm.DB, c *models.Colaborador) error
	BuscarPorMatricula(db *gorm.DB, matricula string) (*models.Colaborador, error)
	ListarTodos(db *gorm.DB) ([]models.Colaborador, error)
	Atualizar(db *gorm.DB, matricula string, campos map[string]any) error
	Deletar(db *gorm.DB, matricula string) error
	Travar(db *gorm.DB, matricula string) (*models.Colaborador, error)
	Existe(db *gorm.DB, matricula string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func naoEncontrado(matricula string) error {
	return utils.NovoErroNaoEncontrado("Colaborador com matrícula %s não encontrado", matricula)
}

// matriculaValida evita ir ao banco com algo que nunca seria uma chave.
func matriculaValida(matricula string) bool {
	_, err := uuid.Parse(matricula)
	return err == nil
}

func preloadCompleto(db *gorm.DB) *gorm.DB {
	return db.Preload("Avaliacao").
		Preload("Entregas", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *models.Colaborador) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorMatricula(db *gorm.DB, matricula string) (*models.Colaborador, error) {
	if !matriculaValida(matricula) {
		return nil, naoEncontrado(matricula)
	}
	var c models.Colaborador
	err := preloadCompleto(db).Where("matricula = ?", matricula).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, naoEncontrado(matricula)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]models.Colaborador, error) {
	colaboradores := []models.Colaborador{}
	err := preloadCompleto(db).Order("nome ASC").Find(&colaboradores).Error
	return colaboradores, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, matricula string, campos map[string]any) error {
	if _, err := r.Travar(db, matricula); err != nil {
		return err
	}
	if len(campos) == 0 {
		return nil
	}
	return db.Model(&models.Colaborador{}).Where("matricula = ?", matricula).Updates(campos).Error
}

// Deletar remove entregas, avaliação e o colaborador numa única transação.
func (r *repositoryImpl) Deletar(db *gorm.DB, matricula string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := r.Travar(tx, matricula); err != nil {
			return err
		}
		if err := tx.Where("colaborador_matricula = ?", matricula).Delete(&models.Entrega{}).Error; err != nil {
			return err
		}
		if err := tx.Where("colaborador_matricula = ?", matricula).Delete(&models.AvaliacaoComportamento{}).Error; err != nil {
			return err
		}
		return tx.Where("matricula = ?", matricula).Delete(&models.Colaborador{}).Error
	})
}

// Travar carrega só a linha do colaborador com FOR UPDATE (ignorado no sqlite).
func (r *repositoryImpl) Travar(db *gorm.DB, matricula string) (*models.Colaborador, error) {
	if !matriculaValida(matricula) {
		return nil, naoEncontrado(matricula)
	}
	var c models.Colaborador
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("matricula = ?", matricula).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, naoEncontrado(matricula)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Existe devolve ErroNaoEncontrado quando a matrícula não está cadastrada.
func (r *repositoryImpl) Existe(db *gorm.DB, matricula string) error {
	if !matriculaValida(matricula) {
		return naoEncontrado(matricula)
	}
	var n int64
	if err := db.Model(&models.Colaborador{}).Where("matricula = ?", matricula).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return naoEncontrado(matricula)
	}
	return nil
}
