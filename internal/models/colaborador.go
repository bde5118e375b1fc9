package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Colaborador é o registro raiz; avaliação e entregas pertencem a ele pela matrícula.
type Colaborador struct {
	Matricula    string    `gorm:"primaryKey;size:36"`
	Nome         string    `gorm:"size:255;not null"`
	Cargo        string    `gorm:"size:255;not null"`
	DataAdmissao time.Time `gorm:"type:date;not null"`

	Avaliacao *AvaliacaoComportamento `gorm:"foreignKey:ColaboradorMatricula;references:Matricula"`
	Entregas  []Entrega               `gorm:"foreignKey:ColaboradorMatricula;references:Matricula"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Colaborador) TableName() string { return "tb_colaborador" }

// BeforeCreate gera a matrícula quando o chamador não informou uma.
func (c *Colaborador) BeforeCreate(*gorm.DB) error {
	if c.Matricula == "" {
		c.Matricula = uuid.NewString()
	}
	return nil
}

// AvaliacaoComportamento guarda as quatro notas; no máximo uma por colaborador.
type AvaliacaoComportamento struct {
	ID                          uint    `gorm:"primaryKey"`
	ColaboradorMatricula        string  `gorm:"size:36;not null;uniqueIndex"`
	NotaAvaliacaoComportamental float64 `gorm:"not null"`
	NotaAprendizado             float64 `gorm:"not null"`
	NotaTomadaDecisao           float64 `gorm:"not null"`
	NotaAutonomia               float64 `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AvaliacaoComportamento) TableName() string { return "tb_avaliacao_comportamento" }

func (a AvaliacaoComportamento) Notas() []float64 {
	return []float64{a.NotaAvaliacaoComportamental, a.NotaAprendizado, a.NotaTomadaDecisao, a.NotaAutonomia}
}

type Entrega struct {
	ID                   uint    `gorm:"primaryKey"`
	ColaboradorMatricula string  `gorm:"size:36;not null;index"`
	Descricao            string  `gorm:"type:text;not null"`
	Nota                 float64 `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Entrega) TableName() string { return "tb_entrega" }

// MaxEntregas é o limite de entregas cadastradas por colaborador.
const MaxEntregas = 4
