package models

import (
	"math"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ---- respostas ----

type ColaboradorResposta struct {
	Matricula              string             `json:"matricula"`
	Nome                   string             `json:"nome"`
	DataAdmissao           Data               `json:"dataAdmissao"`
	Cargo                  string             `json:"cargo"`
	AvaliacaoComportamento *AvaliacaoResposta `json:"avaliacaoComportamento"`
	Entregas               []EntregaResposta  `json:"entregas"`
}

type AvaliacaoResposta struct {
	NotaAvaliacaoComportamental float64 `json:"notaAvaliacaoComportamental"`
	NotaAprendizado             float64 `json:"notaAprendizado"`
	NotaTomadaDecisao           float64 `json:"notaTomadaDecisao"`
	NotaAutonomia               float64 `json:"notaAutonomia"`
	MediaNotas                  float64 `json:"mediaNotas"`
}

type EntregaResposta struct {
	ID        uint    `json:"id"`
	Descricao string  `json:"descricao"`
	Nota      float64 `json:"nota"`
}

type PerformanceResposta struct {
	Matricula   string         `json:"matricula"`
	Nome        string         `json:"nome"`
	Performance MediasResposta `json:"performance"`
}

type MediasResposta struct {
	MediaComportamental float64 `json:"mediaComportamental"`
	MediaEntregas       float64 `json:"mediaEntregas"`
	NotaFinal           float64 `json:"notaFinal"`
}

// ErroResposta é o corpo de qualquer resposta de erro da API.
type ErroResposta struct {
	Message string            `json:"message"`
	Campos  map[string]string `json:"campos,omitempty"`
}

// ---- requisições ----

type CadastroColaboradorRequest struct {
	Nome         string `json:"nome"`
	Cargo        string `json:"cargo"`
	DataAdmissao *Data  `json:"dataAdmissao"`
}

func (r CadastroColaboradorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nome, validation.By(naoVazio("O preenchimento do nome é obrigatório"))),
		validation.Field(&r.Cargo, validation.By(naoVazio("O preenchimento do cargo é obrigatório"))),
		validation.Field(&r.DataAdmissao,
			validation.By(dataObrigatoria),
			validation.By(dataNaoFutura)),
	)
}

// AtualizaColaboradorRequest só altera os campos presentes no JSON.
type AtualizaColaboradorRequest struct {
	Nome         *string `json:"nome,omitempty"`
	Cargo        *string `json:"cargo,omitempty"`
	DataAdmissao *Data   `json:"dataAdmissao,omitempty"`
}

func (r AtualizaColaboradorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nome, validation.By(ponteiroNaoVazio("O nome não pode ser vazio."))),
		validation.Field(&r.Cargo, validation.By(ponteiroNaoVazio("O cargo não pode ser vazio."))),
		validation.Field(&r.DataAdmissao, validation.By(dataNaoFutura)),
	)
}

type AvaliacaoRequest struct {
	NotaAvaliacaoComportamental *Nota `json:"notaAvaliacaoComportamental"`
	NotaAprendizado             *Nota `json:"notaAprendizado"`
	NotaTomadaDecisao           *Nota `json:"notaTomadaDecisao"`
	NotaAutonomia               *Nota `json:"notaAutonomia"`
}

// ValidarCadastro exige as quatro notas.
func (r AvaliacaoRequest) ValidarCadastro() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NotaAvaliacaoComportamental, notaObrigatoria("A nota de avaliação comportamental é obrigatória")...),
		validation.Field(&r.NotaAprendizado, notaObrigatoria("A nota de avaliação de aprendizagem é obrigatória")...),
		validation.Field(&r.NotaTomadaDecisao, notaObrigatoria("A nota de avaliação de tomada de decisão é obrigatória")...),
		validation.Field(&r.NotaAutonomia, notaObrigatoria("A nota de avaliação de autonomia é obrigatória")...),
	)
}

// ValidarAtualizacao valida apenas as notas informadas.
func (r AvaliacaoRequest) ValidarAtualizacao() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NotaAvaliacaoComportamental, validation.By(notaNaFaixa)),
		validation.Field(&r.NotaAprendizado, validation.By(notaNaFaixa)),
		validation.Field(&r.NotaTomadaDecisao, validation.By(notaNaFaixa)),
		validation.Field(&r.NotaAutonomia, validation.By(notaNaFaixa)),
	)
}

type EntregaRequest struct {
	Descricao *string `json:"descricao"`
	Nota      *Nota   `json:"nota"`
}

func (r EntregaRequest) ValidarCadastro() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Descricao, validation.By(ponteiroNaoVazio("O preenchimento da descrição da entrega é obrigatório"))),
		validation.Field(&r.Nota, notaObrigatoria("O preenchimento da nota da entrega é obrigatório")...),
	)
}

func (r EntregaRequest) ValidarAtualizacao() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Descricao, validation.By(func(v interface{}) error {
			if p, _ := v.(*string); p != nil && strings.TrimSpace(*p) == "" {
				return validation.NewError("descricao_vazia", "A descrição não pode ser vazia.")
			}
			return nil
		})),
		validation.Field(&r.Nota, validation.By(notaNaFaixa)),
	)
}

// ---- regras ----

const (
	NotaMinima = 1.0
	NotaMaxima = 5.0
)

func naoVazio(msg string) validation.RuleFunc {
	return func(v interface{}) error {
		if s, _ := v.(string); strings.TrimSpace(s) == "" {
			return validation.NewError("obrigatorio", msg)
		}
		return nil
	}
}

func ponteiroNaoVazio(msg string) validation.RuleFunc {
	return func(v interface{}) error {
		p, _ := v.(*string)
		if p == nil {
			return nil
		}
		if strings.TrimSpace(*p) == "" {
			return validation.NewError("vazio", msg)
		}
		return nil
	}
}

func dataObrigatoria(v interface{}) error {
	if d, _ := v.(*Data); d == nil || d.IsZero() {
		return validation.NewError("obrigatorio", "O preenchimento da data de admissão é obrigatório")
	}
	return nil
}

func dataNaoFutura(v interface{}) error {
	d, _ := v.(*Data)
	if d == nil || d.IsZero() {
		return nil
	}
	hoje := NovaData(time.Now())
	if d.After(hoje.Time) {
		return validation.NewError("data_futura", "A data de admissão não pode ser no futuro.")
	}
	return nil
}

func notaObrigatoria(msg string) []validation.Rule {
	return []validation.Rule{
		validation.By(func(v interface{}) error {
			if n, _ := v.(*Nota); n == nil {
				return validation.NewError("obrigatorio", msg)
			}
			return nil
		}),
		validation.By(notaNaFaixa),
	}
}

func notaNaFaixa(v interface{}) error {
	n, _ := v.(*Nota)
	if n == nil {
		return nil
	}
	if f := float64(*n); math.IsNaN(f) || math.IsInf(f, 0) {
		return validation.NewError("nota_invalida", "A nota deve ser um número entre 1.0 e 5.0")
	}
	if float64(*n) < NotaMinima {
		return validation.NewError("nota_minima", "A nota deve ser no mínimo 1.0")
	}
	if float64(*n) > NotaMaxima {
		return validation.NewError("nota_maxima", "A nota deve ser no máximo 5.0")
	}
	return nil
}
