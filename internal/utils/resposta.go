package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/KromaEnergia/api-colaborador/internal/models"
)

const MensagemErroInterno = "Erro interno do servidor"

// ResponderJSON serializa corpo antes de gravar o status; se falhar, responde 500.
func ResponderJSON(w http.ResponseWriter, status int, corpo any) {
	var buf bytes.Buffer
	if corpo != nil {
		if err := json.NewEncoder(&buf).Encode(corpo); err != nil {
			w.Header().Del("Location")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErroResposta{Message: MensagemErroInterno})
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// ResponderCriado grava 201 com Location apontando para o novo recurso.
func ResponderCriado(w http.ResponseWriter, location string, corpo any) {
	w.Header().Set("Location", location)
	ResponderJSON(w, http.StatusCreated, corpo)
}

func ResponderSemConteudo(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// ResponderErro traduz err para status HTTP e corpo ErroResposta.
func ResponderErro(w http.ResponseWriter, log hclog.Logger, err error) {
	var (
		negocio    *ErroNegocio
		naoAchado  *ErroNaoEncontrado
		requisicao *ErroRequisicao
		campos     validation.Errors
	)

	switch {
	case errors.As(err, &campos):
		resp := models.ErroResposta{Message: "Dados inválidos", Campos: map[string]string{}}
		for campo, e := range campos {
			resp.Campos[campo] = e.Error()
		}
		ResponderJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &negocio):
		ResponderJSON(w, http.StatusBadRequest, models.ErroResposta{Message: negocio.Mensagem})
	case errors.As(err, &requisicao):
		ResponderJSON(w, http.StatusBadRequest, models.ErroResposta{Message: requisicao.Mensagem})
	case errors.As(err, &naoAchado):
		ResponderJSON(w, http.StatusNotFound, models.ErroResposta{Message: naoAchado.Mensagem})
	case errors.Is(err, gorm.ErrRecordNotFound):
		ResponderJSON(w, http.StatusNotFound, models.ErroResposta{Message: "Recurso não encontrado"})
	default:
		if log != nil {
			log.Error("erro inesperado", "error", err)
		}
		ResponderJSON(w, http.StatusInternalServerError, models.ErroResposta{Message: MensagemErroInterno})
	}
}

// DecodificarJSON lê o corpo em destino; corpo vazio ou inválido vira ErroRequisicao.
func DecodificarJSON(r *http.Request, destino any) error {
	if err := json.NewDecoder(r.Body).Decode(destino); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErroRequisicao{Mensagem: "Corpo da requisição vazio", Causa: err}
		}
		return &ErroRequisicao{Mensagem: "JSON inválido: " + err.Error(), Causa: err}
	}
	return nil
}
