package entrega

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/KromaEnergia/api-colaborador/internal/colaborador"
	"github.com/KromaEnergia/api-colaborador/internal/models"
	"github.com/KromaEnergia/api-colaborador/internal/notificacao"
	"github.com/KromaEnergia/api-colaborador/internal/utils"
)

type Handler struct {
	DB            *gorm.DB
	Repository    Repository
	Colaboradores colaborador.Repository
	Log           hclog.Logger
	Notificador   notificacao.Notificador
}

func NewHandler(db *gorm.DB, log hclog.Logger, n notificacao.Notificador) *Handler {
	if n == nil {
		n = notificacao.Nenhum{}
	}
	return &Handler{
		DB:            db,
		Repository:    NewRepository(),
		Colaboradores: colaborador.NewRepository(),
		Log:           log,
		Notificador:   n,
	}
}

// POST /api/v1/colaborador/{matricula}/entrega
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	matricula := mux.Vars(r)["matricula"]

	var req models.EntregaRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	if err := req.ValidarCadastro(); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}

	e := models.Entrega{
		ColaboradorMatricula: matricula,
		Descricao:            strings.TrimSpace(*req.Descricao),
		Nota:                 float64(*req.Nota),
	}
	// a linha do colaborador fica travada até o insert, então duas requisições
	// simultâneas não passam juntas do limite
	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if _, err := h.Colaboradores.Travar(tx, matricula); err != nil {
			return err
		}
		n, err := h.Repository.ContarPorColaborador(tx, matricula)
		if err != nil {
			return err
		}
		if n >= models.MaxEntregas {
			return utils.NovoErroNegocio("O colaborador já atingiu o limite de %d entregas cadastradas", models.MaxEntregas)
		}
		return h.Repository.Criar(tx, &e)
	})
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}

	resp := e.Resposta()
	h.Notificador.Notificar(r.Context(), notificacao.Evento{Tipo: notificacao.EntregaCadastrada, Matricula: matricula, Detalhe: resp})
	utils.ResponderCriado(w, fmt.Sprintf("%s/%d", strings.TrimRight(r.URL.Path, "/"), e.ID), resp)
}

// GET /api/v1/colaborador/{matricula}/entrega
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	matricula := mux.Vars(r)["matricula"]
	db := h.DB.WithContext(r.Context())

	if err := h.Colaboradores.Existe(db, matricula); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	entregas, err := h.Repository.ListarPorColaborador(db, matricula)
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	resp := make([]models.EntregaResposta, 0, len(entregas))
	for _, e := range entregas {
		resp = append(resp, e.Resposta())
	}
	utils.ResponderJSON(w, http.StatusOK, resp)
}

// GET /api/v1/colaborador/{matricula}/entrega/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	e, err := h.entregaDoColaborador(h.DB.WithContext(r.Context()), r)
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, e.Resposta())
}

// PATCH /api/v1/colaborador/{matricula}/entrega/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var req models.EntregaRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	if err := req.ValidarAtualizacao(); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}

	var atualizada models.EntregaResposta
	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		e, err := h.entregaDoColaborador(tx, r)
		if err != nil {
			return err
		}
		if req.Descricao != nil {
			e.Descricao = strings.TrimSpace(*req.Descricao)
		}
		if v := req.Nota.Float(); v != nil {
			e.Nota = *v
		}
		atualizada = e.Resposta()
		return h.Repository.Atualizar(tx, e)
	})
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	h.Notificador.Notificar(r.Context(), notificacao.Evento{Tipo: notificacao.EntregaAtualizada, Matricula: mux.Vars(r)["matricula"], Detalhe: atualizada})
	utils.ResponderSemConteudo(w)
}

// DELETE /api/v1/colaborador/{matricula}/entrega/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	var removida models.EntregaResposta
	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		e, err := h.entregaDoColaborador(tx, r)
		if err != nil {
			return err
		}
		removida = e.Resposta()
		return h.Repository.Deletar(tx, e)
	})
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	h.Notificador.Notificar(r.Context(), notificacao.Evento{Tipo: notificacao.EntregaExcluida, Matricula: mux.Vars(r)["matricula"], Detalhe: removida})
	utils.ResponderSemConteudo(w)
}

// entregaDoColaborador resolve {matricula} e {id} da rota e confere que a
// entrega pertence ao colaborador.
func (h *Handler) entregaDoColaborador(db *gorm.DB, r *http.Request) (*models.Entrega, error) {
	vars := mux.Vars(r)
	matricula := vars["matricula"]

	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		return nil, &utils.ErroRequisicao{Mensagem: "ID de entrega inválido", Causa: err}
	}
	if err := h.Colaboradores.Existe(db, matricula); err != nil {
		return nil, err
	}

	e, err := h.Repository.BuscarPorID(db, uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NovoErroNaoEncontrado("Entrega %d não encontrada", id)
	}
	if err != nil {
		return nil, err
	}
	if e.ColaboradorMatricula != matricula {
		return nil, utils.NovoErroNegocio("Acesso negado: A entrega %d não pertence ao colaborador %s", id, matricula)
	}
	return e, nil
}
