package avaliacao

import (
	"net/http"

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

// POST /api/v1/colaborador/{matricula}/avaliacao
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	matricula := mux.Vars(r)["matricula"]

	var req models.AvaliacaoRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	if err := req.ValidarCadastro(); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}

	a := models.AvaliacaoComportamento{
		ColaboradorMatricula:        matricula,
		NotaAvaliacaoComportamental: float64(*req.NotaAvaliacaoComportamental),
		NotaAprendizado:             float64(*req.NotaAprendizado),
		NotaTomadaDecisao:           float64(*req.NotaTomadaDecisao),
		NotaAutonomia:               float64(*req.NotaAutonomia),
	}
	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if _, err := h.Colaboradores.Travar(tx, matricula); err != nil {
			return err
		}
		existente, err := h.Repository.BuscarPorColaborador(tx, matricula)
		if err != nil {
			return err
		}
		if existente != nil {
			return utils.NovoErroNegocio("O colaborador %s já possui uma avaliação comportamental", matricula)
		}
		return h.Repository.Criar(tx, &a)
	})
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}

	resp := a.Resposta()
	h.Notificador.Notificar(r.Context(), notificacao.Evento{Tipo: notificacao.AvaliacaoRegistrada, Matricula: matricula, Detalhe: resp})
	utils.ResponderCriado(w, r.URL.Path, resp)
}

// GET /api/v1/colaborador/{matricula}/avaliacao
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	matricula := mux.Vars(r)["matricula"]
	db := h.DB.WithContext(r.Context())

	if err := h.Colaboradores.Existe(db, matricula); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	a, err := h.Repository.BuscarPorColaborador(db, matricula)
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	if a == nil {
		utils.ResponderErro(w, h.Log, utils.NovoErroNaoEncontrado("O colaborador %s não possui avaliação comportamental", matricula))
		return
	}
	utils.ResponderJSON(w, http.StatusOK, a.Resposta())
}

// PATCH e PUT /api/v1/colaborador/{matricula}/avaliacao
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	matricula := mux.Vars(r)["matricula"]

	var req models.AvaliacaoRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	if err := req.ValidarAtualizacao(); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}

	var atualizada models.AvaliacaoResposta
	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if _, err := h.Colaboradores.Travar(tx, matricula); err != nil {
			return err
		}
		a, err := h.Repository.BuscarPorColaborador(tx, matricula)
		if err != nil {
			return err
		}
		if a == nil {
			return utils.NovoErroNegocio("O colaborador %s não possui uma avaliação comportamental para atualizar", matricula)
		}
		aplicar(a, req)
		atualizada = a.Resposta()
		return h.Repository.Atualizar(tx, a)
	})
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	h.Notificador.Notificar(r.Context(), notificacao.Evento{Tipo: notificacao.AvaliacaoAtualizada, Matricula: matricula, Detalhe: atualizada})
	utils.ResponderSemConteudo(w)
}

// DELETE /api/v1/colaborador/{matricula}/avaliacao
// Sem avaliação cadastrada a resposta continua 204.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	matricula := mux.Vars(r)["matricula"]
	var removida bool
	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if _, err := h.Colaboradores.Travar(tx, matricula); err != nil {
			return err
		}
		var err error
		removida, err = h.Repository.DeletarPorColaborador(tx, matricula)
		return err
	})
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	if removida {
		h.Notificador.Notificar(r.Context(), notificacao.Evento{Tipo: notificacao.AvaliacaoExcluida, Matricula: matricula})
	}
	utils.ResponderSemConteudo(w)
}

func aplicar(a *models.AvaliacaoComportamento, req models.AvaliacaoRequest) {
	if v := req.NotaAvaliacaoComportamental.Float(); v != nil {
		a.NotaAvaliacaoComportamental = *v
	}
	if v := req.NotaAprendizado.Float(); v != nil {
		a.NotaAprendizado = *v
	}
	if v := req.NotaTomadaDecisao.Float(); v != nil {
		a.NotaTomadaDecisao = *v
	}
	if v := req.NotaAutonomia.Float(); v != nil {
		a.NotaAutonomia = *v
	}
}
