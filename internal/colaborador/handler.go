package colaborador

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/KromaEnergia/api-colaborador/internal/models"
	"github.com/KromaEnergia/api-colaborador/internal/notificacao"
	"github.com/KromaEnergia/api-colaborador/internal/utils"
)

// MinEntregasPerformance é o mínimo de entregas para calcular a performance.
const MinEntregasPerformance = 2

// Handler encapsula DB e repository
type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	Log         hclog.Logger
	Notificador notificacao.Notificador
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, log hclog.Logger, n notificacao.Notificador) *Handler {
	if n == nil {
		n = notificacao.Nenhum{}
	}
	return &Handler{
		DB:          db,
		Repository:  NewRepository(),
		Log:         log,
		Notificador: n,
	}
}

// GET /api/v1/colaborador
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	colaboradores, err := h.Repository.ListarTodos(h.DB.WithContext(r.Context()))
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	resp := make([]models.ColaboradorResposta, 0, len(colaboradores))
	for _, c := range colaboradores {
		resp = append(resp, c.Resposta())
	}
	utils.ResponderJSON(w, http.StatusOK, resp)
}

// GET /api/v1/colaborador/{matricula}
func (h *Handler) BuscarPorMatricula(w http.ResponseWriter, r *http.Request) {
	c, err := h.Repository.BuscarPorMatricula(h.DB.WithContext(r.Context()), mux.Vars(r)["matricula"])
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, c.Resposta())
}

// POST /api/v1/colaborador
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req models.CadastroColaboradorRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}

	c := models.Colaborador{
		Nome:         strings.TrimSpace(req.Nome),
		Cargo:        strings.TrimSpace(req.Cargo),
		DataAdmissao: req.DataAdmissao.Time,
	}
	if err := h.Repository.Salvar(h.DB.WithContext(r.Context()), &c); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}

	h.Log.Info("colaborador cadastrado", "matricula", c.Matricula)
	h.Notificador.Notificar(r.Context(), notificacao.Evento{Tipo: notificacao.ColaboradorCadastrado, Matricula: c.Matricula})
	utils.ResponderCriado(w, strings.TrimRight(r.URL.Path, "/")+"/"+c.Matricula, c.Resposta())
}

// PATCH /api/v1/colaborador/{matricula}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	matricula := mux.Vars(r)["matricula"]

	var req models.AtualizaColaboradorRequest
	if err := utils.DecodificarJSON(r, &req); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}

	campos := map[string]any{}
	if req.Nome != nil {
		campos["nome"] = strings.TrimSpace(*req.Nome)
	}
	if req.Cargo != nil {
		campos["cargo"] = strings.TrimSpace(*req.Cargo)
	}
	if req.DataAdmissao != nil && !req.DataAdmissao.IsZero() {
		campos["data_admissao"] = req.DataAdmissao.Time
	}

	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		return h.Repository.Atualizar(tx, matricula, campos)
	})
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	if len(campos) > 0 {
		h.Notificador.Notificar(r.Context(), notificacao.Evento{Tipo: notificacao.ColaboradorAtualizado, Matricula: matricula, Detalhe: campos})
	}
	utils.ResponderSemConteudo(w)
}

// DELETE /api/v1/colaborador/{matricula}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	matricula := mux.Vars(r)["matricula"]
	if err := h.Repository.Deletar(h.DB.WithContext(r.Context()), matricula); err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	h.Log.Info("colaborador excluído", "matricula", matricula)
	h.Notificador.Notificar(r.Context(), notificacao.Evento{Tipo: notificacao.ColaboradorExcluido, Matricula: matricula})
	utils.ResponderSemConteudo(w)
}

// GET /api/v1/colaborador/{matricula}/performance
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	c, err := h.Repository.BuscarPorMatricula(h.DB.WithContext(r.Context()), mux.Vars(r)["matricula"])
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	p, err := CalcularPerformance(c)
	if err != nil {
		utils.ResponderErro(w, h.Log, err)
		return
	}
	utils.ResponderJSON(w, http.StatusOK, p)
}

// CalcularPerformance exige avaliação e ao menos duas entregas.
func CalcularPerformance(c *models.Colaborador) (models.PerformanceResposta, error) {
	if c.Avaliacao == nil {
		return models.PerformanceResposta{}, utils.NovoErroNegocio("Avaliação comportamental não foi realizada.")
	}
	if len(c.Entregas) < MinEntregasPerformance {
		return models.PerformanceResposta{}, utils.NovoErroNegocio("Colaborador deve ter no minimo 2 entregas cadastradas.")
	}
	return models.PerformanceResposta{
		Matricula:   c.Matricula,
		Nome:        c.Nome,
		Performance: c.Medias(),
	}, nil
}
