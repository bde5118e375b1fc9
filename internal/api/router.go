package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/KromaEnergia/api-colaborador/internal/auth"
	"github.com/KromaEnergia/api-colaborador/internal/avaliacao"
	"github.com/KromaEnergia/api-colaborador/internal/colaborador"
	"github.com/KromaEnergia/api-colaborador/internal/entrega"
	"github.com/KromaEnergia/api-colaborador/internal/notificacao"
	"github.com/KromaEnergia/api-colaborador/internal/utils"
)

const BasePath = "/api/v1/colaborador"

type Opcoes struct {
	CORSOrigins []string
	// JWTSecret vazio deixa a API aberta.
	JWTSecret   []byte
	Notificador notificacao.Notificador
}

// NovoRouter monta as rotas REST com CORS, log, recuperação e, se houver
// segredo, autenticação nas escritas.
func NovoRouter(db *gorm.DB, log hclog.Logger, op Opcoes) http.Handler {
	colaboradorHandler := colaborador.NewHandler(db, log.Named("colaborador"), op.Notificador)
	avaliacaoHandler := avaliacao.NewHandler(db, log.Named("avaliacao"), op.Notificador)
	entregaHandler := entrega.NewHandler(db, log.Named("entrega"), op.Notificador)

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.ResponderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	c := r.PathPrefix(BasePath).Subrouter()
	if len(op.JWTSecret) > 0 {
		c.Use(auth.ProtegerEscrita(op.JWTSecret))
	}

	// Rotas de colaboradores
	c.HandleFunc("", colaboradorHandler.Listar).Methods("GET")
	c.HandleFunc("/", colaboradorHandler.Listar).Methods("GET")
	c.HandleFunc("", colaboradorHandler.Criar).Methods("POST")
	c.HandleFunc("/", colaboradorHandler.Criar).Methods("POST")
	c.HandleFunc("/{matricula}", colaboradorHandler.BuscarPorMatricula).Methods("GET")
	c.HandleFunc("/{matricula}", colaboradorHandler.Atualizar).Methods("PATCH")
	c.HandleFunc("/{matricula}", colaboradorHandler.Deletar).Methods("DELETE")
	c.HandleFunc("/{matricula}/performance", colaboradorHandler.Performance).Methods("GET")

	// Rotas de avaliação comportamental
	c.HandleFunc("/{matricula}/avaliacao", avaliacaoHandler.Criar).Methods("POST")
	c.HandleFunc("/{matricula}/avaliacao", avaliacaoHandler.Buscar).Methods("GET")
	c.HandleFunc("/{matricula}/avaliacao", avaliacaoHandler.Atualizar).Methods("PATCH", "PUT")
	c.HandleFunc("/{matricula}/avaliacao", avaliacaoHandler.Deletar).Methods("DELETE")

	// Rotas de entregas
	c.HandleFunc("/{matricula}/entrega", entregaHandler.Criar).Methods("POST")
	c.HandleFunc("/{matricula}/entrega", entregaHandler.Listar).Methods("GET")
	c.HandleFunc("/{matricula}/entrega/{id}", entregaHandler.Buscar).Methods("GET")
	c.HandleFunc("/{matricula}/entrega/{id}", entregaHandler.Atualizar).Methods("PATCH")
	c.HandleFunc("/{matricula}/entrega/{id}", entregaHandler.Deletar).Methods("DELETE")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.ResponderErro(w, log, utils.NovoErroNaoEncontrado("Rota não encontrada"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	cr := cors.New(cors.Options{
		AllowedOrigins: op.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", HeaderRequestID},
		ExposedHeaders: []string{"Location", HeaderRequestID},
	})

	return Registro(log)(Recuperacao(log)(cr.Handler(r)))
}
