package api

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/KromaEnergia/api-colaborador/internal/models"
	"github.com/KromaEnergia/api-colaborador/internal/utils"
)

type ctxKey string

const CtxRequestID ctxKey = "request_id"

const HeaderRequestID = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Recuperacao transforma panic em 500 no formato padrão de erro.
func Recuperacao(log hclog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error("panic recuperado",
						"panic", rvr,
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", r.Context().Value(CtxRequestID),
						"stack", string(debug.Stack()))
					utils.ResponderJSON(w, http.StatusInternalServerError, models.ErroResposta{Message: utils.MensagemErroInterno})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Registro loga cada requisição com request_id.
func Registro(log hclog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, requestID)
			ctx := context.WithValue(r.Context(), CtxRequestID, requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			inicio := time.Now()
			next.ServeHTTP(rec, r.WithContext(ctx))

			log.Info("requisição concluída",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"latency", time.Since(inicio))
		})
	}
}
