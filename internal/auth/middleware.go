package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-colaborador/internal/models"
	"github.com/KromaEnergia/api-colaborador/internal/utils"
)

type ctxKey string

const CtxSubject ctxKey = "subject"

// ProtegerEscrita exige Bearer válido em métodos que alteram dados.
// Leituras e preflight passam direto.
func ProtegerEscrita(segredo []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				utils.ResponderJSON(w, http.StatusUnauthorized, models.ErroResposta{Message: "Token ausente"})
				return
			}
			claims, err := ValidarToken(segredo, strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				utils.ResponderJSON(w, http.StatusUnauthorized, models.ErroResposta{Message: "Token inválido"})
				return
			}
			ctx := context.WithValue(r.Context(), CtxSubject, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
