package painel

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

type formulario struct {
	titulo  string
	campos  []string
	sucesso string
	// corpo monta o JSON a partir dos valores do formulário.
	corpo func(v map[string]string) map[string]any
	// sufixo do caminho na API; vazio cadastra colaborador.
	sufixo string
}

var formularios = map[string]formulario{
	"colaborador": {
		titulo:  "Cadastrar Colaborador",
		campos:  []string{"nome", "cargo", "dataAdmissao"},
		sucesso: "Colaborador cadastrado com sucesso!",
		corpo: func(v map[string]string) map[string]any {
			return map[string]any{"nome": v["nome"], "cargo": v["cargo"], "dataAdmissao": v["dataAdmissao"]}
		},
	},
	"avaliacao": {
		titulo:  "Registrar Avaliação Comportamental",
		campos:  []string{"matricula", "notaComportamental", "notaAprendizado", "notaDecisao", "notaAutonomia"},
		sucesso: "Avaliação registrada com sucesso!",
		sufixo:  "/avaliacao",
		corpo: func(v map[string]string) map[string]any {
			return map[string]any{
				"notaAvaliacaoComportamental": numero(v["notaComportamental"]),
				"notaAprendizado":             numero(v["notaAprendizado"]),
				"notaTomadaDecisao":           numero(v["notaDecisao"]),
				"notaAutonomia":               numero(v["notaAutonomia"]),
			}
		},
	},
	"entrega": {
		titulo:  "Registrar Entrega",
		campos:  []string{"matricula", "descricao", "nota"},
		sucesso: "Entrega registrada com sucesso!",
		sufixo:  "/entrega",
		corpo: func(v map[string]string) map[string]any {
			return map[string]any{"descricao": v["descricao"], "nota": numero(v["nota"])}
		},
	},
}

// numero converte para float; texto não numérico vira nil (null no JSON).
func numero(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", ".")), 64)
	if err != nil {
		return nil
	}
	return &f
}

// GET /formulario/{tipo}
func (h *Handler) Formulario(w http.ResponseWriter, r *http.Request) {
	tipo := mux.Vars(r)["tipo"]
	v := FormularioView{Tipo: tipo, Titulo: formularios[tipo].titulo, Valores: map[string]string{}}
	if m := r.URL.Query().Get("matricula"); m != "" {
		v.Valores["matricula"] = m
	}
	h.render(w, "formulario", http.StatusOK, v)
}

// POST /formulario/{tipo}
// Sempre responde com a própria página do formulário e o feedback.
func (h *Handler) EnviarFormulario(w http.ResponseWriter, r *http.Request) {
	tipo := mux.Vars(r)["tipo"]
	f := formularios[tipo]
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	valores := map[string]string{}
	for _, c := range f.campos {
		valores[c] = r.PostFormValue(c)
	}
	v := FormularioView{Tipo: tipo, Titulo: f.titulo, Valores: valores}

	caminho := ""
	if f.sufixo != "" {
		matricula := strings.TrimSpace(valores["matricula"])
		if matricula == "" {
			v.Feedback = &Toast{Tipo: "erro", Mensagem: "Informe a matrícula do colaborador."}
			h.render(w, "formulario", http.StatusOK, v)
			return
		}
		caminho = "/" + url.PathEscape(matricula) + f.sufixo
	}

	res := Executar(r.Context(), h.API, Mutacao{
		Metodo:   http.MethodPost,
		Caminho:  caminho,
		Corpo:    f.corpo(valores),
		Sucesso:  f.sucesso,
		Fallback: FallbackFormulario,
	}, nil)
	v.Feedback = toastDe(res)
	if res.OK {
		v.Valores = map[string]string{}
	}
	h.render(w, "formulario", http.StatusOK, v)
}
