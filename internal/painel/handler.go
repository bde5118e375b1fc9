package painel

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
)

//go:embed templates/*.html
var arquivosTemplates embed.FS

var paginas = []string{"lista", "detalhe", "formulario", "confirmar", "resultado"}

const (
	MensagemListaErro   = "Não foi possível carregar os dados da API."
	MensagemNaoAchado   = "Colaborador não encontrado."
	FallbackFormulario  = "Erro ao processar a requisição. Verifique os dados."
	FallbackExclusaoCol = "Não foi possível excluir o colaborador."
)

type Handler struct {
	API API
	Log hclog.Logger

	templates map[string]*template.Template
}

func NewHandler(api API, log hclog.Logger) (*Handler, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	h := &Handler{API: api, Log: log, templates: map[string]*template.Template{}}
	for _, p := range paginas {
		t, err := template.ParseFS(arquivosTemplates, "templates/layout.html", "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", p, err)
		}
		h.templates[p] = t
	}
	return h, nil
}

func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", h.Lista).Methods("GET")
	r.HandleFunc("/detalhes", h.Detalhe).Methods("GET")
	r.HandleFunc("/detalhes/editar", h.EditarFormulario).Methods("GET")
	r.HandleFunc("/detalhes/editar", h.Editar).Methods("POST")
	r.HandleFunc("/detalhes/excluir", h.ConfirmarExclusao).Methods("GET")
	r.HandleFunc("/detalhes/excluir", h.Excluir).Methods("POST")
	r.HandleFunc("/formulario/{tipo:colaborador|avaliacao|entrega}", h.Formulario).Methods("GET")
	r.HandleFunc("/formulario/{tipo:colaborador|avaliacao|entrega}", h.EnviarFormulario).Methods("POST")
	return r
}

func (h *Handler) render(w http.ResponseWriter, pagina string, status int, dados any) {
	var buf bytes.Buffer
	if err := h.templates[pagina].ExecuteTemplate(&buf, "layout", dados); err != nil {
		h.Log.Error("falha ao renderizar", "pagina", pagina, "error", err)
		http.Error(w, "erro ao renderizar página", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func caminhoDetalhe(matricula string) string {
	return "/detalhes?matricula=" + url.QueryEscape(matricula)
}

// ---- lista ----

func (h *Handler) carregarLista(ctx context.Context) ListaView {
	colaboradores, err := h.API.ListarColaboradores(ctx)
	if err != nil {
		h.Log.Warn("falha ao listar colaboradores", "error", err)
		return ListaView{Erro: MensagemListaErro}
	}
	v := ListaView{Colaboradores: make([]CardColaborador, 0, len(colaboradores))}
	for _, c := range colaboradores {
		v.Colaboradores = append(v.Colaboradores, CardColaborador{Matricula: c.Matricula, Nome: c.Nome, Cargo: c.Cargo})
	}
	return v
}

// GET /
func (h *Handler) Lista(w http.ResponseWriter, r *http.Request) {
	h.render(w, "lista", http.StatusOK, h.carregarLista(r.Context()))
}

// ---- detalhe ----

func (h *Handler) carregarDetalhe(ctx context.Context, matricula string) DetalheView {
	v := DetalheView{Matricula: matricula}
	c, err := h.API.BuscarColaborador(ctx, matricula)
	if err != nil {
		h.Log.Debug("detalhe indisponível", "matricula", matricula, "error", err)
		v.Erro = MensagemNaoAchado
		return v
	}
	cv := NovoColaboradorView(*c)
	v.Colaborador = &cv
	return v
}

// GET /detalhes?matricula=
func (h *Handler) Detalhe(w http.ResponseWriter, r *http.Request) {
	matricula := strings.TrimSpace(r.URL.Query().Get("matricula"))
	if matricula == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, "detalhe", http.StatusOK, h.carregarDetalhe(r.Context(), matricula))
}

// ---- edição ----

type alvoEdicao struct {
	campos  []string
	sucesso string
}

var alvos = map[string]alvoEdicao{
	"colaborador": {campos: []string{"nome", "cargo", "dataAdmissao"}, sucesso: "Colaborador atualizado!"},
	"avaliacao":   {campos: []string{"notaAvaliacaoComportamental", "notaAprendizado", "notaTomadaDecisao", "notaAutonomia"}, sucesso: "Notas atualizadas!"},
	"entrega":     {campos: []string{"descricao", "nota"}, sucesso: "Entrega atualizada!"},
}

// caminhoAlvo monta o caminho na API relativo à base; id só vale para entrega.
func caminhoAlvo(matricula, alvo, id string) (string, error) {
	base := "/" + url.PathEscape(matricula)
	switch alvo {
	case "colaborador":
		return base, nil
	case "avaliacao":
		return base + "/avaliacao", nil
	case "entrega":
		if _, err := strconv.ParseUint(id, 10, 64); err != nil {
			return "", fmt.Errorf("id de entrega inválido: %q", id)
		}
		return base + "/entrega/" + id, nil
	}
	return "", fmt.Errorf("alvo desconhecido: %q", alvo)
}

// GET /detalhes/editar?matricula=&alvo=&id=
func (h *Handler) EditarFormulario(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	matricula := strings.TrimSpace(q.Get("matricula"))
	if matricula == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	alvo := q.Get("alvo")
	if _, err := caminhoAlvo(matricula, alvo, q.Get("id")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	v := h.carregarDetalhe(r.Context(), matricula)
	v.Editando = alvo
	if alvo == "entrega" {
		id, _ := strconv.ParseUint(q.Get("id"), 10, 64)
		v.EntregaID = uint(id)
	}
	h.render(w, "detalhe", http.StatusOK, v)
}

// camposAlterados compara cada campo com o hidden "original_<campo>" e
// devolve só o que mudou.
func camposAlterados(r *http.Request, campos []string) map[string]any {
	out := map[string]any{}
	for _, c := range campos {
		novo := r.PostFormValue(c)
		if novo != r.PostFormValue("original_"+c) {
			out[c] = novo
		}
	}
	return out
}

// POST /detalhes/editar
func (h *Handler) Editar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	matricula := strings.TrimSpace(r.PostFormValue("matricula"))
	alvo := r.PostFormValue("alvo")
	caminho, err := caminhoAlvo(matricula, alvo, r.PostFormValue("id"))
	if matricula == "" || err != nil {
		http.Error(w, "edição inválida", http.StatusBadRequest)
		return
	}

	corpo := camposAlterados(r, alvos[alvo].campos)
	if len(corpo) == 0 {
		http.Redirect(w, r, caminhoDetalhe(matricula), http.StatusSeeOther)
		return
	}

	var recarregado DetalheView
	res := Executar(r.Context(), h.API, Mutacao{
		Metodo:  http.MethodPatch,
		Caminho: caminho,
		Corpo:   corpo,
		Sucesso: alvos[alvo].sucesso,
	}, func(ctx context.Context) {
		recarregado = h.carregarDetalhe(ctx, matricula)
	})
	if !res.OK {
		h.render(w, "resultado", http.StatusOK, ResultadoView{Matricula: matricula, Toast: toastDe(res)})
		return
	}
	recarregado.Toast = toastDe(res)
	h.render(w, "detalhe", http.StatusOK, recarregado)
}

// ---- exclusão ----

var confirmacoes = map[string]ConfirmacaoView{
	"colaborador": {Titulo: "Tem certeza?", Texto: "Isso apagará o colaborador e todas as suas entregas e avaliações permanentemente!"},
	"avaliacao":   {Titulo: "Excluir Avaliação?", Texto: "As notas comportamentais serão removidas."},
	"entrega":     {Titulo: "Excluir Entrega?", Texto: "Essa ação não pode ser desfeita."},
}

// GET /detalhes/excluir?matricula=&alvo=&id=
// Só renderiza a confirmação; nenhuma chamada à API.
func (h *Handler) ConfirmarExclusao(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	matricula := strings.TrimSpace(q.Get("matricula"))
	if matricula == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	alvo, id := q.Get("alvo"), q.Get("id")
	if _, err := caminhoAlvo(matricula, alvo, id); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v := confirmacoes[alvo]
	v.Matricula, v.Alvo, v.ID = matricula, alvo, id
	h.render(w, "confirmar", http.StatusOK, v)
}

// POST /detalhes/excluir
func (h *Handler) Excluir(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	matricula := strings.TrimSpace(r.PostFormValue("matricula"))
	alvo := r.PostFormValue("alvo")
	caminho, err := caminhoAlvo(matricula, alvo, r.PostFormValue("id"))
	if matricula == "" || err != nil {
		http.Error(w, "exclusão inválida", http.StatusBadRequest)
		return
	}
	if r.PostFormValue("confirmar") != "sim" {
		http.Redirect(w, r, caminhoDetalhe(matricula), http.StatusSeeOther)
		return
	}

	if alvo == "colaborador" {
		var lista ListaView
		res := Executar(r.Context(), h.API, Mutacao{
			Metodo:   http.MethodDelete,
			Caminho:  caminho,
			Sucesso:  "Colaborador removido com sucesso.",
			Fallback: FallbackExclusaoCol,
		}, func(ctx context.Context) {
			lista = h.carregarLista(ctx)
		})
		if !res.OK {
			h.render(w, "resultado", http.StatusOK, ResultadoView{Matricula: matricula, Toast: toastDe(res)})
			return
		}
		lista.Toast = toastDe(res)
		h.render(w, "lista", http.StatusOK, lista)
		return
	}

	sucesso := "Avaliação removida."
	if alvo == "entrega" {
		sucesso = "Entrega removida."
	}
	var recarregado DetalheView
	res := Executar(r.Context(), h.API, Mutacao{
		Metodo:  http.MethodDelete,
		Caminho: caminho,
		Sucesso: sucesso,
	}, func(ctx context.Context) {
		recarregado = h.carregarDetalhe(ctx, matricula)
	})
	if !res.OK {
		h.render(w, "resultado", http.StatusOK, ResultadoView{Matricula: matricula, Toast: toastDe(res)})
		return
	}
	recarregado.Toast = toastDe(res)
	h.render(w, "detalhe", http.StatusOK, recarregado)
}
