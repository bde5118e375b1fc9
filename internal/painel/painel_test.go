package painel

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KromaEnergia/api-colaborador/internal/cliente"
	"github.com/KromaEnergia/api-colaborador/internal/models"
)

const exemploDetalhe = `{"matricula":"123","nome":"Ana","cargo":"Dev","dataAdmissao":"2024-01-15",
"avaliacaoComportamento":{"notaAvaliacaoComportamental":4.5,"notaAprendizado":3.0,"notaTomadaDecisao":2.0,"notaAutonomia":5.0,"mediaNotas":3.63},
"entregas":[{"id":1,"descricao":"API","nota":4.2}]}`

type chamada struct {
	Metodo string
	Path   string
	Corpo  string
}

// apiFake responde por "METODO path" e registra cada chamada.
type apiFake struct {
	mu        sync.Mutex
	chamadas  []chamada
	respostas map[string]func(w http.ResponseWriter)
}

func (a *apiFake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	a.mu.Lock()
	a.chamadas = append(a.chamadas, chamada{Metodo: r.Method, Path: r.URL.Path, Corpo: string(b)})
	a.mu.Unlock()
	if f, ok := a.respostas[r.Method+" "+r.URL.Path]; ok {
		f(w)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"message":"não encontrado"}`))
}

func (a *apiFake) contar(metodo string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.chamadas {
		if c.Metodo == metodo {
			n++
		}
	}
	return n
}

func (a *apiFake) total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.chamadas)
}

func jsonCom(status int, corpo string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(corpo))
	}
}

func novoPainel(t *testing.T, respostas map[string]func(w http.ResponseWriter)) (http.Handler, *apiFake) {
	t.Helper()
	fake := &apiFake{respostas: respostas}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	h, err := NewHandler(cliente.Novo(srv.URL+"/api/v1/colaborador", time.Second, "", nil), nil)
	require.NoError(t, err)
	return h.Routes(), fake
}

func get(h http.Handler, alvo string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, alvo, nil))
	return rec
}

func post(h http.Handler, alvo string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, alvo, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestClassificarNota(t *testing.T) {
	cases := map[float64]string{
		5.0: CorBoa, 4.0: CorBoa, 3.99: CorMedia, 2.5: CorMedia, 2.49: CorRuim, 1.0: CorRuim, 0: CorRuim,
	}
	for nota, cor := range cases {
		assert.Equal(t, cor, ClassificarNota(nota), "nota %v", nota)
	}
}

func TestListaVazia(t *testing.T) {
	h, fake := novoPainel(t, map[string]func(http.ResponseWriter){
		"GET /api/v1/colaborador": jsonCom(http.StatusOK, `[]`),
	})

	rec := get(h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nenhum colaborador cadastrado.")
	assert.Equal(t, 1, fake.total())
}

func TestListaComCards(t *testing.T) {
	h, _ := novoPainel(t, map[string]func(http.ResponseWriter){
		"GET /api/v1/colaborador": jsonCom(http.StatusOK, `[{"matricula":"m-1","nome":"Ana","cargo":"Dev"},{"matricula":"m-2","nome":"Bruno","cargo":"QA"}]`),
	})

	body := get(h, "/").Body.String()
	assert.Equal(t, 2, strings.Count(body, `class="card colaborador-card"`))
	assert.Contains(t, body, `href="/detalhes?matricula=m-1"`)
	assert.Contains(t, body, "Bruno")
	assert.NotContains(t, body, "Nenhum colaborador cadastrado.")
}

func TestListaErroDaAPI(t *testing.T) {
	h, _ := novoPainel(t, map[string]func(http.ResponseWriter){
		"GET /api/v1/colaborador": jsonCom(http.StatusInternalServerError, `{"message":"Erro interno do servidor"}`),
	})

	body := get(h, "/").Body.String()
	assert.Contains(t, body, MensagemListaErro)
	assert.NotContains(t, body, "Nenhum colaborador cadastrado.")
}

func TestDetalheSemMatriculaRedireciona(t *testing.T) {
	h, fake := novoPainel(t, nil)

	rec := get(h, "/detalhes")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Zero(t, fake.total())
}

func TestDetalheNaoEncontrado(t *testing.T) {
	h, _ := novoPainel(t, map[string]func(http.ResponseWriter){
		"GET /api/v1/colaborador/xyz": jsonCom(http.StatusBadRequest, `{"message":"qualquer"}`),
	})

	body := get(h, "/detalhes?matricula=xyz").Body.String()
	assert.Contains(t, body, MensagemNaoAchado)
	assert.NotContains(t, body, `id="colaborador-info"`)
	assert.NotContains(t, body, `id="avaliacao-container"`)
	assert.NotContains(t, body, `id="entregas-container"`)
}

func TestDetalheExemplo(t *testing.T) {
	h, fake := novoPainel(t, map[string]func(http.ResponseWriter){
		"GET /api/v1/colaborador/123": jsonCom(http.StatusOK, exemploDetalhe),
	})

	body := get(h, "/detalhes?matricula=123").Body.String()

	inicio := strings.Index(body, `class="avaliacao-grid"`)
	fim := strings.Index(body, `class="media-container"`)
	require.True(t, inicio > 0 && fim > inicio)
	grade := body[inicio:fim]
	var cores []string
	for _, parte := range strings.Split(grade, `class="nota-badge `)[1:] {
		cores = append(cores, parte[:strings.Index(parte, `"`)])
	}
	assert.Equal(t, []string{CorBoa, CorMedia, CorRuim, CorBoa}, cores)

	assert.Contains(t, body, "Média: 3.63")
	assert.Equal(t, 1, strings.Count(body, `class="entrega-card"`))
	assert.Contains(t, body, `<span class="entrega-nota good">Nota: 4.2</span>`)
	assert.Contains(t, body, "Admissão: 15/01/2024")
	assert.Equal(t, 1, fake.total())
}

func TestDetalheSemAvaliacaoNemEntregas(t *testing.T) {
	h, _ := novoPainel(t, map[string]func(http.ResponseWriter){
		"GET /api/v1/colaborador/123": jsonCom(http.StatusOK,
			`{"matricula":"123","nome":"Ana","cargo":"Dev","dataAdmissao":"2024-01-15","avaliacaoComportamento":null,"entregas":[]}`),
	})

	body := get(h, "/detalhes?matricula=123").Body.String()
	assert.Contains(t, body, "Nenhuma avaliação comportamental registrada para este colaborador.")
	assert.Contains(t, body, "Nenhuma entrega registrada.")
	assert.Contains(t, body, `href="/formulario/avaliacao?matricula=123"`)
}

// apiStub atende Executar sem HTTP.
type apiStub struct {
	err    error
	envios []string
}

func (a *apiStub) ListarColaboradores(context.Context) ([]models.ColaboradorResposta, error) {
	return nil, nil
}

func (a *apiStub) BuscarColaborador(context.Context, string) (*models.ColaboradorResposta, error) {
	return nil, nil
}

func (a *apiStub) Enviar(_ context.Context, metodo, caminho string, _ any) error {
	a.envios = append(a.envios, metodo+" "+caminho)
	return a.err
}

func TestExecutarRecarregaUmaVezNoSucesso(t *testing.T) {
	api := &apiStub{}
	recargas := 0
	res := Executar(context.Background(), api, Mutacao{Metodo: http.MethodDelete, Caminho: "/123/avaliacao", Sucesso: "Avaliação removida."},
		func(context.Context) { recargas++ })

	assert.True(t, res.OK)
	assert.Equal(t, "Avaliação removida.", res.Mensagem)
	assert.Equal(t, 1, recargas)
	assert.Equal(t, []string{"DELETE /123/avaliacao"}, api.envios)
}

func TestExecutarNaoRecarregaNaFalha(t *testing.T) {
	cases := []struct {
		nome     string
		err      error
		mensagem string
	}{
		{"mensagem da API", &cliente.ErroAPI{Status: 400, Mensagem: "Acesso negado"}, "Acesso negado"},
		{"sem mensagem", &cliente.ErroAPI{Status: 500}, "Erro ao excluir."},
		{"conexão", &cliente.ErroConexao{Causa: errors.New("recusada")}, MensagemConexao},
	}
	for _, c := range cases {
		t.Run(c.nome, func(t *testing.T) {
			recargas := 0
			res := Executar(context.Background(), &apiStub{err: c.err},
				Mutacao{Metodo: http.MethodDelete, Caminho: "/x", Fallback: "Erro ao excluir."},
				func(context.Context) { recargas++ })
			assert.False(t, res.OK)
			assert.Equal(t, c.mensagem, res.Mensagem)
			assert.Zero(t, recargas)
		})
	}
}

func TestExcluirRecusadoNaoEnviaDelete(t *testing.T) {
	h, fake := novoPainel(t, nil)

	rec := get(h, "/detalhes/excluir?matricula=123&alvo=entrega&id=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Excluir Entrega?")

	rec = post(h, "/detalhes/excluir", url.Values{"matricula": {"123"}, "alvo": {"entrega"}, "id": {"1"}, "confirmar": {"nao"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/detalhes?matricula=123", rec.Header().Get("Location"))
	assert.Zero(t, fake.contar(http.MethodDelete))
	assert.Zero(t, fake.total())
}

func TestExcluirEntregaConfirmadoRecarregaDetalhe(t *testing.T) {
	h, fake := novoPainel(t, map[string]func(http.ResponseWriter){
		"DELETE /api/v1/colaborador/123/entrega/1": func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) },
		"GET /api/v1/colaborador/123":              jsonCom(http.StatusOK, exemploDetalhe),
	})

	rec := post(h, "/detalhes/excluir", url.Values{"matricula": {"123"}, "alvo": {"entrega"}, "id": {"1"}, "confirmar": {"sim"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Entrega removida.")
	assert.Contains(t, rec.Body.String(), `id="colaborador-info"`)
	assert.Equal(t, 1, fake.contar(http.MethodDelete))
	assert.Equal(t, 1, fake.contar(http.MethodGet))
	assert.Equal(t, 2, fake.total())
}

func TestExcluirColaboradorVoltaParaLista(t *testing.T) {
	h, fake := novoPainel(t, map[string]func(http.ResponseWriter){
		"DELETE /api/v1/colaborador/123": func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) },
		"GET /api/v1/colaborador":        jsonCom(http.StatusOK, `[]`),
	})

	rec := post(h, "/detalhes/excluir", url.Values{"matricula": {"123"}, "alvo": {"colaborador"}, "confirmar": {"sim"}})
	body := rec.Body.String()
	assert.Contains(t, body, "Colaborador removido com sucesso.")
	assert.Contains(t, body, "Nenhum colaborador cadastrado.")
	assert.Equal(t, 2, fake.total())
}

func TestExcluirFalhaNaoRecarrega(t *testing.T) {
	h, fake := novoPainel(t, map[string]func(http.ResponseWriter){
		"DELETE /api/v1/colaborador/123": jsonCom(http.StatusInternalServerError, `{}`),
	})

	body := post(h, "/detalhes/excluir", url.Values{"matricula": {"123"}, "alvo": {"colaborador"}, "confirmar": {"sim"}}).Body.String()
	assert.Contains(t, body, FallbackExclusaoCol)
	assert.Equal(t, 1, fake.total())
}

func TestEditarFormularioPreenchido(t *testing.T) {
	h, _ := novoPainel(t, map[string]func(http.ResponseWriter){
		"GET /api/v1/colaborador/123": jsonCom(http.StatusOK, exemploDetalhe),
	})

	body := get(h, "/detalhes/editar?matricula=123&alvo=avaliacao").Body.String()
	assert.Contains(t, body, `name="notaAvaliacaoComportamental" value="4.5"`)
	assert.Contains(t, body, `name="original_notaTomadaDecisao" value="2"`)

	body = get(h, "/detalhes/editar?matricula=123&alvo=colaborador").Body.String()
	assert.Contains(t, body, `name="dataAdmissao" value="2024-01-15"`)
}

func TestEditarEnviaSoCamposAlterados(t *testing.T) {
	h, fake := novoPainel(t, map[string]func(http.ResponseWriter){
		"PATCH /api/v1/colaborador/123/avaliacao": func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) },
		"GET /api/v1/colaborador/123":             jsonCom(http.StatusOK, exemploDetalhe),
	})

	rec := post(h, "/detalhes/editar", url.Values{
		"matricula": {"123"}, "alvo": {"avaliacao"},
		"notaAvaliacaoComportamental": {"4.5"}, "original_notaAvaliacaoComportamental": {"4.5"},
		"notaAprendizado": {"3"}, "original_notaAprendizado": {"3"},
		"notaTomadaDecisao": {"3.5"}, "original_notaTomadaDecisao": {"2"},
		"notaAutonomia": {"5"}, "original_notaAutonomia": {"5"},
	})
	assert.Contains(t, rec.Body.String(), "Notas atualizadas!")

	require.Equal(t, 1, fake.contar(http.MethodPatch))
	assert.Equal(t, 1, fake.contar(http.MethodGet))
	for _, c := range fake.chamadas {
		if c.Metodo == http.MethodPatch {
			assert.JSONEq(t, `{"notaTomadaDecisao":"3.5"}`, c.Corpo)
		}
	}
}

func TestEditarSemAlteracaoNaoChamaAPI(t *testing.T) {
	h, fake := novoPainel(t, nil)
	rec := post(h, "/detalhes/editar", url.Values{
		"matricula": {"123"}, "alvo": {"entrega"}, "id": {"1"},
		"descricao": {"API"}, "original_descricao": {"API"},
		"nota": {"4.2"}, "original_nota": {"4.2"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Zero(t, fake.total())
}

func TestEditarFalhaMostraMensagemDaAPI(t *testing.T) {
	h, fake := novoPainel(t, map[string]func(http.ResponseWriter){
		"PATCH /api/v1/colaborador/123/entrega/9": jsonCom(http.StatusBadRequest, `{"message":"Acesso negado: A entrega 9 não pertence ao colaborador 123"}`),
	})
	body := post(h, "/detalhes/editar", url.Values{
		"matricula": {"123"}, "alvo": {"entrega"}, "id": {"9"},
		"nota": {"3"}, "original_nota": {"4"},
	}).Body.String()
	assert.Contains(t, body, "Acesso negado: A entrega 9 não pertence ao colaborador 123")
	assert.Equal(t, 1, fake.total())
}

func TestFormularioAvaliacao(t *testing.T) {
	h, fake := novoPainel(t, map[string]func(http.ResponseWriter){
		"POST /api/v1/colaborador/123/avaliacao": jsonCom(http.StatusCreated, `{}`),
	})

	rec := post(h, "/formulario/avaliacao", url.Values{
		"matricula": {" 123 "}, "notaComportamental": {"4.5"}, "notaAprendizado": {"abc"},
		"notaDecisao": {"2"}, "notaAutonomia": {"5"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Avaliação registrada com sucesso!")
	require.Equal(t, 1, fake.total())
	assert.JSONEq(t,
		`{"notaAvaliacaoComportamental":4.5,"notaAprendizado":null,"notaTomadaDecisao":2,"notaAutonomia":5}`,
		fake.chamadas[0].Corpo)
}

func TestFormularioColaboradorErro(t *testing.T) {
	h, _ := novoPainel(t, map[string]func(http.ResponseWriter){
		"POST /api/v1/colaborador": jsonCom(http.StatusBadRequest, `not json`),
	})

	body := post(h, "/formulario/colaborador", url.Values{"nome": {"Ana"}, "cargo": {""}, "dataAdmissao": {"2024-01-15"}}).Body.String()
	assert.Contains(t, body, FallbackFormulario)
	assert.Contains(t, body, `value="Ana"`)
}

func TestFormularioEntregaSemMatricula(t *testing.T) {
	h, fake := novoPainel(t, nil)
	body := post(h, "/formulario/entrega", url.Values{"descricao": {"x"}, "nota": {"3"}}).Body.String()
	assert.Contains(t, body, "Informe a matrícula do colaborador.")
	assert.Zero(t, fake.total())
}

func TestFormularioSemServidor(t *testing.T) {
	h, err := NewHandler(cliente.Novo("http://127.0.0.1:1", 200*time.Millisecond, "", nil), nil)
	require.NoError(t, err)

	body := post(h.Routes(), "/formulario/entrega", url.Values{"matricula": {"1"}, "descricao": {"x"}, "nota": {"3"}}).Body.String()
	assert.Contains(t, body, MensagemConexao)
}
