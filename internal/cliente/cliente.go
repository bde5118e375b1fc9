package cliente

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/KromaEnergia/api-colaborador/internal/models"
)

// ErroAPI é uma resposta fora da faixa 2xx. Mensagem vem do campo
// "message" do corpo e pode estar vazia.
type ErroAPI struct {
	Status   int
	Mensagem string
}

func (e *ErroAPI) Error() string {
	if e.Mensagem == "" {
		return fmt.Sprintf("API respondeu %d", e.Status)
	}
	return fmt.Sprintf("API respondeu %d: %s", e.Status, e.Mensagem)
}

// ErroConexao indica que nenhuma resposta HTTP chegou.
type ErroConexao struct {
	Causa error
}

func (e *ErroConexao) Error() string { return "falha de conexão com a API: " + e.Causa.Error() }

func (e *ErroConexao) Unwrap() error { return e.Causa }

// Cliente fala com a API REST de colaboradores.
type Cliente struct {
	BaseURL string
	HTTP    *http.Client
	Token   string
	Log     hclog.Logger
}

func Novo(baseURL string, timeout time.Duration, token string, log hclog.Logger) *Cliente {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Cliente{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Token:   token,
		Log:     log,
	}
}

func (c *Cliente) ListarColaboradores(ctx context.Context) ([]models.ColaboradorResposta, error) {
	var out []models.ColaboradorResposta
	if err := c.fazer(ctx, http.MethodGet, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Cliente) BuscarColaborador(ctx context.Context, matricula string) (*models.ColaboradorResposta, error) {
	var out models.ColaboradorResposta
	if err := c.fazer(ctx, http.MethodGet, "/"+url.PathEscape(matricula), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Enviar faz uma mutação; caminho é relativo à base (ex.: "/{matricula}/entrega").
func (c *Cliente) Enviar(ctx context.Context, metodo, caminho string, corpo any) error {
	return c.fazer(ctx, metodo, caminho, corpo, nil)
}

func (c *Cliente) fazer(ctx context.Context, metodo, caminho string, corpo, destino any) error {
	var body io.Reader
	if corpo != nil {
		b, err := json.Marshal(corpo)
		if err != nil {
			return fmt.Errorf("serializar corpo: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, metodo, c.BaseURL+caminho, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if corpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Warn("falha de conexão", "method", metodo, "url", req.URL.String(), "error", err)
		return &ErroConexao{Causa: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e models.ErroResposta
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil && !errors.Is(err, io.EOF) {
			c.Log.Debug("corpo de erro não é JSON", "status", resp.StatusCode)
		}
		return &ErroAPI{Status: resp.StatusCode, Mensagem: e.Message}
	}

	if destino == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(destino); err != nil {
		return fmt.Errorf("decodificar resposta: %w", err)
	}
	return nil
}

// MensagemDe escolhe o texto para o usuário: mensagem da API, fallback
// da ação ou o aviso genérico de conexão.
func MensagemDe(err error, fallback string) string {
	var conexao *ErroConexao
	if errors.As(err, &conexao) {
		return "Erro de conexão com o servidor."
	}
	var api *ErroAPI
	if errors.As(err, &api) && api.Mensagem != "" {
		return api.Mensagem
	}
	return fallback
}
