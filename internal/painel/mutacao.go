package painel

import (
	"context"

	"github.com/KromaEnergia/api-colaborador/internal/cliente"
	"github.com/KromaEnergia/api-colaborador/internal/models"
)

// API é o que o painel consome; *cliente.Cliente satisfaz.
type API interface {
	ListarColaboradores(ctx context.Context) ([]models.ColaboradorResposta, error)
	BuscarColaborador(ctx context.Context, matricula string) (*models.ColaboradorResposta, error)
	Enviar(ctx context.Context, metodo, caminho string, corpo any) error
}

const (
	MensagemConexao  = "Erro de conexão com o servidor."
	FallbackOperacao = "Erro na operação."
)

type Mutacao struct {
	Metodo   string
	Caminho  string
	Corpo    any
	Sucesso  string
	Fallback string
}

type Resultado struct {
	OK       bool
	Mensagem string
}

// Executar envia a mutação. Com resposta 2xx chama recarregar exatamente uma
// vez; em qualquer falha recarregar não é chamado.
func Executar(ctx context.Context, api API, m Mutacao, recarregar func(context.Context)) Resultado {
	fallback := m.Fallback
	if fallback == "" {
		fallback = FallbackOperacao
	}
	if err := api.Enviar(ctx, m.Metodo, m.Caminho, m.Corpo); err != nil {
		return Resultado{Mensagem: cliente.MensagemDe(err, fallback)}
	}
	if recarregar != nil {
		recarregar(ctx)
	}
	return Resultado{OK: true, Mensagem: m.Sucesso}
}
