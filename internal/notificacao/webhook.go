package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
)

const (
	ColaboradorCadastrado = "colaborador.cadastrado"
	ColaboradorAtualizado = "colaborador.atualizado"
	ColaboradorExcluido   = "colaborador.excluido"
	AvaliacaoRegistrada   = "avaliacao.registrada"
	AvaliacaoAtualizada   = "avaliacao.atualizada"
	AvaliacaoExcluida     = "avaliacao.excluida"
	EntregaCadastrada     = "entrega.cadastrada"
	EntregaAtualizada     = "entrega.atualizada"
	EntregaExcluida       = "entrega.excluida"
)

type Evento struct {
	Tipo      string    `json:"tipo"`
	Matricula string    `json:"matricula"`
	Detalhe   any       `json:"detalhe,omitempty"`
	Em        time.Time `json:"em"`
}

// Notificador publica eventos do domínio sem bloquear quem chama.
type Notificador interface {
	Notificar(ctx context.Context, ev Evento)
}

// Nenhum descarta tudo; usado quando WEBHOOK_URL não está definida.
type Nenhum struct{}

func (Nenhum) Notificar(context.Context, Evento) {}

// Webhook entrega eventos por POST numa única goroutine, com fila limitada.
type Webhook struct {
	URL        string
	Client     *http.Client
	Log        hclog.Logger
	MaxRetries uint64
	// PrazoDrenagem limita quanto Fechar espera a fila esvaziar.
	PrazoDrenagem time.Duration

	novoBackOff func() backoff.BackOff

	fila     chan Evento
	once     sync.Once
	wg       sync.WaitGroup
	cancelar context.CancelFunc
}

func NovoWebhook(url string, timeout time.Duration, capacidade int, log hclog.Logger) *Webhook {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Webhook{
		URL:         url,
		Client:      &http.Client{Timeout: timeout},
		Log:         log,
		MaxRetries:    3,
		PrazoDrenagem: 10 * time.Second,
		novoBackOff:   func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		fila:          make(chan Evento, capacidade),
	}
}

// Iniciar sobe o worker; ele termina quando Fechar esvazia a fila.
// O cancelamento de ctx não interrompe os envios: só Fechar (ou seu prazo) o faz.
func (w *Webhook) Iniciar(ctx context.Context) {
	wctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w.cancelar = cancel
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for ev := range w.fila {
			if err := w.enviarComRetry(wctx, ev); err != nil {
				w.Log.Warn("webhook não entregue", "tipo", ev.Tipo, "matricula", ev.Matricula, "error", err)
			}
		}
	}()
}

func (w *Webhook) Notificar(_ context.Context, ev Evento) {
	if ev.Em.IsZero() {
		ev.Em = time.Now().UTC()
	}
	select {
	case w.fila <- ev:
	default:
		w.Log.Warn("fila de webhook cheia, evento descartado", "tipo", ev.Tipo, "matricula", ev.Matricula)
	}
}

// Fechar para de aceitar eventos e espera o worker drenar a fila por até PrazoDrenagem.
// Esgotado o prazo, os envios pendentes são cancelados.
func (w *Webhook) Fechar() {
	w.once.Do(func() { close(w.fila) })

	drenado := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(drenado)
	}()

	select {
	case <-drenado:
	case <-time.After(w.PrazoDrenagem):
		w.Log.Warn("prazo de drenagem do webhook esgotado", "pendentes", len(w.fila))
		if w.cancelar != nil {
			w.cancelar()
		}
		<-drenado
	}
	if w.cancelar != nil {
		w.cancelar()
	}
}

func (w *Webhook) enviarComRetry(ctx context.Context, ev Evento) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	b := backoff.WithContext(backoff.WithMaxRetries(w.novoBackOff(), w.MaxRetries), ctx)
	return backoff.Retry(func() error {
		return w.enviar(ctx, body)
	}, b)
}

func (w *Webhook) enviar(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return backoff.Permanent(fmt.Errorf("webhook recusou o evento: %d", resp.StatusCode))
	}
	return nil
}
