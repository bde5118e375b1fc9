package painel

import (
	"github.com/KromaEnergia/api-colaborador/internal/models"
)

type Toast struct {
	Tipo     string
	Mensagem string
}

func toastDe(r Resultado) *Toast {
	if r.OK {
		return &Toast{Tipo: "sucesso", Mensagem: r.Mensagem}
	}
	return &Toast{Tipo: "erro", Mensagem: r.Mensagem}
}

type CardColaborador struct {
	Matricula string
	Nome      string
	Cargo     string
}

type ListaView struct {
	Colaboradores []CardColaborador
	Erro          string
	Toast         *Toast
}

type NotaView struct {
	Titulo string
	Campo  string
	Valor  string
	Bruto  string
	Cor    string
}

func novaNota(titulo, campo string, v float64) NotaView {
	return NotaView{Titulo: titulo, Campo: campo, Valor: FormatarNota(v), Bruto: valorBruto(v), Cor: ClassificarNota(v)}
}

type AvaliacaoView struct {
	Notas []NotaView
	Media string
}

type EntregaView struct {
	ID        uint
	Descricao string
	Nota      NotaView
}

type ColaboradorView struct {
	Matricula    string
	Nome         string
	Cargo        string
	DataAdmissao string
	DataISO      string
	Avaliacao    *AvaliacaoView
	Entregas     []EntregaView
}

// NovoColaboradorView prepara o registro para exibição; mediaNotas vem
// pronta da API.
func NovoColaboradorView(c models.ColaboradorResposta) ColaboradorView {
	v := ColaboradorView{
		Matricula:    c.Matricula,
		Nome:         c.Nome,
		Cargo:        c.Cargo,
		DataAdmissao: FormatarData(c.DataAdmissao),
		Entregas:     make([]EntregaView, 0, len(c.Entregas)),
	}
	if !c.DataAdmissao.IsZero() {
		v.DataISO = c.DataAdmissao.Format(models.LayoutData)
	}
	if av := c.AvaliacaoComportamento; av != nil {
		v.Avaliacao = &AvaliacaoView{
			Notas: []NotaView{
				novaNota("Comportamento", "notaAvaliacaoComportamental", av.NotaAvaliacaoComportamental),
				novaNota("Aprendizado", "notaAprendizado", av.NotaAprendizado),
				novaNota("Tomada Decisão", "notaTomadaDecisao", av.NotaTomadaDecisao),
				novaNota("Autonomia", "notaAutonomia", av.NotaAutonomia),
			},
			Media: FormatarMedia(av.MediaNotas),
		}
	}
	for _, e := range c.Entregas {
		v.Entregas = append(v.Entregas, EntregaView{
			ID:        e.ID,
			Descricao: e.Descricao,
			Nota:      novaNota("Nota", "nota", e.Nota),
		})
	}
	return v
}

type DetalheView struct {
	Matricula   string
	Erro        string
	Colaborador *ColaboradorView
	Toast       *Toast

	// Editando é "colaborador", "avaliacao" ou "entrega"; EntregaID vale
	// só para entrega.
	Editando  string
	EntregaID uint
}

type ConfirmacaoView struct {
	Matricula string
	Alvo      string
	ID        string
	Titulo    string
	Texto     string
}

type ResultadoView struct {
	Matricula string
	Toast     *Toast
}

type FormularioView struct {
	Tipo     string
	Titulo   string
	Valores  map[string]string
	Feedback *Toast
}
