package models

import "github.com/shopspring/decimal"

// Media devolve a média aritmética arredondada em 2 casas, meio para cima.
func Media(valores []float64) float64 {
	if len(valores) == 0 {
		return 0
	}
	soma := decimal.Zero
	for _, v := range valores {
		soma = soma.Add(decimal.NewFromFloat(v))
	}
	return soma.Div(decimal.NewFromInt(int64(len(valores)))).Round(2).InexactFloat64()
}

func somar(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}

func (a AvaliacaoComportamento) Resposta() AvaliacaoResposta {
	return AvaliacaoResposta{
		NotaAvaliacaoComportamental: a.NotaAvaliacaoComportamental,
		NotaAprendizado:             a.NotaAprendizado,
		NotaTomadaDecisao:           a.NotaTomadaDecisao,
		NotaAutonomia:               a.NotaAutonomia,
		MediaNotas:                  Media(a.Notas()),
	}
}

func (e Entrega) Resposta() EntregaResposta {
	return EntregaResposta{ID: e.ID, Descricao: e.Descricao, Nota: e.Nota}
}

// Resposta espera Avaliacao e Entregas já carregadas.
func (c Colaborador) Resposta() ColaboradorResposta {
	r := ColaboradorResposta{
		Matricula:    c.Matricula,
		Nome:         c.Nome,
		Cargo:        c.Cargo,
		DataAdmissao: NovaData(c.DataAdmissao),
		Entregas:     make([]EntregaResposta, 0, len(c.Entregas)),
	}
	if c.Avaliacao != nil {
		av := c.Avaliacao.Resposta()
		r.AvaliacaoComportamento = &av
	}
	for _, e := range c.Entregas {
		r.Entregas = append(r.Entregas, e.Resposta())
	}
	return r
}

// Medias calcula a performance sem checar pré-condições; quem chama garante
// avaliação presente e entregas suficientes.
func (c Colaborador) Medias() MediasResposta {
	notas := make([]float64, 0, len(c.Entregas))
	for _, e := range c.Entregas {
		notas = append(notas, e.Nota)
	}
	m := MediasResposta{MediaEntregas: Media(notas)}
	if c.Avaliacao != nil {
		m.MediaComportamental = Media(c.Avaliacao.Notas())
	}
	m.NotaFinal = somar(m.MediaComportamental, m.MediaEntregas)
	return m
}
