package painel

import (
	"strconv"

	"github.com/KromaEnergia/api-colaborador/internal/models"
)

const (
	CorBoa   = "good"
	CorMedia = "medium"
	CorRuim  = "poor"
)

// ClassificarNota mapeia a nota para a cor do badge. Cada faixa inclui o
// limite inferior.
func ClassificarNota(s float64) string {
	switch {
	case s >= 4.0:
		return CorBoa
	case s >= 2.5:
		return CorMedia
	default:
		return CorRuim
	}
}

func FormatarNota(s float64) string {
	return strconv.FormatFloat(s, 'f', 1, 64)
}

func FormatarMedia(s float64) string {
	return strconv.FormatFloat(s, 'f', 2, 64)
}

// FormatarData exibe DD/MM/AAAA lendo a data em UTC.
func FormatarData(d models.Data) string {
	if d.IsZero() {
		return ""
	}
	return d.UTC().Format("02/01/2006")
}

func valorBruto(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
