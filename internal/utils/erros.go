package utils

import "fmt"

// ErroNegocio é uma regra de negócio violada; vira 400.
type ErroNegocio struct {
	Mensagem string
}

func (e *ErroNegocio) Error() string { return e.Mensagem }

func NovoErroNegocio(formato string, args ...any) error {
	return &ErroNegocio{Mensagem: fmt.Sprintf(formato, args...)}
}

// ErroNaoEncontrado vira 404.
type ErroNaoEncontrado struct {
	Mensagem string
}

func (e *ErroNaoEncontrado) Error() string { return e.Mensagem }

func NovoErroNaoEncontrado(formato string, args ...any) error {
	return &ErroNaoEncontrado{Mensagem: fmt.Sprintf(formato, args...)}
}

// ErroRequisicao cobre JSON malformado e parâmetros de rota inválidos.
type ErroRequisicao struct {
	Mensagem string
	Causa    error
}

func (e *ErroRequisicao) Error() string { return e.Mensagem }

func (e *ErroRequisicao) Unwrap() error { return e.Causa }
