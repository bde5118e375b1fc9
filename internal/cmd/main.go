package cmd

import (
	"bufio"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

const Versao = "0.1.0"

// Main roda a CLI e devolve o código de saída.
func Main(args []string) int {
	nome := "colaboradores"

	if len(args) == 2 && (args[1] == "-version" || args[1] == "-v") {
		args = []string{args[0], "version"}
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := &cli.CLI{
		Name:     nome,
		Args:     args[1:],
		Version:  Versao,
		Commands: comandos(ui),
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	return exitCode
}

func comandos(ui cli.Ui) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"api": func() (cli.Command, error) {
			return &APICommand{UI: ui}, nil
		},
		"painel": func() (cli.Command, error) {
			return &PainelCommand{UI: ui}, nil
		},
		"token": func() (cli.Command, error) {
			return &TokenCommand{UI: ui}, nil
		},
		"version": func() (cli.Command, error) {
			return &VersionCommand{UI: ui}, nil
		},
	}
}

func novoLogger(nome, nivel string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  nome,
		Level: hclog.LevelFromString(strings.ToLower(nivel)),
	})
}

type VersionCommand struct {
	UI cli.Ui
}

func (c *VersionCommand) Synopsis() string { return "Mostra a versão" }

func (c *VersionCommand) Help() string { return "Usage: colaboradores version" }

func (c *VersionCommand) Run([]string) int {
	c.UI.Output(Versao)
	return 0
}
