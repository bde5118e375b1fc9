package cmd

import (
	"flag"
	"fmt"
	"time"

	"github.com/mitchellh/cli"

	"github.com/KromaEnergia/api-colaborador/internal/auth"
	"github.com/KromaEnergia/api-colaborador/internal/config"
)

type TokenCommand struct {
	UI cli.Ui

	flagSub string
	flagTTL time.Duration
}

func (c *TokenCommand) Synopsis() string { return "Emite um JWT para as rotas de escrita" }

func (c *TokenCommand) Help() string {
	return `Usage: colaboradores token [-sub admin] [-ttl 24h]

  Assina um token HS256 com JWT_SECRET. Use o resultado em API_TOKEN
  para o painel.`
}

func (c *TokenCommand) Run(args []string) int {
	f := flag.NewFlagSet("token", flag.ContinueOnError)
	f.StringVar(&c.flagSub, "sub", "admin", "subject do token")
	f.DurationVar(&c.flagTTL, "ttl", 24*time.Hour, "validade do token")
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("erro ao ler flags: %v", err))
		return 1
	}

	cfg, err := config.Carregar()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	tok, err := auth.GerarToken([]byte(cfg.JWTSecret), c.flagSub, c.flagTTL)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(tok)
	return 0
}
