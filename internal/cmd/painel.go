package cmd

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mitchellh/cli"

	"github.com/KromaEnergia/api-colaborador/internal/api"
	"github.com/KromaEnergia/api-colaborador/internal/cliente"
	"github.com/KromaEnergia/api-colaborador/internal/config"
	"github.com/KromaEnergia/api-colaborador/internal/painel"
)

type PainelCommand struct {
	UI cli.Ui

	flagPorta  string
	flagAPIURL string
}

func (c *PainelCommand) Synopsis() string { return "Sobe o painel web que consome a API" }

func (c *PainelCommand) Help() string {
	return `Usage: colaboradores painel [-porta 3000] [-api-url URL]

  Serve as páginas de lista, detalhes e formulários, falando com a API
  em API_URL.`
}

func (c *PainelCommand) Run(args []string) int {
	f := flag.NewFlagSet("painel", flag.ContinueOnError)
	f.StringVar(&c.flagPorta, "porta", "", "[PAINEL_PORT] porta HTTP do painel")
	f.StringVar(&c.flagAPIURL, "api-url", "", "[API_URL] base da API de colaboradores")
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("erro ao ler flags: %v", err))
		return 1
	}

	cfg, err := config.Carregar()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if c.flagPorta != "" {
		cfg.PainelPorta = c.flagPorta
	}
	if c.flagAPIURL != "" {
		cfg.APIURL = c.flagAPIURL
	}
	log := novoLogger("painel", cfg.LogLevel)

	cl := cliente.Novo(cfg.APIURL, cfg.HTTPTimeout, cfg.APIToken, log.Named("cliente"))
	h, err := painel.NewHandler(cl, log)
	if err != nil {
		log.Error("erro ao carregar templates", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("painel usando API", "api_url", cfg.APIURL)
	if err := api.Servir(ctx, ":"+cfg.PainelPorta, api.Registro(log)(h.Routes()), log); err != nil {
		log.Error("painel encerrado com erro", "error", err)
		return 1
	}
	return 0
}
