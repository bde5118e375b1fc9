package cmd

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/mitchellh/cli"

	"github.com/KromaEnergia/api-colaborador/internal/api"
	"github.com/KromaEnergia/api-colaborador/internal/config"
	"github.com/KromaEnergia/api-colaborador/internal/notificacao"
	"github.com/KromaEnergia/api-colaborador/internal/utils/db"
)

const capacidadeFilaWebhook = 100

type APICommand struct {
	UI cli.Ui

	flagPorta string
}

func (c *APICommand) Synopsis() string { return "Sobe a API REST de colaboradores" }

func (c *APICommand) Help() string {
	return `Usage: colaboradores api [-porta 8080]

  Conecta no banco (DB_DRIVER), roda o AutoMigrate e serve
  /api/v1/colaborador até receber SIGINT ou SIGTERM.`
}

func (c *APICommand) Run(args []string) int {
	f := flag.NewFlagSet("api", flag.ContinueOnError)
	f.StringVar(&c.flagPorta, "porta", "", "[PORT] porta HTTP")
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
		cfg.Porta = c.flagPorta
	}
	log := novoLogger("api", cfg.LogLevel)

	database, err := db.GetDB(cfg.DB, log)
	if err != nil {
		log.Error("erro ao conectar no banco", "error", err)
		return 1
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var notificador notificacao.Notificador = notificacao.Nenhum{}
	if cfg.WebhookURL != "" {
		wh := notificacao.NovoWebhook(cfg.WebhookURL, cfg.HTTPTimeout, capacidadeFilaWebhook, log.Named("webhook"))
		wh.Iniciar(ctx)
		defer wh.Fechar()
		notificador = wh
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET vazia, escritas sem autenticação")
	}

	router := api.NovoRouter(database, log, api.Opcoes{
		CORSOrigins: cfg.CORSOrigins,
		JWTSecret:   []byte(cfg.JWTSecret),
		Notificador: notificador,
	})
	if err := api.Servir(ctx, ":"+cfg.Porta, router, log); err != nil {
		log.Error("servidor encerrado com erro", "error", err)
		return 1
	}
	return 0
}
