package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"tinyclient/impl/core"
	"tinyclient/internal/config"
	"tinyclient/internal/lib/logger"
	"tinyclient/internal/lib/sl"
	"tinyclient/internal/services"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	lg.Info("starting tinyclient", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	tiny, err := services.NewTinyService(conf, lg)
	if err != nil {
		lg.Error("tiny service", sl.Err(err))
		os.Exit(1)
	}
	lg.Info("tiny service initialized")

	handler := core.New(lg)
	handler.SetAccounts(services.NewAccountService(tiny, lg))
	handler.SetContacts(services.NewContactService(tiny, lg))
	handler.SetProducts(services.NewProductService(tiny, lg))
	handler.SetFetchLimit(conf.Fetch.Rate, conf.Fetch.Burst)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	account, err := handler.AccountInfo(ctx)
	if err != nil {
		lg.Error("account info", sl.Err(err))
		os.Exit(1)
	}

	lg.With(
		slog.String("razao_social", account.RazaoSocial),
		slog.String("cnpj", account.CNPJ),
		slog.String("cidade", account.Cidade),
	).Info("token verified")
}
