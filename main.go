package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alovak/payment-gateway/banksim"
	"github.com/alovak/payment-gateway/gateway"
	"golang.org/x/exp/slog"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout))

	bank := banksim.NewApp(logger, nil)
	if err := bank.Start(); err != nil {
		logger.Error("starting bank simulator", "err", err)
		os.Exit(1)
	}

	config := gateway.DefaultConfig()
	config.BankURL = "http://" + bank.Addr

	app := gateway.NewApp(logger, config)
	if err := app.Start(); err != nil {
		logger.Error("starting gateway", "err", err)
		bank.Shutdown()
		os.Exit(1)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	app.Shutdown()
	bank.Shutdown()
}
