package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hackstage/hackstage/cmd/app"
	"github.com/hackstage/hackstage/internal/adapters/config"

	_ "time/tzdata"
)

func main() {
	cfg := config.Get()

	a, err := app.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	a.Logger.Info("hackstage core is up")

	// The core has no presentation surface of its own; front ends attach to
	// the App services. Keep the process alive until interrupted.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.Logger.Info("shutting down")
}
