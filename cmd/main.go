package main

import (
	"smilematch-api/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := bootstrap.SignalContext()
	defer stop()

	app, err := bootstrap.New(ctx)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		app.Log.Fatalf("Server stopped: %v", err)
	}
}
