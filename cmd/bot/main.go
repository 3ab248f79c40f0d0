package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
)

func main() {
	a, cleanup, err := InitializeApp()
	if err != nil {
		log.Fatalln(err)
	}
	defer cleanup()

	a.Info("Starting application")
	if err := a.Run(); err != nil {
		a.Error("Error running application", slog.String(logging.KeyError, err.Error()))
		cleanup()
		os.Exit(1)
	}
}
