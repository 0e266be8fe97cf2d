package main

import (
	"context"
	"log"

	"coverpost_api/clients"
	"coverpost_api/config"
	"coverpost_api/handlers"

	"cloud.google.com/go/logging"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v\n", err)
	}

	app, err := clients.InitApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize clients: %v\n", err)
	}
	defer app.Close()

	r, err := handlers.NewRouter(app)
	if err != nil {
		log.Fatalf("Failed to build router: %v\n", err)
	}

	app.Logger.Log(logging.Entry{
		Severity: logging.Info,
		Payload:  "Listening on port " + cfg.Port,
		Labels:   map[string]string{"imageHost": cfg.ImageHost, "gateway": cfg.UploadGatewayUrl},
	})

	if err := r.Run("0.0.0.0:" + cfg.Port); err != nil {
		app.Logger.Log(logging.Entry{
			Severity: logging.Critical,
			Payload:  "Server stopped: " + err.Error(),
		})
		app.Close()
		log.Fatalf("Server stopped: %v\n", err)
	}
}
