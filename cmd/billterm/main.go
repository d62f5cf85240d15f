package main

import (
	"flag"
	"log/slog"
	"os"
	"path"

	"github.com/joho/godotenv"

	"github.com/mvirtane/billterm"
	"github.com/mvirtane/billterm/client"
	"github.com/mvirtane/billterm/session"
)

func main() {
	// .env is optional; flags and real environment variables win over it.
	_ = godotenv.Load()

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	var (
		apiURL    = envOr("BILLTERM_API", "http://localhost:5000/api")
		exportDir = envOr("BILLTERM_EXPORT_DIR", ".")
		logFile   = envOr("BILLTERM_LOG", "")
		tokenFile = path.Join(configDir, "billterm", "token")
	)
	flag.StringVar(&apiURL, "api", apiURL, "Base URL of the billing backend API")
	flag.StringVar(&exportDir, "export-dir", exportDir, "Directory xlsx exports are written into")
	flag.StringVar(&logFile, "log", logFile, "Write logs into this file. Disabled when empty; logging to stderr would corrupt the UI.")
	flag.StringVar(&tokenFile, "token-file", tokenFile, "Location of the persisted session token")
	flag.Parse()

	logger := slog.New(slog.DiscardHandler)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to open log file", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, nil))
	}

	api := client.New(apiURL, client.WithLogger(logger))
	store := session.NewStore(tokenFile)
	if err := billterm.Run(api, store,
		billterm.UseLogger(logger),
		billterm.UseExportDir(exportDir),
	); err != nil {
		logger.Error("run error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
