package main

import (
	"context"
	"database/sql"
	"net/http"

	"poemarket-backend/lib/configuration"
	"poemarket-backend/lib/serviceutil"
	"poemarket-backend/lib/telemetry"
	"poemarket-backend/services/ninja"
	ninjadb "poemarket-backend/services/ninja/db"
	"poemarket-backend/services/poedb"
	poedbdb "poemarket-backend/services/poedb/db"
)

type Config struct {
	Port     int    `json:"port"`
	Database string `json:"database"`
	// base url override for the mod database site, defaults to the
	// real one when empty
	PoedbBaseUrl string `json:"poedbBaseUrl"`
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configuration.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8000
	}
	if config.Database == "" {
		config.Database = "poemarket.db"
	}

	database, err := openDatabase(config.Database)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	t, err := telemetry.SetupFromEnv(ctx, "poemarketd")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	server := Server{
		ninja: ninja.NewService(database),
		poedb: poedb.NewService(database, poedb.NewClient(config.PoedbBaseUrl)),
	}

	mux := http.NewServeMux()
	server.Register(mux)
	go serviceutil.StartHttpServer(config.Port, mux)

	<-ctx.Done()
}

func openDatabase(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(ninjadb.Schema)
	if err != nil {
		return nil, err
	}
	_, err = database.Exec(poedbdb.Schema)
	if err != nil {
		return nil, err
	}
	return database, nil
}
