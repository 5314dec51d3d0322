// @title           CollabEx API
// @version         1.0
// @description     Influencer and brand collaboration backend (Swagger documentation).
// @contact.name    CollabEx
// @contact.email   support@collabex.app
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"collabex_backend/database"
	"collabex_backend/internal/app"
	"collabex_backend/internal/config"
	"collabex_backend/internal/logger"

	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "collabex",
		Usage: "CollabEx backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config/config.yaml",
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Action: cli.ShowAppHelp,
		Commands: []*cli.Command{
			{
				Name:        "serve",
				Usage:       "Start the HTTP API with background workers",
				Category:    "Api",
				Description: `Runs the REST API, the websocket endpoint and every background worker in one process.`,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "run AutoMigrate before serving",
					},
					&cli.BoolFlag{
						Name:  "no-workers",
						Usage: "serve HTTP only",
					},
				},
				Action: startServe,
			},
			{
				Name:        "migrate",
				Usage:       "Create or update the database schema",
				Category:    "Database",
				Description: `Runs AutoMigrate for every model and exits.`,
				Action:      startMigrate,
			},
			{
				Name:        "worker",
				Usage:       "Start background workers only",
				Category:    "Worker",
				Description: `Drains the outbox, closes expired posts and purges refresh tokens without serving HTTP.`,
				Action:      startWorker,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Fatal("Command failed", "error", err)
	}
}

func loadConfig(cctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return nil, err
	}
	config.AppConfig = cfg
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)
	return cfg, nil
}

func signalContext(cctx *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
}

func startServe(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cctx.Bool("migrate") {
		if err := database.AutoMigrate(a.DB); err != nil {
			return err
		}
	}

	ctx, stop := signalContext(cctx)
	defer stop()

	a.StartRealtime(ctx)
	if !cctx.Bool("no-workers") {
		a.StartWorkers(ctx)
	}
	return a.Serve(ctx)
}

func startMigrate(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database, cfg.Server.Debug)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	return database.AutoMigrate(db)
}

func startWorker(cctx *cli.Context) error {
	cfg, err := loadConfig(cctx)
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signalContext(cctx)
	defer stop()

	a.StartRealtime(ctx)
	a.StartWorkers(ctx)
	logger.Info("Workers running, waiting for shutdown signal")
	<-ctx.Done()
	logger.Info("Workers shutting down")
	return nil
}
