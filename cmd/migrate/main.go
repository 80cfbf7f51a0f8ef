package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/angelmondragon/producers-backend/pkg/config"
	"github.com/angelmondragon/producers-backend/pkg/db"
	"github.com/angelmondragon/producers-backend/pkg/logger"
	"github.com/angelmondragon/producers-backend/pkg/migrate"
)

const (
	cmdCreate   = "create"
	cmdValidate = "validate"
	cmdVersion  = "version"
)

type options struct {
	cmd     string
	dir     string
	name    string
	version string
}

func main() {
	var opts options
	flag.StringVar(&opts.cmd, "cmd", migrate.CommandUp, "migration command: up|down|status|version|create|validate")
	flag.StringVar(&opts.dir, "dir", "", "migrations directory (empty uses the migrations built into the binary)")
	flag.StringVar(&opts.name, "name", "", "migration name for -cmd=create")
	flag.StringVar(&opts.version, "version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "migrate"})
	_ = godotenv.Load()

	// create and validate only touch files, so they run without config.
	if err := runOffline(opts); err != errNeedsDatabase {
		exitOn(logg, opts, err)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"cmd":    opts.cmd,
		"dir":    opts.dir,
		"driver": cfg.DB.Driver,
	})
	exitOn(logg, opts, runOnline(ctx, cfg, logg, opts))
}

var errNeedsDatabase = fmt.Errorf("command needs a database")

func runOffline(opts options) error {
	switch opts.cmd {
	case cmdCreate:
		if opts.name == "" {
			return fmt.Errorf("missing -name for create")
		}
		dir := opts.dir
		if dir == "" {
			dir = migrate.DefaultDir
		}
		path, err := migrate.CreateSQLMigration(dir, opts.name)
		if err != nil {
			return err
		}
		fmt.Println("created migration:", path)
		return nil
	case cmdValidate:
		if err := migrate.ValidateDir(opts.dir); err != nil {
			return err
		}
		fmt.Println("migration validation passed")
		return nil
	}
	return errNeedsDatabase
}

func runOnline(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts options) (err error) {
	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, dbClient.Close())
	}()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}
	logg.Info(ctx, "migrate ready")

	switch opts.cmd {
	case migrate.CommandUp, migrate.CommandDown, migrate.CommandStatus:
		return migrate.Run(ctx, sqlDB, dbClient.Dialect(), opts.dir, opts.cmd, os.Stdout)
	case cmdVersion:
		if opts.version == "" {
			return fmt.Errorf("missing -version for version command")
		}
		return migrate.MigrateToVersion(ctx, sqlDB, dbClient.Dialect(), opts.dir, opts.version, os.Stdout)
	}
	return fmt.Errorf("unknown -cmd value %q", opts.cmd)
}

func exitOn(logg *logger.Logger, opts options, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(context.Background(), "cmd", opts.cmd), "migration command failed", err)
	os.Exit(1)
}
