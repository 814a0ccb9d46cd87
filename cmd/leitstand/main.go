package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avollmer/leitstand/internal/cli"
	"github.com/avollmer/leitstand/internal/db"
	"github.com/avollmer/leitstand/internal/hierarchy"
	"github.com/avollmer/leitstand/internal/repository"
	"github.com/avollmer/leitstand/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.leitstand/leitstand.db
	dbPath := os.Getenv("LEITSTAND_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".leitstand", "leitstand.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	salesRepo := repository.NewSQLiteSalesRepo(database)
	productionRepo := repository.NewSQLiteProductionRepo(database)
	batchRepo := repository.NewSQLiteBatchRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	builder := hierarchy.NewBuilder(hierarchy.DefaultConfig())

	var observers []service.UseCaseObserver
	if os.Getenv("LEITSTAND_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Overview: service.NewOverviewService(salesRepo, productionRepo, batchRepo, builder, observers...),
		Import:   service.NewImportService(uow, observers...),
		Builder:  builder,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
