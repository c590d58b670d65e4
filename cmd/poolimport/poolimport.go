package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jbpratt/wardrobe/internal/poolimport"
	"github.com/jbpratt/wardrobe/internal/wardrobe"
	"go.uber.org/zap"
)

func main() {
	dbPath := flag.String("db", "/tmp/wardrobe.db", "path to sqlite pool database")
	flag.Parse()

	if v := os.Getenv("WARDROBE_DB"); v != "" {
		*dbPath = v
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}

	err = run(context.Background(), logger.Sugar(), *dbPath, flag.Args())
	if err != nil {
		logger.Error(err.Error())
	}

	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run imports the manifest named in args, or the embedded one, into dbPath.
func run(ctx context.Context, logger *zap.SugaredLogger, dbPath string, args []string) error {
	var src wardrobe.Source = wardrobe.NewDefaultManifestSource(logger)
	if len(args) > 0 {
		fileSource, err := wardrobe.NewFileManifestSource(logger, args[0])
		if err != nil {
			return err
		}
		src = fileSource
	}

	pi, err := poolimport.New(logger, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := pi.Close(); err != nil {
			logger.Warnw("failed to close pool database", "err", err)
		}
	}()

	n, err := pi.Import(ctx, src)
	if err != nil {
		return fmt.Errorf("import into %s: %w", dbPath, err)
	}

	logger.Infow("pool imported", "db", dbPath, "items", n)
	return nil
}
