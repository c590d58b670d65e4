package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jbpratt/wardrobe/internal/server"
	"github.com/jbpratt/wardrobe/internal/wardrobe"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	addr      string
	dbPath    string
	manifest  string
	images    string
	questions int
	origins   string
}

func main() {
	var opts options
	flag.StringVar(&opts.addr, "addr", ":8080", "address to listen on")
	flag.StringVar(&opts.dbPath, "db", "", "path to a sqlite pool database (see poolimport)")
	flag.StringVar(&opts.manifest, "manifest", "", "path to a JSON pool manifest, the embedded one is used when empty")
	flag.StringVar(&opts.images, "images", "", "directory served under /images/")
	flag.IntVar(&opts.questions, "questions", 10, "number of questions per session")
	flag.StringVar(&opts.origins, "origins", "", "comma separated list of allowed cross-origin hosts")
	lvl := zap.LevelFlag("v", zapcore.InfoLevel, "set the log level")

	flag.Parse()

	if v := os.Getenv("WARDROBE_ADDR"); v != "" {
		opts.addr = v
	}
	if v := os.Getenv("WARDROBE_DB"); v != "" {
		opts.dbPath = v
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	atom := zap.NewAtomicLevelAt(*lvl)
	logger := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		atom,
	))

	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-c
		logger.Sugar().Infow("received signal, shutting down", "signal", s)
		cancel()
	}()

	err := run(ctx, logger.Sugar(), opts)
	cancel()
	if err != nil {
		logger.Error(err.Error())
	}

	if syncErr := logger.Sync(); syncErr != nil {
		log.Println(syncErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.SugaredLogger, opts options) error {
	source, closeSource, err := openSource(logger, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSource(); err != nil {
			logger.Warnw("failed to close pool source", "err", err)
		}
	}()

	catalog, err := source.Catalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(catalog.Items) == 0 {
		logger.Warn("the pool is empty, players will be told there is nothing to play")
	}

	var allowed []string
	if opts.origins != "" {
		allowed = strings.Split(opts.origins, ",")
	}

	srv := server.New(logger, catalog, server.Config{
		QuizSize:       opts.questions,
		ImagesDir:      opts.images,
		AllowedOrigins: allowed,
	})

	return srv.ListenAndServe(ctx, opts.addr)
}

// openSource picks the pool source: the sqlite database wins over a manifest
// file, which wins over the embedded manifest.
func openSource(logger *zap.SugaredLogger, opts options) (wardrobe.Source, func() error, error) {
	noop := func() error { return nil }

	switch {
	case opts.dbPath != "":
		db, err := wardrobe.OpenDBSource(logger, opts.dbPath)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case opts.manifest != "":
		src, err := wardrobe.NewFileManifestSource(logger, opts.manifest)
		if err != nil {
			return nil, nil, err
		}
		return src, noop, nil
	default:
		return wardrobe.NewDefaultManifestSource(logger), noop, nil
	}
}
