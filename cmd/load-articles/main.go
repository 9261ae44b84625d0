package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/corpusio/newsline/pkg/newsline"
	"github.com/corpusio/newsline/pkg/newsline/config"
	"github.com/corpusio/newsline/pkg/newsline/store"
	mongostore "github.com/corpusio/newsline/pkg/newsline/store/mongo"
	sqlitestore "github.com/corpusio/newsline/pkg/newsline/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		dataPath   = flag.String("data", "", "Input line-delimited JSON file (required)")
		backend    = flag.String("store", "", "Store backend: mongo or sqlite (overrides config)")
		mongoURI   = flag.String("uri", "", "MongoDB URI (overrides config)")
		sqlitePath = flag.String("sqlite", "", "SQLite database path (overrides config)")
		batchSize  = flag.Int("batch", 0, "Insert batch size (overrides config)")
	)
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("--data required")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal("Failed to load configuration: ", err)
		}
	}
	if *backend != "" {
		cfg.Store.Backend = *backend
	}
	if *mongoURI != "" {
		cfg.Store.Mongo.URI = *mongoURI
	}
	if *sqlitePath != "" {
		cfg.Store.SQLite.Path = *sqlitePath
	}
	if *batchSize > 0 {
		cfg.Ingest.BatchSize = *batchSize
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open store: ", err)
	}

	engine := newsline.New(newsline.Options{
		Store:     st,
		BatchSize: cfg.Ingest.BatchSize,
		TopN:      cfg.Query.TopN,
	})
	defer engine.Close()

	f, err := os.Open(*dataPath)
	if err != nil {
		log.Fatal("Failed to open input: ", err)
	}
	defer f.Close()

	log.Printf("Loading %s (batch size %d, %s backend)", *dataPath, cfg.Ingest.BatchSize, cfg.Store.Backend)
	start := time.Now()

	report, err := engine.Load(ctx, f)

	log.Printf("Lines read: %d", report.LinesRead)
	log.Printf("Accepted:   %d", report.Accepted)
	log.Printf("Rejected:   %d", report.Rejected)
	for _, reason := range sortedReasons(report.Reasons) {
		log.Printf("  %s: %d", reason, report.Reasons[reason])
	}
	log.Printf("Committed:  %d documents in %d batches (%v)", report.Committed, report.Batches, time.Since(start).Round(time.Millisecond))

	if err != nil {
		log.Fatal("Load failed: ", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "mongo":
		return mongostore.Open(ctx, cfg.Store.Mongo.URI, cfg.Store.Mongo.Database, cfg.Store.Mongo.Collection)
	case "sqlite":
		return sqlitestore.Open(ctx, cfg.Store.SQLite.Path)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func sortedReasons(reasons map[string]int) []string {
	keys := make([]string, 0, len(reasons))
	for k := range reasons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
