package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/corpusio/newsline/internal/menu"
	"github.com/corpusio/newsline/pkg/newsline"
	"github.com/corpusio/newsline/pkg/newsline/config"
	"github.com/corpusio/newsline/pkg/newsline/internalerr"
	"github.com/corpusio/newsline/pkg/newsline/store"
	mongostore "github.com/corpusio/newsline/pkg/newsline/store/mongo"
	sqlitestore "github.com/corpusio/newsline/pkg/newsline/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		backend    = flag.String("store", "", "Store backend: mongo or sqlite (overrides config)")
		mongoURI   = flag.String("uri", "", "MongoDB URI (overrides config)")
		sqlitePath = flag.String("sqlite", "", "SQLite database path (overrides config)")
		topN       = flag.Int("topn", 0, "Ranked-result cutoff (overrides config)")
		year       = flag.Int("year", 2015, "Calendar year for the top-sources query")
	)
	flag.Parse()

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
	if *topN > 0 {
		cfg.Query.TopN = *topN
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open store: ", err)
	}

	if checker, ok := st.(interface {
		HasData(context.Context) (bool, error)
	}); ok {
		if loaded, err := checker.HasData(ctx); err == nil && !loaded {
			fmt.Println("No articles loaded yet. Run load-articles first.")
		}
	}

	engine := newsline.New(newsline.Options{Store: st, TopN: cfg.Query.TopN})
	defer engine.Close()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		menu.Print(os.Stdout)
		choice, ok := prompt(scanner, "\nEnter a choice between 1 and 5: ")
		if !ok {
			break
		}

		switch choice {
		case "1":
			runCommonWords(ctx, engine, scanner)
		case "2":
			runCompareDay(ctx, engine, scanner)
		case "3":
			runTopSources(ctx, engine, *year)
		case "4":
			runRecentBySource(ctx, engine, scanner)
		case "5":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Please enter a number between 1 and 5.")
		}
	}
}

func runCommonWords(ctx context.Context, engine *newsline.Engine, scanner *bufio.Scanner) {
	mediaType, ok := prompt(scanner, "Enter media type (news/blog): ")
	if !ok {
		return
	}
	entries, err := engine.CommonWords(ctx, mediaType)
	if reportErr(err, "Media type must be a plain word like 'news' or 'blog'.") {
		return
	}
	menu.Words(os.Stdout, strings.ToLower(mediaType), entries)
}

func runCompareDay(ctx context.Context, engine *newsline.Engine, scanner *bufio.Scanner) {
	day, ok := prompt(scanner, "Enter date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	cmp, err := engine.CompareDay(ctx, day)
	if reportErr(err, "Date must use the YYYY-MM-DD format.") {
		return
	}
	menu.Comparison(os.Stdout, cmp)
}

func runTopSources(ctx context.Context, engine *newsline.Engine, year int) {
	entries, err := engine.TopSources(ctx, year)
	if reportErr(err, "") {
		return
	}
	menu.Sources(os.Stdout, year, entries)
}

func runRecentBySource(ctx context.Context, engine *newsline.Engine, scanner *bufio.Scanner) {
	source, ok := prompt(scanner, "Enter source name: ")
	if !ok {
		return
	}
	articles, err := engine.RecentBySource(ctx, source)
	if reportErr(err, "Source name must contain at least one letter or digit.") {
		return
	}
	menu.Recent(os.Stdout, source, articles)
}

// prompt reads one trimmed input line; ok is false on EOF.
func prompt(scanner *bufio.Scanner, text string) (string, bool) {
	fmt.Print(text)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// reportErr prints errors and reports whether one occurred. Sanitizer
// rejections get the friendly hint; store failures get the raw error.
func reportErr(err error, hint string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, internalerr.ErrInvalidInput) && hint != "" {
		fmt.Println(hint)
		return true
	}
	fmt.Println("Error:", err)
	return true
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
