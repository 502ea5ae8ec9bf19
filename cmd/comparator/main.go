package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"supermarket-comparator/internal/catalog"
	"supermarket-comparator/internal/common/config"
	"supermarket-comparator/internal/common/database"
	"supermarket-comparator/internal/common/events"
	"supermarket-comparator/internal/common/logger"
	"supermarket-comparator/internal/common/observability"
	"supermarket-comparator/internal/compare"
	"supermarket-comparator/internal/geo"
	"supermarket-comparator/internal/list"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	var (
		listText  = flag.String("list", "", "comma/newline-separated product queries")
		listFile  = flag.String("list-file", "", "file with one product query per line")
		lat       = flag.Float64("lat", 0, "user latitude")
		lng       = flag.Float64("lng", 0, "user longitude")
		hasCoords = flag.Bool("coords", false, "use -lat/-lng as the user location")
		format    = flag.String("format", "txt", "export format: txt, csv or json")
		showSplit = flag.Bool("split", false, "also print the best 1-2 store combination")
		showStats = flag.Bool("stats", false, "also print detailed statistics as JSON")
	)
	flag.Parse()

	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log = logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if cfg.Server.MetricsEnabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Server.MetricsAddress, nil); err != nil {
				zapLog.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	ctx := context.Background()

	source, cleanup, err := buildCatalogSource(ctx, cfg, zapLog, log)
	if err != nil {
		zapLog.Fatal("catalog source setup failed", zap.Error(err))
	}
	defer cleanup()

	cat, err := source.Load(ctx)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}

	bus := events.NewBus()
	manager := list.NewManager(cat, bus, log)

	input := *listText
	if *listFile != "" {
		data, err := os.ReadFile(*listFile)
		if err != nil {
			zapLog.Fatal("list file read failed", zap.Error(err))
		}
		input = string(data)
	}
	if strings.TrimSpace(input) == "" {
		zapLog.Fatal("no shopping list given, use -list or -list-file")
	}

	added, notFound := manager.AddMany(input)
	for _, query := range notFound {
		fmt.Fprintf(os.Stderr, "not found: %s\n", query)
	}
	if added == 0 {
		zapLog.Fatal("no queries matched any catalog product")
	}

	var userLoc *geo.Coordinate
	if *hasCoords {
		userLoc = &geo.Coordinate{Lat: *lat, Lng: *lng}
	}

	weights := compare.Weights{
		Price:        cfg.Comparison.Weights.Price,
		Availability: cfg.Comparison.Weights.Availability,
		Distance:     cfg.Comparison.Weights.Distance,
	}

	engine := compare.NewEngine(cat, weights, geo.Mode(cfg.Comparison.TravelMode), bus, obs, log)

	outcome, err := engine.Compare(ctx, manager.Items(), userLoc)
	if err != nil {
		zapLog.Fatal("comparison failed", zap.Error(err))
	}

	rendered, err := compare.Export(outcome, *format)
	if err != nil {
		zapLog.Fatal("export failed", zap.Error(err))
	}
	fmt.Print(rendered)

	if *showSplit {
		printCombination(engine.OptimalCombination(outcome))
	}

	if *showStats {
		stats := engine.DetailedStats(outcome)
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			zapLog.Fatal("stats encoding failed", zap.Error(err))
		}
		fmt.Println(string(data))
	}
}

func printCombination(combo *compare.Combination) {
	if combo == nil {
		fmt.Println("No viable store combination found.")
		return
	}
	fmt.Printf("Best combination: %s\n", strings.Join(combo.Markets, " + "))
	fmt.Printf("  total %.2f, coverage %.0f%%, distance %.1fkm (%s)\n",
		combo.Total, combo.Coverage, combo.Distance, combo.TravelTime)
	for market, items := range combo.Allocation {
		if len(items) == 0 {
			continue
		}
		fmt.Printf("  buy at %s:\n", market)
		for _, item := range items {
			fmt.Printf("    %s x%d\n", item.Name, item.Quantity)
		}
	}
}

// buildCatalogSource stacks sources per configuration: base file or postgres
// repository, optional redis cache-aside layer, always an in-process TTL
// layer on top.
func buildCatalogSource(ctx context.Context, cfg *config.Config, zapLog *zap.Logger, log logger.Logger) (catalog.Source, func(), error) {
	cleanup := func() {}
	var base catalog.Source

	switch cfg.Catalog.Source {
	case "postgres":
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Postgres connection")
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { pg.Close() }
		base = catalog.NewPostgresRepository(pg.GetDB(), log)
	default:
		base = catalog.NewFileSource(cfg.Catalog.FilePath, log)
	}

	if cfg.Catalog.RedisEnabled {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, cleanup, err
		}
		if err := retryWithBackoff(func() error {
			return rdb.Ping(ctx)
		}, 5, time.Second, zapLog, "Redis connection"); err != nil {
			return nil, cleanup, err
		}
		prev := cleanup
		cleanup = func() { rdb.Close(); prev() }
		base = catalog.NewRedisSource(base, rdb.GetClient(), time.Duration(cfg.Catalog.CacheTTL)*time.Second, log)
	}

	base = catalog.NewLocalSource(base, time.Duration(cfg.Catalog.LocalTTL)*time.Second)
	return base, cleanup, nil
}
