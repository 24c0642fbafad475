package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/apiserver"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/calendar"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/decision"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/observability/logging"
	"github.com/woodhall335/landlord-heavenv3-sub002/pkg/repository"
)

func main() {
	var (
		rulesDir       = flag.String("rules", "config/rulesets", "Directory of rule-set YAML files")
		port           = flag.Int("port", 8080, "Port for the eligibility API")
		metricsPort    = flag.Int("metrics-port", 9190, "Port for Prometheus metrics")
		holidayRefresh = flag.Duration("holiday-refresh", 24*time.Hour, "Minimum interval between holiday-feed fetches per region")
		holidayFeed    = flag.Bool("holiday-feed", true, "Refresh holiday data from the GOV.UK feed (bundled tables are used either way)")
	)
	flag.Parse()

	if _, err := logging.InitLoggerFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
	}

	if _, err := os.Stat(*rulesDir); os.IsNotExist(err) {
		logging.Fatalf("Rules directory not found: %s", *rulesDir)
	}

	repo, err := repository.Open(*rulesDir)
	if err != nil {
		logging.Fatalf("Failed to load rule sets: %v", err)
	}

	var opts []calendar.Option
	if *holidayFeed {
		opts = append(opts, calendar.WithSource(calendar.NewGOVUKSource(), *holidayRefresh))
	}
	cal := calendar.NewService(opts...)

	aggregator := decision.New(repo, cal)

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logging.Infof("Metrics listening on port %d", *metricsPort)
		if err := http.ListenAndServe(fmt.Sprintf(":%d", *metricsPort), mux); err != nil {
			logging.Errorf("Metrics server stopped: %v", err)
		}
	}()

	server := apiserver.New(aggregator, repo)
	if err := server.ListenAndServe(*port); err != nil {
		logging.Fatalf("API server stopped: %v", err)
	}
}
