// Command arxivetl loads the arXiv metadata NDJSON dump into a relational
// store: a documents table keyed by arXiv id plus a normalized categories
// table. Duplicate ids are dropped across batches and across re-runs.
//
// Example:
//
//	arxivetl -input data/arxiv.jsonlines -output data/arxiv.db
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"arxivetl/internal/config"
	"arxivetl/internal/etl"
	"arxivetl/internal/metrics"
	"arxivetl/internal/metrics/datadog"
	"arxivetl/internal/metrics/prompush"

	// register all backends with the storage factory.
	// config specifies which to use but support for all is built in.
	_ "arxivetl/internal/storage/all"
)

func main() {
	var (
		inputPath         string
		outputPath        string
		batchSize         int
		storageKind       string
		dsn               string
		job               string
		resume            bool
		validate          bool
		metricsBackendFlg string
		pushGatewayURLFlg string
		datadogAddrFlg    string
	)

	flag.StringVar(&inputPath, "input", "", "path to the NDJSON metadata dump")
	flag.StringVar(&outputPath, "output", "", "destination SQLite file")
	flag.IntVar(&batchSize, "batch-size", config.DefaultBatchSize, "records per processing batch")
	flag.StringVar(&storageKind, "storage", "sqlite", "storage backend (sqlite, postgres)")
	flag.StringVar(&dsn, "dsn", "", "storage DSN (overrides -output; required for postgres)")
	flag.StringVar(&job, "job", "arxiv_load", "job name used in metrics and logs")
	flag.BoolVar(&resume, "resume", false, "allow loading into an existing destination (replay-safe)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (pushgateway, datadog, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "http://localhost:9091", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&datadogAddrFlg, "datadog-addr", "127.0.0.1:8125", "DogStatsD address")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	cfg := config.Config{
		Job:           job,
		InputPath:     inputPath,
		OutputPath:    outputPath,
		BatchSize:     batchSize,
		AllowExisting: resume,
		Storage:       config.Storage{Kind: storageKind, DSN: dsn},
	}

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		fatalf("configuration is invalid")
	}
	if validate {
		log.Printf("configuration is valid")
		os.Exit(0)
	}

	// Decide metrics backend: flag → env → default.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		b, err := prompush.NewBackend(job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: backend=%v url=%v job=%v", backendName, gwURL, job)
			metrics.SetBackend(b)
		}

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{Addr: datadogAddrFlg, Namespace: "arxivetl."})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			log.Printf("metrics: backend=%v addr=%v job=%v", backendName, datadogAddrFlg, job)
			metrics.SetBackend(b)
		}

	case "", "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	if *verbose {
		log.Printf("run: input=%s storage=%s batch_size=%d resume=%v",
			cfg.InputPath, cfg.Storage.Kind, cfg.BatchSize, resume)
	}

	sum, err := etl.Run(context.Background(), cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("loaded %d documents and %d categories from %d lines in %s (%d duplicates dropped)\n",
		sum.Documents, sum.Categories, sum.Lines, sum.Elapsed.Truncate(time.Millisecond), sum.Duplicates)
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
