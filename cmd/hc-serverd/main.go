// Command hc-serverd boots the governance engine's HTTP/JSON-RPC surface:
// loads config, opens the Bolt persistence journal, wires the Prometheus
// collectors and structured logger, and serves until a shutdown signal
// arrives. Grounded on the teacher's services/governd/main.go wiring order
// (config -> dependencies -> listener -> signal-driven graceful stop).
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"hcgov/config"
	"hcgov/hcengine"
	"hcgov/observability/logging"
	"hcgov/observability/metrics"
	"hcgov/rpc"
	"hcgov/store/boltstore"
	"hcgov/tokenledger"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "hcgov.toml", "path to hc-serverd config")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("HCGOV_ENV"))
	logger := logging.Setup("hc-serverd", env)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	proposalStore, journal, err := boltstore.Load(cfg.DataDir + "/hcgov.db")
	if err != nil {
		log.Fatalf("open persistence journal: %v", err)
	}
	defer journal.Close()

	collectors := metrics.NewCollectors(prometheus.DefaultRegisterer)

	// Reference in-memory token ledgers stand in for whatever concrete
	// fungible-token ledger a deployment wires in; the engine only ever
	// depends on the TokenLedger capability interface (spec.md §4.B).
	voteToken := tokenledger.NewInMemory()
	stakeToken := tokenledger.NewInMemory()

	engine, err := hcengine.NewEngine(voteToken, stakeToken, cfg.Global,
		hcengine.WithStore(proposalStore),
		hcengine.WithAuditSink(journal),
		hcengine.WithMetrics(collectors),
		hcengine.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("construct engine: %v", err)
	}

	server := rpc.NewServer(engine, logger)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: server.Router(),
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("hc-serverd listening", "address", cfg.ListenAddress)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("forced shutdown", "error", err)
		}
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve http: %v", err)
		}
	}
}
