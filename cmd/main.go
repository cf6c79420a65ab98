package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/catena/api"
	"github.com/luca-patrignani/catena/consensus"
	"github.com/luca-patrignani/catena/ledger"
	"github.com/luca-patrignani/catena/network"
	"github.com/luca-patrignani/catena/node"
)

func main() {
	host := flag.String("host", "0.0.0.0", "interface to listen on")
	port := flag.Int("port", 5000, "port to listen on")
	difficulty := flag.Int("difficulty", consensus.DefaultDifficulty, "leading zero hex characters a proof digest must have")
	peers := flag.String("peers", "", "comma-separated peer addresses to register at startup")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	flag.Parse()

	level, err := logLevelFromFlag(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Create a new slog handler with the default PTerm logger
	pterm.DefaultLogger.Level = level
	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)

	// Create a new slog logger with the handler
	logger := slog.New(handler)

	renderBanner()

	identity, err := node.NewIdentity()
	if err != nil {
		logger.Error("failed to generate node identity", "err", err)
		os.Exit(1)
	}

	blockchain := ledger.New()
	pow := consensus.NewProofOfWork(*difficulty)
	resolver := consensus.NewResolver(blockchain, network.NewClient(), consensus.NewValidator(pow), consensus.WithLogger(logger))
	n := node.New(identity, blockchain, pow, resolver, logger)

	seeds := splitPeerList(*peers)
	for i, seed := range seeds {
		seeds[i] = completePeerAddress(seed, *port)
	}
	if _, err := n.RegisterPeers(seeds); err != nil {
		logger.Error("failed to register seed peer", "err", err)
		os.Exit(1)
	}

	listenAddr := net.JoinHostPort(*host, strconv.Itoa(*port))
	server := api.NewServer(n, listenAddr, logger)

	printStartupSummary(n, listenAddr, *difficulty)

	errs := make(chan error, 1)
	go func() {
		errs <- server.Start()
	}()

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errs:
		if err != nil {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	case s := <-signals:
		logger.Info("shutdown signal received", "signal", s.String())
		ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "err", err)
			os.Exit(1)
		}
	}
	logger.Info("shutdown complete")
}

// logLevelFromFlag maps the -log-level flag onto a pterm log level.
func logLevelFromFlag(value string) (pterm.LogLevel, error) {
	switch strings.ToLower(value) {
	case "debug":
		return pterm.LogLevelDebug, nil
	case "info":
		return pterm.LogLevelInfo, nil
	case "warn":
		return pterm.LogLevelWarn, nil
	case "error":
		return pterm.LogLevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", value)
}
