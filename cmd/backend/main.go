package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

func main() {
	defaults := DefaultConfig()
	addr := flag.String("addr", ":8080", "listen address")
	depth := flag.Int("depth", defaults.AiDepth, "AI search depth in plies")
	ttSize := flag.Uint64("tt-size", defaults.AiTtSize, "transposition table slots")
	logStats := flag.Bool("log-stats", false, "log search statistics after every AI move")
	flag.Parse()

	config := defaults
	config.AiDepth = *depth
	config.AiTtSize = *ttSize
	config.AiLogSearchStats = *logStats

	if err := run(*addr, NewConfigStore(config)); err != nil {
		log.Printf("[backend] exiting after server error: %v", err)
		os.Exit(1)
	}
}

func run(addr string, configs *ConfigStore) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller := NewGameController(DefaultGameSettings(), configs)
	hub := NewHub()
	server := &http.Server{
		Addr:    addr,
		Handler: newRouter(controller, hub),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(ctx)
	})
	g.Go(func() error {
		return tickGames(ctx, controller, hub)
	})
	g.Go(func() error {
		log.Printf("[backend] listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("[backend] shutting down: %v", context.Cause(ctx))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[backend] graceful shutdown failed: %v", err)
			if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
				log.Printf("[backend] forced close failed: %v", closeErr)
			}
		}
		return nil
	})
	return g.Wait()
}

// tickGames lets AI players move and pushes the result to websocket clients.
func tickGames(ctx context.Context, controller *GameController, hub *Hub) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if !controller.Tick() || !hub.HasClients() {
				continue
			}
			if entry, ok := controller.LatestHistoryEntry(); ok {
				hub.Publish("history", historyPayload{History: []historyEntryDTO{historyEntryToDTO(entry)}})
			}
			hub.Publish("status", controllerStatus(controller))
		}
	}
}
