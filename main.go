/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	releaseVersion = "0.1.0"
)

func main() {
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).ExecuteContext(ctx))
}

func run(ctx context.Context, cfg *Config) error {
	timeZone := os.Getenv("TZ")
	if timeZone != "" {
		loc, err := time.LoadLocation(timeZone)
		if err != nil {
			return err
		}
		time.Local = loc
	}

	words, err := loadWords(cfg.wordList)
	if err != nil {
		return err
	}

	// Panics here, at startup, if the card layout cannot fill the grid.
	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))
	_ = generateBoard(rng, words)

	logf(cfg, "START: telnames v%s (%d words)", releaseVersion, len(words))

	hub := newHub(cfg, newServer(cfg, words, rng))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.run(ctx)
		return nil
	})

	g.Go(func() error {
		return ServeTelnet(ctx, cfg, hub)
	})

	if cfg.httpPort != 0 {
		g.Go(func() error {
			return ServePage(ctx, cfg, hub)
		})
	}

	return g.Wait()
}
