// Command invalidate announces a catalog change so running API instances
// drop their cached responses.
//
//	invalidate -resource films -resource actors -reason "nightly import"
//
// Without -resource every cached response is dropped.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iliyamo/film-rental-api/internal/config"
	"github.com/iliyamo/film-rental-api/internal/logger"
	"github.com/iliyamo/film-rental-api/internal/queue"
)

// resourceList collects repeated -resource flags; comma lists also work.
type resourceList []string

func (r *resourceList) String() string { return strings.Join(*r, ",") }

func (r *resourceList) Set(v string) error {
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*r = append(*r, s)
		}
	}
	return nil
}

func main() {
	var resources resourceList
	flag.Var(&resources, "resource", "resource to invalidate (films, rentals, stores, actors, categories, languages); repeatable")
	reason := flag.String("reason", "", "free-form reason recorded in the consumer log")
	timeout := flag.Duration("timeout", 10*time.Second, "publish timeout")
	flag.Parse()

	log := logger.New(os.Getenv("LOG_LEVEL"), false).Named("invalidate")
	cfg := config.LoadInvalidationConfig()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ev := queue.CatalogChangedEvent{Resources: resources, Reason: *reason}
	if err := queue.PublishCatalogChanged(ctx, cfg.URL, cfg.Queue, ev); err != nil {
		log.Error("publish failed", "error", err)
		os.Exit(1)
	}
	target := "all resources"
	if len(resources) > 0 {
		target = resources.String()
	}
	fmt.Printf("published catalog change for %s to %s\n", target, cfg.Queue)
}
