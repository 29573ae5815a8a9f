package cli

import (
	"github.com/spf13/cobra"

	"github.com/Mario-Kart-Felix/orogene/internal/client"
	"github.com/Mario-Kart-Felix/orogene/internal/config"
	"github.com/Mario-Kart-Felix/orogene/internal/fetcher"
	"github.com/Mario-Kart-Felix/orogene/internal/registry"
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:           "oro",
		Short:         "Resolve and fetch npm packages",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.AddCommand(
		newViewCmd(),
		newResolveCmd(),
		newFetchCmd(),
		newPackCmd(),
		newCacheCmd(),
		newVersionCmd(),
	)
	return rootCmd.Execute()
}

func newFetcher() (*fetcher.NpmFetcher, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	router, err := registry.NewRouter(cfg.RegistryTable())
	if err != nil {
		return nil, nil, err
	}

	c := client.New(client.WithUserAgent("oro"))
	return fetcher.New(c, cfg.Corgi, router), cfg, nil
}
