package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mario-Kart-Felix/orogene/internal/cache"
	"github.com/Mario-Kart-Felix/orogene/internal/config"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the tarball cache",
	}
	cmd.AddCommand(newCacheSizeCmd(), newCacheClearCmd())
	return cmd
}

func newCacheSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Show the total size of cached tarballs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cfg, err := openCache()
			if err != nil {
				return err
			}
			defer c.Close()

			size, err := c.Size()
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n  %s %s\n", cyan("cache:"), cfg.CacheDir,
				cyan("size:"), formatBytes(size))
			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached tarballs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := openCache()
			if err != nil {
				return err
			}
			defer c.Close()

			if err := c.Clear(); err != nil {
				return err
			}
			fmt.Printf("%s cache cleared\n", green("✓"))
			return nil
		},
	}
}

func openCache() (*cache.TarballCache, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
