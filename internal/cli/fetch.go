package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Mario-Kart-Felix/orogene/internal/cache"
	"github.com/Mario-Kart-Felix/orogene/internal/domain"
	"github.com/Mario-Kart-Felix/orogene/internal/resolver"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <spec>...",
		Short: "Download package tarballs into the cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, cfg, err := newFetcher()
			if err != nil {
				return err
			}

			c, err := cache.New(cfg.CacheDir)
			if err != nil {
				return err
			}
			defer c.Close()

			ctx := cmd.Context()
			mu := &sync.Mutex{}
			var errs []error
			output := make([]string, len(args))

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(min(len(args), cfg.MaxParallel))

			for i, arg := range args {
				g.Go(func() error {
					line, err := fetchOne(gctx, f, c, arg)
					if err != nil {
						mu.Lock()
						errs = append(errs, fmt.Errorf("%s: %w", arg, err))
						mu.Unlock()
						return nil
					}
					output[i] = line
					return nil
				})
			}
			_ = g.Wait()

			fmt.Println()
			for _, line := range output {
				if line != "" {
					fmt.Println(line)
				}
			}
			if len(errs) > 0 {
				for _, e := range errs {
					fmt.Printf("%s %v\n", red("✗"), e)
				}
				return fmt.Errorf("failed to fetch %d package(s)", len(errs))
			}
			return nil
		},
	}
}

func fetchOne(ctx context.Context, f domain.Fetcher, c *cache.TarballCache, arg string) (string, error) {
	spec, err := domain.ParseSpec(arg)
	if err != nil {
		return "", err
	}

	stop := withSpinner(ctx, fmt.Sprintf("Resolving %s...", arg))
	packument, err := f.Packument(ctx, spec, "")
	stop()
	if err != nil {
		return "", err
	}

	pkg, err := resolver.Resolve(spec, packument)
	if err != nil {
		return "", err
	}
	res := pkg.Resolved.(domain.NpmResolution)

	if c.Has(res.Name, res.Version) {
		return fmt.Sprintf("%s %s%s%s %s", yellow("!"),
			bold(res.Name), bold("@"), bold(res.Version), dim("(cached)")), nil
	}

	body, err := f.Tarball(ctx, pkg)
	if err != nil {
		return "", err
	}
	defer body.Close()

	dst, size, err := c.Store(res.Name, res.Version, res.Tarball, res.Integrity, body)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s%s%s\n  %s %s %s", green("✓"),
		bold(res.Name), bold("@"), bold(res.Version),
		cyan("cache:"), dst, dim(fmt.Sprintf("(%d bytes)", size))), nil
}
