package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mario-Kart-Felix/orogene/internal/domain"
	"github.com/Mario-Kart-Felix/orogene/internal/resolver"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <spec>...",
		Short: "Pin specs to concrete versions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, _, err := newFetcher()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var failed int
			for _, arg := range args {
				spec, err := domain.ParseSpec(arg)
				if err != nil {
					fmt.Printf("%s %s: %v\n", red("✗"), arg, err)
					failed++
					continue
				}

				packument, err := f.Packument(ctx, spec, "")
				if err != nil {
					fmt.Printf("%s %s: %v\n", red("✗"), arg, err)
					failed++
					continue
				}

				pkg, err := resolver.Resolve(spec, packument)
				if err != nil {
					fmt.Printf("%s %s: %v\n", red("✗"), arg, err)
					failed++
					continue
				}

				res := pkg.Resolved.(domain.NpmResolution)
				fmt.Printf("%s %s%s%s\n  %s %s\n", green("✓"),
					bold(pkg.Name), bold("@"), bold(res.Version),
					cyan("tarball:"), res.Tarball)
			}

			if failed > 0 {
				return fmt.Errorf("failed to resolve %d spec(s)", failed)
			}
			return nil
		},
	}
}
