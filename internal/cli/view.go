package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Mario-Kart-Felix/orogene/internal/domain"
)

func newViewCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "view <spec>",
		Short: "Show registry metadata for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := domain.ParseSpec(args[0])
			if err != nil {
				return err
			}

			f, _, err := newFetcher()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			stop := withSpinner(ctx, fmt.Sprintf("Fetching %s...", args[0]))
			packument, err := f.Packument(ctx, spec, "")
			stop()
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(packument, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("%s\n", bold(packument.Name))
			if latest, ok := packument.DistTags["latest"]; ok {
				fmt.Printf("  %s %s\n", cyan("latest:"), latest)
			}
			fmt.Printf("  %s %d\n", cyan("versions:"), len(packument.Versions))

			tags := make([]string, 0, len(packument.DistTags))
			for tag := range packument.DistTags {
				tags = append(tags, tag)
			}
			sort.Strings(tags)
			for _, tag := range tags {
				if tag == "latest" {
					continue
				}
				fmt.Printf("  %s %s -> %s\n", dim("tag:"), tag, packument.DistTags[tag])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw packument as JSON")
	return cmd
}
