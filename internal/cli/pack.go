package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mario-Kart-Felix/orogene/internal/pack"
)

func newPackCmd() *cobra.Command {
	var output string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "pack [dir]",
		Short: "Create a publishable tarball from a package directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			project, err := pack.Load(dir)
			if err != nil {
				return err
			}

			paths, err := project.Paths()
			if err != nil {
				return err
			}

			if dryRun {
				for _, p := range paths {
					fmt.Println(p)
				}
				return nil
			}

			if output == "" {
				output = fmt.Sprintf("%s-%s.tgz", project.Name(), project.Version())
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := project.Tarball(f); err != nil {
				return err
			}

			fmt.Printf("%s %s %s\n", green("✓"), bold(output),
				dim(fmt.Sprintf("(%d files)", len(paths))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output tarball path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the files without writing an archive")
	return cmd
}
