package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mario-Kart-Felix/orogene/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the oro version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Version)
		},
	}
}
