package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packbuild/pak/internal/lifecycle"
)

var idFlags passFlags

var idCmd = &cobra.Command{
	Use:   "id [dir]",
	Short: "Print the package identity for the current configuration",
	Long: `Id computes the canonical package identity from the active options
and target settings, without running any lifecycle phase.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runID,
}

func init() {
	idFlags.register(idCmd)
	rootCmd.AddCommand(idCmd)
}

func runID(cmd *cobra.Command, args []string) error {
	r, err := loadRecipe(args)
	if err != nil {
		return err
	}
	cfg, err := idFlags.config()
	if err != nil {
		return err
	}

	pass, err := lifecycle.New(r, cfg, nil)
	if err != nil {
		return err
	}
	identity := pass.PackageID()
	fmt.Printf("%s %s\n", identity.Digest(), identity)
	return nil
}
