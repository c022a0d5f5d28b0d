package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packbuild/pak/internal/lifecycle"
)

var buildFlags passFlags

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Build the recipe without packaging",
	Long:  `Build runs the lifecycle through the build phase, leaving the packaging step out.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildFlags.register(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	r, err := loadRecipe(args)
	if err != nil {
		return err
	}
	cfg, err := buildFlags.config()
	if err != nil {
		return err
	}

	pass, err := lifecycle.New(r, cfg, nil)
	if err != nil {
		return err
	}
	res, err := pass.RunThrough(cmd.Context(), lifecycle.PhaseBuild)
	if err != nil {
		return err
	}

	if res.BuildSkipped {
		fmt.Printf("%s/%s: build verification bypassed\n", res.Name, res.Version)
		return nil
	}
	fmt.Printf("%s/%s built\n", res.Name, res.Version)
	return nil
}
