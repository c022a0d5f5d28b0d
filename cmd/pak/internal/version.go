package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/packbuild/pak/internal/version"
)

var versionManagerMajor int

var versionCmd = &cobra.Command{
	Use:   "version [dir]",
	Short: "Print the resolved recipe version",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().IntVar(&versionManagerMajor, "manager-version", 2, "Host package manager major version")
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	r, err := loadRecipe(args)
	if err != nil {
		return err
	}
	ver, err := version.Resolve(r, versionManagerMajor)
	if err != nil {
		return err
	}
	fmt.Println(ver)
	return nil
}
