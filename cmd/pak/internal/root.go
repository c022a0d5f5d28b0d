package internal

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pak",
	Short: "pak turns declarative package recipes into installed packages",
	Long: `pak drives a package recipe through its build lifecycle: version
resolution, validation, toolchain generation, build and packaging, all
delegated to the Meson build tool.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
