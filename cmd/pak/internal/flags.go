package internal

import (
	"fmt"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/packbuild/pak/internal/lifecycle"
	"github.com/packbuild/pak/recipe"
)

// passFlags collects the flags shared by every command that configures a
// lifecycle pass.
type passFlags struct {
	options      []string
	osName       string
	arch         string
	compiler     string
	cppstd       int
	buildType    string
	managerMajor int
	skipBuild    bool
	verbose      bool
}

func (f *passFlags) register(cmd *cobra.Command) {
	host := recipe.HostPlatform()
	cmd.Flags().StringArrayVarP(&f.options, "option", "o", nil, "Option override, name=value (repeatable)")
	cmd.Flags().StringVar(&f.osName, "os", host.OS, "Target operating system")
	cmd.Flags().StringVar(&f.arch, "arch", host.Arch, "Target CPU architecture")
	cmd.Flags().StringVar(&f.compiler, "compiler", host.Compiler, "Target compiler")
	cmd.Flags().IntVar(&f.cppstd, "cppstd", 0, "Effective C++ standard (0 uses the compiler default)")
	cmd.Flags().StringVar(&f.buildType, "build-type", host.BuildType, "Build type")
	cmd.Flags().IntVar(&f.managerMajor, "manager-version", 2, "Host package manager major version")
	cmd.Flags().BoolVar(&f.skipBuild, "skip-build", false, "Bypass build verification")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose output")
}

func (f *passFlags) platform() recipe.Platform {
	return recipe.Platform{
		OS:        f.osName,
		Arch:      f.arch,
		Compiler:  f.compiler,
		Cppstd:    f.cppstd,
		BuildType: f.buildType,
	}
}

func (f *passFlags) config() (lifecycle.Config, error) {
	if f.verbose {
		log.SetOutputLevel(log.Ldebug)
	} else {
		log.SetOutputLevel(log.Lwarn)
	}
	overrides, err := recipe.ParseOverrides(f.options)
	if err != nil {
		return lifecycle.Config{}, err
	}
	return lifecycle.Config{
		Platform:     f.platform(),
		Overrides:    overrides,
		ManagerMajor: f.managerMajor,
		SkipBuild:    f.skipBuild,
	}, nil
}

// recipeDir returns the recipe directory from positional args, defaulting
// to the current directory.
func recipeDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

func loadRecipe(args []string) (*recipe.Recipe, error) {
	r, err := recipe.Load(recipeDir(args))
	if err != nil {
		return nil, fmt.Errorf("no recipe found in %s: %w", recipeDir(args), err)
	}
	return r, nil
}
