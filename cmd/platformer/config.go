package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

var flagResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default world config",
	Long: `Print the built-in world config as YAML, ready to copy to
~/.platformer/configs/world.yaml or ./configs/world.yaml and edit.

With --resolved, print the config that would actually be used after the
search order and --config are applied.

Examples:
  platformer config > ./configs/world.yaml
  platformer config --resolved --config ./world.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagResolved, "resolved", false, "Print the config in effect instead of the default")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagResolved {
		fmt.Print(string(config.DefaultYAML()))
		return
	}

	world, err := loadWorld()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if path := config.Path(expandHome(flagConfig)); path != "" {
		fmt.Printf("# from %s\n", path)
	}
	data, err := config.Marshal(world)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(data))
}
