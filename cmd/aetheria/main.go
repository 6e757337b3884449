// aetheria is a terminal exploration game: walk a small world, recover data
// artifacts, level up, and see other players in a shared room.
//
// Usage:
//
//	aetheria play            - Play locally in the terminal
//	aetheria serve           - Start SSH server for shared-room play
//	aetheria bot             - Run a headless scripted playthrough
//	aetheria artifacts       - List the artifact catalog
//	aetheria prefs           - Show or update stored preferences
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--db <path>        - Set database path (default: ~/.aetheria/aetheria.db)
//	--config <path>    - Game tuning YAML
//	--catalog <path>   - Artifact catalog YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagConfig  string
	flagCatalog string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "aetheria",
	Short: "Aetheria - explore a world of data artifacts in your terminal",
	Long: `Aetheria is a small exploration game. Walk the void, stand next to an
artifact and interact with it to recover its data. Every recovery earns XP;
recovering enough of the catalog unlocks achievements.

Available commands:
  play       - Play locally
  serve      - Host a shared room over SSH
  bot        - Headless scripted playthrough
  artifacts  - List the artifact catalog
  prefs      - Show or update stored preferences

Examples:
  aetheria play
  aetheria play --avatar scout --color '#ff0055'
  aetheria serve --ssh :2222
  aetheria bot 1 3
  aetheria prefs --user alice --avatar guardian`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.aetheria/aetheria.db", "Path to preferences database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to custom artifact catalog YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(artifactsCmd)
	rootCmd.AddCommand(prefsCmd)
}

// loadWorld loads game tuning and the artifact catalog from the global flags.
func loadWorld() (config.GameConfig, *catalog.Catalog, error) {
	cfg, err := config.LoadGame(flagConfig)
	if err != nil {
		return config.GameConfig{}, nil, err
	}
	cat, err := catalog.Load(flagCatalog)
	if err != nil {
		return config.GameConfig{}, nil, err
	}
	return cfg, cat, nil
}

// exitf prints an error and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
