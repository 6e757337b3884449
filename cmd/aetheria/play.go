package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/platform/tui"
	"github.com/vovakirdan/aetheria/internal/prefs"
	"github.com/vovakirdan/aetheria/internal/session"
	"github.com/vovakirdan/aetheria/internal/storage"
)

var (
	flagPlayAvatar string
	flagPlayColor  string
	flagPlayUser   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play locally",
	Long: `Start the game in this terminal. Pick an avatar and accent color, then
explore. Choices are saved and offered again next time.

Controls:
  WASD/Arrows        - Move (hold Shift to sprint)
  E/Enter            - Interact with the artifact in range
  Esc/X              - Close the artifact panel
  Tab                - Data archive
  ?                  - Toggle help
  Ctrl+S             - Save a map screenshot
  Q/Ctrl+C           - Quit

Passing --avatar or --color saves the choice and skips selection.

Examples:
  aetheria play
  aetheria play --avatar scout
  aetheria play --color '#ccff00' --config ./my-game.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayAvatar, "avatar", "", "Avatar: mage, scout, guardian")
	playCmd.Flags().StringVar(&flagPlayColor, "color", "", "Accent color as #rrggbb")
	playCmd.Flags().StringVar(&flagPlayUser, "user", defaultUser(), "Preferences profile name")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, cat, err := loadWorld()
	if err != nil {
		exitf("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, closeStore := openPrefs(flagPlayUser)
	defer closeStore()

	skipSelect := false
	if flagPlayAvatar != "" {
		if err := store.SetAvatar(flagPlayAvatar); err != nil {
			exitf("%v", err)
		}
		skipSelect = true
	}
	if flagPlayColor != "" {
		if err := store.SetColor(flagPlayColor); err != nil {
			exitf("%v", err)
		}
		skipSelect = true
	}

	room := session.NewMemoryRoom(16)
	defer room.Close()

	runErr := tui.Run(tui.AppOptions{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
		},
		Game:       gameCfg,
		Catalog:    cat,
		Prefs:      store,
		Joiner:     room,
		SkipSelect: skipSelect,
	})
	if runErr != nil {
		closeStore()
		exitf("running game: %v", runErr)
	}
}

// openPrefs opens the preference store for user. If the database cannot be
// opened, preferences last for this run only.
func openPrefs(user string) (*prefs.Store, func()) {
	var backend prefs.Backend = prefs.NewMemoryBackend()
	closeFn := func() {}

	db, err := storage.Open(flagDBPath)
	if err != nil {
		printWarning("could not open preferences database: %v", err)
	} else {
		backend = prefs.NewSQLiteBackend(db, user)
		closeFn = func() { db.Close() }
	}

	store, err := prefs.Load(backend)
	if err != nil {
		printWarning("could not read preferences: %v", err)
	}
	return store, closeFn
}

func defaultUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
