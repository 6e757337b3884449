package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aetheria/internal/core"
	"github.com/vovakirdan/aetheria/internal/prefs"
	"github.com/vovakirdan/aetheria/internal/storage"
)

var (
	flagPrefsUser   string
	flagPrefsColor  string
	flagPrefsAvatar string
	flagPrefsAll    bool
	flagPrefsReset  bool
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or update stored preferences",
	Long: `Show the avatar and accent color stored for a user, or change them.
The same store is used by 'play' and, per SSH user, by 'serve'.

Examples:
  aetheria prefs
  aetheria prefs --user alice --avatar scout --color '#ffaa00'
  aetheria prefs --all
  aetheria prefs --user alice --reset`,
	Args: cobra.NoArgs,
	Run:  runPrefs,
}

func init() {
	prefsCmd.Flags().StringVar(&flagPrefsUser, "user", defaultUser(), "User name")
	prefsCmd.Flags().StringVar(&flagPrefsColor, "color", "", "Set accent color (#rrggbb)")
	prefsCmd.Flags().StringVar(&flagPrefsAvatar, "avatar", "", "Set avatar: mage, scout, guardian")
	prefsCmd.Flags().BoolVar(&flagPrefsAll, "all", false, "List every stored user")
	prefsCmd.Flags().BoolVar(&flagPrefsReset, "reset", false, "Delete the user's stored preferences")
}

func runPrefs(_ *cobra.Command, _ []string) {
	db, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening preferences database: %v", err)
	}
	defer db.Close()

	if flagPrefsAll {
		listAllPrefs(db)
		return
	}

	if flagPrefsReset {
		for _, k := range []string{prefs.KeyColor, prefs.KeyAvatar} {
			if err := db.DeletePreference(flagPrefsUser, k); err != nil {
				db.Close()
				exitf("%v", err)
			}
		}
	}

	store, err := prefs.Load(prefs.NewSQLiteBackend(db, flagPrefsUser))
	if err != nil {
		printWarning("%v", err)
	}
	if flagPrefsAvatar != "" {
		if err := store.SetAvatar(flagPrefsAvatar); err != nil {
			db.Close()
			exitf("%v", err)
		}
	}
	if flagPrefsColor != "" {
		if err := store.SetColor(flagPrefsColor); err != nil {
			db.Close()
			exitf("%v", err)
		}
	}

	p := store.Get()
	fmt.Printf("Preferences - %s\n\n", flagPrefsUser)
	fmt.Printf("  %-8s %s\n", "avatar", avatarName(p.Avatar))
	name := core.PaletteName(p.Color)
	if name == string(p.Color) {
		name = "custom"
	}
	fmt.Printf("  %-8s %s (%s)\n", "color", p.Color, name)
}

func listAllPrefs(db *storage.Store) {
	users, err := db.Users()
	if err != nil {
		db.Close()
		exitf("%v", err)
	}
	if len(users) == 0 {
		fmt.Println("No preferences stored yet.")
		return
	}
	for _, u := range users {
		entries, err := db.Preferences(u)
		if err != nil {
			printWarning("%s: %v", u, err)
			continue
		}
		fmt.Println(u)
		for _, e := range entries {
			fmt.Printf("  %-14s %-10s %s\n", e.Key, e.Value, e.UpdatedAt.Format("2006-01-02 15:04"))
		}
	}
}

func avatarName(kind core.AvatarKind) string {
	for _, a := range core.Avatars {
		if a.Kind == kind {
			return fmt.Sprintf("%s (%s)", kind, a.Name)
		}
	}
	return string(kind)
}
