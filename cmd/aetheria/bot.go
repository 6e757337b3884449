package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/aetheria/internal/catalog"
	"github.com/vovakirdan/aetheria/internal/game"
	"github.com/vovakirdan/aetheria/internal/session"
)

var flagBotVerbose bool

var botCmd = &cobra.Command{
	Use:   "bot [artifact-id...]",
	Short: "Run a headless scripted playthrough",
	Long: `Walk a bot from the spawn point to each artifact, interact with it, and
print what it recovered. With no arguments every artifact is visited in
catalog order.

The bot runs on a simulated clock at --fps, so the result does not depend
on wall time.

Examples:
  aetheria bot
  aetheria bot 3 1
  aetheria bot --catalog ./artifacts.yaml -v`,
	Run: runBot,
}

func init() {
	botCmd.Flags().BoolVarP(&flagBotVerbose, "verbose", "v", false, "Log every bot step")
}

func runBot(_ *cobra.Command, args []string) {
	gameCfg, cat, err := loadWorld()
	if err != nil {
		exitf("%v", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "aetheria-bot",
	})
	if flagBotVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	clock := game.NewFrameClock()
	world := game.NewWorld(game.Options{
		Config:  gameCfg,
		Catalog: cat,
		Clock:   clock,
		Logger:  logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	room := session.NewMemoryRoom(16)
	defer room.Close()
	world.Connect(ctx, room)

	var targets []catalog.ArtifactID
	for _, a := range args {
		targets = append(targets, catalog.ArtifactID(a))
	}

	bot := game.NewBot(world, clock, flagFPS, logger)
	report, err := bot.Run(ctx, targets)

	fmt.Println("Visits:")
	for _, v := range report.Visits {
		fmt.Printf("  %s\n", v)
	}
	fmt.Println()

	final := report.Final.Progress
	fmt.Printf("Frames:       %d (%.1fs simulated)\n", report.Frames, float64(report.Frames)/float64(max(flagFPS, 1)))
	fmt.Printf("XP:           %d\n", final.XP)
	fmt.Printf("Level:        %d\n", final.Level)
	fmt.Printf("Recovered:    %d/%d\n", len(final.Discovered), cat.Len())
	achievements := "none"
	if len(final.Achievements) > 0 {
		achievements = strings.Join(final.Achievements, ", ")
	}
	fmt.Printf("Achievements: %s\n", achievements)

	if err != nil {
		exitf("bot: %v", err)
	}
}
