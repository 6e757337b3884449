package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aetheria/internal/catalog"
)

var flagArtifactsLong bool

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "List the artifact catalog",
	Long: `Shows every artifact in the catalog. Use --catalog to check a custom
catalog file: it is validated against the catalog schema before listing.`,
	Args: cobra.NoArgs,
	Run:  runArtifacts,
}

func init() {
	artifactsCmd.Flags().BoolVarP(&flagArtifactsLong, "long", "l", false, "Show descriptions and tech stacks")
}

func runArtifacts(_ *cobra.Command, _ []string) {
	cat, err := catalog.Load(flagCatalog)
	if err != nil {
		exitf("%v", err)
	}

	if cat.Len() == 0 {
		fmt.Println("No artifacts in the catalog.")
		return
	}

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, a := range cat.All() {
		maxIDLen = max(maxIDLen, len(a.ID))
		maxTitleLen = max(maxTitleLen, len(a.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-20s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Position", "Color")
	fmt.Printf("  %-*s  %-*s  %-20s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "--------", "-----")

	for _, a := range cat.All() {
		pos := fmt.Sprintf("(%.1f, %.1f, %.1f)", a.Position.X, a.Position.Y, a.Position.Z)
		fmt.Printf("  %-*s  %-*s  %-20s  %s\n", maxIDLen, a.ID, maxTitleLen, a.Title, pos, a.Color)
		if flagArtifactsLong {
			printDetail(a)
		}
	}

	fmt.Println()
	fmt.Printf("%d artifacts. Run 'aetheria play' to explore.\n", cat.Len())
}

func printDetail(a catalog.Artifact) {
	indent := "      "
	if a.Description != "" {
		fmt.Printf("%s%s\n", indent, a.Description)
	}
	if len(a.TechStack) > 0 {
		fmt.Printf("%sstack: %s\n", indent, strings.Join(a.TechStack, ", "))
	}
	if a.Link != "" {
		fmt.Printf("%slink:  %s\n", indent, a.Link)
	}
}
