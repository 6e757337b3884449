package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aetheria/internal/config"
	"github.com/vovakirdan/aetheria/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSSHDBPath   string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Aetheria SSH server",
	Long: `Start an SSH server that lets users connect and explore together.

Every SSH connection is a player in one shared room: players see each other
move in real time. Preferences are stored per SSH user name.

Flag defaults can be set with environment variables:
  AETHERIA_SSH_ADDR, AETHERIA_HOST_KEY, AETHERIA_DB, AETHERIA_IDLE_TIMEOUT

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.aetheria/host_key

Examples:
  aetheria serve                           # Listen on :23234 with auto-generated key
  aetheria serve --ssh :2222               # Listen on port 2222
  aetheria serve --host-key ./my_host_key  # Use specific host key
  aetheria serve --idle-timeout 10m

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	env, err := config.LoadServerEnv()
	if err != nil {
		printWarning("%v", err)
		d := tui.DefaultSSHServerConfig()
		env = config.ServerEnv{Addr: d.Address, DBPath: d.DBPath, IdleTimeout: d.IdleTimeout}
	}

	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", env.Addr, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", env.HostKeyPath, "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagSSHDBPath, "db", env.DBPath, "Path to preferences database")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", env.IdleTimeout, "Idle time before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	gameCfg, cat, err := loadWorld()
	if err != nil {
		exitf("%v", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagSSHDBPath,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagFPS,
		Game:        gameCfg,
		Catalog:     cat,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		exitf("creating server: %v", err)
	}

	fmt.Printf("Starting Aetheria SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}

func printWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
