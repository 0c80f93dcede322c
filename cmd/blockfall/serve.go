package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the blockfall SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with a mode picker menu and
its own game. Every connection is written to the session log.

Settings can also come from the environment: BLOCKFALL_SSH_ADDR,
BLOCKFALL_HOST_KEY, BLOCKFALL_DB, BLOCKFALL_IDLE_TIMEOUT (e.g. 45m),
BLOCKFALL_CONFIG and BLOCKFALL_DIFFICULTY. Flags win over the environment.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.blockfall/host_key

Examples:
  blockfall serve                           # Listen on :23234 with auto-generated key
  blockfall serve --ssh :2222               # Listen on port 2222
  blockfall serve --host-key ./my_host_key  # Use specific host key
  blockfall serve --difficulty hard         # Every player gets the hard preset

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger, closeLog := mustLogger(false)
	defer closeLog()

	cfg, err := serverConfig(cmd.Flags())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting blockfall SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// serverConfig starts from the BLOCKFALL_* environment and applies every
// flag set on the command line.
func serverConfig(flags *pflag.FlagSet) (tui.SSHServerConfig, error) {
	envCfg, err := config.LoadServerEnv()
	if err != nil {
		return tui.SSHServerConfig{}, err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = envCfg.Address
	cfg.HostKeyPath = envCfg.HostKeyPath
	cfg.DBPath = envCfg.DBPath
	cfg.IdleTimeout = envCfg.IdleTimeout
	cfg.ConfigPath = envCfg.ConfigPath
	cfg.Difficulty = envCfg.Difficulty
	cfg.TickRate = flagFPS

	if flags.Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("config") {
		cfg.ConfigPath = flagConfig
	}
	if flags.Changed("difficulty") {
		cfg.Difficulty = flagDifficulty
	}
	return cfg, nil
}
