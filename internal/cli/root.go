// Package cli implements the billsplit command line client.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"billsplit/internal/collab"
	"billsplit/internal/config"
	"billsplit/internal/coordinator"
	"billsplit/internal/roster"
	"billsplit/internal/session"
)

var rootCmdFlags struct {
	Yes bool
}

var rootCmd = &cobra.Command{
	Use:           "billsplit",
	Short:         "Split shared bills and track who has paid",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootCmdFlags.Yes, "yes", "y", false, "skip confirmation prompts")
}

// app wires the client components for one command invocation.
type app struct {
	cfg      *config.Client
	sessions *session.Manager
	roster   *roster.Store
	coord    *coordinator.Coordinator
}

func newApp() (*app, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}

	service := collab.NewHTTPClient(cfg.ServerURL, cfg.Timeout)
	rosterStore := roster.New(service)

	confirm := promptConfirm
	if rootCmdFlags.Yes {
		confirm = nil // approve everything
	}

	return &app{
		cfg:      cfg,
		sessions: session.NewManager(cfg.SessionFile, service),
		roster:   rosterStore,
		coord:    coordinator.New(service, rosterStore, confirm),
	}, nil
}

func promptConfirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
