package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		password, err := promptLine("Password: ")
		if err != nil {
			return err
		}

		s, err := a.sessions.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}

		if s.IsAdmin {
			fmt.Printf("Logged in as %s (admin)\n", s.Username)
		} else {
			fmt.Printf("Logged in as %s\n", s.Username)
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := a.sessions.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		s := a.sessions.Current()
		if s == nil {
			fmt.Println("Not logged in")
			return nil
		}
		if s.IsAdmin {
			fmt.Printf("%s (admin)\n", s.Username)
		} else {
			fmt.Println(s.Username)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
