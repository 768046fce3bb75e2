package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage the user roster",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all usernames",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.coord.RefreshUsers(cmd.Context()); err != nil {
			return err
		}
		for _, u := range a.coord.Users() {
			fmt.Println(u)
		}
		return nil
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a user (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		password, err := promptLine("Password for " + args[0] + ": ")
		if err != nil {
			return err
		}

		if err := a.coord.AddUser(cmd.Context(), a.sessions.Current(), args[0], password); err != nil {
			return err
		}
		fmt.Printf("Added %s\n", args[0])
		return nil
	},
}

var usersDelCmd = &cobra.Command{
	Use:   "del <username>",
	Short: "Delete a user (admin only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		if err := a.coord.DeleteUser(cmd.Context(), a.sessions.Current(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd, usersAddCmd, usersDelCmd)
	rootCmd.AddCommand(usersCmd)
}
