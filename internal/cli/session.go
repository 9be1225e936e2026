package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagRandomUser bool

var loginCmd = &cobra.Command{
	Use:   "login [user-id]",
	Short: "Log in as a user",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if flagRandomUser {
			user, err := engine.Sessions.LoginRandom(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", user.UserID)
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("a user id is required unless --random is set")
		}
		user, err := engine.Sessions.Login(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", user.UserID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := engine.Sessions.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().BoolVar(&flagRandomUser, "random", false, "log in with a random demo identity")
}
