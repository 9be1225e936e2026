package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var likeCmd = &cobra.Command{
	Use:   "like <article-id>",
	Short: "Toggle the like state of an article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		liked, err := engine.Likes.Toggle(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if liked {
			fmt.Fprintln(cmd.OutOrStdout(), "liked")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "unliked")
		}
		return nil
	},
}
