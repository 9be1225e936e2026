package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/strawberrySword/hermes/internal/discovery"
	"github.com/strawberrySword/hermes/internal/domain"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Swipe through random articles to build your feed",
	Long:  "Shows one random article at a time. Type right to accept, left to reject, start to move on to the feed once enough articles are liked, or quit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		article, err := engine.Discovery.Current(ctx)
		if err != nil {
			return err
		}
		printArticle(cmd, article)

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				return scanner.Err()
			}

			switch input := strings.TrimSpace(scanner.Text()); input {
			case "quit", "q":
				return nil
			case "start":
				if err := engine.Discovery.StartReading(ctx); err != nil {
					if errors.Is(err, domain.ErrDiscoveryIncomplete) {
						fmt.Fprintf(out, "like %d more articles to start reading\n",
							engine.Discovery.Remaining(ctx))
						continue
					}
					return err
				}
				fmt.Fprintln(out, "enjoy your feed - run `hermes feed`")
				return nil
			default:
				article, err := engine.Discovery.Swipe(ctx, discovery.Direction(input))
				if errors.Is(err, domain.ErrInvalidSwipe) {
					fmt.Fprintln(out, "swipe right or left")
					continue
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "liked %d of %d\n",
					engine.Discovery.LikedCount(ctx),
					engine.Discovery.LikedCount(ctx)+engine.Discovery.Remaining(ctx))
				printArticle(cmd, article)
			}
		}
	},
}
