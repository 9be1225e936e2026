package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strawberrySword/hermes/internal/domain"
)

var (
	flagFeedNext    bool
	flagFeedPrev    bool
	flagFeedHistory bool
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the topics of your feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := engine.Feed.Topics(cmd.Context())
		if errors.Is(err, domain.ErrNeedsDiscovery) {
			fmt.Fprintln(cmd.OutOrStdout(), "no topics yet - run `hermes discover` to build your feed")
			return nil
		}
		if err != nil {
			return err
		}
		for _, topic := range topics {
			fmt.Fprintln(cmd.OutOrStdout(), topic)
		}
		return nil
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed [topic]",
	Short: "Show a page of your feed",
	Long:  "Show the current page of the aggregate feed, or of one topic. --next fetches and advances a page; --prev steps back over pages already seen without refetching.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		topic := domain.TopicAll
		if len(args) > 0 {
			topic = args[0]
		}

		if flagFeedHistory {
			cursors, err := engine.Feed.History(ctx, topic)
			if err != nil {
				return err
			}
			if len(cursors) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no pages seen yet")
				return nil
			}
			for _, cursor := range cursors {
				fmt.Fprintln(cmd.OutOrStdout(), cursor)
			}
			return nil
		}

		var articles []domain.Article
		var err error
		switch {
		case flagFeedNext:
			articles, err = engine.Feed.NextPage(ctx, topic)
		case flagFeedPrev:
			articles = engine.Feed.PrevPage(topic)
		default:
			if _, err = engine.Feed.Articles(ctx, topic); err == nil {
				articles = engine.Feed.CurrentPage(topic)
			}
		}
		if err != nil {
			return err
		}

		if len(articles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to show")
			return nil
		}
		for _, a := range articles {
			printArticle(cmd, a)
		}
		return nil
	},
}

func printArticle(cmd *cobra.Command, a domain.Article) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", a.Key(), a.Publisher, a.Title)
}

func init() {
	feedCmd.Flags().BoolVar(&flagFeedNext, "next", false, "advance to the next page")
	feedCmd.Flags().BoolVar(&flagFeedPrev, "prev", false, "go back one page")
	feedCmd.Flags().BoolVar(&flagFeedHistory, "history", false, "list the cursors of pages seen so far")
	feedCmd.MarkFlagsMutuallyExclusive("next", "prev", "history")
}
