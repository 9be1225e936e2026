package cli

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"
	"github.com/spf13/cobra"

	"github.com/strawberrySword/hermes/internal/domain"
)

var flagRSSLimit int

// rssCmd exports the locally snapshotted aggregate feed as RSS, so the
// articles Hermes picked for you can be followed from any reader.
var rssCmd = &cobra.Command{
	Use:   "rss [topic]",
	Short: "Export your snapshotted feed as RSS",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := domain.TopicAll
		if len(args) > 0 {
			topic = args[0]
		}

		articles, err := engine.Store.ListArticles(cmd.Context(), topic, flagRSSLimit)
		if err != nil {
			return err
		}
		if len(articles) == 0 {
			return fmt.Errorf("no snapshotted articles for topic %q - browse the feed first", topic)
		}

		feed := &feeds.Feed{
			Title:       "Hermes: " + topic,
			Link:        &feeds.Link{Href: engine.API.BaseURL},
			Description: "Articles from your Hermes feed",
			Created:     time.Now(),
		}
		for _, a := range articles {
			feed.Items = append(feed.Items, &feeds.Item{
				Id:          a.Key(),
				IsPermaLink: "false",
				Title:       a.Title,
				Link:        &feeds.Link{Href: a.URL},
				Description: a.Subtitle,
				Author:      &feeds.Author{Name: a.Publisher},
				Created:     a.Date,
			})
		}

		rss, err := feed.ToRss()
		if err != nil {
			return fmt.Errorf("formatting feed as RSS: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), rss)
		return nil
	},
}

func init() {
	rssCmd.Flags().IntVar(&flagRSSLimit, "limit", 50, "maximum number of articles to export")
}
