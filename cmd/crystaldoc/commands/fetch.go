package commands

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/shardscout/internal/cli"
	"github.com/jmylchreest/shardscout/internal/logger"
	"github.com/jmylchreest/shardscout/pkg/cleaner"
	"github.com/jmylchreest/shardscout/pkg/crystaldoc"
)

func newFetchCmd(app *cli.App) *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "fetch [flags] <url|owner/name|name>",
		Short: "Fetch and extract a shard documentation page",
		Long: `Fetch a documentation page and print its shard name, version,
description, type index and main content.

The argument may be a full documentation URL, an "owner/name" slug below
the catalog, or a bare shard name, which is looked up with a search and
resolved to the first result. Redirects to the versioned page are followed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cl, err := cleaner.ForFormat(content)
			if err != nil {
				return err
			}
			logger.Debug("content renderer", "cleaner", cl.Name())

			page, err := newClient(app, crystaldoc.WithContentCleaner(cl)).Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return app.WriteOne(cmd.OutOrStdout(), page)
		},
	}

	cmd.Flags().StringVar(&content, "content", cleaner.FormatText, "main content rendering: text, markdown, html")
	return cmd
}
