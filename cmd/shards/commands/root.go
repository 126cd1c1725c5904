// Package commands implements the shards CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/shardscout/internal/cli"
	"github.com/jmylchreest/shardscout/internal/logger"
	"github.com/jmylchreest/shardscout/pkg/shards"
)

func newRootCmd() *cobra.Command {
	app := cli.NewApp("shards")
	var limit int

	cmd := &cobra.Command{
		Use:   "shards [flags] <query...>",
		Short: "Search the shards.info Crystal package catalog",
		Long: `Search shards.info and print one record per matching shard.

Each record carries the shard's name, description, star/fork/issue counts,
dependents, dependencies, last activity, topics, link, avatar and archived
flag.

Examples:
  # Search and print JSON
  shards kemal

  # Top five results as a Markdown table
  shards --limit 5 --format markdown web framework

  # Follow at most three redirects, with debug logging
  shards --max-redirects 3 --debug orm`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := shards.New(app.Fetcher(), shards.WithOrigin(app.Config().ShardsURL))

			results, err := client.Search(cmd.Context(), cli.Query(args))
			if err != nil {
				return err
			}
			logger.Debug("search results", "count", len(results), "limit", limit)

			return cli.WriteList(app, cmd.OutOrStdout(), cli.Limit(results, limit))
		},
	}

	app.AttachRoot(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results to print (0 = all)")

	return cmd
}

// Execute runs the shards CLI and returns the process exit code.
func Execute() int {
	return cli.Execute(newRootCmd())
}
