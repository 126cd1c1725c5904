// Package commands implements the crystaldoc CLI.
package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shardscout/internal/cli"
	"github.com/jmylchreest/shardscout/pkg/crystaldoc"
)

var errMissingSubcommand = errors.New("a subcommand is required: search or fetch")

func newRootCmd() *cobra.Command {
	app := cli.NewApp("crystaldoc")

	cmd := &cobra.Command{
		Use:   "crystaldoc",
		Short: "Search crystaldoc.info and fetch shard API documentation",
		Long: `Search the crystaldoc.info catalog and extract shard documentation pages.

Examples:
  # Find shards whose documentation mentions "kemal"
  crystaldoc search kemal

  # Fetch a page by slug, bare name or URL
  crystaldoc fetch kemalcr/kemal
  crystaldoc fetch kemal
  crystaldoc fetch https://crystaldoc.info/github/kemalcr/kemal/v1.4.0/index.html

  # Render the page body as Markdown
  crystaldoc fetch --content markdown --format markdown kemal`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return errMissingSubcommand
		},
	}

	app.AttachRoot(cmd)
	cmd.AddCommand(newSearchCmd(app), newFetchCmd(app))

	return cmd
}

func newClient(app *cli.App, opts ...crystaldoc.Option) *crystaldoc.Client {
	opts = append([]crystaldoc.Option{crystaldoc.WithOrigin(app.Config().CrystaldocURL)}, opts...)
	return crystaldoc.New(app.Fetcher(), opts...)
}

// Execute runs the crystaldoc CLI and returns the process exit code.
func Execute() int {
	return cli.Execute(newRootCmd())
}
