package commands

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/shardscout/internal/cli"
)

func newSearchCmd(app *cli.App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [flags] <query...>",
		Short: "Search the documentation catalog",
		Long: `Submit a query to the crystaldoc.info search form and print one entry
per listed shard: name, stars, source repository and documentation link.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := newClient(app).Search(cmd.Context(), cli.Query(args))
			if err != nil {
				return err
			}
			return cli.WriteList(app, cmd.OutOrStdout(), cli.Limit(results, limit))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results to print (0 = all)")
	return cmd
}
