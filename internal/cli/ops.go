package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/audree-labs/layergen/internal/catalog"
	"github.com/audree-labs/layergen/internal/entity"
	"github.com/audree-labs/layergen/internal/scaffold"
)

func init() {
	rootCmd.AddCommand(opsCmd)
}

var opsCmd = &cobra.Command{
	Use:   "ops [entity]",
	Short: "List the operations that can be generated",
	Long: `List every operation in generation order with its HTTP attribute and the
contract signature generated for it. Pass an entity name to see the
signatures for that entity.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "Entity"
		if len(args) == 1 {
			name = args[0]
		}
		spec, err := entity.NewWithSet(name, catalog.FullSet())
		if err != nil {
			return err
		}

		entries := catalog.Entries()
		sigs := scaffold.Signatures(spec)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tHTTP\tSIGNATURE")
		for i, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.HTTPAttribute(), sigs[i])
		}
		return w.Flush()
	},
}
