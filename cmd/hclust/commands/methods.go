package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TrevorS/hclust"
)

// MethodsCmd lists the supported linkages and distances.
var MethodsCmd = &cobra.Command{
	Use:   "methods",
	Short: "List supported linkages and distances",
	Long: `List the linkage and distance names accepted by --linkage and --distance.

Ward linkage requires observation rows and the euclidean distance.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "linkages:")
		for _, l := range hclust.Linkages() {
			fmt.Fprintf(out, "  %s\n", l)
		}
		fmt.Fprintln(out, "distances:")
		for _, d := range hclust.Distances() {
			fmt.Fprintf(out, "  %s\n", d)
		}
	},
}
