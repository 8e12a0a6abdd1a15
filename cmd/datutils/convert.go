package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/discochess/datutils"
)

var convertCmd = &cobra.Command{
	Use:   "convert SRC DST",
	Short: "Recompress a data file",
	Long: `Copy the envelope stored in SRC into DST, compressed according to
the suffix of DST. The envelope itself is copied byte for byte.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]
	if err := client.Recompress(src, dst); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) -> %s (%s)\n",
		src, datutils.Classify(src), dst, client.SchemeFor(dst))
	return nil
}
