package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify PATH...",
	Short: "Verify that data files decode",
	Long: `Load every file and report the ones that fail.

This command checks:
- The file can be read
- The compressed stream is complete and intact
- The envelope is a single well-formed value`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var errCount int
	for i, path := range args {
		if cfg.Verbose {
			fmt.Fprintf(out, "  [%d/%d] %s\n", i+1, len(args), path)
		}

		var value any
		if err := client.LoadInto(path, &value); err != nil {
			fmt.Fprintf(out, "  ERROR: %v\n", err)
			errCount++
		}
	}

	fmt.Fprintln(out)
	if errCount > 0 {
		return fmt.Errorf("%d of %d files failed verification", errCount, len(args))
	}
	fmt.Fprintf(out, "All %d files verified successfully.\n", len(args))
	return nil
}
