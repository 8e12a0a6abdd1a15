package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info PATH...",
	Short: "Show compression details of data files",
	Long: `Display for each file:
- The compression scheme selected by its suffix
- Size on disk and size of the envelope
- Compression ratio`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tSCHEME\tSIZE\tENVELOPE\tRATIO")

	var firstErr error
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t%v\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		envelope, err := client.ReadEnvelope(path)
		if err != nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\t-\t%v\n", path, client.SchemeFor(path), formatBytes(info.Size()), err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			path,
			client.SchemeFor(path),
			formatBytes(info.Size()),
			formatBytes(int64(len(envelope))),
			formatRatio(int64(len(envelope)), info.Size()),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return firstErr
}

func formatRatio(envelope, onDisk int64) string {
	if onDisk == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", float64(envelope)/float64(onDisk))
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
