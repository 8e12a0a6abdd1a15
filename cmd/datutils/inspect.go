package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect PATH",
	Short: "Print the contents of a data file",
	Long: `Load a data file without knowing its type and print it as JSON
or YAML. Structs appear as maps keyed by field name.

JSON has no NaN or infinity, so those floats are printed as the strings
"NaN", "+Inf" and "-Inf". YAML output keeps them as .nan and .inf.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var (
	outputFormat string
)

func init() {
	inspectCmd.Flags().StringVarP(&outputFormat, "output", "o", "json", "output format (json or yaml)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	var value any
	if err := client.LoadInto(args[0], &value); err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), cfg.Output, normalize(value))
}

func render(w io.Writer, output string, value any) error {
	switch output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(finite(value)); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
}

// normalize rewrites maps with non-string keys, which neither JSON nor
// YAML output can represent consistently, into maps keyed by the
// formatted key.
func normalize(v any) any {
	switch v := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	default:
		return v
	}
}

// finite replaces NaN and infinite floats, which encoding/json rejects,
// with their strconv names.
func finite(v any) any {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return v
	case float32:
		return finite(float64(v))
	case map[string]any:
		for k, e := range v {
			v[k] = finite(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = finite(e)
		}
		return v
	default:
		return v
	}
}
