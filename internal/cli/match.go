package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ygrebnov/checktype/constraint"
	"github.com/ygrebnov/checktype/descriptor"
)

func newMatchCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "match <type-expr> <yaml-literal>",
		Short: "Check a YAML literal against a type expression",
		Long: "match decodes the literal with YAML (integers as int, decimals as float64, " +
			"sequences as []any, mappings as map[string]any, null as nil) and reports " +
			"whether its runtime type satisfies the type expression.",
		Example: `  checktype match "int | string" 42
  checktype match "[]any | nil" "[1, two]"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := descriptor.ParseType(args[0], nil)
			if err != nil {
				return exitError(exitValidation, "%v", err)
			}

			var v any
			if err = yaml.Unmarshal([]byte(args[1]), &v); err != nil {
				return exitError(exitValidation, "decoding literal: %v", err)
			}

			observed := constraint.TypeName(constraint.TypeOf(v))
			cfg.logger(cmd).Debug("matching literal", "declared", c.String(), "observed", observed)

			out := cmd.OutOrStdout()
			if !constraint.MatchesValue(v, c) {
				fmt.Fprintf(out, "mismatch: %s does not satisfy %s\n", observed, c)
				return exitError(exitMismatch, "mismatch")
			}
			fmt.Fprintf(out, "match: %s satisfies %s\n", observed, c)
			return nil
		},
	}
}
