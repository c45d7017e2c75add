package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ygrebnov/checktype"
	"github.com/ygrebnov/checktype/descriptor"
)

// diagnostic is the validation result of one declaration.
type diagnostic struct {
	Function  string `json:"function,omitempty"`
	Signature string `json:"signature,omitempty"`
	OK        bool   `json:"ok"`
	Message   string `json:"message,omitempty"`
}

func newValidateCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a signature descriptor file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, cfg, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, cfg *config, path string) error {
	out := cmd.OutOrStdout()
	logger := cfg.logger(cmd)

	set, err := descriptor.LoadFile(path, nil)
	if err != nil {
		diags := []diagnostic{{Message: err.Error()}}
		if perr := printDiagnostics(out, diags, cfg.output()); perr != nil {
			return perr
		}
		return exitError(exitValidation, "validation failed: %s", path)
	}

	// Every declaration is built against a stub target, so the same checks
	// apply as for a real callable.
	stub := checktype.CallableFunc(func([]any, map[string]any) (any, error) { return nil, nil })

	diags := make([]diagnostic, 0, set.Len())
	failed := false
	for _, decl := range set.All() {
		d := diagnostic{Function: decl.Name}
		w, err := checktype.Build(stub, checktype.WithHints(decl), checktype.WithLogger(logger))
		if err != nil {
			d.Message = err.Error()
			failed = true
		} else {
			d.OK = true
			d.Signature = w.Signature().String()
		}
		logger.Debug("validated declaration", "function", d.Function, "ok", d.OK)
		diags = append(diags, d)
	}

	if err = printDiagnostics(out, diags, cfg.output()); err != nil {
		return err
	}
	if failed {
		return exitError(exitValidation, "validation failed: %s", path)
	}
	return nil
}

func printDiagnostics(w io.Writer, diags []diagnostic, format string) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(diags)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Function", "Status", "Detail")
	for _, d := range diags {
		status, detail := "ok", d.Signature
		if !d.OK {
			status, detail = "error", d.Message
		}
		if err := table.Append([]string{d.Function, status, detail}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	failed := 0
	for _, d := range diags {
		if !d.OK {
			failed++
		}
	}
	_, err := fmt.Fprintf(w, "%d declarations, %d errors\n", len(diags), failed)
	return err
}
