package cli

import (
	"encoding/json"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ygrebnov/checktype/descriptor"
	"github.com/ygrebnov/checktype/signature"
)

type paramView struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
	Variadic bool   `json:"variadic,omitempty"`
}

type signatureView struct {
	Name      string      `json:"name"`
	Doc       string      `json:"doc,omitempty"`
	Signature string      `json:"signature"`
	Params    []paramView `json:"params"`
	Return    string      `json:"return,omitempty"`
}

func newDescribeCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <file>",
		Short: "Print the signatures declared in a descriptor file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := descriptor.LoadFile(args[0], nil)
			if err != nil {
				return exitError(exitValidation, "%v", err)
			}

			views := make([]signatureView, 0, set.Len())
			for _, decl := range set.All() {
				sig, err := signature.New(decl)
				if err != nil {
					return exitError(exitValidation, "%v", err)
				}
				views = append(views, viewOf(sig))
			}
			return printSignatures(cmd.OutOrStdout(), views, cfg.output())
		},
	}
}

func viewOf(sig *signature.Signature) signatureView {
	v := signatureView{
		Name:      sig.Name(),
		Doc:       sig.Doc(),
		Signature: sig.String(),
		Params:    make([]paramView, sig.Len()),
	}
	for i := 0; i < sig.Len(); i++ {
		p := sig.Param(i)
		v.Params[i] = paramView{Name: p.Name, Type: "any", Optional: p.Optional, Variadic: p.Variadic}
		if p.Declared {
			v.Params[i].Type = p.Constraint.String()
		}
	}
	if ret, ok := sig.Return(); ok {
		v.Return = ret.String()
	}
	return v
}

func printSignatures(w io.Writer, views []signatureView, format string) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Name", "Signature", "Doc")
	for _, v := range views {
		if err := table.Append([]string{v.Name, v.Signature, v.Doc}); err != nil {
			return err
		}
	}
	return table.Render()
}
