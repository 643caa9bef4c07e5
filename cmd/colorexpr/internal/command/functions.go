package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/colorexpr"
	"github.com/gogpu/colorexpr/cmd/colorexpr/internal/view"
)

func NewFunctionsCommand() *cobra.Command {
	var dialect string
	cmd := &cobra.Command{
		Use:   "functions",
		Short: "List the builtin functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := colorexpr.ParseDialect(dialect)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, fn := range d.Functions() {
				cpu := ""
				if fn.Eval == nil {
					cpu = " (gpu only)"
				}
				fmt.Fprintf(out, "%s%s\n  %s\n", view.Highlight("%s", fn.Name), cpu, fn.Signature())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dialect, "dialect", "d", "hlsl", "Dialect whose symbols to list (hlsl | wgsl)")
	return cmd
}
