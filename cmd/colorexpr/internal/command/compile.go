package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/colorexpr"
	"github.com/gogpu/colorexpr/cmd/colorexpr/internal/view"
)

// CompileOptions holds the options for the compile command.
type CompileOptions struct {
	Sources []string
	Dialect string
	Array   string
	Explain bool
}

func NewCompileCommand() *cobra.Command {
	var opts CompileOptions
	cmd := &cobra.Command{
		Use:   "compile EXPRESSION",
		Short: "Compile an expression to a four-channel value",
		Long: view.Highlight("colorexpr compile EXPRESSION") + "\n\n" +
			"Compile an expression against named sources and print the generated\n" +
			"four-channel value in the selected dialect.\n",
		Example: "  colorexpr compile 'color.bgr' --source color\n" +
			"  colorexpr compile 'mask.r, 0.5' --source mask:1 --dialect wgsl",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&opts.Sources, "source", "s", nil, "Source as name[:components[:space]], repeatable")
	f.StringVarP(&opts.Dialect, "dialect", "d", "hlsl", "Output dialect (hlsl | wgsl)")
	f.StringVar(&opts.Array, "array", colorexpr.DefaultSourceArray, "Name of the source array in generated code")
	f.BoolVar(&opts.Explain, "explain", false, "Print the resolved parts and fills")
	return cmd
}

func newCompiler(dialect, array string) (*colorexpr.Compiler, error) {
	d, err := colorexpr.ParseDialect(dialect)
	if err != nil {
		return nil, err
	}
	return colorexpr.NewCompiler(colorexpr.WithDialect(d), colorexpr.WithSourceArray(array)), nil
}

func runCompile(cmd *cobra.Command, expr string, opts CompileOptions) error {
	sources, err := parseSources(opts.Sources)
	if err != nil {
		return err
	}
	c, err := newCompiler(opts.Dialect, opts.Array)
	if err != nil {
		return err
	}
	p, err := c.Compile(expr, sources)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !opts.Explain {
		fmt.Fprintln(out, p.Code)
		return nil
	}
	fmt.Fprintln(out, view.Highlight("code:"), p.Code)
	for i, part := range p.Parts {
		fmt.Fprintf(out, "%s %s (%d, %s)\n", view.Highlight("part %d:", i), part.Text, part.Components, part.Space)
	}
	for i, fill := range p.Fills {
		fmt.Fprintf(out, "%s %s\n", view.Highlight("fill %d:", i), fill)
	}
	fmt.Fprintln(out, view.Highlight("cpu:"), p.Evaluable())
	return nil
}
