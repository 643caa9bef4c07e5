package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/colorexpr"
	"github.com/gogpu/colorexpr/cmd/colorexpr/internal/view"
	"github.com/gogpu/colorexpr/internal/store"
	"github.com/gogpu/colorexpr/shader"
)

// ShaderOptions holds the options for the shader command.
type ShaderOptions struct {
	Sources []string
	Target  string
	Dialect string
	CacheDB string
	Output  string
}

func NewShaderCommand() *cobra.Command {
	var opts ShaderOptions
	cmd := &cobra.Command{
		Use:   "shader EXPRESSION",
		Short: "Build a complete shader from an expression",
		Long: view.Highlight("colorexpr shader EXPRESSION") + "\n\n" +
			"Splice the compiled expression into a fragment shader sampling one\n" +
			"texture per source. WGSL shaders are compiled with naga to SPIR-V,\n" +
			"HLSL, GLSL or MSL; HLSL-dialect shaders are emitted as HLSL text.\n",
		Example: "  colorexpr shader 'color.bgr' -s color --target msl\n" +
			"  colorexpr shader 'a.rgb * b.a' -s a -s b --target spirv -o fx.spv --cache-db cache.db",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShader(cmd, args[0], opts)
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&opts.Sources, "source", "s", nil, "Source as name[:components[:space]], repeatable")
	f.StringVarP(&opts.Target, "target", "t", "wgsl", "Output (spirv | hlsl | glsl | msl | wgsl)")
	f.StringVarP(&opts.Dialect, "dialect", "d", "wgsl", "Expression dialect (wgsl | hlsl)")
	f.StringVar(&opts.CacheDB, "cache-db", "", "SQLite file caching built artifacts")
	f.StringVarP(&opts.Output, "output", "o", "", "Write the artifact to a file instead of stdout")
	return cmd
}

func runShader(cmd *cobra.Command, expr string, opts ShaderOptions) error {
	target, err := shader.ParseTarget(opts.Target)
	if err != nil {
		return err
	}
	if target.Binary() && opts.Output == "" {
		return fmt.Errorf("%s output needs -o", target)
	}
	sources, err := parseSources(opts.Sources)
	if err != nil {
		return err
	}
	c, err := newCompiler(opts.Dialect, colorexpr.DefaultSourceArray)
	if err != nil {
		return err
	}
	p, err := c.Compile(expr, sources)
	if err != nil {
		return err
	}

	builderOpts := []shader.Option{shader.WithTarget(target)}
	if opts.CacheDB != "" {
		s, err := store.NewSQLite(opts.CacheDB)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
		defer s.Close()
		builderOpts = append(builderOpts, shader.WithStore(s))
	}

	art, err := shader.NewBuilder(builderOpts...).Build(p, sources)
	if err != nil {
		return err
	}
	if opts.Output != "" {
		return os.WriteFile(opts.Output, art.Data, 0o644)
	}
	_, err = cmd.OutOrStdout().Write(art.Data)
	return err
}
