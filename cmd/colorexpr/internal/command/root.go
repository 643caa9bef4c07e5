// Package command implements the colorexpr command tree.
package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gogpu/colorexpr"
	"github.com/gogpu/colorexpr/cmd/colorexpr/internal/view"
)

// NewRootCommand creates the root command with its global flags. Callers
// add subcommands with AddCommands.
func NewRootCommand() *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "colorexpr",
		Short: "Compile color expressions to shader code",
		Long: view.Highlight("Usage: colorexpr [global options] <subcommand> [args]") + "\n\n" +
			"colorexpr compiles short color expressions such as 'color.bgr * mask.a'\n" +
			"into HLSL or WGSL, builds complete shaders from them and applies them\n" +
			"to images on the CPU.\n",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := view.ParseLogLevel(os.Getenv("COLOREXPR_LOG"))
			if debug {
				level = view.LogLevelDebug
			}
			colorexpr.SetLogger(view.NewLogger(cmd.ErrOrStderr(), level))
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Set log level to debug")
	setUsageTemplate(cmd)
	return cmd
}

func setUsageTemplate(cmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleHeading", color.RGB(50, 108, 229).SprintFunc())
	cmd.SetUsageTemplate(strings.NewReplacer(
		`Usage:`, `{{StyleHeading "Usage:"}}`,
		`Examples:`, `{{StyleHeading "Examples:"}}`,
		`Available Commands:`, `{{StyleHeading "Available Commands:"}}`,
		`Flags:`, `{{StyleHeading "Options:"}}`,
		`Global Flags:`, `{{StyleHeading "Global Options:"}}`,
	).Replace(cmd.UsageTemplate()))
}

// AddCommands registers all subcommands to the root command.
func AddCommands(root *cobra.Command) {
	root.AddCommand(
		NewCompileCommand(),
		NewShaderCommand(),
		NewApplyCommand(),
		NewFunctionsCommand(),
	)
}

// Execute runs the CLI and exits.
func Execute() {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		color.NoColor = true
	}

	root := NewRootCommand()
	AddCommands(root)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, view.Errorf("%v", err))
		os.Exit(1)
	}
}

// exactArgs returns an error if there is not the exact number of args.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == n {
			return nil
		}
		_ = cmd.Usage()
		if n == 1 {
			return fmt.Errorf("requires exactly 1 argument")
		}
		return fmt.Errorf("requires exactly %d arguments", n)
	}
}
