package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "respdto",
		Short:         "Build and render structured response envelopes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "Settings file path (default ~/.respdto/settings.json)")
	flags.StringVarP(&ctx.formatFlag, "format", "f", "", "Output format: json, yaml, toml or table")
	flags.StringVar(&ctx.indentFlag, "indent", "", "Indent unit for json, yaml and toml output")
	flags.StringVar(&ctx.colorFlag, "color", "", "Color table output: auto, always or never")

	rootCmd.AddCommand(newUserCommand(ctx))
	rootCmd.AddCommand(newUsersCommand(ctx))
	rootCmd.AddCommand(newBuildCommand(ctx))

	return rootCmd
}
