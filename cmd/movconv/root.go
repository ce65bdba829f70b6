package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:   "movconv",
		Short: "Convert MOV files to MP4 with ffmpeg",
		Long: "Convert every .mov file in the input directory to .mp4 in the output directory.\n" +
			"Files are converted one at a time by an external ffmpeg process.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(ctx.configFlag, "config", "c", "", "Configuration file path")
	flags.StringVar(ctx.inputDirFlag, "input-dir", "", "Directory scanned for .mov files (default \"mov\")")
	flags.StringVar(ctx.outputDirFlag, "output-dir", "", "Directory receiving .mp4 files (default \"mp4\")")
	flags.StringVar(ctx.ffmpegFlag, "ffmpeg", "", "Path to the ffmpeg executable")
	flags.StringVar(ctx.logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(ctx.logFormatFlag, "log-format", "", "Log format: console or json")
	rootCmd.Flags().BoolVarP(ctx.deleteFlag, "delete", "d", false, "Delete each source file after it converts successfully")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
