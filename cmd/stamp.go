package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/marktime/internal/config"
	"github.com/zjrosen/marktime/internal/hotkey"
	"github.com/zjrosen/marktime/internal/log"
	"github.com/zjrosen/marktime/internal/presentation"
	"github.com/zjrosen/marktime/internal/timecode"
)

func newStampCmd() *cobra.Command {
	var (
		at      float64
		multi   bool
		offsets []float64
		save    bool
		asJSON  bool
	)

	c := &cobra.Command{
		Use:   "stamp",
		Short: "Print the timecode tokens a hotkey would insert",
		Long: `Print the text inserted for a playback position, as the single or multi
insert hotkey would produce it.

Examples:
  marktime stamp --at 62
  marktime stamp --at 62 --multi
  marktime stamp --at 62 --multi --offsets 10,5

  # Remember the offsets in the config file
  marktime stamp --at 62 --multi --offsets 10,5 --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("offsets") {
				offsets = cfg.Timecode.MultiOffsets
			}
			if len(offsets) == 0 {
				offsets = timecode.DefaultOffsets
			}

			if save {
				path := viper.ConfigFileUsed()
				if path == "" {
					path = ".marktime/config.yaml"
				}
				if err := config.SaveOffsets(path, offsets); err != nil {
					return fmt.Errorf("saving offsets: %w", err)
				}
				log.Info(log.CatConfig, "Saved multi offsets", "path", path, "offsets", offsets)
			}

			command := hotkey.CommandSingle
			if multi {
				command = hotkey.CommandMulti
			}
			text, ok := hotkey.New(hotkey.WithOffsets(offsets)).Text(command, at)
			if !ok {
				return fmt.Errorf("position %v cannot be written as a timecode", at)
			}
			return presentation.NewFormatter(cmd.OutOrStdout(), asJSON).FormatTokens(strings.Fields(text))
		},
	}

	c.Flags().Float64Var(&at, "at", 0, "playback position in seconds")
	c.Flags().BoolVar(&multi, "multi", false, "print a retrospective run instead of one token")
	c.Flags().Float64SliceVar(&offsets, "offsets", nil, "seconds before the position, most distant first (default from config)")
	c.Flags().BoolVar(&save, "save", false, "write --offsets to the config file")
	c.Flags().BoolVar(&asJSON, "json", false, "print a JSON array")
	_ = c.MarkFlagRequired("at")
	return c
}

func init() {
	rootCmd.AddCommand(newStampCmd())
}
