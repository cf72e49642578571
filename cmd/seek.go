package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/marktime/internal/playback"
)

func newSeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seek <text>",
		Short: "Resolve clicked text to a seek position",
		Long: `Resolve the text of a clicked span the way the preview does and print the
position in seconds. Text that is not a timecode prints nothing.

Examples:
  marktime seek "[00:01:05]"   # 65
  marktime seek "hello"        # (no output)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := playback.NewClock()
			if !playback.NewResolver(clock).Resolve(args[0]) {
				return nil
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(clock.Position(), 'f', -1, 64))
			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(newSeekCmd())
}
