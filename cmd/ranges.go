package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/marktime/internal/document"
	"github.com/zjrosen/marktime/internal/markup"
	"github.com/zjrosen/marktime/internal/presentation"
	"github.com/zjrosen/marktime/internal/timecode"
)

func newRangesCmd() *cobra.Command {
	var deep, asJSON, timecodes bool

	c := &cobra.Command{
		Use:   "ranges <file>",
		Short: "Print the decoration ranges of a markdown file",
		Long: `Tokenize a file and print one decoration range per line: kind, start and
end character offsets, and the covered text.

Examples:
  # Top-level decorations
  marktime ranges notes.md

  # Include nested kinds (punctuation, link labels, nested emphasis)
  marktime ranges notes.md --deep

  # Only bracketed timecodes, with their value in seconds
  marktime ranges notes.md --timecodes

  # Machine readable
  marktime ranges notes.md --json | jq '.[] | select(.kind == "timecode")'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			text := document.Decode(data)
			formatter := presentation.NewFormatter(cmd.OutOrStdout(), asJSON)

			if timecodes {
				return formatter.FormatMentions(presentation.FromMentions(timecode.Extract(text)))
			}

			tokens := markup.Tokenize(text)
			ranges := markup.Map(tokens)
			if deep {
				ranges = markup.MapDeep(tokens)
			}
			return formatter.FormatRanges(presentation.FromRanges(text, ranges))
		},
	}

	c.Flags().BoolVar(&deep, "deep", false, "include nested token kinds")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	c.Flags().BoolVar(&timecodes, "timecodes", false, "list bracketed timecodes instead of ranges")
	return c
}

func init() {
	rootCmd.AddCommand(newRangesCmd())
}
