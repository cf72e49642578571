package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/marktime/internal/markup"
	"github.com/zjrosen/marktime/internal/timecode"
)

func TestFromRanges_CarriesText(t *testing.T) {
	text := "é [00:00:05] go"
	dtos := FromRanges(text, markup.Decorate(text))

	require.Equal(t, []RangeDTO{{Kind: "timecode", Start: 2, End: 12, Text: "[00:00:05]"}}, dtos)
}

func TestFormatRanges_Text(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(&buf, false).FormatRanges([]RangeDTO{
		{Kind: "timecode", Start: 0, End: 10, Text: "[00:00:05]"},
		{Kind: "code", Start: 11, End: 20, Text: "\tx := 1"},
	})
	require.NoError(t, err)

	require.Equal(t,
		"timecode          0    10  [00:00:05]\n"+
			"code             11    20  \\tx := 1\n",
		buf.String())
}

func TestFormatRanges_JSON(t *testing.T) {
	var buf bytes.Buffer
	in := []RangeDTO{{Kind: "bold", Start: 1, End: 7, Text: "**hi**"}}
	require.NoError(t, NewFormatter(&buf, true).FormatRanges(in))

	var out []RangeDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, in, out)
	require.Contains(t, buf.String(), `"kind": "bold"`)
}

func TestFormatRanges_EmptyJSONIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, true).FormatRanges(FromRanges("plain", nil)))
	require.Equal(t, "[]\n", buf.String())
}

func TestFormatMentions(t *testing.T) {
	dtos := FromMentions(timecode.Extract("a [00:01:05] b [01:00:00]"))

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, false).FormatMentions(dtos))
	require.Equal(t,
		"      65     2    12  [00:01:05]\n"+
			"    3600    15    25  [01:00:00]\n",
		buf.String())
}

func TestFormatTokens(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, false).FormatTokens([]string{"[00:00:01]", "[00:00:02]"}))
	require.Equal(t, "[00:00:01] [00:00:02]\n", buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(&buf, true).FormatTokens([]string{"[00:00:01]"}))
	require.JSONEq(t, `["[00:00:01]"]`, buf.String())
}
