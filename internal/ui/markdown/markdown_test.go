package markdown

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToDark(t *testing.T) {
	r, err := New("", 40)
	require.NoError(t, err)
	require.Equal(t, "dark", r.Style())
	require.Equal(t, 40, r.Width())
}

func TestNew_UnknownStyle(t *testing.T) {
	_, err := New("sepia", 40)
	require.Error(t, err)
}

func TestRender_KeepsText(t *testing.T) {
	r, err := New("light", 60)
	require.NoError(t, err)

	out, err := r.Render("# Keys\n\n- `alt+j` insert timecode\n")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "Keys")
	require.Contains(t, plain, "alt+j")
	require.Contains(t, plain, "insert timecode")
}
