package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF("Dear diary", "first line\nsecond line ✿ café")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestLayoutPaginates(t *testing.T) {
	require.Equal(t, 1, layout("short", "one\ntwo").PageCount())

	// a Letter page fits (792-72-93.6)/14+1 = 45 body lines
	long := strings.Repeat("line\n", 120)
	require.Equal(t, 3, layout("long", long).PageCount())
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 5))
	require.Equal(t, "ééé", truncate("éééé", 3))
}
