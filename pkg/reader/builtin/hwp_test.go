package builtin

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestHWPX(t *testing.T, sections map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range sections {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestHWPX_ExtractsSectionText(t *testing.T) {
	section := `<hp:sec xmlns:hp="x"><hp:p><hp:run><hp:t>Hello from hwpx</hp:t></hp:run></hp:p></hp:sec>`
	data := buildTestHWPX(t, map[string]string{"Contents/section0.xml": section})

	content, err := HWPX(context.Background(), bytes.NewReader(data), "doc.hwpx")
	require.NoError(t, err)
	assert.Equal(t, "hwpx", content.Format)
	assert.Contains(t, content.Text, "Hello from hwpx")
}

func TestHWPX_NoSectionsWarns(t *testing.T) {
	data := buildTestHWPX(t, map[string]string{"other.xml": "<x/>"})
	content, err := HWPX(context.Background(), bytes.NewReader(data), "empty.hwpx")
	require.NoError(t, err)
	require.Len(t, content.Warnings, 1)
	assert.Contains(t, content.Warnings[0], "no section parts")
}

func TestHWP_AlwaysReportsMalformedSource(t *testing.T) {
	data := []byte("\x00\x01binary garbage with some readable text embedded\x00\x02")
	content, err := HWP(context.Background(), bytes.NewReader(data), "legacy.hwp")
	require.NoError(t, err)
	assert.Equal(t, "hwp", content.Format)
	require.Len(t, content.Warnings, 1)
	assert.Contains(t, content.Text, "binary garbage with some readable text embedded")
}

func TestHWPEntry_Extensions(t *testing.T) {
	assert.Equal(t, []string{".hwp"}, HWPEntry.Extensions)
	assert.Equal(t, []string{".hwpx"}, HWPXEntry.Extensions)
}
