package builtin

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDOCX_InvalidBytesError(t *testing.T) {
	_, err := DOCX(context.Background(), strings.NewReader("not a docx"), "bad.docx")
	require.Error(t, err)
}

func TestDOCXEntry_MimeMatch(t *testing.T) {
	assert.True(t, DOCXEntry.MimeMatch("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.Equal(t, []string{".docx"}, DOCXEntry.Extensions)
}
