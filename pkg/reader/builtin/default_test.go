package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_RegistersAllExtensions(t *testing.T) {
	r := Default()
	for _, ext := range []string{".md", ".markdown", ".html", ".htm", ".txt", ".json", ".csv", ".pdf", ".docx", ".xlsx", ".pptx", ".hwp", ".hwpx"} {
		assert.Contains(t, r.Extensions(), ext, "expected %s to be registered", ext)
	}
}
