package builtin

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/reader"
)

// PPTX extracts slide text, in slide order, from a .pptx package. There is
// no PPTX parsing library anywhere in the retrieved example corpus, so this
// walks the OOXML package directly: .pptx is a zip archive, and each slide
// lives at ppt/slides/slideN.xml with text runs in <a:t> elements.
func PPTX(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawContent{}, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return docmodel.RawContent{}, fmt.Errorf("open pptx %s: %w", name, err)
	}

	type slideFile struct {
		index int
		file  *zip.File
	}
	var slides []slideFile
	for _, f := range zr.File {
		dir, base := path.Split(f.Name)
		if dir != "ppt/slides/" || !strings.HasPrefix(base, "slide") || !strings.HasSuffix(base, ".xml") {
			continue
		}
		numStr := strings.TrimSuffix(strings.TrimPrefix(base, "slide"), ".xml")
		n, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}
		slides = append(slides, slideFile{index: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].index < slides[j].index })

	var sb strings.Builder
	var warnings []string

	for _, s := range slides {
		rc, err := s.file.Open()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("slide %d: %v", s.index, err))
			continue
		}
		text, err := extractSlideText(rc)
		rc.Close()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("slide %d: %v", s.index, err))
			continue
		}
		fmt.Fprintf(&sb, "## Slide %d\n\n%s\n\n", s.index, text)
	}

	if len(slides) == 0 {
		warnings = append(warnings, "no slide parts found in package")
	}

	return docmodel.RawContent{
		SourceName: name,
		ByteSize:   int64(len(data)),
		Format:     "pptx",
		Text:       sb.String(),
		Warnings:   warnings,
	}, nil
}

func extractSlideText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inRun := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.CharData:
			if inRun {
				sb.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inRun = false
				sb.WriteByte(' ')
			}
			if t.Name.Local == "p" {
				sb.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// PPTXEntry is the registry entry for .pptx files.
var PPTXEntry = reader.Entry{
	Format:     "pptx",
	Extensions: []string{".pptx"},
	MimeMatch: func(mime string) bool {
		return mime == "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	},
	Read: PPTX,
}
