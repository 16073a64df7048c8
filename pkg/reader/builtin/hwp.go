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
	"strings"
	"unicode"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/errs"
	"github.com/fluxdoc/fluxdoc/pkg/reader"
)

// HWPX extracts section text from a .hwpx package. Like .pptx, .hwpx is a
// zip archive of XML parts; body text lives under Contents/section*.xml
// with runs wrapped in <hp:t> elements. No HWP-family library exists
// anywhere in the retrieved example corpus, so this walks the package
// directly the same way PPTX does.
func HWPX(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawContent{}, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return docmodel.RawContent{}, fmt.Errorf("open hwpx %s: %w", name, err)
	}

	var sections []*zip.File
	for _, f := range zr.File {
		dir, base := path.Split(f.Name)
		if dir != "Contents/" || !strings.HasPrefix(base, "section") || !strings.HasSuffix(base, ".xml") {
			continue
		}
		sections = append(sections, f)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Name < sections[j].Name })

	var sb strings.Builder
	var warnings []string

	for _, f := range sections {
		rc, err := f.Open()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}
		text, err := extractHwpxSectionText(rc)
		rc.Close()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", f.Name, err))
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	if len(sections) == 0 {
		warnings = append(warnings, "no section parts found in package")
	}

	return docmodel.RawContent{
		SourceName: name,
		ByteSize:   int64(len(data)),
		Format:     "hwpx",
		Text:       strings.TrimSpace(sb.String()),
		Warnings:   warnings,
	}, nil
}

func extractHwpxSectionText(r io.Reader) (string, error) {
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

// HWP scrapes whatever printable ASCII run-text it can find in a legacy
// .hwp (OLE2 compound-file) source. The pre-5.0 HWP format is a binary
// compound document with compressed, record-structured streams; without a
// parsing library (none exists in the retrieved example corpus) there is no
// reliable way to decode it, so this always reports MalformedSource and
// returns only a best-effort scrape as a starting point for manual review.
func HWP(ctx context.Context, r io.Reader, name string) (docmodel.RawContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return docmodel.RawContent{}, err
	}

	text := scrapePrintableRuns(data, 4)

	return docmodel.RawContent{
		SourceName: name,
		ByteSize:   int64(len(data)),
		Format:     "hwp",
		Text:       text,
		Warnings: []string{
			errs.New(errs.MalformedSource, "legacy .hwp binary format has no decoder in this build; text is a best-effort ASCII scrape").Error(),
		},
	}, nil
}

// scrapePrintableRuns returns printable ASCII runs of at least minRun bytes,
// joined by newlines. It is a last-resort heuristic, not a real decoder.
func scrapePrintableRuns(data []byte, minRun int) string {
	var runs []string
	var cur []byte
	flush := func() {
		if len(cur) >= minRun {
			runs = append(runs, string(cur))
		}
		cur = cur[:0]
	}
	for _, b := range data {
		if b < utf8RuneSelf && (unicode.IsPrint(rune(b)) || b == ' ') {
			cur = append(cur, b)
		} else {
			flush()
		}
	}
	flush()
	return strings.Join(runs, "\n")
}

const utf8RuneSelf = 0x80

// HWPEntry is the registry entry for legacy .hwp files.
var HWPEntry = reader.Entry{
	Format:     "hwp",
	Extensions: []string{".hwp"},
	MimeMatch:  func(mime string) bool { return mime == "application/x-hwp" },
	Read:       HWP,
}

// HWPXEntry is the registry entry for .hwpx files.
var HWPXEntry = reader.Entry{
	Format:     "hwpx",
	Extensions: []string{".hwpx"},
	MimeMatch:  func(mime string) bool { return mime == "application/hwp+zip" },
	Read:       HWPX,
}
