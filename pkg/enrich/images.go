package enrich

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
	"github.com/fluxdoc/fluxdoc/pkg/llmsvc"
	"github.com/fluxdoc/fluxdoc/pkg/log"
)

// ImageResolution tallies how many pre-extraction images were resolved to
// text versus left as their original placeholder.
type ImageResolution struct {
	Extracted int
	Skipped   int
}

// ResolveImages replaces each image's placeholder string, wherever it
// appears in a chunk's content, with svc's description of that image. A
// nil svc, or a failed individual Extract call, leaves that image's
// placeholder untouched and counts it as skipped rather than failing the
// whole batch, the same per-item degrade-not-fail posture Enrich already
// applies to per-chunk summarization.
func ResolveImages(ctx context.Context, chunks []docmodel.DocumentChunk, images []docmodel.Image, svc llmsvc.ImageToTextService, opts llmsvc.ImageToTextOptions) ([]docmodel.DocumentChunk, ImageResolution) {
	out := make([]docmodel.DocumentChunk, len(chunks))
	copy(out, chunks)

	if svc == nil || len(images) == 0 {
		return out, ImageResolution{Skipped: len(images)}
	}

	descriptions := make([]string, len(images))
	resolved := make([]bool, len(images))

	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			result, err := svc.Extract(gctx, img.Bytes, opts)
			if err != nil {
				log.Logger(gctx).Warn("image-to-text extraction failed, leaving placeholder", "placeholder", img.Placeholder, "error", err)
				return nil
			}
			descriptions[i] = result.Text
			resolved[i] = true
			return nil
		})
	}
	_ = g.Wait()

	var res ImageResolution
	for i, img := range images {
		if !resolved[i] {
			res.Skipped++
			continue
		}
		res.Extracted++
		for j := range out {
			if strings.Contains(out[j].Content, img.Placeholder) {
				out[j].Content = strings.ReplaceAll(out[j].Content, img.Placeholder, descriptions[i])
			}
		}
	}
	return out, res
}
