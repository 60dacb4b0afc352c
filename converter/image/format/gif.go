package format

import (
	"bytes"
	"context"
	stdimage "image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"imgconv/converter/image"
	"imgconv/shared/log"
)

// gifColors is the full palette size; GIF output is palette-based by nature.
const gifColors = 256

// Gif encodes through the pure-Go path. libvips GIF save support depends on
// the build it was linked against, so the GIF target does not rely on it.
type Gif struct {
	logger *zap.Logger
}

func MustGif(logger *zap.Logger) *Gif {
	return &Gif{logger: logger}
}

func (w *Gif) Encode(ctx context.Context, source []byte, opts image.Options) (io.Reader, int64, error) {
	logger := log.LoggerWithTrace(ctx, w.logger)
	logger.Debug("Converting image to gif")

	src, _, err := stdimage.Decode(bytes.NewReader(source))
	if err != nil {
		logger.Error("Error decoding source image", zap.Error(err))
		return nil, 0, err
	}

	src = resizeWithin(src, opts)

	var buf bytes.Buffer
	if err := gif.Encode(&buf, src, &gif.Options{NumColors: gifColors}); err != nil {
		logger.Error("Error converting image to gif", zap.Error(err))
		return nil, 0, err
	}

	return &buf, int64(buf.Len()), nil
}

// resizeWithin shrinks the image to fit the requested box. It never upscales,
// mirroring the Enlarge=false contract of the libvips-backed encoders.
func resizeWithin(src stdimage.Image, opts image.Options) stdimage.Image {
	if opts.Width <= 0 && opts.Height <= 0 {
		return src
	}

	bounds := src.Bounds()

	if opts.Width > 0 && opts.Height > 0 && !opts.KeepAspect {
		w := minInt(opts.Width, bounds.Dx())
		h := minInt(opts.Height, bounds.Dy())
		return imaging.Resize(src, w, h, imaging.Lanczos)
	}

	maxW := opts.Width
	if maxW <= 0 {
		maxW = bounds.Dx()
	}
	maxH := opts.Height
	if maxH <= 0 {
		maxH = bounds.Dy()
	}
	if maxW >= bounds.Dx() && maxH >= bounds.Dy() {
		return src
	}

	return imaging.Fit(src, maxW, maxH, imaging.Lanczos)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
