package format

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/h2non/bimg"
	"go.uber.org/zap"

	"imgconv/converter/image"
	"imgconv/shared/log"
)

type Webp struct {
	logger *zap.Logger
}

func MustWebp(logger *zap.Logger) *Webp {
	return &Webp{logger: logger}
}

func (w *Webp) Encode(ctx context.Context, source []byte, opts image.Options) (io.Reader, int64, error) {
	logger := log.LoggerWithTrace(ctx, w.logger)
	logger.Debug(fmt.Sprintf("Converting image to webp with quality: %d", opts.Quality))

	// Quality 100 switches to the lossless coder.
	options := withSize(bimg.Options{
		Type:     bimg.WEBP,
		Quality:  opts.Quality,
		Lossless: opts.Quality == 100,
	}, opts)

	buf, err := bimg.NewImage(source).Process(options)
	if err != nil {
		logger.Error("Error converting image to webp", zap.Error(err))
		return nil, 0, err
	}

	return bytes.NewBuffer(buf), int64(len(buf)), nil
}
