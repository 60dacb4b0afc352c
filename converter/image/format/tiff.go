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

type Tiff struct {
	logger *zap.Logger
}

func MustTiff(logger *zap.Logger) *Tiff {
	return &Tiff{logger: logger}
}

func (w *Tiff) Encode(ctx context.Context, source []byte, opts image.Options) (io.Reader, int64, error) {
	logger := log.LoggerWithTrace(ctx, w.logger)
	logger.Debug(fmt.Sprintf("Converting image to tiff with quality: %d", opts.Quality))

	options := withSize(bimg.Options{
		Type:    bimg.TIFF,
		Quality: opts.Quality,
	}, opts)

	buf, err := bimg.NewImage(source).Process(options)
	if err != nil {
		logger.Error("Error converting image to tiff", zap.Error(err))
		return nil, 0, err
	}

	return bytes.NewBuffer(buf), int64(len(buf)), nil
}
