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

// avifSpeed trades encoding effort for latency. AV1 encoding at low speed
// settings takes multiple seconds per image, which is unacceptable for a
// synchronous request.
const avifSpeed = 8

type Avif struct {
	logger *zap.Logger
}

func MustAvif(logger *zap.Logger) *Avif {
	return &Avif{logger: logger}
}

func (w *Avif) Encode(ctx context.Context, source []byte, opts image.Options) (io.Reader, int64, error) {
	logger := log.LoggerWithTrace(ctx, w.logger)
	logger.Debug(fmt.Sprintf("Converting image to avif with quality: %d", opts.Quality))

	options := withSize(bimg.Options{
		Type:    bimg.AVIF,
		Quality: opts.Quality,
		Speed:   avifSpeed,
	}, opts)

	buf, err := bimg.NewImage(source).Process(options)
	if err != nil {
		logger.Error("Error converting image to avif", zap.Error(err))
		return nil, 0, err
	}

	return bytes.NewBuffer(buf), int64(len(buf)), nil
}
