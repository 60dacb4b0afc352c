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

type Jpeg struct {
	logger *zap.Logger
}

func MustJpeg(logger *zap.Logger) *Jpeg {
	return &Jpeg{logger: logger}
}

func (w *Jpeg) Encode(ctx context.Context, source []byte, opts image.Options) (io.Reader, int64, error) {
	logger := log.LoggerWithTrace(ctx, w.logger)
	logger.Debug(fmt.Sprintf("Converting image to jpeg with quality: %d", opts.Quality))

	// Progressive scan by default, baseline carries no benefit here.
	options := withSize(bimg.Options{
		Type:      bimg.JPEG,
		Quality:   opts.Quality,
		Interlace: true,
	}, opts)

	buf, err := bimg.NewImage(source).Process(options)
	if err != nil {
		logger.Error("Error converting image to jpeg", zap.Error(err))
		return nil, 0, err
	}

	return bytes.NewBuffer(buf), int64(len(buf)), nil
}
