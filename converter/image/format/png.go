package format

import (
	"bytes"
	"context"
	"io"

	"github.com/h2non/bimg"
	"go.uber.org/zap"

	"imgconv/converter/image"
	"imgconv/shared/log"
)

// pngCompression is the zlib effort level, a fixed speed/size tradeoff.
const pngCompression = 6

type Png struct {
	logger *zap.Logger
}

func MustPng(logger *zap.Logger) *Png {
	return &Png{logger: logger}
}

// Encode re-encodes to PNG. The format is lossless, so the quality knob is
// ignored; palette output is preferred to keep files small.
func (w *Png) Encode(ctx context.Context, source []byte, opts image.Options) (io.Reader, int64, error) {
	logger := log.LoggerWithTrace(ctx, w.logger)
	logger.Debug("Converting image to png")

	options := withSize(bimg.Options{
		Type:        bimg.PNG,
		Compression: pngCompression,
		Palette:     true,
	}, opts)

	buf, err := bimg.NewImage(source).Process(options)
	if err != nil {
		logger.Error("Error converting image to png", zap.Error(err))
		return nil, 0, err
	}

	return bytes.NewBuffer(buf), int64(len(buf)), nil
}
