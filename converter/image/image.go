package image

import (
	"context"
	"io"
)

// Options is the normalized parameter set handed to an encoder. Resizing fits
// the image inside Width x Height and never enlarges past the source
// resolution.
type Options struct {
	Quality    int
	Width      int
	Height     int
	KeepAspect bool
}

// Encoder is the capability boundary to the underlying image engine: raw
// source bytes in, encoded bytes out. Everything interesting about pixels
// happens behind this interface.
type Encoder interface {
	Encode(ctx context.Context, source []byte, opts Options) (io.Reader, int64, error)
}
