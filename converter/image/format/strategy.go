package format

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"imgconv/converter/image"
)

var (
	once           sync.Once
	singleInstance *Strategy
)

type Strategy struct {
	m map[image.Type]image.Encoder
}

// MustStrategy builds the format -> encoder table. It panics when any member
// of the format enumeration is missing an encoder, extension or MIME entry,
// so a policy defect surfaces at startup instead of inside a request.
func MustStrategy(logger *zap.Logger) *Strategy {
	once.Do(func() {
		singleInstance = &Strategy{m: map[image.Type]image.Encoder{
			image.JPEG: MustJpeg(logger),
			image.PNG:  MustPng(logger),
			image.WEBP: MustWebp(logger),
			image.AVIF: MustAvif(logger),
			image.TIFF: MustTiff(logger),
			image.GIF:  MustGif(logger),
		}}

		for _, t := range image.All {
			if _, ok := singleInstance.m[t]; !ok {
				panic(fmt.Sprintf("no encoder registered for format %q", t.String()))
			}
			if t.Ext() == "" {
				panic(fmt.Sprintf("no extension mapped for format %q", t.String()))
			}
			if t.MIME() == "" {
				panic(fmt.Sprintf("no MIME type mapped for format %q", t.String()))
			}
		}
	})

	return singleInstance
}

func (s *Strategy) Apply(t image.Type) image.Encoder {
	return s.m[t]
}
