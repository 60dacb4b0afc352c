package format

import (
	"github.com/h2non/bimg"

	"imgconv/converter/image"
)

// withSize maps the normalized resize parameters onto bimg options. Enlarge
// stays off so a resize can never invent resolution the source does not have;
// Force is only set when the caller explicitly gave up the aspect ratio.
func withSize(o bimg.Options, opts image.Options) bimg.Options {
	o.Width = opts.Width
	o.Height = opts.Height
	o.Enlarge = false

	if opts.Width > 0 && opts.Height > 0 && !opts.KeepAspect {
		o.Force = true
	}

	return o
}
