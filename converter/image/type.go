package image

import "fmt"

// Type is the closed set of target encodings the service can produce.
type Type struct {
	s string
}

var (
	JPEG = Type{"jpeg"}
	PNG  = Type{"png"}
	WEBP = Type{"webp"}
	AVIF = Type{"avif"}
	TIFF = Type{"tiff"}
	GIF  = Type{"gif"}
)

// All enumerates every member. Table guards and the /formats endpoint range
// over this, so a new format only has to be added here and in the two maps.
var All = []Type{JPEG, PNG, WEBP, AVIF, TIFF, GIF}

var extensions = map[Type]string{
	JPEG: "jpg",
	PNG:  "png",
	WEBP: "webp",
	AVIF: "avif",
	TIFF: "tiff",
	GIF:  "gif",
}

var mimeTypes = map[Type]string{
	JPEG: "image/jpeg",
	PNG:  "image/png",
	WEBP: "image/webp",
	AVIF: "image/avif",
	TIFF: "image/tiff",
	GIF:  "image/gif",
}

func (t Type) String() string {
	return t.s
}

// Ext returns the canonical file extension, without the dot.
func (t Type) Ext() string {
	return extensions[t]
}

// MIME returns the response Content-Type for the encoding.
func (t Type) MIME() string {
	return mimeTypes[t]
}

func MakeFromString(s string) (Type, error) {
	switch s {
	case JPEG.s, "jpg":
		return JPEG, nil
	case PNG.s:
		return PNG, nil
	case WEBP.s:
		return WEBP, nil
	case AVIF.s:
		return AVIF, nil
	case TIFF.s:
		return TIFF, nil
	case GIF.s:
		return GIF, nil
	}

	return Type{}, fmt.Errorf("unknown type: %s", s)
}
