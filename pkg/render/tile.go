package render

import (
	"bytes"
	"context"

	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/style"
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 95

// Tile renders req and encodes the result. An empty format uses the
// style's preferred format.
func Tile(ctx context.Context, req *Request, format style.Format) ([]byte, style.Format, error) {
	if format == "" && req.Style != nil {
		format = req.Style.PreferredFormat
	}
	if format == "" {
		format = style.FormatPNG
	}

	var buf bytes.Buffer
	switch format {
	case style.FormatSVG:
		v := graphics.NewVector(float64(req.Width), float64(req.Height))
		if err := RenderContext(ctx, v, req); err != nil {
			return nil, format, err
		}
		if err := v.Serialize(&buf); err != nil {
			return nil, format, errors.Wrap(errors.ErrCodeRender, err, "serialize svg")
		}

	case style.FormatPNG, style.FormatJPEG:
		r := graphics.NewRaster(req.Width, req.Height)
		defer r.Close()
		if err := RenderContext(ctx, r, req); err != nil {
			return nil, format, err
		}
		var err error
		if format == style.FormatPNG {
			err = r.EncodePNG(&buf)
		} else {
			err = r.EncodeJPEG(&buf, JPEGQuality)
		}
		if err != nil {
			return nil, format, errors.Wrap(errors.ErrCodeRender, err, "encode %s", format)
		}

	default:
		return nil, format, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	return buf.Bytes(), format, nil
}
