package extract

import (
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/types"
)

// extractImage reads EXIF data from an image file. Files without an EXIF
// block return an EXTRACT_FAILED error, which the caller treats as
// "no metadata" rather than a batch failure.
func extractImage(path string) (*types.ImageMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrExtract, "no EXIF data in %s", path)
	}

	meta := &types.ImageMetadata{}

	if t, err := x.DateTime(); err == nil && !t.IsZero() {
		utc := t.UTC()
		meta.DateTaken = &utc
	}
	meta.CameraMake = exifString(x, exif.Make)
	meta.CameraModel = exifString(x, exif.Model)

	if lat, long, err := x.LatLong(); err == nil {
		meta.GPSLatitude = &lat
		meta.GPSLongitude = &long
	}

	meta.Width = exifInt(x, exif.PixelXDimension)
	meta.Height = exifInt(x, exif.PixelYDimension)

	return meta, nil
}

func exifString(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func exifInt(x *exif.Exif, name exif.FieldName) int {
	tag, err := x.Get(name)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}
