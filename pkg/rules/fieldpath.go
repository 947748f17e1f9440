package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidyapp/tidy/pkg/types"
)

// FieldValue is the result of resolving a dotted field path. Found is false
// whenever the owning metadata object is nil, the field itself is nil, or
// the path is malformed.
type FieldValue struct {
	Found        bool
	Value        interface{}
	OriginalType string
}

// fieldAliases maps user-facing shorthand to canonical field names,
// per namespace.
var fieldAliases = map[string]string{
	"image.make":    "cameraMake",
	"image.model":   "cameraModel",
	"image.date":    "dateTaken",
	"office.author": "creator",
	"office.date":   "created",
	"file.ext":      "extension",
	"file.filename": "fullName",
	"pdf.created":   "creationDate",
	"pdf.pages":     "pageCount",
}

// ResolveField resolves a dotted path of the form namespace.field against
// the file's context. Namespaces are file, image, pdf and office.
func ResolveField(path string, ctx types.PlaceholderContext) FieldValue {
	parts := strings.Split(path, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return FieldValue{}
	}

	namespace := parts[0]
	field := parts[1]
	if alias, ok := fieldAliases[namespace+"."+field]; ok {
		field = alias
	}

	switch namespace {
	case "file":
		return resolveFileField(field, ctx.File)
	case "image":
		return resolveImageField(field, ctx.Image)
	case "pdf":
		return resolvePDFField(field, ctx.PDF)
	case "office":
		return resolveOfficeField(field, ctx.Office)
	default:
		return FieldValue{}
	}
}

func found(v interface{}, typ string) FieldValue {
	return FieldValue{Found: true, Value: v, OriginalType: typ}
}

func foundString(s string) FieldValue {
	if s == "" {
		return FieldValue{}
	}
	return found(s, "string")
}

func foundTime(t *time.Time) FieldValue {
	if t == nil {
		return FieldValue{}
	}
	return found(*t, "date")
}

func resolveFileField(field string, file types.FileInfo) FieldValue {
	switch field {
	case "name":
		return foundString(file.Name)
	case "extension":
		return foundString(file.Extension)
	case "fullName":
		return foundString(file.FullName)
	case "path":
		return foundString(file.Path)
	case "relativePath":
		return foundString(file.RelativePath)
	case "category":
		return foundString(string(file.Category))
	case "size":
		return found(file.Size, "number")
	case "modifiedAt":
		return found(file.ModifiedAt, "date")
	case "createdAt":
		if file.CreatedAt.IsZero() {
			return FieldValue{}
		}
		return found(file.CreatedAt, "date")
	default:
		return FieldValue{}
	}
}

func resolveImageField(field string, img *types.ImageMetadata) FieldValue {
	if img == nil {
		return FieldValue{}
	}
	switch field {
	case "cameraMake":
		return foundString(img.CameraMake)
	case "cameraModel":
		return foundString(img.CameraModel)
	case "dateTaken":
		return foundTime(img.DateTaken)
	case "gpsLatitude":
		if img.GPSLatitude == nil {
			return FieldValue{}
		}
		return found(*img.GPSLatitude, "number")
	case "gpsLongitude":
		if img.GPSLongitude == nil {
			return FieldValue{}
		}
		return found(*img.GPSLongitude, "number")
	case "width":
		if img.Width == 0 {
			return FieldValue{}
		}
		return found(img.Width, "number")
	case "height":
		if img.Height == 0 {
			return FieldValue{}
		}
		return found(img.Height, "number")
	default:
		return FieldValue{}
	}
}

func resolvePDFField(field string, pdf *types.PDFMetadata) FieldValue {
	if pdf == nil {
		return FieldValue{}
	}
	switch field {
	case "title":
		return foundString(pdf.Title)
	case "author":
		return foundString(pdf.Author)
	case "creationDate":
		return foundTime(pdf.CreationDate)
	case "pageCount":
		if pdf.PageCount == 0 {
			return FieldValue{}
		}
		return found(pdf.PageCount, "number")
	default:
		return FieldValue{}
	}
}

func resolveOfficeField(field string, office *types.OfficeMetadata) FieldValue {
	if office == nil {
		return FieldValue{}
	}
	switch field {
	case "title":
		return foundString(office.Title)
	case "creator":
		return foundString(office.Creator)
	case "created":
		return foundTime(office.Created)
	case "modified":
		return foundTime(office.Modified)
	default:
		return FieldValue{}
	}
}

// StringValue renders a field value for comparison. Dates use RFC 3339 date
// form so condition values stay human-writable.
func (v FieldValue) StringValue() string {
	if !v.Found {
		return ""
	}
	switch val := v.Value.(type) {
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", val)
	}
}
