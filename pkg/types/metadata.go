package types

import "time"

// ImageMetadata holds EXIF facts extracted from an image file
type ImageMetadata struct {
	DateTaken    *time.Time `json:"dateTaken,omitempty"`
	CameraMake   string     `json:"cameraMake,omitempty"`
	CameraModel  string     `json:"cameraModel,omitempty"`
	GPSLatitude  *float64   `json:"gpsLatitude,omitempty"`
	GPSLongitude *float64   `json:"gpsLongitude,omitempty"`
	Width        int        `json:"width,omitempty"`
	Height       int        `json:"height,omitempty"`
}

// PDFMetadata holds document information from a PDF Info dictionary
type PDFMetadata struct {
	Title        string     `json:"title,omitempty"`
	Author       string     `json:"author,omitempty"`
	CreationDate *time.Time `json:"creationDate,omitempty"`
	PageCount    int        `json:"pageCount,omitempty"`
}

// OfficeMetadata holds OOXML core properties (docx, xlsx, pptx)
type OfficeMetadata struct {
	Title    string     `json:"title,omitempty"`
	Creator  string     `json:"creator,omitempty"`
	Created  *time.Time `json:"created,omitempty"`
	Modified *time.Time `json:"modified,omitempty"`
}

// UnifiedMetadata bundles the optional per-file metadata supplied by the
// extraction subsystem. Any or all sections may be nil.
type UnifiedMetadata struct {
	Image  *ImageMetadata  `json:"image,omitempty"`
	PDF    *PDFMetadata    `json:"pdf,omitempty"`
	Office *OfficeMetadata `json:"office,omitempty"`
}

// PlaceholderContext is the read-only view of one file's facts assembled for
// placeholder resolution. It is never mutated by resolvers.
type PlaceholderContext struct {
	File   FileInfo
	Image  *ImageMetadata
	PDF    *PDFMetadata
	Office *OfficeMetadata
}

// NewPlaceholderContext builds a context from a file and its (possibly nil)
// metadata bundle.
func NewPlaceholderContext(file FileInfo, meta *UnifiedMetadata) PlaceholderContext {
	ctx := PlaceholderContext{File: file}
	if meta != nil {
		ctx.Image = meta.Image
		ctx.PDF = meta.PDF
		ctx.Office = meta.Office
	}
	return ctx
}
