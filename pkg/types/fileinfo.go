package types

import "time"

// Category classifies a file by its extension
type Category string

const (
	CategoryImage    Category = "image"
	CategoryDocument Category = "document"
	CategoryVideo    Category = "video"
	CategoryAudio    Category = "audio"
	CategoryArchive  Category = "archive"
	CategoryCode     Category = "code"
	CategoryData     Category = "data"
	CategoryOther    Category = "other"
)

// DisplayName returns the folder-friendly name for a category,
// used by the {category} placeholder.
func (c Category) DisplayName() string {
	switch c {
	case CategoryImage:
		return "Images"
	case CategoryDocument:
		return "Documents"
	case CategoryVideo:
		return "Videos"
	case CategoryAudio:
		return "Audio"
	case CategoryArchive:
		return "Archives"
	case CategoryCode:
		return "Code"
	case CategoryData:
		return "Data"
	default:
		return "Other"
	}
}

// FileInfo describes a scanned file. It is supplied by the scanner and
// consumed read-only by the proposal engine.
type FileInfo struct {
	// Path is the full path to the file
	Path string `json:"path"`

	// Name is the filename without extension
	Name string `json:"name"`

	// Extension is the file extension without the leading dot
	Extension string `json:"extension"`

	// FullName is the filename with extension
	FullName string `json:"fullName"`

	// Size in bytes
	Size int64 `json:"size"`

	// CreatedAt is the file creation timestamp (birth time where available)
	CreatedAt time.Time `json:"createdAt"`

	// ModifiedAt is the file modification timestamp, always present
	ModifiedAt time.Time `json:"modifiedAt"`

	// RelativePath is the path relative to the scan root
	RelativePath string `json:"relativePath"`

	// Category is derived from the extension
	Category Category `json:"category"`
}
