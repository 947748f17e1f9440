package scanner

import (
	"strings"

	"github.com/tidyapp/tidy/pkg/types"
)

// categoryByExtension is built once at startup and never mutated.
var categoryByExtension = buildCategoryRegistry()

func buildCategoryRegistry() map[string]types.Category {
	reg := make(map[string]types.Category, 96)
	add := func(cat types.Category, exts ...string) {
		for _, e := range exts {
			reg[e] = cat
		}
	}

	add(types.CategoryImage,
		"jpg", "jpeg", "png", "gif", "bmp", "webp", "svg", "ico", "tiff", "tif",
		"heic", "heif", "raw", "cr2", "nef", "arw", "dng")
	add(types.CategoryDocument,
		"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "odt", "ods", "odp",
		"txt", "rtf", "md", "csv")
	add(types.CategoryVideo,
		"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "m4v", "mpeg", "mpg")
	add(types.CategoryAudio,
		"mp3", "wav", "flac", "aac", "ogg", "wma", "m4a", "opus")
	add(types.CategoryArchive,
		"zip", "tar", "gz", "bz2", "xz", "7z", "rar", "iso")
	add(types.CategoryCode,
		"js", "ts", "jsx", "tsx", "py", "rs", "go", "java", "c", "cpp", "h", "hpp",
		"cs", "rb", "php", "swift", "kt", "scala", "html", "css", "scss", "less",
		"json", "yaml", "yml", "xml", "toml", "sql", "sh", "bash", "ps1")
	add(types.CategoryData,
		"db", "sqlite", "mdb", "accdb")

	return reg
}

// CategoryForExtension classifies a file by its extension, without the dot.
func CategoryForExtension(ext string) types.Category {
	if cat, ok := categoryByExtension[strings.ToLower(ext)]; ok {
		return cat
	}
	return types.CategoryOther
}
