package types

// Template defines a naming pattern for renaming files. Pattern is the source
// of truth; FileTypes is advisory metadata for presentation layers and is not
// enforced by the engine.
type Template struct {
	ID        string   `json:"id" koanf:"id" toml:"id"`
	Name      string   `json:"name" koanf:"name" toml:"name"`
	Pattern   string   `json:"pattern" koanf:"pattern" toml:"pattern"`
	FileTypes []string `json:"fileTypes,omitempty" koanf:"file_types" toml:"file_types"`
	IsDefault bool     `json:"isDefault" koanf:"is_default" toml:"is_default"`
}

// FolderStructure defines a folder pattern for organizing files into
// directories, e.g. "{year}/{month}".
type FolderStructure struct {
	ID          string `json:"id" koanf:"id" toml:"id"`
	Name        string `json:"name" koanf:"name" toml:"name"`
	Pattern     string `json:"pattern" koanf:"pattern" toml:"pattern"`
	Description string `json:"description,omitempty" koanf:"description" toml:"description"`
	Enabled     bool   `json:"enabled" koanf:"enabled" toml:"enabled"`
	Priority    int    `json:"priority" koanf:"priority" toml:"priority"`
}
