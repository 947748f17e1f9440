package casing

import "strings"

// knownAcronyms is the immutable process-wide acronym table consulted by the
// preservation mode. Built once at startup, never mutated.
var knownAcronyms = func() map[string]struct{} {
	list := []string{
		"API", "ASCII", "CPU", "CSS", "CSV", "DB", "DNS", "DVD", "EXIF",
		"FAQ", "FTP", "GIF", "GPS", "GPU", "HD", "HTML", "HTTP", "HTTPS",
		"ID", "IO", "IP", "ISO", "JPEG", "JPG", "JSON", "MP3", "MP4",
		"PDF", "PNG", "RAM", "RAW", "SQL", "SSD", "SSH", "SSL", "SVG",
		"TIFF", "TLS", "TV", "UI", "URI", "URL", "USB", "UTF", "UUID",
		"VPN", "XML", "YAML", "ZIP",
	}
	m := make(map[string]struct{}, len(list))
	for _, a := range list {
		m[a] = struct{}{}
	}
	return m
}()

// IsAcronym reports whether word is in the known-acronym table,
// case-insensitively.
func IsAcronym(word string) bool {
	_, ok := knownAcronyms[strings.ToUpper(word)]
	return ok
}
