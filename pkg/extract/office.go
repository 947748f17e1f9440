package extract

import (
	"archive/zip"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/types"
)

// corePropsPath is where OOXML containers keep their Dublin Core
// properties.
const corePropsPath = "docProps/core.xml"

// extractOffice reads the core properties part of an OOXML container
// (docx, xlsx, pptx). Containers without the part yield empty metadata.
func extractOffice(path string) (*types.OfficeMetadata, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrExtract, "not an OOXML container: %s", path)
	}
	defer func() { _ = zr.Close() }()

	var core *zip.File
	for _, f := range zr.File {
		if f.Name == corePropsPath {
			core = f
			break
		}
	}
	if core == nil {
		return &types.OfficeMetadata{}, nil
	}

	rc, err := core.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(rc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrExtract, "malformed core properties in %s", path)
	}

	root := doc.Root()
	if root == nil {
		return &types.OfficeMetadata{}, nil
	}

	meta := &types.OfficeMetadata{
		Title:   coreText(root, "title"),
		Creator: coreText(root, "creator"),
	}
	meta.Created = coreTime(root, "created")
	meta.Modified = coreTime(root, "modified")
	return meta, nil
}

// coreText finds a Dublin Core element by local name regardless of the
// namespace prefix the producer chose.
func coreText(root *etree.Element, local string) string {
	for _, child := range root.ChildElements() {
		if child.Tag == local {
			return strings.TrimSpace(child.Text())
		}
	}
	return ""
}

func coreTime(root *etree.Element, local string) *time.Time {
	raw := coreText(root, local)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
