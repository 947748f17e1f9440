package extract

import (
	"bytes"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/tidyapp/tidy/pkg/errors"
	"github.com/tidyapp/tidy/pkg/types"
)

// maxPDFScan caps how much of a PDF is scanned for the Info dictionary.
// The trailer and Info object sit near the end of well-formed files, so
// the tail window is what matters in practice.
const maxPDFScan = 4 << 20

var (
	pdfTitleRe    = regexp.MustCompile(`/Title\s*\(((?:\\.|[^)\\])*)\)`)
	pdfAuthorRe   = regexp.MustCompile(`/Author\s*\(((?:\\.|[^)\\])*)\)`)
	pdfCreatedRe  = regexp.MustCompile(`/CreationDate\s*\(D:(\d{4})(\d{2})?(\d{2})?(\d{2})?(\d{2})?(\d{2})?`)
	pdfCountRe    = regexp.MustCompile(`/Count\s+(\d+)`)
	pdfEscapeRe   = regexp.MustCompile(`\\([()\\])`)
	pdfHeaderMark = []byte("%PDF-")
)

// extractPDF scans a PDF's Info dictionary without a full object parse.
// Strings are read as literal strings only; hex and UTF-16 strings are
// skipped, matching the tolerant reads the preview engine expects.
func extractPDF(path string) (*types.PDFMetadata, error) {
	data, err := readPDFWindow(path)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, pdfHeaderMark) && !bytes.Contains(data, pdfHeaderMark) {
		return nil, errors.Newf(errors.ErrExtract, "not a PDF file: %s", path)
	}

	meta := &types.PDFMetadata{
		Title:  pdfString(pdfTitleRe, data),
		Author: pdfString(pdfAuthorRe, data),
	}

	if m := pdfCreatedRe.FindSubmatch(data); m != nil {
		meta.CreationDate = pdfDate(m)
	}

	// The page tree root carries the full count; nested nodes carry
	// partial counts, so take the maximum.
	for _, m := range pdfCountRe.FindAllSubmatch(data, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n > meta.PageCount {
			meta.PageCount = n
		}
	}

	return meta, nil
}

// readPDFWindow reads the whole file when small, otherwise the head and
// tail windows that hold the header and trailer.
func readPDFWindow(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() <= maxPDFScan {
		return os.ReadFile(path)
	}

	head := make([]byte, maxPDFScan/2)
	if _, err := f.ReadAt(head, 0); err != nil {
		return nil, err
	}
	tail := make([]byte, maxPDFScan/2)
	if _, err := f.ReadAt(tail, info.Size()-int64(len(tail))); err != nil {
		return nil, err
	}
	return append(head, tail...), nil
}

func pdfString(re *regexp.Regexp, data []byte) string {
	m := re.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return string(pdfEscapeRe.ReplaceAll(m[1], []byte("$1")))
}

// pdfDate converts the captured D:YYYYMMDDHHMMSS groups. Missing groups
// default the way the PDF spec does: month and day to 1, time to 0.
func pdfDate(m [][]byte) *time.Time {
	year := pdfDigits(m[1], 0)
	if year == 0 {
		return nil
	}
	month := pdfDigits(m[2], 1)
	day := pdfDigits(m[3], 1)
	hour := pdfDigits(m[4], 0)
	minute := pdfDigits(m[5], 0)
	second := pdfDigits(m[6], 0)

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	return &t
}

func pdfDigits(b []byte, def int) int {
	if len(b) == 0 {
		return def
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return def
	}
	return n
}
