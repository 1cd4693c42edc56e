// Package resume extracts plain text from uploaded résumés and scores it
// against the job market keywords used for CV analysis.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Supported content types
const (
	MIMEText = "text/plain"
	MIMEPDF  = "application/pdf"
	MIMEDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedType is returned for files that are not text, PDF or DOCX
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrUnreadable is returned when a PDF or DOCX file cannot be parsed
	ErrUnreadable = errors.New("unreadable document")
	// ErrTooLarge is returned by ReadAll when the input exceeds its limit
	ErrTooLarge = errors.New("upload too large")
)

var extensionTypes = map[string]string{
	".txt":  MIMEText,
	".md":   MIMEText,
	".pdf":  MIMEPDF,
	".docx": MIMEDocx,
}

var xmlTag = regexp.MustCompile(`<[^>]+>`)

// DetectType resolves the content type of an upload. The declared type wins
// when it is one we support; otherwise the file extension decides.
func DetectType(filename, declared string) string {
	mime := strings.ToLower(strings.TrimSpace(strings.Split(declared, ";")[0]))
	switch mime {
	case MIMEText, MIMEPDF, MIMEDocx:
		return mime
	}
	return extensionTypes[strings.ToLower(filepath.Ext(filename))]
}

// ExtractText returns the plain text of a résumé file
func ExtractText(mime string, data []byte) (string, error) {
	switch mime {
	case MIMEText:
		return string(data), nil
	case MIMEPDF:
		return extractPDFText(data)
	case MIMEDocx:
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, mime)
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// the pdf package panics on some malformed object streams
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("%w: malformed pdf: %v", ErrUnreadable, p)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to read pdf: %w", ErrUnreadable, err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: failed to read pdf page %d: %w", ErrUnreadable, i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse docx: %w", ErrUnreadable, err)
	}
	defer func() { _ = doc.Close() }()

	// content is the raw document XML
	content := doc.Editable().GetContent()
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	return strings.TrimSpace(xmlTag.ReplaceAllString(content, " ")), nil
}

// ReadAll reads an upload fully, refusing anything larger than limit bytes
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}
