// Package parser turns uploaded files into ordered entry texts. Spreadsheets
// contribute one entry per row; plain text, word-processor documents and PDFs
// contribute a single entry with the whole extracted text.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

const (
	mimePlain       = "text/plain"
	mimeSpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeDocument    = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePDF         = "application/pdf"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse detects the content shape from the filename extension (falling back
// to the declared MIME type) and extracts entry texts. Unrecognized types
// fail before anything is read.
func (p *Parser) Parse(filename, mimeType string, r io.Reader) (domain.UploadFormat, []string, error) {
	format, err := detectFormat(filename, mimeType)
	if err != nil {
		return "", nil, err
	}

	var texts []string
	switch format {
	case domain.FormatPlain:
		texts, err = parsePlainText(r)
	case domain.FormatSpreadsheet:
		texts, err = parseSpreadsheet(r)
	case domain.FormatDocument:
		texts, err = parseDocument(r)
	case domain.FormatPDF:
		texts, err = parsePDF(r)
	}
	if err != nil {
		return "", nil, fmt.Errorf("extract %s content: %w", format, err)
	}
	return format, texts, nil
}

func detectFormat(filename, mimeType string) (domain.UploadFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return domain.FormatPlain, nil
	case ".xlsx", ".xlsm":
		return domain.FormatSpreadsheet, nil
	case ".docx":
		return domain.FormatDocument, nil
	case ".pdf":
		return domain.FormatPDF, nil
	}

	mime, _, _ := strings.Cut(strings.TrimSpace(mimeType), ";")
	switch mime {
	case mimePlain:
		return domain.FormatPlain, nil
	case mimeSpreadsheet:
		return domain.FormatSpreadsheet, nil
	case mimeDocument:
		return domain.FormatDocument, nil
	case mimePDF:
		return domain.FormatPDF, nil
	}

	return "", domain.WrapError(domain.ErrInvalidInput, "detect file type",
		fmt.Errorf("unsupported file %q (%s)", filename, mimeType))
}
