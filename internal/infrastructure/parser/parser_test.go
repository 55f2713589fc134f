package parser

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

func TestParsePlainText(t *testing.T) {
	p := New()

	format, texts, err := p.Parse("note.txt", "text/plain", strings.NewReader("  hello world \n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if format != domain.FormatPlain {
		t.Fatalf("expected plain format, got %s", format)
	}
	if len(texts) != 1 || texts[0] != "hello world" {
		t.Fatalf("expected single trimmed entry, got %v", texts)
	}
}

func TestParsePlainTextRejectsInvalidUTF8(t *testing.T) {
	p := New()

	_, _, err := p.Parse("note.txt", "text/plain", bytes.NewReader([]byte{0xff, 0xfe, 0x41}))
	if err == nil {
		t.Fatalf("expected error for invalid utf-8")
	}
}

func TestParsePlainTextEmptyBody(t *testing.T) {
	p := New()

	_, texts, err := p.Parse("note.txt", "text/plain", strings.NewReader("   \n  "))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(texts) != 0 {
		t.Fatalf("expected no entries, got %v", texts)
	}
}

func TestParseSpreadsheetOneEntryPerRow(t *testing.T) {
	file := excelize.NewFile()
	sheet := file.GetSheetName(0)
	_ = file.SetCellValue(sheet, "A1", "first row")
	_ = file.SetCellValue(sheet, "A2", "  ")
	_ = file.SetCellValue(sheet, "A3", "third row")
	buf, err := file.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	p := New()
	format, texts, err := p.Parse("reviews.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if format != domain.FormatSpreadsheet {
		t.Fatalf("expected spreadsheet format, got %s", format)
	}
	if len(texts) != 2 || texts[0] != "first row" || texts[1] != "third row" {
		t.Fatalf("expected blank rows skipped, got %v", texts)
	}
}

func TestParseDocumentSingleEntry(t *testing.T) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	body, err := archive.Create("word/document.xml")
	if err != nil {
		t.Fatalf("zip create error = %v", err)
	}
	_, _ = body.Write([]byte(`<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>first paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>second paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`))
	if err := archive.Close(); err != nil {
		t.Fatalf("zip close error = %v", err)
	}

	p := New()
	format, texts, err := p.Parse("report.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", &buf)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if format != domain.FormatDocument {
		t.Fatalf("expected document format, got %s", format)
	}
	if len(texts) != 1 {
		t.Fatalf("expected single entry, got %v", texts)
	}
	if !strings.Contains(texts[0], "first paragraph\nsecond paragraph") {
		t.Fatalf("expected paragraphs joined by newline, got %q", texts[0])
	}
}

func TestParseUnsupportedType(t *testing.T) {
	p := New()

	_, _, err := p.Parse("photo.png", "image/png", strings.NewReader("binary"))
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestDetectFormatFallsBackToMIME(t *testing.T) {
	format, err := detectFormat("upload", "text/plain; charset=utf-8")
	if err != nil {
		t.Fatalf("detectFormat() error = %v", err)
	}
	if format != domain.FormatPlain {
		t.Fatalf("expected plain format, got %s", format)
	}
}

func TestDetectFormatExtensionWins(t *testing.T) {
	format, err := detectFormat("data.xlsx", "application/octet-stream")
	if err != nil {
		t.Fatalf("detectFormat() error = %v", err)
	}
	if format != domain.FormatSpreadsheet {
		t.Fatalf("expected spreadsheet format, got %s", format)
	}
}
