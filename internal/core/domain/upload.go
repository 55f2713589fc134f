package domain

import "time"

type UploadStatus string

const (
	StatusPending    UploadStatus = "pending"
	StatusProcessing UploadStatus = "processing"
	StatusReady      UploadStatus = "ready"
	StatusError      UploadStatus = "error"
)

// Terminal reports whether the status admits no further transitions.
func (s UploadStatus) Terminal() bool {
	return s == StatusReady || s == StatusError
}

type UploadFormat string

const (
	FormatPlain       UploadFormat = "plain"
	FormatSpreadsheet UploadFormat = "spreadsheet"
	FormatDocument    UploadFormat = "document"
	FormatPDF         UploadFormat = "pdf"
)

type Upload struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Format    UploadFormat  `json:"format"`
	Status    UploadStatus  `json:"status"`
	CreatedBy string        `json:"created_by"`
	CreatedAt time.Time     `json:"created_at"`
	Entries   []UploadEntry `json:"entries,omitempty"`
}

// UploadEntry is one classifiable unit of text. Entry ids are dense and
// 0-based within their upload; Sentiment stays nil until the worker writes it.
type UploadEntry struct {
	UploadID  int64      `json:"-"`
	ID        int        `json:"id"`
	Text      string     `json:"text"`
	Sentiment *Sentiment `json:"sentiment"`
}
