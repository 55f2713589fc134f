package httpadapter

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

// downloadUpload renders entries and their sentiments as CSV (default) or as
// a spreadsheet, selected by the format query option.
func (rt *Router) downloadUpload(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := uploadIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	upload, err := rt.uploads.Get(r.Context(), user, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		writeResultsCSV(w, upload)
	case "xlsx":
		writeResultsXLSX(w, r, upload)
	default:
		writeErrorMessage(w, http.StatusBadRequest, "invalid_input",
			fmt.Sprintf("unsupported download format %q", format))
	}
}

// resultsFilename derives the attachment name from the upload name: dots
// become dashes so the only extension is the rendered one.
func resultsFilename(name, ext string) string {
	return strings.ReplaceAll(name, ".", "-") + "-results." + ext
}

func writeResultsCSV(w http.ResponseWriter, upload *domain.Upload) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", resultsFilename(upload.Name, "csv")))

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"text", "sentiment"})
	for _, entry := range upload.Entries {
		sentiment := ""
		if entry.Sentiment != nil {
			sentiment = string(*entry.Sentiment)
		}
		_ = writer.Write([]string{entry.Text, sentiment})
	}
	writer.Flush()
}

func writeResultsXLSX(w http.ResponseWriter, r *http.Request, upload *domain.Upload) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	_ = file.SetSheetRow(sheet, "A1", &[]any{"text", "sentiment"})
	for i, entry := range upload.Entries {
		sentiment := ""
		if entry.Sentiment != nil {
			sentiment = string(*entry.Sentiment)
		}
		cell := "A" + strconv.Itoa(i+2)
		_ = file.SetSheetRow(sheet, cell, &[]any{entry.Text, sentiment})
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", resultsFilename(upload.Name, "xlsx")))

	if err := file.Write(w); err != nil {
		writeError(w, r, fmt.Errorf("render workbook: %w", err))
	}
}
