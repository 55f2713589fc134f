package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

func parsePlainText(r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("body is not valid utf-8")
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, nil
	}
	return []string{text}, nil
}
