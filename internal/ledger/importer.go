package ledger

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"salonmate/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse decodes a raw ledger blob into customer records. The export
// tool behind the ledger is outside our control: the blob may be
// UTF-8 or legacy EUC-KR, delimited by tabs, commas or spaces, and
// fields may or may not be quoted. Anything unparseable degrades to
// an empty list — the ledger is supplementary, never authoritative.
func Parse(raw []byte) []model.CustomerRecord {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	text := decode(raw)
	text = strings.TrimSpace(strings.TrimPrefix(text, "\uFEFF"))
	if text == "" {
		return nil
	}

	lines := splitLines(text)
	if len(lines) < 2 {
		// Header plus at least one data line required.
		return nil
	}

	delimiter := detectDelimiter(text)
	records := make([]model.CustomerRecord, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Split(line, delimiter)
		for i := range fields {
			fields[i] = unquote(strings.TrimSpace(fields[i]))
		}
		if len(fields) < 2 {
			continue
		}
		// First two columns are name and phone; the rest is ignored.
		records = append(records, model.CustomerRecord{Name: fields[0], Phone: fields[1]})
	}
	return records
}

// decode tries a strict UTF-8 read first and falls back to EUC-KR.
func decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), raw)
	if err != nil {
		return ""
	}
	return string(decoded)
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// detectDelimiter picks the field separator once for the whole
// blob, by priority: tab, then comma, then a single space. A
// ragged mixed-delimiter file is not supported.
func detectDelimiter(text string) string {
	switch {
	case strings.Contains(text, "\t"):
		return "\t"
	case strings.Contains(text, ","):
		return ","
	default:
		return " "
	}
}

// unquote strips one layer of surrounding double quotes. Leading
// and trailing quotes are removed independently, matching the
// tolerant behavior the ledger exports require.
func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
