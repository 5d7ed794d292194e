package format

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/alecthomas/chroma/v2/quick"
)

// Duration formats duration in milliseconds to human-readable string
func Duration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// Size formats byte size to human-readable string
func Size(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}

// PrettyJSON indents a decoded JSON value for display. Falls back to the
// raw text when the value cannot be marshalled.
func PrettyJSON(v interface{}, fallback string) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fallback
	}
	return string(out)
}

// HighlightJSON renders JSON text with terminal syntax highlighting.
// The input is returned untouched when highlighting fails, so callers can
// use the result unconditionally.
func HighlightJSON(src, style string) string {
	if style == "" {
		style = "monokai"
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, src, "json", "terminal256", style); err != nil {
		return src
	}
	return buf.String()
}
