package export

import (
	"fmt"
	"io"
	"strings"
)

// Format is an export target.
type Format string

const (
	FormatJSON   Format = "json"
	FormatPDF    Format = "pdf"
	FormatXLSX   Format = "xlsx"
	FormatSheets Format = "sheets"
)

// FileFormats are the formats that produce a downloadable file.
var FileFormats = []Format{FormatJSON, FormatPDF, FormatXLSX}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatPDF, FormatXLSX, FormatSheets:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

func (f Format) IsFile() bool {
	return f == FormatJSON || f == FormatPDF || f == FormatXLSX
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// FileName returns relatorio-<yyyy>-<mm>.<ext>.
func FileName(year, month int, f Format) string {
	return fmt.Sprintf("relatorio-%04d-%02d.%s", year, month, f)
}

// Render writes snap to w in a file format.
func Render(w io.Writer, f Format, snap Snapshot) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, snap)
	case FormatPDF:
		return WritePDF(w, snap)
	case FormatXLSX:
		return WriteXLSX(w, snap)
	default:
		return fmt.Errorf("format %q does not produce a file", f)
	}
}
