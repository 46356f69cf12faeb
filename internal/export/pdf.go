package export

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 72.0 // 1in
	pdfBodyTop    = 93.6 // 1.3in
	pdfLeading    = 14.0
	maxTitleRunes = 80
	maxLineRunes  = 95
)

// RenderPDF lays out a note on US Letter pages: a bold title followed by the
// content one line per row, continuing on new pages below the bottom margin.
func RenderPDF(title, content string) ([]byte, error) {
	var buf bytes.Buffer
	if err := layout(title, content).Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func layout(title, content string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	_, height := pdf.GetPageSize()

	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(pdfMargin, pdfMargin, tr(truncate(title, maxTitleRunes)))

	pdf.SetFont("Helvetica", "", 11)
	y := pdfBodyTop
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		if y > height-pdfMargin {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 11)
			y = pdfMargin
		}
		pdf.Text(pdfMargin, y, tr(truncate(line, maxLineRunes)))
		y += pdfLeading
	}
	return pdf
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
