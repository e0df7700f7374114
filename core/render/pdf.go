package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/recipecard/core"
)

// Card geometry in inches. gofpdf treats Size as portrait and swaps it for "L".
const (
	cardShort  = 4.0
	cardLong   = 6.0
	cardMargin = 0.3
	lineHeight = 0.17
)

// PDFRenderer renders a two-sided 6x4 inch index card: the front carries
// the header and ingredients, the back the instructions and source.
// Overflowing text continues on extra pages.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render lays out the card and returns the PDF bytes.
func (r *PDFRenderer) Render(recipe core.Recipe) ([]byte, error) {
	c := newCard(recipe)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: cardShort, Ht: cardLong},
	})
	pdf.SetMargins(cardMargin, cardMargin, cardMargin)
	pdf.SetAutoPageBreak(true, cardMargin+0.1)
	pdf.SetTitle(c.Title, true)
	// Core fonts are cp1252; translate so accents and bullets survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Front.
	pdf.AddPage()
	pdf.SetFont("Times", "B", 15)
	pdf.MultiCell(0, 0.25, tr(strings.ToUpper(c.Title)), "", "L", false)

	if c.Yield != "" {
		pdf.SetFont("Times", "I", 9)
		pdf.MultiCell(0, lineHeight, tr("Yields: "+c.Yield), "", "L", false)
	}
	if len(c.Times) > 0 {
		parts := make([]string, len(c.Times))
		for i, t := range c.Times {
			parts[i] = strings.ToUpper(t.Label + ": " + t.Value)
		}
		pdf.SetFont("Times", "B", 8)
		pdf.MultiCell(0, lineHeight, tr(strings.Join(parts, "    ")), "", "L", false)
	}
	rule(pdf, 0.02)

	section(pdf, tr, "Ingredients")
	pdf.SetFont("Times", "", 9)
	for _, ing := range c.Ingredients {
		pdf.MultiCell(0, lineHeight, tr("• "+ing), "", "L", false)
	}

	// Back.
	pdf.AddPage()
	section(pdf, tr, "Instructions")
	pdf.SetFont("Times", "", 9)
	for i, step := range c.Instructions {
		pdf.MultiCell(0, lineHeight, tr(fmt.Sprintf("%d. %s", i+1, step)), "", "L", false)
		pdf.Ln(0.04)
	}

	if c.Host != "" {
		_, pageHeight := pdf.GetPageSize()
		if pdf.GetY() < pageHeight-0.6 {
			pdf.SetY(pageHeight - 0.55)
		}
		pdf.SetFont("Times", "", 7)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(0, lineHeight, tr("Source: "+c.Host), "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// ContentType returns the MIME type for PDF output.
func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

// section writes an underlined uppercase heading.
func section(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.Ln(0.06)
	pdf.SetFont("Times", "B", 9)
	pdf.MultiCell(0, lineHeight, tr(strings.ToUpper(title)), "", "L", false)
	rule(pdf, 0.005)
	pdf.Ln(0.04)
}

// rule draws a horizontal line across the printable width at the cursor.
func rule(pdf *gofpdf.Fpdf, width float64) {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	y := pdf.GetY() + 0.03
	pdf.SetLineWidth(width)
	pdf.Line(left, y, pageWidth-right, y)
	pdf.SetY(y + 0.05)
}
