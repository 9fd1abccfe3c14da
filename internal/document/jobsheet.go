package document

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	api "github.com/grandupright/quote-intake/api/v1alpha1"
)

// Page geometry in millimeters, A4 portrait. The section heights are chosen
// so that even a requirements box at its clamp maximum keeps the footer above
// the bottom margin.
const (
	pageLeft     = 15.0
	pageTop      = 15.0
	pageBottom   = 282.0
	contentWidth = 180.0

	headerHeight      = 26.0
	sectionGap        = 6.0
	sectionTitleSpace = 7.0
	detailLineHeight  = 6.0
	locationBoxHeight = 22.0
	notesBoxHeight    = 26.0

	requirementsLineHeight = 5.5
	requirementsPadding    = 4.0
	requirementsMinHeight  = 16.0
	requirementsMaxHeight  = 40.0

	fontFamily = "Helvetica"

	// rendered when the customer leaves the piano type blank
	pianoTypeFallback = "Not specified"
)

// Business identity printed on the sheet footer and exported on the contact
// card. A change here rolls out on the next boot, nothing is persisted.
const (
	businessName  = "Grand & Upright Piano Moving"
	businessPhone = "0117 496 0372"
	businessEmail = "bookings@grandupright.co.uk"
	businessSite  = "grandupright.co.uk"
)

// JobSheetRenderer renders an accepted quote into the printable sheet the
// crew takes on the job. Rendering is pure: same quote, reference and
// timestamp produce identical bytes.
type JobSheetRenderer struct {
	businessName string
	contactLine  string
}

func NewJobSheetRenderer() *JobSheetRenderer {
	return &JobSheetRenderer{
		businessName: businessName,
		contactLine:  fmt.Sprintf("%s - %s - %s - %s", businessName, businessPhone, businessEmail, businessSite),
	}
}

// Render draws the single-page job sheet. Sections flow top-down behind an
// explicit cursor; each draw step returns the advanced cursor so nothing
// depends on pdf-internal positioning state.
func (r *JobSheetRenderer) Render(quote api.QuoteRequest, jobReference string, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Job Sheet %s", jobReference), false)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetMargins(pageLeft, pageTop, pageLeft)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// The section decision is made on the text as the customer typed it,
	// matching what the emails and the stored row report.
	hasRequirements := quote.HasSpecialRequirements()

	// Helvetica is a code page font, so free-typed customer text must be
	// mapped onto its repertoire before anything is measured or drawn.
	quote = translateQuote(pdf.UnicodeTranslatorFromDescriptor(""), quote)

	y := r.drawHeader(pdf, pageTop, jobReference, generatedAt)
	y = r.drawCustomerDetails(pdf, y+sectionGap, quote)
	y = r.drawLocationBox(pdf, y+sectionGap, "Pickup Location", quote.PickupAddress, quote.PickupSteps)
	y = r.drawLocationBox(pdf, y+sectionGap, "Delivery Location", quote.DeliveryAddress, quote.DeliverySteps)
	if hasRequirements {
		y = r.drawSpecialRequirements(pdf, y+sectionGap, quote.SpecialRequirements)
	}
	y = r.drawNotesBox(pdf, y+sectionGap)
	y = r.drawSignatures(pdf, y+sectionGap+4)
	r.drawFooter(pdf, y+sectionGap)

	if pdf.Err() {
		return nil, fmt.Errorf("rendering job sheet %s: %w", jobReference, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering job sheet %s: %w", jobReference, err)
	}
	return buf.Bytes(), nil
}

// RequirementsBoxHeight reports the height the special requirements box takes
// for the given text, clamped to its configured minimum and maximum.
func (r *JobSheetRenderer) RequirementsBoxHeight(text string) float64 {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return r.measureRequirements(pdf, tr(text))
}

// translateQuote maps every customer-typed field onto the single-byte code
// page of the built-in fonts. Smart punctuation and accented names convert to
// their code page equivalents; a rune with no equivalent becomes a substitute
// character rather than a failed render.
func translateQuote(tr func(string) string, quote api.QuoteRequest) api.QuoteRequest {
	quote.FullName = tr(quote.FullName)
	quote.Phone = tr(quote.Phone)
	quote.Email = tr(quote.Email)
	quote.PianoType = tr(quote.PianoType)
	quote.PickupAddress = tr(quote.PickupAddress)
	quote.DeliveryAddress = tr(quote.DeliveryAddress)
	quote.SpecialRequirements = tr(quote.SpecialRequirements)
	return quote
}

func (r *JobSheetRenderer) drawHeader(pdf *fpdf.Fpdf, y float64, jobReference string, generatedAt time.Time) float64 {
	pdf.SetDrawColor(40, 40, 40)
	pdf.SetLineWidth(0.4)
	pdf.Rect(pageLeft, y, contentWidth, headerHeight, "D")

	pdf.SetXY(pageLeft+5, y+5)
	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(100, 8, "JOB SHEET", "", 0, "L", false, 0, "")

	pdf.SetXY(pageLeft+5, y+15)
	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(100, 6, r.businessName, "", 0, "L", false, 0, "")

	pdf.SetXY(pageLeft+contentWidth-65, y+5)
	pdf.SetFont(fontFamily, "B", 13)
	pdf.CellFormat(60, 7, jobReference, "", 0, "R", false, 0, "")

	pdf.SetXY(pageLeft+contentWidth-65, y+15)
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(60, 6, generatedAt.Format("02 Jan 2006"), "", 0, "R", false, 0, "")

	return y + headerHeight
}

func (r *JobSheetRenderer) drawCustomerDetails(pdf *fpdf.Fpdf, y float64, quote api.QuoteRequest) float64 {
	y = r.drawSectionTitle(pdf, y, "Customer Details")

	pianoType := quote.PianoType
	if pianoType == "" {
		pianoType = pianoTypeFallback
	}

	rows := []struct {
		label string
		value string
	}{
		{"Name", quote.FullName},
		{"Phone", quote.Phone},
		{"Email", quote.Email},
		{"Piano", pianoType},
	}

	for _, row := range rows {
		pdf.SetXY(pageLeft, y)
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(30, detailLineHeight, row.label, "", 0, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.CellFormat(contentWidth-30, detailLineHeight, row.value, "", 0, "L", false, 0, "")
		y += detailLineHeight
	}
	return y
}

func (r *JobSheetRenderer) drawLocationBox(pdf *fpdf.Fpdf, y float64, title, address string, steps int) float64 {
	y = r.drawSectionTitle(pdf, y, title)

	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.3)
	pdf.Rect(pageLeft, y, contentWidth, locationBoxHeight, "D")

	pdf.ClipRect(pageLeft, y, contentWidth, locationBoxHeight, false)
	pdf.SetXY(pageLeft+4, y+4)
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(contentWidth-54, 5, address, "", "L", false)
	pdf.ClipEnd()

	// step count large enough to read from across a stairwell
	pdf.SetXY(pageLeft+contentWidth-48, y+4)
	pdf.SetFont(fontFamily, "B", 22)
	pdf.CellFormat(30, 12, strconv.Itoa(steps), "", 0, "R", false, 0, "")
	pdf.SetXY(pageLeft+contentWidth-16, y+9)
	pdf.SetFont(fontFamily, "", 9)
	pdf.CellFormat(12, 5, "steps", "", 0, "L", false, 0, "")

	return y + locationBoxHeight
}

func (r *JobSheetRenderer) drawSpecialRequirements(pdf *fpdf.Fpdf, y float64, text string) float64 {
	y = r.drawSectionTitle(pdf, y, "Special Requirements")

	boxHeight := r.measureRequirements(pdf, text)

	pdf.SetFillColor(255, 250, 205)
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.3)
	pdf.Rect(pageLeft, y, contentWidth, boxHeight, "FD")

	// overflowing text is cut at the box bound; the full text still reaches
	// the office in the notification email and the submissions row
	pdf.ClipRect(pageLeft, y, contentWidth, boxHeight, false)
	pdf.SetXY(pageLeft+requirementsPadding, y+requirementsPadding)
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(contentWidth-2*requirementsPadding, requirementsLineHeight, text, "", "L", false)
	pdf.ClipEnd()

	return y + boxHeight
}

// measureRequirements expects text already mapped by translateQuote.
// SplitLines is the code page variant of fpdf's wrapping: it walks bytes, so
// it never indexes the 256-entry core font width table out of range.
func (r *JobSheetRenderer) measureRequirements(pdf *fpdf.Fpdf, text string) float64 {
	pdf.SetFont(fontFamily, "", 10)
	lines := pdf.SplitLines([]byte(text), contentWidth-2*requirementsPadding)

	height := float64(len(lines))*requirementsLineHeight + 2*requirementsPadding
	if height < requirementsMinHeight {
		height = requirementsMinHeight
	}
	if height > requirementsMaxHeight {
		height = requirementsMaxHeight
	}
	return height
}

func (r *JobSheetRenderer) drawNotesBox(pdf *fpdf.Fpdf, y float64) float64 {
	y = r.drawSectionTitle(pdf, y, "Notes / Quote")

	// left blank for manual completion on site
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.3)
	pdf.Rect(pageLeft, y, contentWidth, notesBoxHeight, "D")

	return y + notesBoxHeight
}

func (r *JobSheetRenderer) drawSignatures(pdf *fpdf.Fpdf, y float64) float64 {
	lineY := y + 12
	colWidth := (contentWidth - 20) / 2

	pdf.SetDrawColor(40, 40, 40)
	pdf.SetLineWidth(0.3)
	pdf.Line(pageLeft, lineY, pageLeft+colWidth, lineY)
	pdf.Line(pageLeft+colWidth+20, lineY, pageLeft+contentWidth, lineY)

	pdf.SetFont(fontFamily, "", 9)
	pdf.SetXY(pageLeft, lineY+2)
	pdf.CellFormat(colWidth, 5, "Customer signature", "", 0, "L", false, 0, "")
	pdf.SetXY(pageLeft+colWidth+20, lineY+2)
	pdf.CellFormat(colWidth, 5, "Crew signature", "", 0, "L", false, 0, "")

	return lineY + 8
}

func (r *JobSheetRenderer) drawFooter(pdf *fpdf.Fpdf, y float64) {
	// drawn right under the signatures instead of pinned to the page bottom,
	// so a sheet without special requirements stays visually compact
	if y > pageBottom-5 {
		y = pageBottom - 5
	}
	pdf.SetXY(pageLeft, y)
	pdf.SetFont(fontFamily, "I", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(contentWidth, 5, r.contactLine, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func (r *JobSheetRenderer) drawSectionTitle(pdf *fpdf.Fpdf, y float64, title string) float64 {
	pdf.SetXY(pageLeft, y)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(contentWidth, 6, title, "", 0, "L", false, 0, "")
	return y + sectionTitleSpace
}
