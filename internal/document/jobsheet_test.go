package document_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/require"

	api "github.com/grandupright/quote-intake/api/v1alpha1"
	"github.com/grandupright/quote-intake/internal/document"
)

var renderStamp = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func testQuote() api.QuoteRequest {
	return api.QuoteRequest{
		FullName:        "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "07700900000",
		PianoType:       "Upright",
		PickupAddress:   "12 Keys Lane, Bristol, N1 1AA",
		PickupSteps:     3,
		DeliveryAddress: "4 Stave Street, London, SW1A 1AA",
		DeliverySteps:   0,
	}
}

// validateSheet runs the rendered bytes through pdfcpu and checks the sheet
// stayed on a single page.
func validateSheet(t *testing.T, data []byte) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sheet.pdf")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	require.NoError(t, pdfapi.ValidateFile(path, cfg))

	pages, err := pdfapi.PageCountFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, pages)
}

// pageContent returns the decoded content stream of the rendered sheet.
func pageContent(t *testing.T, data []byte) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.pdf")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	outDir := filepath.Join(dir, "content")
	require.NoError(t, os.MkdirAll(outDir, 0o700))

	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	require.NoError(t, pdfapi.ExtractContentFile(path, outDir, nil, cfg))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	var content []byte
	for _, entry := range entries {
		b, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		require.NoError(t, err)
		content = append(content, b...)
	}
	return string(content)
}

func TestRenderProducesSinglePagePdf(t *testing.T) {
	r := document.NewJobSheetRenderer()

	data, err := r.Render(testQuote(), "PM-123456", renderStamp)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	validateSheet(t, data)
}

func TestRenderLongRequirementsStaysOnOnePage(t *testing.T) {
	r := document.NewJobSheetRenderer()

	quote := testQuote()
	quote.SpecialRequirements = strings.Repeat("The stair turn on the second floor is extremely tight. ", 60)

	data, err := r.Render(quote, "PM-123456", renderStamp)
	require.NoError(t, err)

	validateSheet(t, data)
}

func TestRenderSmartPunctuationAndAccents(t *testing.T) {
	r := document.NewJobSheetRenderer()

	quote := testQuote()
	quote.FullName = "José Müller"
	quote.SpecialRequirements = "Don’t tilt — it’s grandma’s piano"

	data, err := r.Render(quote, "PM-123456", renderStamp)
	require.NoError(t, err)

	validateSheet(t, data)

	// the measure path sees the same free text; a one-liner with curly
	// punctuation sits at the clamp minimum like any other one-liner
	require.Equal(t,
		r.RequirementsBoxHeight("x"),
		r.RequirementsBoxHeight(quote.SpecialRequirements))
}

func TestRenderDrawsAccentedTextAsSingleGlyphs(t *testing.T) {
	r := document.NewJobSheetRenderer()

	quote := testQuote()
	quote.FullName = "José Müller"
	quote.SpecialRequirements = "Don’t tilt — it’s grandma’s piano"

	data, err := r.Render(quote, "PM-123456", renderStamp)
	require.NoError(t, err)

	content := pageContent(t, data)

	// customer text reaches the page as one code page byte per glyph, not
	// as the multi-glyph rendering of its utf-8 bytes
	require.Contains(t, content, "Jos\xe9 M\xfcller")
	require.Contains(t, content, "Don\x92t tilt \x97 it\x92s grandma\x92s piano")
	require.NotContains(t, content, "Jos\xc3\xa9")
	require.NotContains(t, content, "M\xc3\xbcller")
}

func TestRenderIsDeterministic(t *testing.T) {
	r := document.NewJobSheetRenderer()

	first, err := r.Render(testQuote(), "PM-123456", renderStamp)
	require.NoError(t, err)
	second, err := r.Render(testQuote(), "PM-123456", renderStamp)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestRenderSkipsBlankRequirements(t *testing.T) {
	r := document.NewJobSheetRenderer()

	absent := testQuote()
	padded := testQuote()
	padded.SpecialRequirements = "  \n\t "

	withoutSection, err := r.Render(absent, "PM-123456", renderStamp)
	require.NoError(t, err)
	withPadding, err := r.Render(padded, "PM-123456", renderStamp)
	require.NoError(t, err)

	// whitespace-only requirements must not leave a gap: the layout is
	// byte-identical to the one rendered with the field absent
	require.Equal(t, withoutSection, withPadding)
}

func TestRequirementsBoxHeightMonotone(t *testing.T) {
	r := document.NewJobSheetRenderer()

	prev := 0.0
	for length := 0; length <= 4000; length += 200 {
		h := r.RequirementsBoxHeight(strings.Repeat("a", length))
		require.GreaterOrEqual(t, h, prev, "box height shrank at length %d", length)
		prev = h
	}

	// plateau once the clamp maximum is reached
	require.Equal(t,
		r.RequirementsBoxHeight(strings.Repeat("a", 4000)),
		r.RequirementsBoxHeight(strings.Repeat("a", 8000)))
}

func TestRequirementsBoxHeightClamped(t *testing.T) {
	r := document.NewJobSheetRenderer()

	short := r.RequirementsBoxHeight("careful with the hallway mirror")
	long := r.RequirementsBoxHeight(strings.Repeat("no parking outside the building ", 500))

	// a one-liner sits at the minimum, a wall of text at the maximum
	require.Equal(t, r.RequirementsBoxHeight("x"), short)
	require.Greater(t, long, short)
}
