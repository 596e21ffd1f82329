package extract

import (
	"context"
	"os"
	"strings"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// MaxPDFPages is the page budget for uploaded statements.
const MaxPDFPages = 5

// DocumentIntelligence is the optional cloud text-extraction collaborator.
type DocumentIntelligence interface {
	ExtractText(ctx context.Context, pdfBytes []byte) (string, error)
	IsConfigured() bool
}

// PDFExtractor extracts transactions from bank statement PDFs using a
// strategy chain: document intelligence, table layout, then plain text.
// The first strategy yielding at least one transaction wins.
type PDFExtractor struct {
	docintel DocumentIntelligence // may be nil
}

// NewPDFExtractor creates a PDFExtractor. docintel may be nil.
func NewPDFExtractor(docintel DocumentIntelligence) *PDFExtractor {
	return &PDFExtractor{docintel: docintel}
}

// ExtractTransactions runs the strategy chain over the PDF at path.
func (e *PDFExtractor) ExtractTransactions(ctx context.Context, path string) ([]*Transaction, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if n := reader.NumPage(); n > MaxPDFPages {
		return nil, &domain.PageLimitError{PageCount: n, MaxPages: MaxPDFPages}
	}

	pages := readPages(reader)
	fullText := strings.Join(pages, "\n")

	// PhonePe statements have their own narration format.
	if isPhonePe(fullText) {
		if txns := parsePhonePe(fullText); len(txns) > 0 {
			return Dedupe(txns), nil
		}
	}

	if e.docintel != nil && e.docintel.IsConfigured() {
		if txns := e.extractViaDocIntel(ctx, path); len(txns) > 0 {
			return Dedupe(txns), nil
		}
	}

	if txns := extractTables(reader); len(txns) > 0 {
		return Dedupe(txns), nil
	}

	return Dedupe(ParseText(fullText)), nil
}

func (e *PDFExtractor) extractViaDocIntel(ctx context.Context, path string) []*Transaction {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to read pdf for document intelligence")
		return nil
	}
	text, err := e.docintel.ExtractText(ctx, raw)
	if err != nil {
		log.Warn().Err(err).Msg("Document intelligence extraction failed, falling back")
		return nil
	}
	if isPhonePe(text) {
		if txns := parsePhonePe(text); len(txns) > 0 {
			return txns
		}
	}
	return ParseText(text)
}

// readPages returns one reconstructed text block per page.
func readPages(reader *pdf.Reader) []string {
	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			pages = append(pages, "")
			continue
		}
		var lines []string
		for _, row := range rows {
			lines = append(lines, rowText(row))
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// rowText joins a row's glyphs, inserting a space whenever the gap
// between neighbours exceeds half the font size.
func rowText(row *pdf.Row) string {
	var b strings.Builder
	prevEnd := 0.0
	for i, word := range row.Content {
		if i > 0 && word.X-prevEnd > word.FontSize*0.5 {
			b.WriteByte(' ')
		}
		b.WriteString(word.S)
		prevEnd = word.X + word.W
	}
	return b.String()
}

// rowSegments splits a row into (text, x) cells on large gaps, used for
// column mapping in table extraction.
type rowSegment struct {
	text string
	x    float64
}

func splitSegments(row *pdf.Row) []rowSegment {
	var segs []rowSegment
	var b strings.Builder
	segX := 0.0
	prevEnd := 0.0
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			segs = append(segs, rowSegment{text: s, x: segX})
		}
		b.Reset()
	}
	for i, word := range row.Content {
		if i == 0 {
			segX = word.X
		} else if word.X-prevEnd > word.FontSize*1.5 {
			flush()
			segX = word.X
		} else if word.X-prevEnd > word.FontSize*0.5 {
			b.WriteByte(' ')
		}
		b.WriteString(word.S)
		prevEnd = word.X + word.W
	}
	flush()
	return segs
}

// Header keywords mapped to canonical column names.
var headerColumns = map[string]string{
	"date":        "date",
	"description": "description",
	"particulars": "description",
	"narration":   "description",
	"debit":       "debit",
	"withdrawal":  "debit",
	"credit":      "credit",
	"deposit":     "credit",
	"amount":      "amount",
	"balance":     "balance",
	"reference":   "reference",
}

// extractTables scans each page for a statement table and parses its
// data rows, using the debit/credit column positions to fix the type.
func extractTables(reader *pdf.Reader) []*Transaction {
	var out []*Transaction
	for i := 1; i <= reader.NumPage(); i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			continue
		}
		out = append(out, parseTableRows(rows)...)
	}
	return out
}

func parseTableRows(rows pdf.Rows) []*Transaction {
	columns := map[string]float64{}
	headerIdx := -1
	for idx, row := range rows {
		found := map[string]float64{}
		for _, seg := range splitSegments(row) {
			key := strings.ToLower(strings.TrimSpace(seg.text))
			if col, ok := headerColumns[key]; ok {
				found[col] = seg.x
			}
		}
		if len(found) >= 3 {
			columns = found
			headerIdx = idx
			break
		}
	}
	if headerIdx == -1 {
		return nil
	}

	debitX, hasDebit := columns["debit"]
	creditX, hasCredit := columns["credit"]

	var out []*Transaction
	for _, row := range rows[headerIdx+1:] {
		line := rowText(row)
		t, ok := ParseLine(line)
		if !ok {
			continue
		}

		// Resolve type from column position when both sides exist.
		if hasDebit && hasCredit {
			segs := splitSegments(row)
			for _, seg := range segs {
				if len(findAmounts(seg.text)) == 0 {
					continue
				}
				if amt := findAmounts(seg.text)[0]; amt.value.Equal(t.Amount) {
					if absf(seg.x-creditX) < absf(seg.x-debitX) {
						t.Type = domain.TransactionTypeIncome
					} else {
						t.Type = domain.TransactionTypeExpense
					}
					break
				}
			}
		}
		out = append(out, t)
	}
	return out
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
