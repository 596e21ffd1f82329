// Package extract turns bank statement PDFs and receipt images into
// normalized transactions through a chain of extraction strategies.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Transaction is a raw extracted transaction before categorization.
type Transaction struct {
	Date        string                 `json:"date"` // YYYY-MM-DD
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        domain.TransactionType `json:"type"`
	Balance     *decimal.Decimal       `json:"balance,omitempty"`
	Merchant    string                 `json:"merchant,omitempty"`
}

type datePattern struct {
	re     *regexp.Regexp
	layout string
}

// Supported statement date formats, tried in order.
var datePatterns = []datePattern{
	{regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`), "02/01/2006"},
	{regexp.MustCompile(`\b(\d{2}-\d{2}-\d{4})\b`), "02-01-2006"},
	{regexp.MustCompile(`\b(\d{2} [A-Za-z]{3} \d{4})\b`), "02 Jan 2006"},
	{regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`), "2006-01-02"},
	{regexp.MustCompile(`\b([A-Za-z]{3} \d{2}, \d{4})\b`), "Jan 02, 2006"},
	{regexp.MustCompile(`\b(\d{2}/\d{2}/\d{2})\b`), "02/01/06"},
}

var (
	numericTokenRe = regexp.MustCompile(`^([0-9]{1,3}(?:,[0-9]{2,3})+(?:\.[0-9]{1,2})?|[0-9]+\.[0-9]{1,2}|[0-9]{1,7})$`)
	currencyPrefixRe = regexp.MustCompile(`^(?:₹|Rs\.?|INR)`)
	crDrSuffixRe   = regexp.MustCompile(`(?i)(cr|dr)\.?$`)
	creditWordRe   = regexp.MustCompile(`(?i)\bcr\b|credit|deposit|received|refund`)
	spaceRe        = regexp.MustCompile(`\s+`)
)

// findDate returns the first recognized date token, its ISO form and the
// byte span it occupies.
func findDate(line string) (iso string, start, end int, ok bool) {
	best := -1
	for _, p := range datePatterns {
		loc := p.re.FindStringIndex(line)
		if loc == nil {
			continue
		}
		if best == -1 || loc[0] < best {
			token := line[loc[0]:loc[1]]
			t, err := time.Parse(p.layout, token)
			if err != nil {
				continue
			}
			best = loc[0]
			iso = t.Format("2006-01-02")
			start, end = loc[0], loc[1]
			ok = true
		}
	}
	return iso, start, end, ok
}

type amountToken struct {
	value  decimal.Decimal
	start  int
	end    int
	suffix string // "cr", "dr" or ""
}

// findAmounts extracts Indian-locale amount tokens from s. Tokens are
// whitespace-delimited; an optional ₹/Rs/INR prefix and Cr/Dr suffix are
// allowed. Plain digit runs longer than 7 characters are treated as
// reference numbers, not amounts.
func findAmounts(s string) []amountToken {
	var out []amountToken
	i := 0
	for i < len(s) {
		// Skip whitespace.
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		start := i
		for i < len(s) && s[i] != ' ' && s[i] != '\t' {
			i++
		}
		if start == i {
			continue
		}
		token := s[start:i]

		candidate := currencyPrefixRe.ReplaceAllString(token, "")
		suffix := ""
		if m := crDrSuffixRe.FindStringSubmatch(candidate); m != nil {
			suffix = strings.ToLower(m[1])
			candidate = crDrSuffixRe.ReplaceAllString(candidate, "")
		}
		if !numericTokenRe.MatchString(candidate) {
			continue
		}
		v, err := decimal.NewFromString(strings.ReplaceAll(candidate, ",", ""))
		if err != nil || v.IsZero() {
			continue
		}
		out = append(out, amountToken{value: v, start: start, end: i, suffix: suffix})
	}
	return out
}

// ParseLine attempts to read one statement line as a transaction. The
// first date token anchors the parse; the first amount after it is the
// transaction amount and the last amount, when distinct, the balance.
func ParseLine(line string) (*Transaction, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	date, _, dateEnd, ok := findDate(line)
	if !ok {
		return nil, false
	}

	rest := line[dateEnd:]
	amounts := findAmounts(rest)
	if len(amounts) == 0 {
		return nil, false
	}

	first := amounts[0]

	txnType := domain.TransactionTypeExpense
	switch {
	case first.suffix == "cr":
		txnType = domain.TransactionTypeIncome
	case first.suffix == "dr":
		// explicit debit marker beats keyword scan
	case creditWordRe.MatchString(line):
		txnType = domain.TransactionTypeIncome
	}
	t := &Transaction{
		Date:        date,
		Amount:      first.value,
		Type:        txnType,
		Description: spaceRe.ReplaceAllString(strings.TrimSpace(rest[:first.start]), " "),
	}

	last := amounts[len(amounts)-1]
	if len(amounts) > 1 && !last.value.Equal(first.value) {
		bal := last.value
		t.Balance = &bal
	}
	return t, true
}

// ParseText runs ParseLine over every non-empty line of a page of text.
func ParseText(text string) []*Transaction {
	var out []*Transaction
	for _, line := range strings.Split(text, "\n") {
		if t, ok := ParseLine(line); ok {
			out = append(out, t)
		}
	}
	return out
}
