package extract

import (
	"regexp"
	"strings"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
)

var (
	paidToRe       = regexp.MustCompile(`(?i)paid to\s+(.+)`)
	receivedFromRe = regexp.MustCompile(`(?i)received from\s+(.+)`)
)

// isPhonePe reports whether the statement self-identifies as a PhonePe
// transaction statement.
func isPhonePe(text string) bool {
	return strings.Contains(strings.ToLower(text), "phonepe")
}

// parsePhonePe handles the PhonePe statement narration: each
// "Paid to <merchant>" or "Received from <sender>" line is paired with
// the nearest following amount and the most recent date seen above it.
func parsePhonePe(text string) []*Transaction {
	lines := strings.Split(text, "\n")

	var out []*Transaction
	currentDate := ""
	for i, line := range lines {
		if iso, _, _, ok := findDate(line); ok {
			currentDate = iso
		}

		var merchant string
		var txnType domain.TransactionType
		if m := paidToRe.FindStringSubmatch(line); m != nil {
			merchant = m[1]
			txnType = domain.TransactionTypeExpense
		} else if m := receivedFromRe.FindStringSubmatch(line); m != nil {
			merchant = m[1]
			txnType = domain.TransactionTypeIncome
		} else {
			continue
		}

		// Trim any trailing amount off the merchant text itself.
		if amts := findAmounts(merchant); len(amts) > 0 {
			merchant = strings.TrimSpace(merchant[:amts[0].start])
		}

		amount, ok := nearestAmount(lines, i)
		if !ok || currentDate == "" {
			continue
		}

		verb := "Paid to"
		if txnType == domain.TransactionTypeIncome {
			verb = "Received from"
		}
		out = append(out, &Transaction{
			Date:        currentDate,
			Description: verb + " " + merchant,
			Merchant:    merchant,
			Amount:      amount.value,
			Type:        txnType,
		})
	}
	return out
}

// nearestAmount finds the first amount on the narration line itself or on
// one of the next three lines.
func nearestAmount(lines []string, idx int) (amountToken, bool) {
	for j := idx; j < len(lines) && j <= idx+3; j++ {
		if amts := findAmounts(lines[j]); len(amts) > 0 {
			return amts[0], true
		}
	}
	return amountToken{}, false
}
