package split

import (
	"regexp"
	"strconv"
	"strings"
)

// subtotalSentinel marks the end of the itemized section of a receipt. Tax,
// totals, tender and footer lines all come after it.
const subtotalSentinel = "SUBTOTAL"

var (
	// itemNamePattern matches a run of letters, digits, spaces and hyphens
	// immediately followed by whitespace and a 12-digit UPC. Go's regexp has
	// no lookahead, so the UPC is consumed by the match and the name taken
	// from the capture group; applied per line the effect is the same. Lines
	// with no UPC next to a name never produce an item, which keeps subtotal
	// and tax lines from being misread as items.
	itemNamePattern = regexp.MustCompile(`([A-Za-z0-9\s-]+)\s\d{12}`)

	// trailingPricePattern matches a dollars.cents token at the end of a line.
	trailingPricePattern = regexp.MustCompile(`\d+\.\d{2}$`)

	newlinePattern = regexp.MustCompile(`\r?\n`)
)

// Parser turns raw OCR text into an ordered item sequence. OCR noise is
// expected and never fatal: lines that don't look like items are skipped and
// unreadable prices default to zero rather than failing the whole receipt.
type Parser struct {
	// KeepZeroPrice retains items whose price could not be read instead of
	// dropping them.
	KeepZeroPrice bool
}

// ParseItems scans the text line by line and returns the items in receipt
// order. Scanning stops dead at the SUBTOTAL sentinel; nothing after it is
// examined. Each call produces a complete, standalone result.
func (p Parser) ParseItems(text string) []LineItem {
	items := []LineItem{}
	lines := newlinePattern.Split(text, -1)

	for i := 0; i < len(lines); i++ {
		m := itemNamePattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		name := strings.TrimSpace(m[1])
		if strings.EqualFold(name, subtotalSentinel) {
			break
		}

		var price int
		if i+1 < len(lines) && strings.Contains(lines[i+1], "@") {
			// Weighted item ("2.15 lb @ 2.99/lb  6.43"): the price sits at
			// the end of the annotation line, which is consumed so it is not
			// re-scanned as an item of its own.
			price = trailingPrice(lines[i+1])
			i++
		} else {
			price = trailingPrice(lines[i])
		}

		if price == 0 && !p.KeepZeroPrice {
			continue
		}

		items = append(items, LineItem{Name: name, Price: price})
	}

	return items
}

// trailingPrice reads the trailing price token of a line as cents, 0 if absent.
func trailingPrice(line string) int {
	tok := trailingPricePattern.FindString(line)
	if tok == "" {
		return 0
	}

	parts := strings.SplitN(tok, ".", 2)
	dollars, _ := strconv.Atoi(parts[0])
	cents, _ := strconv.Atoi(parts[1])
	return dollars*100 + cents
}
