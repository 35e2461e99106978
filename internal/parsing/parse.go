package parsing

import (
	"math"
	"strings"
)

// Parser turns OCR text into a ParsedReceipt. It holds no per-call state and
// is safe for concurrent use.
type Parser struct {
	rules Rules
}

// NewParser creates a Parser over the given rule table
func NewParser(rules Rules) *Parser {
	return &Parser{rules: rules}
}

// NewDefaultParser creates a Parser with DefaultRules
func NewDefaultParser() *Parser {
	return NewParser(DefaultRules())
}

// splitLines returns the trimmed, non-empty lines of text
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Parse never fails; anything it cannot find is left nil and lowers the
// confidence score.
func (p *Parser) Parse(text string) *ParsedReceipt {
	receipt := &ParsedReceipt{
		Items:   []LineItem{},
		RawText: text,
	}

	lines := splitLines(text)
	if len(lines) == 0 {
		return receipt
	}

	receipt.Items = p.extractItems(lines)
	p.extractAmounts(lines, receipt)
	if receipt.Total == nil {
		if total, ok := p.inferTotal(lines); ok {
			receipt.Total = &total
			receipt.TotalInferred = true
		}
	}
	receipt.PurchaseDate = firstMatch(lines, p.rules.DateRules)
	receipt.StoreName = p.extractStoreName(lines)
	if method := firstMatch(lines, p.rules.PaymentRules); method != nil {
		lower := strings.ToLower(*method)
		receipt.PaymentMethod = &lower
	}

	receipt.TotalItems = len(receipt.Items)
	if len(receipt.Items) > 0 {
		sum := receipt.ItemsTotal()
		receipt.CalculatedTotal = &sum
	}
	receipt.Confidence = Confidence(receipt)
	return receipt
}

// extractItems walks the lines once, trying each item rule in order
func (p *Parser) extractItems(lines []string) []LineItem {
	items := []LineItem{}
	for i := 0; i < len(lines); {
		if p.rules.skipped(lines[i]) {
			i++
			continue
		}
		item, consumed, ok := p.matchItem(lines, i)
		if !ok {
			i++
			continue
		}
		items = append(items, item)
		i += consumed
	}
	return items
}

func (p *Parser) matchItem(lines []string, i int) (LineItem, int, bool) {
	for _, rule := range p.rules.ItemRules {
		name, price, qty, consumed, ok := rule.Extract(lines, i)
		if !ok || !p.acceptItem(name, price) {
			continue
		}
		item, ok := newLineItem(name, price, qty)
		if !ok {
			continue
		}
		return item, consumed, true
	}
	return LineItem{}, 0, false
}

// acceptItem guards against totals and phone numbers read as items
func (p *Parser) acceptItem(name string, price Amount) bool {
	if name == "" || len([]rune(name)) < p.rules.MinNameLength {
		return false
	}
	return price >= 0 && price < p.rules.MaxItemPrice
}

// extractAmounts assigns each line at most one summary role. The first tax
// and subtotal win; the largest total-family amount wins.
func (p *Parser) extractAmounts(lines []string, receipt *ParsedReceipt) {
	for _, line := range lines {
		for _, rule := range p.rules.AmountRules {
			amount, ok := rule.Match(line)
			if !ok {
				continue
			}
			switch rule.Field {
			case FieldTax:
				if receipt.Tax == nil {
					receipt.Tax = &amount
				}
			case FieldSubtotal:
				if receipt.Subtotal == nil {
					receipt.Subtotal = &amount
				}
			case FieldTotal:
				if receipt.Total == nil || amount > *receipt.Total {
					receipt.Total = &amount
				}
			}
			break
		}
	}
}

// inferTotal picks the largest money token within the plausible range
func (p *Parser) inferTotal(lines []string) (Amount, bool) {
	var best Amount
	found := false
	for _, line := range lines {
		for _, token := range moneyToken.FindAllString(line, -1) {
			amount, err := ParseAmount(token)
			if err != nil {
				continue
			}
			if amount < p.rules.FallbackTotalMin || amount > p.rules.FallbackTotalMax {
				continue
			}
			if !found || amount > best {
				best = amount
				found = true
			}
		}
	}
	return best, found
}

func (p *Parser) extractStoreName(lines []string) *string {
	n := min(p.rules.StoreLinesScanned, len(lines))
	for _, line := range lines[:n] {
		if len(line) <= 3 || len(line) >= 50 {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range p.rules.StoreKeywords {
			if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
				name := line
				return &name
			}
		}
	}
	name := lines[0]
	return &name
}

// firstMatch returns the first hit scanning lines in order, rules in order
// within each line
func firstMatch(lines []string, rules []PatternRule) *string {
	for _, line := range lines {
		for _, rule := range rules {
			if s, ok := rule.Find(line); ok {
				return &s
			}
		}
	}
	return nil
}

// Confidence scores how trustworthy a parse looks. It is a heuristic in
// [0, 1], not a probability.
func Confidence(r *ParsedReceipt) float64 {
	score := 0.0
	if len(r.Items) > 0 {
		score += 0.3
		if r.Total != nil {
			diff := r.ItemsTotal() - *r.Total
			if diff < 0 {
				diff = -diff
			}
			switch {
			case diff < 10:
				score += 0.3
			case diff < 100:
				score += 0.2
			}
		}
	}
	if r.Total != nil {
		score += 0.2
	}
	if r.Subtotal != nil {
		score += 0.1
	}
	if r.Tax != nil {
		score += 0.1
	}
	return math.Min(math.Round(score*100)/100, 1.0)
}
