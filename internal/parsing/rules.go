package parsing

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field identifies which receipt summary field an amount rule fills
type Field int

const (
	FieldTax Field = iota
	FieldSubtotal
	FieldTotal
)

func (f Field) String() string {
	switch f {
	case FieldTax:
		return "tax"
	case FieldSubtotal:
		return "subtotal"
	case FieldTotal:
		return "total"
	}
	return "unknown"
}

// moneyToken matches a bare money-shaped token anywhere in a line
var moneyToken = regexp.MustCompile(`\d+\.\d{2}`)

// bareAmount matches a line that holds nothing but an amount
var bareAmount = regexp.MustCompile(`^\s*\$?(\d+\.\d{2})\s*$`)

// ItemRule extracts a candidate line item starting at lines[i].
// consumed is the number of lines the candidate covers.
type ItemRule struct {
	Name    string
	Extract func(lines []string, i int) (name string, price Amount, qty float64, consumed int, ok bool)
}

// AmountRule matches a keyword-anchored amount on a lowercased line
type AmountRule struct {
	Name    string
	Field   Field
	Pattern *regexp.Regexp
}

// Match returns the amount captured by the rule
func (r AmountRule) Match(line string) (Amount, bool) {
	m := r.Pattern.FindStringSubmatch(strings.ToLower(line))
	if m == nil {
		return 0, false
	}
	a, err := ParseAmount(m[len(m)-1])
	if err != nil {
		return 0, false
	}
	return a, true
}

// PatternRule finds a substring of a line. The first capture group is
// returned when the pattern has one, otherwise the whole match.
type PatternRule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Find runs the rule against a line
func (r PatternRule) Find(line string) (string, bool) {
	m := r.Pattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if len(m) > 1 && m[1] != "" {
		return strings.TrimSpace(m[1]), true
	}
	return strings.TrimSpace(m[0]), true
}

// Rules is the ordered rule table the parser runs
type Rules struct {
	SkipKeywords  []string
	StoreKeywords []string
	ItemRules     []ItemRule
	AmountRules   []AmountRule
	DateRules     []PatternRule
	PaymentRules  []PatternRule

	MinNameLength     int
	MaxItemPrice      Amount
	FallbackTotalMin  Amount
	FallbackTotalMax  Amount
	StoreLinesScanned int
}

var sameLineItemPattern = regexp.MustCompile(`^(.+?)\s+(?:(\d+(?:\.\d+)?)\s*[@xX]\s*)?\$?(\d+\.\d{2})$`)

// SameLineItem reads "NAME [QTY @|x] PRICE" from a single line
var SameLineItem = ItemRule{
	Name: "same-line",
	Extract: func(lines []string, i int) (string, Amount, float64, int, bool) {
		m := sameLineItemPattern.FindStringSubmatch(lines[i])
		if m == nil {
			return "", 0, 0, 0, false
		}
		qty := 1.0
		if m[2] != "" {
			q, err := strconv.ParseFloat(m[2], 64)
			if err != nil || q <= 0 {
				return "", 0, 0, 0, false
			}
			qty = q
		}
		price, err := ParseAmount(m[3])
		if err != nil {
			return "", 0, 0, 0, false
		}
		return strings.TrimSpace(m[1]), price, qty, 1, true
	},
}

// SplitLineItem reads a name line followed by a line holding only the price
var SplitLineItem = ItemRule{
	Name: "split-line",
	Extract: func(lines []string, i int) (string, Amount, float64, int, bool) {
		if i+1 >= len(lines) || moneyToken.MatchString(lines[i]) {
			return "", 0, 0, 0, false
		}
		m := bareAmount.FindStringSubmatch(lines[i+1])
		if m == nil {
			return "", 0, 0, 0, false
		}
		price, err := ParseAmount(m[1])
		if err != nil {
			return "", 0, 0, 0, false
		}
		return strings.TrimSpace(lines[i]), price, 1, 2, true
	},
}

const amountSuffix = `[\s:]*\$?\s*(\d+\.\d{2})`

// DefaultRules returns the built-in rule table tuned for US grocery receipts
func DefaultRules() Rules {
	return Rules{
		SkipKeywords: []string{
			"WALMART", "SUPERCENTER", "MAIN STREET", "ANYTOWN", "TEL:",
			"TOTAL", "SUBTOTAL", "TAX", "BALANCE", "AMOUNT DUE",
			"CASH", "CHANGE", "THANK YOU", "RECEIPT #", "TRANSACTION",
			"CASHIER", "DATE", "TIME", "ITEMS SOLD",
		},
		StoreKeywords: []string{"mart", "store", "shop", "grocery", "market", "super", "pharmacy"},
		ItemRules:     []ItemRule{SameLineItem, SplitLineItem},
		AmountRules: []AmountRule{
			{Name: "tax", Field: FieldTax, Pattern: regexp.MustCompile(`\btax\b(?:\s*\d+(?:\.\d+)?\s*%)?` + amountSuffix)},
			{Name: "subtotal", Field: FieldSubtotal, Pattern: regexp.MustCompile(`\bsub[\s-]?total\b` + amountSuffix)},
			{Name: "grand-total", Field: FieldTotal, Pattern: regexp.MustCompile(`\bgrand\s+total\b` + amountSuffix)},
			{Name: "total", Field: FieldTotal, Pattern: regexp.MustCompile(`\btotal\b` + amountSuffix)},
			{Name: "amount-due", Field: FieldTotal, Pattern: regexp.MustCompile(`\bamount\s+due\b` + amountSuffix)},
			{Name: "balance", Field: FieldTotal, Pattern: regexp.MustCompile(`\bbalance(?:\s+due)?\b` + amountSuffix)},
		},
		DateRules: []PatternRule{
			{Name: "numeric", Pattern: regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`)},
			{Name: "iso", Pattern: regexp.MustCompile(`\b(\d{4}[/-]\d{1,2}[/-]\d{1,2})\b`)},
			{Name: "month-name", Pattern: regexp.MustCompile(`(?i)\b((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4})\b`)},
		},
		PaymentRules: []PatternRule{
			{Name: "card-or-cash", Pattern: regexp.MustCompile(`(?i)\b(cash|credit|debit|visa|mastercard|amex|paypal|check)\b`)},
			{Name: "paid-with", Pattern: regexp.MustCompile(`(?i)\b(paid\s+with\s+.+)$`)},
		},
		MinNameLength:     3,
		MaxItemPrice:      100000,
		FallbackTotalMin:  500,
		FallbackTotalMax:  20000,
		StoreLinesScanned: 3,
	}
}

// rulesFile is the YAML shape of a rules override file. Unset fields keep
// their defaults.
type rulesFile struct {
	SkipKeywords       []string `yaml:"skip_keywords"`
	ExtraSkipKeywords  []string `yaml:"extra_skip_keywords"`
	StoreKeywords      []string `yaml:"store_keywords"`
	ExtraStoreKeywords []string `yaml:"extra_store_keywords"`
	MinNameLength      *int     `yaml:"min_name_length"`
	MaxItemPrice       *float64 `yaml:"max_item_price"`
	StoreLinesScanned  *int     `yaml:"store_lines_scanned"`
	FallbackTotal      *struct {
		Min *float64 `yaml:"min"`
		Max *float64 `yaml:"max"`
	} `yaml:"fallback_total"`
}

// LoadRules reads a YAML override file on top of DefaultRules
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules file %s: %w", path, err)
	}
	return ParseRules(data)
}

// ParseRules applies YAML overrides to DefaultRules
func ParseRules(data []byte) (Rules, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Rules{}, fmt.Errorf("parsing rules yaml: %w", err)
	}

	rules := DefaultRules()
	if f.SkipKeywords != nil {
		rules.SkipKeywords = f.SkipKeywords
	}
	rules.SkipKeywords = append(rules.SkipKeywords, f.ExtraSkipKeywords...)
	if f.StoreKeywords != nil {
		rules.StoreKeywords = f.StoreKeywords
	}
	rules.StoreKeywords = append(rules.StoreKeywords, f.ExtraStoreKeywords...)

	if f.MinNameLength != nil {
		rules.MinNameLength = *f.MinNameLength
	}
	if f.StoreLinesScanned != nil {
		rules.StoreLinesScanned = *f.StoreLinesScanned
	}
	if f.MaxItemPrice != nil {
		rules.MaxItemPrice = dollarsToAmount(*f.MaxItemPrice)
	}
	if f.FallbackTotal != nil {
		if f.FallbackTotal.Min != nil {
			rules.FallbackTotalMin = dollarsToAmount(*f.FallbackTotal.Min)
		}
		if f.FallbackTotal.Max != nil {
			rules.FallbackTotalMax = dollarsToAmount(*f.FallbackTotal.Max)
		}
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate checks that thresholds are usable
func (r Rules) Validate() error {
	if r.MinNameLength < 0 {
		return fmt.Errorf("min_name_length must not be negative")
	}
	if r.MaxItemPrice <= 0 {
		return fmt.Errorf("max_item_price must be positive")
	}
	if r.FallbackTotalMin > r.FallbackTotalMax {
		return fmt.Errorf("fallback_total min %s is above max %s", r.FallbackTotalMin, r.FallbackTotalMax)
	}
	if r.StoreLinesScanned < 1 {
		return fmt.Errorf("store_lines_scanned must be at least 1")
	}
	return nil
}

func dollarsToAmount(d float64) Amount {
	return Amount(math.Round(d * 100))
}

// skipped reports whether a line contains a skip keyword
func (r Rules) skipped(line string) bool {
	upper := strings.ToUpper(line)
	for _, kw := range r.SkipKeywords {
		if kw != "" && strings.Contains(upper, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}
