package parsing

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FormatDisplay renders a parsed receipt as a plain-text summary
func FormatDisplay(r *ParsedReceipt) string {
	if r == nil || len(r.Items) == 0 {
		return "No items detected in receipt."
	}

	rule := strings.Repeat("=", 50)
	thin := strings.Repeat("-", 50)

	var b strings.Builder
	b.WriteString(rule + "\n")
	if r.StoreName != nil {
		fmt.Fprintf(&b, "Store: %s\n", *r.StoreName)
	}
	if r.PurchaseDate != nil {
		fmt.Fprintf(&b, "Date: %s\n", *r.PurchaseDate)
	}
	b.WriteString(thin + "\n")
	b.WriteString("Items:\n")
	b.WriteString(thin + "\n")

	for i, item := range r.Items {
		if item.Quantity != 1 {
			qty := strconv.FormatFloat(item.Quantity, 'f', -1, 64)
			fmt.Fprintf(&b, "%2d. %s (%sx $%s) = $%s\n", i+1, item.Name, qty, item.UnitPrice, item.LineTotal)
		} else {
			fmt.Fprintf(&b, "%2d. %s = $%s\n", i+1, item.Name, item.LineTotal)
		}
	}
	b.WriteString(thin + "\n")

	if r.Subtotal != nil {
		fmt.Fprintf(&b, "Subtotal: $%s\n", *r.Subtotal)
	}
	if r.Tax != nil {
		fmt.Fprintf(&b, "Tax: $%s\n", *r.Tax)
	}
	if r.Total != nil {
		fmt.Fprintf(&b, "TOTAL: $%s\n", *r.Total)
	}
	if r.PaymentMethod != nil {
		fmt.Fprintf(&b, "Payment: %s\n", titleCase(*r.PaymentMethod))
	}
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Confidence: %.1f%%", r.Confidence*100)
	return b.String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
