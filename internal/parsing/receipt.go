package parsing

// LineItem is one purchased product on a receipt
type LineItem struct {
	Name      string  `json:"name"`
	UnitPrice Amount  `json:"price"`
	Quantity  float64 `json:"quantity"`
	LineTotal Amount  `json:"total"`
}

func newLineItem(name string, price Amount, qty float64) (LineItem, bool) {
	total, ok := price.Times(qty)
	if !ok {
		return LineItem{}, false
	}
	return LineItem{
		Name:      name,
		UnitPrice: price,
		Quantity:  qty,
		LineTotal: total,
	}, true
}

// ParsedReceipt is the structured result of parsing OCR text.
// Nil fields were not found in the text.
type ParsedReceipt struct {
	Items         []LineItem `json:"items"`
	Total         *Amount    `json:"totalAmount"`
	Subtotal      *Amount    `json:"subtotal"`
	Tax           *Amount    `json:"tax"`
	PurchaseDate  *string    `json:"purchaseDate"`
	StoreName     *string    `json:"storeName"`
	PaymentMethod *string    `json:"paymentMethod"`
	Confidence    float64    `json:"confidence"`
	RawText       string     `json:"rawText"`

	// TotalInferred is set when no total keyword matched and the total was
	// taken from the largest plausible amount on the page.
	TotalInferred   bool    `json:"totalInferred"`
	TotalItems      int     `json:"totalItems"`
	CalculatedTotal *Amount `json:"calculatedTotal"`
}

// ItemsTotal sums the line totals of all items
func (r *ParsedReceipt) ItemsTotal() Amount {
	var sum Amount
	for _, item := range r.Items {
		sum += item.LineTotal
	}
	return sum
}
