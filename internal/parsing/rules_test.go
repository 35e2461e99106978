package parsing

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Rules", func() {
	Describe("SameLineItem", func() {
		DescribeTable("extracting",
			func(line string, ok bool, name string, price Amount, qty float64) {
				gotName, gotPrice, gotQty, consumed, gotOK := SameLineItem.Extract([]string{line}, 0)
				Expect(gotOK).To(Equal(ok))
				if ok {
					Expect(gotName).To(Equal(name))
					Expect(gotPrice).To(Equal(price))
					Expect(gotQty).To(Equal(qty))
					Expect(consumed).To(Equal(1))
				}
			},
			Entry("name and price", "MILK 3.49", true, "MILK", Amount(349), 1.0),
			Entry("dollar sign", "MILK $3.49", true, "MILK", Amount(349), 1.0),
			Entry("quantity with at", "EGGS 2 @ 1.99", true, "EGGS", Amount(199), 2.0),
			Entry("quantity with x", "LIMES 3x0.50", true, "LIMES", Amount(50), 3.0),
			Entry("price is not split into quantity", "TOTAL 19.17", true, "TOTAL", Amount(1917), 1.0),
			Entry("bare amount", "3.49", false, "", Amount(0), 0.0),
			Entry("no price", "WHOLE MILK", false, "", Amount(0), 0.0),
			Entry("trailing text", "MILK 3.49 F", false, "", Amount(0), 0.0),
		)
	})

	Describe("SplitLineItem", func() {
		It("should pair a name line with a bare price line", func() {
			name, price, qty, consumed, ok := SplitLineItem.Extract([]string{"MILK", "3.49"}, 0)
			Expect(ok).To(BeTrue())
			Expect(name).To(Equal("MILK"))
			Expect(price).To(Equal(Amount(349)))
			Expect(qty).To(Equal(1.0))
			Expect(consumed).To(Equal(2))
		})

		It("should not match on the last line", func() {
			_, _, _, _, ok := SplitLineItem.Extract([]string{"MILK"}, 0)
			Expect(ok).To(BeFalse())
		})

		It("should not match when the next line has more than a price", func() {
			_, _, _, _, ok := SplitLineItem.Extract([]string{"MILK", "BREAD 2.29"}, 0)
			Expect(ok).To(BeFalse())
		})

		It("should not use a line that already holds a price as the name", func() {
			_, _, _, _, ok := SplitLineItem.Extract([]string{"AB 1.99", "2.00"}, 0)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("AmountRules", func() {
		var rules Rules

		BeforeEach(func() {
			rules = DefaultRules()
		})

		classify := func(line string) (Field, Amount, bool) {
			for _, rule := range rules.AmountRules {
				if a, ok := rule.Match(line); ok {
					return rule.Field, a, true
				}
			}
			return 0, 0, false
		}

		DescribeTable("classifying lines",
			func(line string, field Field, amount Amount) {
				f, a, ok := classify(line)
				Expect(ok).To(BeTrue())
				Expect(f).To(Equal(field))
				Expect(a).To(Equal(amount))
			},
			Entry("subtotal is not a total", "SUBTOTAL 9.66", FieldSubtotal, Amount(966)),
			Entry("sub-total", "Sub-Total: 9.66", FieldSubtotal, Amount(966)),
			Entry("tax", "TAX 0.77", FieldTax, Amount(77)),
			Entry("total with colon and dollar", "TOTAL: $10.43", FieldTotal, Amount(1043)),
			Entry("grand total", "GRAND TOTAL 11.00", FieldTotal, Amount(1100)),
			Entry("amount due", "AMOUNT DUE 12.00", FieldTotal, Amount(1200)),
			Entry("balance", "Balance 4.20", FieldTotal, Amount(420)),
		)

		It("should ignore item lines", func() {
			_, _, ok := classify("MILK 3.49")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("ParseRules", func() {
		It("should append extra skip keywords", func() {
			rules, err := ParseRules([]byte("extra_skip_keywords: [COUPON]\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(rules.SkipKeywords).To(ContainElement("COUPON"))
			Expect(rules.SkipKeywords).To(ContainElement("WALMART"))

			r := NewParser(rules).Parse("COUPON SAVINGS 1.00\nMILK 3.49")
			Expect(r.Items).To(HaveLen(1))
			Expect(r.Items[0].Name).To(Equal("MILK"))
		})

		It("should replace the skip list", func() {
			rules, err := ParseRules([]byte("skip_keywords: [FOO]\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(rules.SkipKeywords).To(Equal([]string{"FOO"}))
		})

		It("should convert dollar thresholds to cents", func() {
			rules, err := ParseRules([]byte("max_item_price: 500\nfallback_total:\n  min: 1.5\n  max: 50\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(rules.MaxItemPrice).To(Equal(Amount(50000)))
			Expect(rules.FallbackTotalMin).To(Equal(Amount(150)))
			Expect(rules.FallbackTotalMax).To(Equal(Amount(5000)))
		})

		It("should keep defaults for unset fields", func() {
			rules, err := ParseRules([]byte("min_name_length: 2\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(rules.MinNameLength).To(Equal(2))
			Expect(rules.StoreLinesScanned).To(Equal(3))
			Expect(rules.ItemRules).To(HaveLen(2))
		})

		It("should reject an inverted fallback range", func() {
			_, err := ParseRules([]byte("fallback_total:\n  min: 300\n  max: 200\n"))
			Expect(err).To(HaveOccurred())
		})

		It("should reject invalid yaml", func() {
			_, err := ParseRules([]byte("skip_keywords: [unterminated\n"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("LoadRules", func() {
		It("should read the file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "rules.yaml")
			Expect(os.WriteFile(path, []byte("extra_store_keywords: [bodega]\n"), 0644)).To(Succeed())

			rules, err := LoadRules(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(rules.StoreKeywords).To(ContainElement("bodega"))
		})

		It("should return an error for a missing file", func() {
			_, err := LoadRules(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})
})

var _ = Describe("Amount", func() {
	DescribeTable("ParseAmount",
		func(in string, expected Amount) {
			a, err := ParseAmount(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(expected))
		},
		Entry("plain", "3.49", Amount(349)),
		Entry("dollar sign", "$12.00", Amount(1200)),
		Entry("whole dollars", "12", Amount(1200)),
		Entry("one decimal", "1.5", Amount(150)),
		Entry("thousands separator", "1,234.50", Amount(123450)),
	)

	It("should reject garbage", func() {
		_, err := ParseAmount("abc")
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("should reject amounts that do not fit in cents",
		func(in string) {
			_, err := ParseAmount(in)
			Expect(err).To(MatchError(ContainSubstring("too large")))
		},
		Entry("twenty digits", "99999999999999999999.99"),
		Entry("eighteen digits", "100000000000000000.00"),
		Entry("sixteen digits", "1000000000000000"),
	)

	It("should accept leading zeros and the largest amount", func() {
		a, err := ParseAmount("000000000000000000001.00")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(Amount(100)))

		a, err = ParseAmount("999999999999999.99")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).To(Equal(MaxAmount))
	})

	It("should round quantity products to the cent", func() {
		total, ok := Amount(199).Times(1.5)
		Expect(ok).To(BeTrue())
		Expect(total).To(Equal(Amount(299)))

		total, ok = Amount(333).Times(3)
		Expect(ok).To(BeTrue())
		Expect(total).To(Equal(Amount(999)))
	})

	It("should refuse products beyond the largest amount", func() {
		_, ok := Amount(100).Times(1e20)
		Expect(ok).To(BeFalse())
	})

	It("should marshal as a two-decimal number", func() {
		data, err := Amount(305).MarshalJSON()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("3.05"))
	})

	It("should round extra decimals when unmarshaling", func() {
		var a Amount
		Expect(a.UnmarshalJSON([]byte("3.499"))).To(Succeed())
		Expect(a).To(Equal(Amount(350)))
	})
})
