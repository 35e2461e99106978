package nutrition

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const kaleYAML = `
foods:
  - name: kale
    calories: 49
    protein: 4.3
    carbs: 9
    fat: 0.9
    fiber: 3.6
    vitamins:
      vitamin_c: 120
    minerals:
      iron: 1.5
    density: 0.3
    typical_portion_grams: 67
    portion_description: 1 cup kale
`

var _ = Describe("Reference", func() {
	It("should hold the built-in table", func() {
		ref := DefaultReference()
		Expect(ref.Len()).To(BeNumerically(">=", 40))

		apple, ok := ref.Lookup("apple")
		Expect(ok).To(BeTrue())
		Expect(apple.Calories).To(Equal(52.0))
		Expect(apple.Vitamins.C).To(Equal(4.6))

		_, ok = ref.Lookup("dragonfruit")
		Expect(ok).To(BeFalse())
	})

	It("should return sorted copies of the names", func() {
		ref := DefaultReference()
		names := ref.Names()
		Expect(names[0]).To(Equal("almond"))
		names[0] = "changed"
		Expect(ref.Names()[0]).To(Equal("almond"))
		Expect(ref.Sample(3)).To(Equal([]string{"almond", "apple", "banana"}))
		Expect(ref.Sample(1000)).To(HaveLen(ref.Len()))
	})

	Describe("ParseReference", func() {
		It("should parse a YAML table", func() {
			ref, err := ParseReference([]byte(kaleYAML))
			Expect(err).NotTo(HaveOccurred())

			kale, ok := ref.Lookup("kale")
			Expect(ok).To(BeTrue())
			Expect(kale.Vitamins.C).To(Equal(120.0))
			Expect(kale.Minerals.Iron).To(Equal(1.5))
			Expect(kale.PortionDescription).To(Equal("1 cup kale"))

			r, err := NewCalculator(ref).Calculate("kale", 67)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Vitamins["vitamin_c"]).To(Equal(80.4))
		})

		DescribeTable("should reject bad tables",
			func(doc, msg string) {
				_, err := ParseReference([]byte(doc))
				Expect(err).To(MatchError(ContainSubstring(msg)))
			},
			Entry("empty", "foods: []", "empty"),
			Entry("bad yaml", "foods: [", "yaml"),
			Entry("missing name", "foods:\n  - calories: 1\n    typical_portion_grams: 1", "name is required"),
			Entry("negative", "foods:\n  - name: x\n    fat: -1\n    typical_portion_grams: 1", "negative"),
			Entry("no portion", "foods:\n  - name: x\n    fat: 1", "typical portion"),
			Entry("duplicate", "foods:\n  - name: x\n    typical_portion_grams: 1\n  - name: x\n    typical_portion_grams: 1", "duplicate"),
		)
	})

	Describe("LoadReference", func() {
		It("should load from disk", func() {
			path := filepath.Join(GinkgoT().TempDir(), "foods.yaml")
			Expect(os.WriteFile(path, []byte(kaleYAML), 0o644)).To(Succeed())

			ref, err := LoadReference(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(ref.Len()).To(Equal(1))
		})

		It("should report a missing file", func() {
			_, err := LoadReference(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
			Expect(err).To(MatchError(ContainSubstring("reading food table")))
		})
	})
})
