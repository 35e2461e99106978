package nutrition

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Assess", func() {
	var calc *Calculator

	BeforeEach(func() {
		calc = NewCalculator(DefaultReference())
	})

	It("should rate a balanced grain highly", func() {
		r, err := calc.Calculate("oats", 100)
		Expect(err).NotTo(HaveOccurred())

		q := Assess(r)
		Expect(q.ProteinPercentage).To(Equal(17.5))
		Expect(q.CarbPercentage).To(Equal(67.9))
		Expect(q.FatPercentage).To(Equal(16.2))
		Expect(q.FiberPer100Calories).To(Equal(2.8))
		Expect(q.Score).To(Equal(85.0))
		Expect(q.Rating).To(Equal(RatingVeryGood))
		Expect(q.Recommendations).To(Equal([]string{
			"Reduce refined carbohydrates",
			"Include some healthy fats",
			"Add vitamin C rich foods",
			"Consider iron-rich foods",
		}))
	})

	It("should rate pure protein and fat poorly", func() {
		r, err := calc.Calculate("beef", 100)
		Expect(err).NotTo(HaveOccurred())

		q := r.Quality
		Expect(q.Score).To(Equal(30.0))
		Expect(q.Rating).To(Equal(RatingPoor))
		Expect(q.Recommendations).To(ContainElements(
			"Protein is high relative to other macronutrients",
			"Add complex carbohydrates for sustained energy",
			"Consider reducing fat intake",
			"Increase fiber intake",
		))
	})

	It("should not divide by zero calories", func() {
		r, err := calc.Calculate("salt", 6)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Quality.Score).To(BeZero())
		Expect(r.Quality.Rating).To(Equal(RatingPoor))
	})

	It("should skip the vitamin C note for citrus", func() {
		r, err := calc.Calculate("orange", 131)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Quality.Recommendations).NotTo(ContainElement("Add vitamin C rich foods"))
	})

	DescribeTable("rating thresholds",
		func(score float64, want Rating) {
			Expect(rating(score)).To(Equal(want))
		},
		Entry(nil, 100.0, RatingExcellent),
		Entry(nil, 90.0, RatingExcellent),
		Entry(nil, 89.0, RatingVeryGood),
		Entry(nil, 75.0, RatingVeryGood),
		Entry(nil, 60.0, RatingGood),
		Entry(nil, 45.0, RatingFair),
		Entry(nil, 44.0, RatingPoor),
	)
})
