package nutrition

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AnalyzeMeal", func() {
	var calc *Calculator

	BeforeEach(func() {
		calc = NewCalculator(DefaultReference())
	})

	It("should total a chicken and rice plate", func() {
		m, err := calc.AnalyzeMeal([]Ingredient{
			{Name: "chicken", Grams: 150},
			{Name: "rice", Grams: 200},
			{Name: "broccoli", Grams: 100},
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(m.TotalCalories).To(Equal(541.5))
		Expect(m.TotalProtein).To(Equal(54.7))
		Expect(m.TotalCarbs).To(Equal(63.0))
		Expect(m.TotalFat).To(Equal(6.4))
		Expect(m.TotalWeight).To(Equal(450.0))
		Expect(m.CaloriesPer100g).To(Equal(120.3))
		Expect(m.MealType).To(Equal(LightMeal))
		Expect(m.Breakdown).To(HaveLen(3))
		Expect(m.Skipped).To(BeEmpty())
		Expect(m.Recommendations).To(BeEmpty())
	})

	It("should skip unknown ingredients", func() {
		m, err := calc.AnalyzeMeal([]Ingredient{
			{Name: " Banana ", Grams: 120},
			{Name: "dragonfruit", Grams: 100},
			{Name: "apple", Grams: -1},
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(m.Breakdown).To(HaveLen(1))
		Expect(m.Skipped).To(HaveLen(2))
		Expect(m.Skipped[0].Name).To(Equal("dragonfruit"))
		Expect(m.Skipped[0].Reason).To(ContainSubstring("unknown food"))
		Expect(m.Skipped[1].Reason).To(ContainSubstring("invalid input"))
		Expect(m.MealType).To(Equal(LightSnack))
		Expect(m.Recommendations).To(ConsistOf(
			"Light meal - may need additional snacks",
			"Consider adding more protein",
		))
	})

	It("should flag a heavy meal", func() {
		m, err := calc.AnalyzeMeal([]Ingredient{
			{Name: "pasta", Grams: 400},
			{Name: "cheese", Grams: 100},
			{Name: "olive_oil", Grams: 30},
			{Name: "beef", Grams: 150},
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(m.MealType).To(Equal(LargeMeal))
		Expect(m.Recommendations).To(ContainElements(
			"High calorie meal - consider portion control",
			"High fat content - balance with vegetables",
			"High carb content - add protein and fiber",
		))
	})

	It("should reject an empty meal", func() {
		_, err := calc.AnalyzeMeal(nil)
		Expect(errors.Is(err, ErrInvalidInput)).To(BeTrue())
	})

	It("should fail when nothing could be calculated", func() {
		_, err := calc.AnalyzeMeal([]Ingredient{{Name: "dragonfruit", Grams: 100}})
		Expect(errors.Is(err, ErrEmptyMeal)).To(BeTrue())
	})

	DescribeTable("meal types",
		func(calories float64, want MealType) {
			Expect(classifyMeal(calories)).To(Equal(want))
		},
		Entry(nil, 0.0, LightSnack),
		Entry(nil, 199.9, LightSnack),
		Entry(nil, 200.0, Snack),
		Entry(nil, 400.0, LightMeal),
		Entry(nil, 600.0, RegularMeal),
		Entry(nil, 800.0, LargeMeal),
	)
})
