package nutrition

// USDA-derived per-100g values. Entries without a detailed breakdown carry
// zero for the fields they do not list.

func basic(name string, calories, protein, carbs, fat, fiber, density, portion float64, desc string) Food {
	return Food{
		Name:                name,
		Calories:            calories,
		Protein:             protein,
		Carbs:               carbs,
		Fat:                 fat,
		Fiber:               fiber,
		Density:             density,
		TypicalPortionGrams: portion,
		PortionDescription:  desc,
	}
}

func defaultFoods() []Food {
	apple := basic("apple", 52, 0.3, 14, 0.2, 2.4, 0.6, 182, "1 medium apple")
	apple.Sugar, apple.PolyunsaturatedFat, apple.Sodium, apple.Potassium = 10.4, 0.1, 1, 107
	apple.Vitamins = Vitamins{C: 4.6, A: 3, E: 0.2, K: 2.2, Niacin: 0.1, Folate: 3}
	apple.Minerals = Minerals{Calcium: 6, Iron: 0.1, Magnesium: 5, Phosphorus: 11}

	banana := basic("banana", 89, 1.1, 23, 0.3, 2.6, 0.7, 120, "1 medium banana")
	banana.Sugar, banana.SaturatedFat, banana.PolyunsaturatedFat = 12.2, 0.1, 0.1
	banana.Sodium, banana.Potassium = 1, 358
	banana.Vitamins = Vitamins{C: 8.7, A: 64, E: 0.1, K: 0.5, Riboflavin: 0.1, Niacin: 0.7, Folate: 20}
	banana.Minerals = Minerals{Calcium: 5, Iron: 0.3, Magnesium: 27, Phosphorus: 22, Zinc: 0.2, Copper: 0.1, Manganese: 0.3, Selenium: 1}

	orange := basic("orange", 47, 0.9, 12, 0.1, 2.4, 0.6, 131, "1 medium orange")
	orange.Sugar, orange.Potassium = 9.4, 181
	orange.Vitamins = Vitamins{C: 53.2, A: 225, E: 0.2, Thiamine: 0.1, Niacin: 0.3, Folate: 40}
	orange.Minerals = Minerals{Calcium: 40, Iron: 0.1, Magnesium: 10, Phosphorus: 14, Zinc: 0.1}

	grape := basic("grape", 67, 0.6, 17, 0.2, 0.9, 0.7, 92, "1 cup grapes")
	grape.Sugar, grape.SaturatedFat, grape.PolyunsaturatedFat = 16.3, 0.1, 0.1
	grape.Sodium, grape.Potassium = 2, 191
	grape.Vitamins = Vitamins{C: 4, A: 66, E: 0.2, K: 14.6, Thiamine: 0.1, Riboflavin: 0.1, Niacin: 0.2, Folate: 2}
	grape.Minerals = Minerals{Calcium: 10, Iron: 0.4, Magnesium: 7, Phosphorus: 20, Zinc: 0.1, Copper: 0.1, Manganese: 0.1, Selenium: 0.1}

	strawberry := basic("strawberry", 32, 0.7, 8, 0.3, 2.0, 0.6, 152, "1 cup strawberries")
	strawberry.Sugar, strawberry.PolyunsaturatedFat, strawberry.Sodium, strawberry.Potassium = 4.9, 0.2, 1, 153
	strawberry.Vitamins = Vitamins{C: 58.8, A: 12, E: 0.3, K: 2.2, Niacin: 0.4, Folate: 24}
	strawberry.Minerals = Minerals{Calcium: 16, Iron: 0.4, Magnesium: 13, Phosphorus: 24, Zinc: 0.1, Manganese: 0.4, Selenium: 0.4}

	return []Food{
		// Fruits
		apple, banana, orange, grape, strawberry,
		basic("blueberry", 57, 0.7, 14, 0.3, 2.4, 0.6, 148, "1 cup blueberries"),
		basic("pineapple", 50, 0.5, 13, 0.1, 1.4, 0.8, 165, "1 cup pineapple"),
		basic("mango", 60, 0.8, 15, 0.4, 1.6, 0.7, 165, "1 medium mango"),
		basic("peach", 39, 0.9, 10, 0.3, 1.5, 0.6, 150, "1 medium peach"),
		basic("pear", 57, 0.4, 15, 0.1, 3.1, 0.6, 166, "1 medium pear"),

		// Vegetables
		basic("carrot", 41, 0.9, 10, 0.2, 2.8, 0.7, 61, "1 medium carrot"),
		basic("broccoli", 34, 2.8, 7, 0.4, 2.6, 0.4, 91, "1 cup broccoli"),
		basic("tomato", 18, 0.9, 4, 0.2, 1.2, 0.6, 123, "1 medium tomato"),
		basic("potato", 77, 2.0, 17, 0.1, 2.2, 0.7, 150, "1 medium potato"),
		basic("onion", 40, 1.1, 9, 0.1, 1.7, 0.6, 110, "1 medium onion"),
		basic("lettuce", 15, 1.4, 3, 0.2, 1.3, 0.2, 36, "1 cup lettuce"),
		basic("spinach", 23, 2.9, 4, 0.4, 2.2, 0.2, 30, "1 cup spinach"),
		basic("cucumber", 16, 0.7, 4, 0.1, 0.5, 0.6, 119, "1 medium cucumber"),
		basic("bell_pepper", 31, 1.0, 7, 0.3, 2.5, 0.6, 119, "1 medium bell pepper"),
		basic("corn", 86, 3.3, 19, 1.2, 2.7, 0.7, 154, "1 cup corn"),

		// Nuts and seeds
		basic("almond", 579, 21, 22, 50, 12, 0.6, 28, "1 oz almonds"),
		basic("walnut", 654, 15, 14, 65, 6.7, 0.6, 28, "1 oz walnuts"),
		basic("cashew", 553, 18, 30, 44, 3.3, 0.6, 28, "1 oz cashews"),
		basic("pistachio", 560, 20, 28, 45, 10, 0.6, 28, "1 oz pistachios"),
		basic("peanut", 567, 26, 16, 49, 8.5, 0.6, 28, "1 oz peanuts"),
		basic("sunflower_seed", 584, 21, 20, 51, 8.6, 0.6, 28, "1 oz sunflower seeds"),

		// Grains
		basic("rice", 130, 2.7, 28, 0.3, 0.4, 0.8, 158, "1 cup cooked rice"),
		basic("wheat", 339, 13, 71, 2.5, 12, 0.8, 120, "1 cup wheat flour"),
		basic("oats", 389, 17, 66, 7, 11, 0.6, 81, "1 cup oats"),
		basic("quinoa", 120, 4.4, 22, 1.9, 2.8, 0.7, 185, "1 cup cooked quinoa"),
		basic("bread", 265, 9, 49, 3.2, 2.7, 0.3, 28, "1 slice bread"),
		basic("pasta", 131, 5, 25, 1.1, 1.8, 0.6, 140, "1 cup cooked pasta"),

		// Proteins
		basic("chicken", 165, 31, 0, 3.6, 0, 1.0, 100, "3.5 oz chicken breast"),
		basic("beef", 250, 26, 0, 15, 0, 1.0, 100, "3.5 oz beef"),
		basic("fish", 206, 22, 0, 12, 0, 1.0, 100, "3.5 oz fish"),
		basic("salmon", 208, 25, 0, 12, 0, 1.0, 100, "3.5 oz salmon"),
		basic("egg", 155, 13, 1.1, 11, 0, 1.0, 50, "1 large egg"),
		basic("tofu", 76, 8, 2, 5, 0.3, 1.0, 100, "3.5 oz tofu"),
		basic("beans", 127, 8, 23, 0.5, 6, 0.8, 177, "1 cup cooked beans"),

		// Dairy
		basic("milk", 42, 3.4, 5, 1, 0, 1.0, 244, "1 cup milk"),
		basic("cheese", 113, 7, 1, 9, 0, 1.0, 28, "1 oz cheese"),
		basic("yogurt", 59, 10, 4, 0.4, 0, 1.0, 245, "1 cup yogurt"),
		basic("butter", 717, 0.9, 0.1, 81, 0, 0.9, 14, "1 tbsp butter"),

		// Other
		basic("olive_oil", 884, 0, 0, 100, 0, 0.9, 14, "1 tbsp olive oil"),
		basic("sugar", 387, 0, 100, 0, 0, 1.6, 4, "1 tsp sugar"),
		basic("salt", 0, 0, 0, 0, 0, 2.2, 6, "1 tsp salt"),
	}
}

// DefaultReference returns the built-in nutrient table
func DefaultReference() *Reference {
	ref, err := NewReference(defaultFoods())
	if err != nil {
		panic(err)
	}
	return ref
}
