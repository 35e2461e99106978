package nutrition

// Rating is the label attached to a quality score
type Rating string

const (
	RatingPoor      Rating = "Poor"
	RatingFair      Rating = "Fair"
	RatingGood      Rating = "Good"
	RatingVeryGood  Rating = "Very Good"
	RatingExcellent Rating = "Excellent"
)

// QualityAssessment scores a macro profile out of 100
type QualityAssessment struct {
	Score               float64  `json:"score"`
	Rating              Rating   `json:"rating"`
	ProteinPercentage   float64  `json:"protein_percentage"`
	CarbPercentage      float64  `json:"carb_percentage"`
	FatPercentage       float64  `json:"fat_percentage"`
	FiberPer100Calories float64  `json:"fiber_per_100_calories"`
	Recommendations     []string `json:"recommendations"`
}

// band awards full points inside ideal, fewer inside acceptable, and a
// token amount above floor
type band struct {
	idealLo, idealHi           float64
	acceptableLo, acceptableHi float64
	floor                      float64
	points                     [3]float64
}

func (b band) score(pct float64) float64 {
	switch {
	case pct >= b.idealLo && pct <= b.idealHi:
		return b.points[0]
	case pct >= b.acceptableLo && pct <= b.acceptableHi:
		return b.points[1]
	case pct >= b.floor:
		return b.points[2]
	}
	return 0
}

var (
	proteinBand = band{15, 35, 10, 40, 5, [3]float64{25, 20, 15}}
	carbBand    = band{45, 65, 35, 75, 25, [3]float64{25, 20, 15}}
	fatBand     = band{20, 35, 15, 40, 10, [3]float64{25, 20, 15}}
)

func fiberScore(per100 float64) float64 {
	switch {
	case per100 >= 3:
		return 25
	case per100 >= 2:
		return 20
	case per100 >= 1:
		return 15
	}
	return 0
}

func rating(score float64) Rating {
	switch {
	case score >= 90:
		return RatingExcellent
	case score >= 75:
		return RatingVeryGood
	case score >= 60:
		return RatingGood
	case score >= 45:
		return RatingFair
	}
	return RatingPoor
}

type profile struct {
	calories, protein, carbs, fat, fiber float64
	vitaminC, iron                       float64
	micros                               bool
}

// Assess scores the macronutrient balance of a single result
func Assess(r *NutrientResult) QualityAssessment {
	return assess(profile{
		calories: r.Calories,
		protein:  r.Protein,
		carbs:    r.Carbs,
		fat:      r.Fat,
		fiber:    r.Fiber,
		vitaminC: r.Vitamins["vitamin_c"],
		iron:     r.Minerals["iron"],
		micros:   true,
	})
}

func assess(p profile) QualityAssessment {
	var proteinPct, carbPct, fatPct, fiberPer100 float64
	if p.calories > 0 {
		proteinPct = p.protein * 4 / p.calories * 100
		carbPct = p.carbs * 4 / p.calories * 100
		fatPct = p.fat * 9 / p.calories * 100
		fiberPer100 = p.fiber / p.calories * 100
	}

	score := proteinBand.score(proteinPct) +
		carbBand.score(carbPct) +
		fatBand.score(fatPct) +
		fiberScore(fiberPer100)

	recs := []string{}
	switch {
	case proteinPct < proteinBand.idealLo:
		recs = append(recs, "Consider adding more protein sources")
	case proteinPct > proteinBand.idealHi:
		recs = append(recs, "Protein is high relative to other macronutrients")
	}
	switch {
	case carbPct < carbBand.idealLo:
		recs = append(recs, "Add complex carbohydrates for sustained energy")
	case carbPct > carbBand.idealHi:
		recs = append(recs, "Reduce refined carbohydrates")
	}
	switch {
	case fatPct < fatBand.idealLo:
		recs = append(recs, "Include some healthy fats")
	case fatPct > fatBand.idealHi:
		recs = append(recs, "Consider reducing fat intake")
	}
	if fiberPer100 < 2 {
		recs = append(recs, "Increase fiber intake")
	}
	if p.micros {
		if p.vitaminC < 10 {
			recs = append(recs, "Add vitamin C rich foods")
		}
		if p.iron < 2 {
			recs = append(recs, "Consider iron-rich foods")
		}
	}

	return QualityAssessment{
		Score:               score,
		Rating:              rating(score),
		ProteinPercentage:   round(proteinPct, 1),
		CarbPercentage:      round(carbPct, 1),
		FatPercentage:       round(fatPct, 1),
		FiberPer100Calories: round(fiberPer100, 1),
		Recommendations:     recs,
	}
}
