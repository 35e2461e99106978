package nutrition

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Vitamins per 100g, in mg
type Vitamins struct {
	C          float64 `yaml:"vitamin_c" json:"vitamin_c"`
	A          float64 `yaml:"vitamin_a" json:"vitamin_a"`
	E          float64 `yaml:"vitamin_e" json:"vitamin_e"`
	K          float64 `yaml:"vitamin_k" json:"vitamin_k"`
	Thiamine   float64 `yaml:"thiamine" json:"thiamine"`
	Riboflavin float64 `yaml:"riboflavin" json:"riboflavin"`
	Niacin     float64 `yaml:"niacin" json:"niacin"`
	Folate     float64 `yaml:"folate" json:"folate"`
}

// Minerals per 100g, in mg
type Minerals struct {
	Calcium    float64 `yaml:"calcium" json:"calcium"`
	Iron       float64 `yaml:"iron" json:"iron"`
	Magnesium  float64 `yaml:"magnesium" json:"magnesium"`
	Phosphorus float64 `yaml:"phosphorus" json:"phosphorus"`
	Zinc       float64 `yaml:"zinc" json:"zinc"`
	Copper     float64 `yaml:"copper" json:"copper"`
	Manganese  float64 `yaml:"manganese" json:"manganese"`
	Selenium   float64 `yaml:"selenium" json:"selenium"`
}

// Food is one entry of the nutrient reference. All nutrient values are per
// 100g of the food.
type Food struct {
	Name               string  `yaml:"name" json:"name"`
	Calories           float64 `yaml:"calories" json:"calories"`
	Protein            float64 `yaml:"protein" json:"protein"`
	Carbs              float64 `yaml:"carbs" json:"carbs"`
	Fat                float64 `yaml:"fat" json:"fat"`
	Fiber              float64 `yaml:"fiber" json:"fiber"`
	Sugar              float64 `yaml:"sugar" json:"sugar"`
	SaturatedFat       float64 `yaml:"saturated_fat" json:"saturated_fat"`
	MonounsaturatedFat float64 `yaml:"monounsaturated_fat" json:"monounsaturated_fat"`
	PolyunsaturatedFat float64 `yaml:"polyunsaturated_fat" json:"polyunsaturated_fat"`
	TransFat           float64 `yaml:"trans_fat" json:"trans_fat"`
	Cholesterol        float64 `yaml:"cholesterol" json:"cholesterol"`
	Sodium             float64 `yaml:"sodium" json:"sodium"`
	Potassium          float64 `yaml:"potassium" json:"potassium"`

	Vitamins Vitamins `yaml:"vitamins" json:"vitamins"`
	Minerals Minerals `yaml:"minerals" json:"minerals"`

	Density             float64 `yaml:"density" json:"density"` // g/cm³
	TypicalPortionGrams float64 `yaml:"typical_portion_grams" json:"typical_portion_grams"`
	PortionDescription  string  `yaml:"portion_description" json:"portion_description"`
}

func (f Food) values() []float64 {
	v, m := f.Vitamins, f.Minerals
	return []float64{
		f.Calories, f.Protein, f.Carbs, f.Fat, f.Fiber, f.Sugar,
		f.SaturatedFat, f.MonounsaturatedFat, f.PolyunsaturatedFat, f.TransFat,
		f.Cholesterol, f.Sodium, f.Potassium,
		v.C, v.A, v.E, v.K, v.Thiamine, v.Riboflavin, v.Niacin, v.Folate,
		m.Calcium, m.Iron, m.Magnesium, m.Phosphorus, m.Zinc, m.Copper, m.Manganese, m.Selenium,
		f.Density,
	}
}

func (f Food) validate() error {
	if f.Name == "" {
		return fmt.Errorf("food name is required")
	}
	for _, v := range f.values() {
		if v < 0 {
			return fmt.Errorf("food %s: nutrient values must not be negative", f.Name)
		}
	}
	if f.TypicalPortionGrams <= 0 {
		return fmt.Errorf("food %s: typical portion must be positive", f.Name)
	}
	return nil
}

// Reference is a read-only table of foods keyed by name. Build it once at
// startup and share it; nothing mutates it afterwards.
type Reference struct {
	foods map[string]Food
	names []string
}

// NewReference validates foods and builds the lookup table
func NewReference(foods []Food) (*Reference, error) {
	if len(foods) == 0 {
		return nil, fmt.Errorf("reference table is empty")
	}
	ref := &Reference{
		foods: make(map[string]Food, len(foods)),
		names: make([]string, 0, len(foods)),
	}
	for _, f := range foods {
		if err := f.validate(); err != nil {
			return nil, err
		}
		if _, dup := ref.foods[f.Name]; dup {
			return nil, fmt.Errorf("duplicate food %s", f.Name)
		}
		ref.foods[f.Name] = f
		ref.names = append(ref.names, f.Name)
	}
	sort.Strings(ref.names)
	return ref, nil
}

type referenceFile struct {
	Foods []Food `yaml:"foods"`
}

// LoadReference reads a YAML nutrient table
func LoadReference(path string) (*Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading food table %s: %w", path, err)
	}
	return ParseReference(data)
}

// ParseReference builds a Reference from YAML of the form {foods: [...]}
func ParseReference(data []byte) (*Reference, error) {
	var f referenceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing food table yaml: %w", err)
	}
	ref, err := NewReference(f.Foods)
	if err != nil {
		return nil, fmt.Errorf("building food table: %w", err)
	}
	return ref, nil
}

// Lookup returns the food stored under the exact name
func (r *Reference) Lookup(name string) (Food, bool) {
	f, ok := r.foods[name]
	return f, ok
}

// Names returns all food names, sorted
func (r *Reference) Names() []string {
	return append([]string(nil), r.names...)
}

// Sample returns up to n food names for error suggestions
func (r *Reference) Sample(n int) []string {
	n = min(n, len(r.names))
	return append([]string(nil), r.names[:n]...)
}

// Len is the number of foods in the table
func (r *Reference) Len() int {
	return len(r.names)
}
