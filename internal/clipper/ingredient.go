package clipper

import (
	"strconv"
	"strings"

	"recipe-box/internal/recipe"
)

var unicodeFractions = map[rune]float64{
	'½': 0.5, '⅓': 1.0 / 3, '⅔': 2.0 / 3, '¼': 0.25, '¾': 0.75,
	'⅛': 0.125, '⅜': 0.375, '⅝': 0.625, '⅞': 0.875,
}

// units maps the spellings found in recipes to a canonical unit.
var units = map[string]string{
	"cup": "cup", "cups": "cup", "c": "cup",
	"tablespoon": "tbsp", "tablespoons": "tbsp", "tbsp": "tbsp", "tbs": "tbsp", "tbsps": "tbsp",
	"teaspoon": "tsp", "teaspoons": "tsp", "tsp": "tsp", "tsps": "tsp",
	"ounce": "oz", "ounces": "oz", "oz": "oz",
	"pound": "lb", "pounds": "lb", "lb": "lb", "lbs": "lb",
	"gram": "g", "grams": "g", "g": "g",
	"kilogram": "kg", "kilograms": "kg", "kg": "kg",
	"milliliter": "ml", "milliliters": "ml", "ml": "ml",
	"liter": "l", "liters": "l", "l": "l",
	"clove": "clove", "cloves": "clove",
	"slice": "slice", "slices": "slice",
	"pinch": "pinch", "pinches": "pinch",
	"can": "can", "cans": "can",
}

// ParseIngredient splits a free-text ingredient line into amount, unit and name.
// Amounts may be integers, decimals, fractions ("1/2"), mixed numbers ("2 1/4") or
// unicode fractions. Lines without a leading amount keep their whole text as the name.
func ParseIngredient(line string) recipe.Ingredient {
	tokens := strings.Fields(line)
	amount := 0.0
	i := 0
	for i < len(tokens) {
		v, ok := parseQuantity(tokens[i])
		if !ok {
			break
		}
		amount += v
		i++
	}
	if i == 0 {
		return recipe.Ingredient{Name: strings.Join(tokens, " ")}
	}

	unit := ""
	if i < len(tokens) {
		if u, ok := units[strings.ToLower(strings.TrimSuffix(tokens[i], "."))]; ok {
			unit = u
			i++
			if i < len(tokens) && strings.EqualFold(tokens[i], "of") {
				i++
			}
		}
	}

	return recipe.Ingredient{
		Name:   strings.Join(tokens[i:], " "),
		Amount: amount,
		Unit:   unit,
	}
}

func parseQuantity(tok string) (float64, bool) {
	if tok[0] >= '0' && tok[0] <= '9' {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			return v, true
		}
	}
	if num, den, ok := strings.Cut(tok, "/"); ok {
		n, err1 := strconv.Atoi(num)
		d, err2 := strconv.Atoi(den)
		if err1 == nil && err2 == nil && d != 0 && n >= 0 {
			return float64(n) / float64(d), true
		}
		return 0, false
	}

	// "1½" or "½"
	runes := []rune(tok)
	if frac, ok := unicodeFractions[runes[len(runes)-1]]; ok {
		whole := string(runes[:len(runes)-1])
		if whole == "" {
			return frac, true
		}
		if n, err := strconv.Atoi(whole); err == nil && n >= 0 {
			return float64(n) + frac, true
		}
	}
	return 0, false
}
