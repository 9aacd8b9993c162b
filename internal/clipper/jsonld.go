package clipper

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"recipe-box/internal/recipe"
)

// ldRecipe mirrors the schema.org Recipe properties we read. Most of them come in
// several shapes in the wild, so they stay raw until normalized.
type ldRecipe struct {
	Type         json.RawMessage `json:"@type"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Image        json.RawMessage `json:"image"`
	PrepTime     string          `json:"prepTime"`
	CookTime     string          `json:"cookTime"`
	TotalTime    string          `json:"totalTime"`
	Yield        json.RawMessage `json:"recipeYield"`
	Ingredients  []string        `json:"recipeIngredient"`
	Instructions json.RawMessage `json:"recipeInstructions"`
	Category     json.RawMessage `json:"recipeCategory"`
	Keywords     json.RawMessage `json:"keywords"`
	Graph        []ldRecipe      `json:"@graph"`
}

func (l ldRecipe) isRecipe() bool {
	for _, t := range stringList(l.Type) {
		if t == "Recipe" {
			return true
		}
	}
	return false
}

// fromJSONLD looks for a schema.org Recipe in the page's ld+json blocks.
func fromJSONLD(doc *goquery.Document) (recipe.Recipe, bool) {
	var found *ldRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = findRecipe([]byte(s.Text()))
		return found == nil
	})
	if found == nil || found.Name == "" || len(found.Ingredients) == 0 {
		return recipe.Recipe{}, false
	}

	r := recipe.Recipe{
		Title:        cleanText(found.Name),
		Description:  cleanText(found.Description),
		ImageURL:     imageURL(found.Image),
		PrepTime:     ParseISODuration(found.PrepTime),
		CookTime:     ParseISODuration(found.CookTime),
		Servings:     parseYield(found.Yield),
		Instructions: instructions(found.Instructions),
		Tags:         keywords(found.Keywords),
	}
	if r.PrepTime == 0 && r.CookTime == 0 {
		r.CookTime = ParseISODuration(found.TotalTime)
	}
	if cats := stringList(found.Category); len(cats) > 0 {
		r.Category = cats[0]
	}
	for _, line := range found.Ingredients {
		if line = cleanText(line); line != "" {
			r.Ingredients = append(r.Ingredients, ParseIngredient(line))
		}
	}
	return r, true
}

// findRecipe accepts a single object, an array of objects or an @graph container.
func findRecipe(data []byte) *ldRecipe {
	var nodes []ldRecipe
	if err := json.Unmarshal(data, &nodes); err != nil {
		var single ldRecipe
		if err := json.Unmarshal(data, &single); err != nil {
			return nil
		}
		nodes = []ldRecipe{single}
	}
	for i := range nodes {
		if nodes[i].isRecipe() {
			return &nodes[i]
		}
		for j := range nodes[i].Graph {
			if nodes[i].Graph[j].isRecipe() {
				return &nodes[i].Graph[j]
			}
		}
	}
	return nil
}

// stringList decodes a string, a list of strings, or a list of numbers as strings.
func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}
	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		var out []string
		for _, v := range list {
			switch v := v.(type) {
			case string:
				out = append(out, v)
			case float64:
				out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		return out
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return []string{strconv.FormatFloat(n, 'f', -1, 64)}
	}
	return nil
}

func imageURL(raw json.RawMessage) string {
	if urls := stringList(raw); len(urls) > 0 {
		return urls[0]
	}
	var obj struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.URL != "" {
		return obj.URL
	}
	var objs []struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &objs); err == nil && len(objs) > 0 {
		return objs[0].URL
	}
	return ""
}

var firstNumber = regexp.MustCompile(`\d+`)

func parseYield(raw json.RawMessage) int {
	for _, y := range stringList(raw) {
		if m := firstNumber.FindString(y); m != "" {
			n, _ := strconv.Atoi(m)
			if n > 0 {
				return n
			}
		}
	}
	return 0
}

type ldStep struct {
	Type  string          `json:"@type"`
	Text  string          `json:"text"`
	Name  string          `json:"name"`
	Items json.RawMessage `json:"itemListElement"`
}

// instructions flattens plain text, string lists, HowToStep lists and HowToSection groups.
func instructions(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		var out []string
		for _, line := range strings.Split(text, "\n") {
			if line = cleanText(line); line != "" {
				out = append(out, line)
			}
		}
		return out
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	var out []string
	for _, el := range elems {
		var s string
		if err := json.Unmarshal(el, &s); err == nil {
			if s = cleanText(s); s != "" {
				out = append(out, s)
			}
			continue
		}
		var step ldStep
		if err := json.Unmarshal(el, &step); err != nil {
			continue
		}
		if step.Type == "HowToSection" {
			out = append(out, instructions(step.Items)...)
			continue
		}
		if t := cleanText(step.Text); t != "" {
			out = append(out, t)
		} else if t := cleanText(step.Name); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func keywords(raw json.RawMessage) []string {
	var out []string
	for _, entry := range stringList(raw) {
		for _, kw := range strings.Split(entry, ",") {
			if kw = strings.ToLower(cleanText(kw)); kw != "" && !containsFold(out, kw) {
				out = append(out, kw)
			}
		}
	}
	return out
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseISODuration converts an ISO 8601 duration such as "PT1H30M" to whole minutes.
// Unparseable input yields 0.
func ParseISODuration(s string) int {
	m := isoDuration.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0
	}
	atoi := func(v string) int {
		n, _ := strconv.Atoi(v)
		return n
	}
	minutes := atoi(m[1])*24*60 + atoi(m[2])*60 + atoi(m[3])
	if m[4] != "" {
		secs, _ := strconv.ParseFloat(m[4], 64)
		minutes += int(secs / 60)
	}
	return minutes
}
