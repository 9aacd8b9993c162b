package clipper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"recipe-box/internal/recipe"
)

var (
	ingredientHeadings  = []string{"ingredient"}
	instructionHeadings = []string{"instruction", "method", "direction", "preparation", "steps"}
)

// fromHeadings reads pages without structured data: the first h1 is the title and the
// lists following the "Ingredients" and "Instructions" headings hold the content.
func fromHeadings(doc *goquery.Document) (recipe.Recipe, bool) {
	doc.Find("script, style, nav, footer, iframe, .ads, #ads").Remove()

	title := cleanText(doc.Find("h1").First().Text())
	ingredients := listAfterHeading(doc, ingredientHeadings)
	if title == "" || len(ingredients) == 0 {
		return recipe.Recipe{}, false
	}

	r := recipe.Recipe{
		Title:        title,
		Description:  cleanText(doc.Find(`meta[name="description"]`).AttrOr("content", "")),
		ImageURL:     doc.Find(`meta[property="og:image"]`).AttrOr("content", ""),
		Instructions: listAfterHeading(doc, instructionHeadings),
	}
	for _, line := range ingredients {
		r.Ingredients = append(r.Ingredients, ParseIngredient(line))
	}
	return r, true
}

func listAfterHeading(doc *goquery.Document, keywords []string) []string {
	var items []string
	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		text := strings.ToLower(h.Text())
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				h.NextAllFiltered("ul, ol").First().Find("li").Each(func(_ int, li *goquery.Selection) {
					if t := cleanText(li.Text()); t != "" {
						items = append(items, t)
					}
				})
				return len(items) == 0
			}
		}
		return true
	})
	return items
}
