package ghost

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"recipe-box/internal/recipe"
)

var recipeTemplate = template.Must(template.New("recipe").Funcs(template.FuncMap{
	"amount": func(ing recipe.Ingredient) string {
		if ing.Amount == 0 {
			return ""
		}
		return strings.TrimSpace(fmt.Sprintf("%g %s", ing.Amount, ing.Unit))
	},
}).Parse(`{{with .ImageURL}}<figure><img src="{{.}}"></figure>
{{end}}{{with .Description}}<p><em>{{.}}</em></p>
{{end}}<p>Prep {{.PrepTime}} min · Cook {{.CookTime}} min · Serves {{.Servings}} · {{.Difficulty}}</p>
<h2>Ingredients</h2>
<ul>
{{range .Ingredients}}<li>{{with amount .}}{{.}} {{end}}{{.Name}}</li>
{{end}}</ul>
<h2>Instructions</h2>
<ol>
{{range .Instructions}}<li>{{.}}</li>
{{end}}</ol>
{{with .Nutrition}}<p>{{.Calories}} kcal · {{.Protein}}g protein · {{.Carbs}}g carbs · {{.Fat}}g fat</p>
{{end}}`))

// RenderRecipe turns r into the HTML body of a post.
func RenderRecipe(r recipe.Recipe) (string, error) {
	var buf bytes.Buffer
	if err := recipeTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render recipe: %w", err)
	}
	return buf.String(), nil
}
