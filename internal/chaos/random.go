package chaos

var funnyTitles = []string{
	"Disaster in the Kitchen",
	"What's That Smell?",
	"Mystery Meat Monday",
	"Burnt to Perfection",
	"I Can't Believe It's Edible",
	"Chef's Surprise (Even to the Chef)",
	"Leftover Roulette",
	"Fridge Cleanout Special",
	"Cooking Without Looking",
	"Midnight Munchies Madness",
	"Panic-Cooked Dinner",
	"Last Resort Recipe",
	"Experimental Cuisine",
	"Questionable Choices Casserole",
	"Chaos in a Bowl",
}

var foodEmojis = []string{
	"🍕", "🌮", "🍔", "🍦", "🍩", "🍗", "🥗", "🍜", "🍣", "🍇", "🍓", "🥑", "🍆", "🌶️", "🥕",
}

var colors = []string{
	"#FF5733", "#33FF57", "#3357FF", "#FF33F5", "#F5FF33",
	"#33FFF5", "#FF5733", "#8A33FF", "#FF3333", "#33FFBD",
}

// Pick is one randomly drawn meal as shown by the chaos meal plan.
type Pick struct {
	RecipeID string `json:"recipe_id"`
	Color    string `json:"color"`
	Emoji    string `json:"emoji"`
}

func (s *Store) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return pool[s.rng.IntN(len(pool))]
}

// RandomRecipe returns the id of a random built-in recipe.
func (s *Store) RandomRecipe() string {
	return s.pick(s.catalog.RecipeIDs())
}

// RandomCategory returns the id of a random category.
func (s *Store) RandomCategory() string {
	return s.pick(s.catalog.CategoryIDs())
}

// RandomFunnyTitle returns a joke recipe title.
func (s *Store) RandomFunnyTitle() string {
	return s.pick(funnyTitles)
}

// RandomEmoji returns a food emoji.
func (s *Store) RandomEmoji() string {
	return s.pick(foodEmojis)
}

// RandomColor returns a loud hex color.
func (s *Store) RandomColor() string {
	return s.pick(colors)
}

// Picks draws n random meals. Recipes may repeat.
func (s *Store) Picks(n int) []Pick {
	picks := make([]Pick, 0, max(n, 0))
	for i := 0; i < n; i++ {
		picks = append(picks, Pick{
			RecipeID: s.RandomRecipe(),
			Color:    s.RandomColor(),
			Emoji:    s.RandomEmoji(),
		})
	}
	return picks
}
