package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleMergesProvenance(t *testing.T) {
	validated := &ValidatedRecipe{
		Title:             "Venison Chili",
		Course:            "Dinner",
		Cuisine:           "American",
		PrepTime:          "20 minutes",
		CookTime:          "2 hours",
		TotalTime:         "2 hours 20 minutes",
		Servings:          "6",
		PrimaryIngredient: "Venison",
		Ingredients:       []IngredientLine{{Ingredient: "ground venison", Quantity: "2", Unit: "lb"}},
		Directions:        []DirectionStep{{StepNumber: 1, Instruction: "Brown the meat."}},
		Comments:          []string{},
	}

	rec := Assemble(validated, Provenance{Kind: SourceURL, Identifier: "https://example.com/chili"})
	assert.Equal(t, "Venison Chili", rec.Title)
	assert.Equal(t, "https://example.com/chili", rec.RecipeSource)
	assert.Equal(t, SourceURL, rec.SourceKind)
	assert.False(t, rec.IsFromFile())
	assert.Equal(t, validated.Ingredients, rec.Ingredients)
	assert.Equal(t, validated.Directions, rec.Directions)
}

func TestAssembleAppliesDefaults(t *testing.T) {
	validated := &ValidatedRecipe{Title: "Bare Minimum"}

	rec := Assemble(validated, Provenance{Kind: SourceFile, Identifier: "recipe.txt"})
	assert.Equal(t, "Unknown", rec.PrepTime)
	assert.Equal(t, "Unknown", rec.CookTime)
	assert.Equal(t, "Unknown", rec.TotalTime)
	assert.Equal(t, "Unknown", rec.Servings)
	assert.True(t, rec.IsFromFile())
}

func TestAssembleKeepsProvidedValues(t *testing.T) {
	validated := &ValidatedRecipe{Title: "Soup", PrepTime: "5 minutes"}
	rec := Assemble(validated, Provenance{Kind: SourceURL, Identifier: "u"})
	assert.Equal(t, "5 minutes", rec.PrepTime)
}
