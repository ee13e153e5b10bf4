package recipe

// Provenance 食譜來源資訊
type Provenance struct {
	Kind       SourceKind
	Identifier string // 檔名或 URL
}

// 選填欄位的唯一預設值，只在這裡套用
const (
	defaultTimeValue = "Unknown"
	defaultServings  = "Unknown"
)

// Assemble 將通過驗證的欄位與來源資訊合併為最終食譜紀錄
// 純合併：驗證層已保證結構正確，這裡不再做任何驗證
func Assemble(validated *ValidatedRecipe, prov Provenance) *StructuredRecipe {
	rec := &StructuredRecipe{
		Title:             validated.Title,
		Course:            validated.Course,
		Cuisine:           validated.Cuisine,
		PrepTime:          orDefault(validated.PrepTime, defaultTimeValue),
		CookTime:          orDefault(validated.CookTime, defaultTimeValue),
		TotalTime:         orDefault(validated.TotalTime, defaultTimeValue),
		Servings:          orDefault(validated.Servings, defaultServings),
		PrimaryIngredient: validated.PrimaryIngredient,
		Ingredients:       validated.Ingredients,
		Directions:        validated.Directions,
		Comments:          validated.Comments,
		RecipeSource:      prov.Identifier,
		SourceKind:        prov.Kind,
	}
	return rec
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
