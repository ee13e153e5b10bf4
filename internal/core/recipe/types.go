package recipe

import "strings"

// SourceKind 食譜來源種類
type SourceKind string

const (
	SourceFile SourceKind = "file"
	SourceURL  SourceKind = "url"
)

// ExtractionRequest 匯入管線的輸入
// Text 為已截斷的原始文字，Source 為檔名或 URL
type ExtractionRequest struct {
	Text   string
	Kind   SourceKind
	Source string
}

// IngredientLine 單行食材
// Quantity 為數字或分數字面值，無數量時為空字串
// Unit 必須屬於 CanonicalUnits 或為空字串
type IngredientLine struct {
	Ingredient string `json:"ingredient"`
	Quantity   string `json:"quantity"`
	Unit       string `json:"unit"`
}

// DirectionStep 單一料理步驟
// StepNumber 從 1 開始連續遞增，由驗證層保證
type DirectionStep struct {
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
}

// StructuredRecipe 結構化食譜紀錄
// 由管線一次性建構，回傳後即不再修改
type StructuredRecipe struct {
	Title             string           `json:"title"`
	Course            string           `json:"course"`
	Cuisine           string           `json:"cuisine"`
	PrepTime          string           `json:"prep_time"`
	CookTime          string           `json:"cook_time"`
	TotalTime         string           `json:"total_time"`
	Servings          string           `json:"servings"`
	PrimaryIngredient string           `json:"primary_ingredient"`
	Ingredients       []IngredientLine `json:"ingredients"`
	Directions        []DirectionStep  `json:"directions"`
	Comments          []string         `json:"comments"`
	RecipeSource      string           `json:"recipe_source"`
	SourceKind        SourceKind       `json:"source_kind"`
}

// IsFromFile 回報食譜是否來自上傳檔案
func (r *StructuredRecipe) IsFromFile() bool {
	return r.SourceKind == SourceFile
}

// 課程、菜系、主要食材的封閉枚舉
// 模型輸出不在集合內時由驗證層退回預設值，不會失敗
var (
	Courses = []string{
		"Breakfast", "Lunch", "Dinner", "Dessert",
		"Appetizer", "Snack", "Beverage", "Baking",
	}
	Cuisines = []string{
		"American", "Italian", "Mexican", "Chinese", "Indian",
		"French", "German", "Japanese", "Thai", "Other",
	}
	PrimaryIngredients = []string{
		"Beef", "Chicken", "Pork", "Vegetables", "Fish", "Dairy",
		"Grains", "Pasta", "Lamb", "Venison", "Bear", "Moose", "Other",
	}
)

// 枚舉退回預設值
const (
	FallbackCourse            = "Uncategorized"
	FallbackCuisine           = "Other"
	FallbackPrimaryIngredient = "Other"
)

// CoerceCourse 將輸入收斂到課程枚舉，不在集合內時退回 Uncategorized
func CoerceCourse(v string) string {
	return coerceEnum(v, Courses, FallbackCourse)
}

// CoerceCuisine 將輸入收斂到菜系枚舉，不在集合內時退回 Other
func CoerceCuisine(v string) string {
	return coerceEnum(v, Cuisines, FallbackCuisine)
}

// CoercePrimaryIngredient 將輸入收斂到主要食材枚舉，不在集合內時退回 Other
func CoercePrimaryIngredient(v string) string {
	return coerceEnum(v, PrimaryIngredients, FallbackPrimaryIngredient)
}

func coerceEnum(v string, allowed []string, fallback string) string {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	return fallback
}
