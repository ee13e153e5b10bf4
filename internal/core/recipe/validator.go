package recipe

import (
	"strings"

	"recipe-importer/internal/pkg/common"

	"go.uber.org/zap"
)

// rawRecipe 模型輸出的未驗證形態，欄位允許缺漏
type rawRecipe struct {
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
}

// ValidatedRecipe 通過驗證與修復的欄位集合，尚未附上來源資訊
type ValidatedRecipe struct {
	Title             string
	Course            string
	Cuisine           string
	PrepTime          string
	CookTime          string
	TotalTime         string
	Servings          string
	PrimaryIngredient string
	Ingredients       []IngredientLine
	Directions        []DirectionStep
	Comments          []string
}

// ValidateResponse 將模型的原始文字輸出驗證並修復為 ValidatedRecipe
//
// 模型輸出視為不可信任的自由文字，所有不變量在這裡保證，而非寄望於
// 模型遵守提示。結構性問題（無法解析、缺 title）中止並回傳錯誤；
// 內容品質問題（超出詞彙表的單位、枚舉、步驟編號）一律就地修復，
// 不會因單一錯誤單位拒絕整份食譜。
func ValidateResponse(raw string) (*ValidatedRecipe, error) {
	// 去除程式碼圍欄與 JSON 前後的附加文字
	text := common.StripCodeFence(raw)
	text = common.SliceJSONObject(text)

	var parsed rawRecipe
	if err := common.ParseJSON(text, &parsed); err != nil {
		common.LogWarn("模型輸出解析失敗",
			zap.Error(err),
			zap.Int("raw_length", len(raw)),
		)
		return nil, common.NewMalformedOutputError(text, err)
	}

	// title 為唯一不可修復的必填欄位
	if strings.TrimSpace(parsed.Title) == "" {
		return nil, common.NewMissingFieldError("title")
	}

	result := &ValidatedRecipe{
		Title:             strings.TrimSpace(parsed.Title),
		Course:            CoerceCourse(parsed.Course),
		Cuisine:           CoerceCuisine(parsed.Cuisine),
		PrepTime:          parsed.PrepTime,
		CookTime:          parsed.CookTime,
		TotalTime:         parsed.TotalTime,
		Servings:          parsed.Servings,
		PrimaryIngredient: CoercePrimaryIngredient(parsed.PrimaryIngredient),
		Ingredients:       repairIngredients(parsed.Ingredients),
		Directions:        renumberDirections(parsed.Directions),
		Comments:          parsed.Comments,
	}

	if result.Ingredients == nil {
		result.Ingredients = []IngredientLine{}
	}
	if result.Directions == nil {
		result.Directions = []DirectionStep{}
	}
	// comments 缺漏時補空序列
	if result.Comments == nil {
		result.Comments = []string{}
	}

	return result, nil
}

// repairIngredients 對每行食材執行單位修復
// 先走標準化表；仍不在詞彙表時嘗試容器解析作為第二道防線；
// 兩者都失敗就清空單位，保留其餘欄位
func repairIngredients(lines []IngredientLine) []IngredientLine {
	repaired := make([]IngredientLine, 0, len(lines))
	for _, line := range lines {
		line.Ingredient = strings.TrimSpace(line.Ingredient)
		line.Quantity = strings.TrimSpace(line.Quantity)
		line.Unit = NormalizeUnit(line.Unit)

		if !IsCanonicalUnit(line.Unit) {
			// 模型可能把整個容器描述塞進單位欄位（如 "(8 oz cans)"）
			phrase := strings.TrimSpace(strings.Join([]string{line.Quantity, line.Unit, line.Ingredient}, " "))
			if resolved, ok := ResolveContainerPhrase(phrase); ok {
				line = resolved
			} else {
				common.LogDebug("無法修復的單位已清空",
					zap.String("unit", line.Unit),
					zap.String("ingredient", line.Ingredient),
				)
				line.Unit = ""
			}
		}

		if line.Ingredient == "" {
			// 沒有名稱的行沒有意義，直接捨棄
			continue
		}
		repaired = append(repaired, line)
	}
	return repaired
}

// renumberDirections 重編步驟編號，保證從 1 開始連續遞增
// 保留模型輸出的相對順序，不信任其自報編號
func renumberDirections(steps []DirectionStep) []DirectionStep {
	renumbered := make([]DirectionStep, 0, len(steps))
	for _, step := range steps {
		instruction := strings.TrimSpace(step.Instruction)
		if instruction == "" {
			continue
		}
		renumbered = append(renumbered, DirectionStep{
			StepNumber:  len(renumbered) + 1,
			Instruction: instruction,
		})
	}
	return renumbered
}
