package recipe

import (
	"strings"
)

// PromptSpec 一次抽取呼叫的完整指令
// Builder 為純函式，提示內容可獨立於任何模型做單元測試
type PromptSpec struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

const (
	// 系統指令：要求模型扮演精確的食譜解析器
	extractionSystemPrompt = "You are a precise recipe parser. Extract ALL ingredients without skipping any. Return only valid JSON."

	// 視覺轉錄指令：先逐字抄錄，結構化交給第二階段
	visionTranscriptionPrompt = "Extract all text from this recipe image. Include the recipe title, all ingredients with measurements, and all cooking directions. Return the raw text exactly as it appears."

	// 抽取輸出上限：約 40 行食材 + 20 個步驟的食譜仍可完整輸出
	extractionMaxTokens = 3000

	// 轉錄輸出上限
	transcriptionMaxTokens = 2000

	// 低隨機性確保同一輸入可重現相同解析
	extractionTemperature = 0.1
)

// BuildExtractionPrompt 組裝抽取指令
// 內含輸出 JSON 結構、步驟改寫規則、單位對照表、容器解析規則與原始文字
// 表格與規則和程式層驗證（units.go、container.go）保持一致
func BuildExtractionPrompt(text string, kind SourceKind) PromptSpec {
	var sb strings.Builder

	sb.WriteString("Extract recipe information from the following text and return ONLY valid JSON with this exact structure\n")
	sb.WriteString("(no markdown, no code blocks, just raw JSON).\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Ingredients MUST be extracted verbatim as they appear in the text, but parsed correctly according to rules below.\n")
	sb.WriteString("- Directions MUST be rewritten into neutral, functional cooking steps.\n")
	sb.WriteString("- Do NOT copy phrasing from the original directions.\n")
	sb.WriteString("- Do NOT use expressive, descriptive, or narrative language in directions.\n")
	sb.WriteString("- Preserve cooking order, timing, temperatures, and techniques exactly.\n")
	sb.WriteString("- Use short, clear, instructional sentences.\n\n")

	sb.WriteString("JSON STRUCTURE (EXACT):\n")
	sb.WriteString("{\n")
	sb.WriteString(`"title": "recipe name",` + "\n")
	sb.WriteString(`"course": "one category: ` + strings.Join(Courses, ", ") + `",` + "\n")
	sb.WriteString(`"cuisine": "one category: ` + strings.Join(Cuisines, ", ") + `",` + "\n")
	sb.WriteString(`"prep_time": "time in minutes",` + "\n")
	sb.WriteString(`"cook_time": "time in minutes",` + "\n")
	sb.WriteString(`"total_time": "time in minutes",` + "\n")
	sb.WriteString(`"servings": "number of servings",` + "\n")
	sb.WriteString(`"primary_ingredient": "one choice: ` + strings.Join(PrimaryIngredients, ", ") + `",` + "\n")
	sb.WriteString(`"ingredients": [` + "\n")
	sb.WriteString(`  {"ingredient": "all-purpose flour", "quantity": "2", "unit": "cups"},` + "\n")
	sb.WriteString(`  {"ingredient": "large eggs", "quantity": "3", "unit": ""},` + "\n")
	sb.WriteString(`  {"ingredient": "tomato sauce", "quantity": "2", "unit": "cans"},` + "\n")
	sb.WriteString(`  {"ingredient": "vanilla extract", "quantity": "1", "unit": "tsp"}` + "\n")
	sb.WriteString("],\n")
	sb.WriteString(`"directions": [` + "\n")
	sb.WriteString(`  {"step_number": 1, "instruction": "Preheat oven to 350°F"},` + "\n")
	sb.WriteString(`  {"step_number": 2, "instruction": "Mix dry ingredients in a bowl"}` + "\n")
	sb.WriteString("],\n")
	sb.WriteString(`"comments": []` + "\n")
	sb.WriteString("}\n\n")

	sb.WriteString("DIRECTION REWRITE RULES (MANDATORY):\n")
	sb.WriteString("- Rewrite EVERY step; do NOT summarize or omit steps.\n")
	sb.WriteString("- Do NOT reuse sentence structure or phrasing from the source.\n")
	sb.WriteString("- Replace descriptive language with functional equivalents.\n")
	sb.WriteString("- Output numbered steps starting at 1.\n")
	sb.WriteString("- Do NOT mention the original source.\n")
	sb.WriteString("- Do NOT add or remove ingredients or steps.\n\n")

	sb.WriteString("UNIT NORMALIZATION (MANDATORY):\n")
	sb.WriteString("All ingredient units MUST be converted to one of the following standard abbreviations.\n")
	sb.WriteString("If the source text uses ANY other wording, convert it using this table.\n\n")
	sb.WriteString("- teaspoon, teaspoons, tsp., tsps -> \"tsp\"\n")
	sb.WriteString("- tablespoon, tablespoons, tbsp., tbsps -> \"tbsp\"\n")
	sb.WriteString("- cup, cups -> \"cup\" or \"cups\" (keep plural when appropriate)\n")
	sb.WriteString("- can, cans -> \"can\" or \"cans\"\n")
	sb.WriteString("- ounce, ounces, oz., ozs -> \"oz\"\n")
	sb.WriteString("- pound, pounds, lb., lbs -> \"lb\"\n")
	sb.WriteString("- gram, grams, g -> \"g\"\n")
	sb.WriteString("- kilogram, kilograms, kg -> \"kg\"\n")
	sb.WriteString("- milliliter, milliliters, ml -> \"ml\"\n")
	sb.WriteString("- liter, liters, l -> \"l\"\n")
	sb.WriteString("- pinch, pinches -> \"pinch\"\n")
	sb.WriteString("- dash, dashes -> \"dash\"\n")
	sb.WriteString("- clove, cloves -> \"clove\"\n\n")
	sb.WriteString("DO NOT output full unit words (e.g., \"teaspoon\", \"tablespoon\").\n")
	sb.WriteString("DO NOT invent units.\n")
	sb.WriteString("If no unit is provided in the text, use an empty string \"\".\n\n")

	sb.WriteString("CONTAINER/PACKAGE PARSING RULES (MANDATORY - CRITICAL FOR CANS):\n")
	sb.WriteString("Handle can sizes and packaged items intelligently:\n\n")
	sb.WriteString("- \"28 oz can tomatoes\" / \"28-ounce can\" / \"28-oz can of tomato sauce\"\n")
	sb.WriteString("  -> quantity=\"28\", unit=\"oz\", ingredient=\"tomatoes\" (or \"tomato sauce\")\n")
	sb.WriteString("- \"2 (28 oz) cans crushed tomatoes\" / \"two 28 ounce cans\"\n")
	sb.WriteString("  -> quantity=\"2\", unit=\"cans\", ingredient=\"crushed tomatoes (28 oz)\"\n")
	sb.WriteString("- \"2 cans (one 28 ounces, one 14-1/2 ounces) stewed tomatoes\"\n")
	sb.WriteString("  -> quantity=\"2\", unit=\"cans\", ingredient=\"stewed tomatoes (one 28 oz, one 14.5 oz)\"\n")
	sb.WriteString("- \"1 can (16 ounces) kidney beans\" / \"one 16 oz can kidney beans\"\n")
	sb.WriteString("  -> quantity=\"1\", unit=\"can\", ingredient=\"kidney beans (16 oz)\"\n")
	sb.WriteString("- \"one 15 ounce can black beans\"\n")
	sb.WriteString("  -> quantity=\"1\", unit=\"can\", ingredient=\"black beans (15 oz)\"\n\n")
	sb.WriteString("Preferred style:\n")
	sb.WriteString("- If there's a clear count of containers (2 cans, three 28 oz cans, etc.) -> use quantity as the number of cans, unit=\"can\" or \"cans\", put size in ingredient name.\n")
	sb.WriteString("- If it's just \"28 oz can\" with no separate count -> use quantity=\"28\", unit=\"oz\" (most useful for shopping/scaling).\n\n")
	sb.WriteString("NEVER put \"can\", \"oz\", or \"ounce\" into the unit field if it's describing container size - unit must come only from the normalization table.\n\n")
	sb.WriteString("After applying these rules, ALWAYS verify that every unit is one of: ")
	sb.WriteString(strings.Join(CanonicalUnits(), ", "))
	sb.WriteString(", or \"\".\n\n")

	sb.WriteString("CRITICAL INGREDIENT RULES:\n")
	sb.WriteString("1. Extract ALL ingredients - do not skip any.\n")
	sb.WriteString("2. Parse quantities carefully: \"1 tablespoon\" -> quantity=\"1\", unit=\"tbsp\".\n")
	sb.WriteString("3. Keep descriptors with the ingredient name: \"large sweet potatoes\", \"drained\", \"roughly chopped\".\n")
	sb.WriteString("4. If an ingredient has no quantity or unit, set them to empty string \"\".\n")
	sb.WriteString("5. Units MUST strictly follow the Unit Normalization table + container rules.\n")
	sb.WriteString("6. Preserve preparation notes in the ingredient name: \"peeled and diced\".\n")
	sb.WriteString("7. Return ONLY the JSON object - no explanations, no markdown.\n\n")

	sb.WriteString("FINAL VALIDATION RULE:\n")
	sb.WriteString("Before returning the JSON, verify that EVERY ingredient unit value is either one of the allowed abbreviations or an empty string \"\". If not, correct it.\n\n")

	sb.WriteString("Text:\n")
	sb.WriteString(text)

	return PromptSpec{
		System:      extractionSystemPrompt,
		User:        sb.String(),
		Temperature: extractionTemperature,
		MaxTokens:   extractionMaxTokens,
	}
}

// BuildTranscriptionPrompt 組裝圖片逐字轉錄指令
func BuildTranscriptionPrompt() PromptSpec {
	return PromptSpec{
		User:        visionTranscriptionPrompt,
		Temperature: extractionTemperature,
		MaxTokens:   transcriptionMaxTokens,
	}
}
