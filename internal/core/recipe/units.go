package recipe

import "strings"

// 封閉的標準單位集合
// 所有食材行的 unit 欄位最終都必須落在此集合或空字串
var canonicalUnits = map[string]bool{
	"tsp":   true,
	"tbsp":  true,
	"cup":   true,
	"cups":  true,
	"can":   true,
	"cans":  true,
	"oz":    true,
	"lb":    true,
	"g":     true,
	"kg":    true,
	"ml":    true,
	"l":     true,
	"pinch": true,
	"dash":  true,
	"clove": true,
}

// 單位同義詞對照表，鍵為小寫、去尾點後的拼法
var unitSynonyms = map[string]string{
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"tsp":         "tsp",
	"tsps":        "tsp",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tbsp":        "tbsp",
	"tbsps":       "tbsp",
	"cup":         "cup",
	"cups":        "cups",
	"can":         "can",
	"cans":        "cans",
	"ounce":       "oz",
	"ounces":      "oz",
	"oz":          "oz",
	"ozs":         "oz",
	"pound":       "lb",
	"pounds":      "lb",
	"lb":          "lb",
	"lbs":         "lb",
	"gram":        "g",
	"grams":       "g",
	"g":           "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"kg":          "kg",
	"milliliter":  "ml",
	"milliliters": "ml",
	"millilitre":  "ml",
	"millilitres": "ml",
	"ml":          "ml",
	"liter":       "l",
	"liters":      "l",
	"litre":       "l",
	"litres":      "l",
	"l":           "l",
	"pinch":       "pinch",
	"pinches":     "pinch",
	"dash":        "dash",
	"dashes":      "dash",
	"clove":       "clove",
	"cloves":      "clove",
}

// NormalizeUnit 將任意單位拼法收斂為標準縮寫
// 大小寫與尾端句點不敏感；無法辨識的輸入原樣回傳，交由驗證層修復
// 冪等：已是標準形式的輸入不會再被改寫
func NormalizeUnit(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	key := strings.ToLower(trimmed)
	key = strings.TrimSuffix(key, ".")

	if canonical, ok := unitSynonyms[key]; ok {
		return canonical
	}
	return trimmed
}

// IsCanonicalUnit 回報單位是否屬於標準集合（空字串視為合法）
func IsCanonicalUnit(unit string) bool {
	if unit == "" {
		return true
	}
	return canonicalUnits[unit]
}

// CanonicalUnits 回傳標準單位清單（不含空字串），供提示詞與驗證共用
func CanonicalUnits() []string {
	return []string{
		"tsp", "tbsp", "cup", "cups", "can", "cans", "oz", "lb",
		"g", "kg", "ml", "l", "pinch", "dash", "clove",
	}
}
