package recipe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// 容器片語的組成要素
// 數量詞可為數字或英文數詞，尺寸為「數字 + 重量/容量單位」
const (
	numberWordPat = `(?:one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)`
	countPat      = `(?:\d+|` + numberWordPat + `)`
	sizeUnitPat   = `(?:ounces?|ozs|oz\.?|grams?|g|kilograms?|kg|milliliters?|ml|liters?|l|pounds?|lbs?\.?)`
	sizeNumPat    = `\d+(?:-\d+/\d+|\.\d+|/\d+)?`
	sizePat       = `(` + sizeNumPat + `)[\s-]*(` + sizeUnitPat + `)`
)

var (
	// "2 cans (one 28 ounces, one 14-1/2 ounces) stewed tomatoes"
	mixedSizeCanPattern = regexp.MustCompile(`(?i)^\s*(` + countPat + `)\s+cans?\b\s*\(\s*one\s+` + sizePat + `\s*,\s*one\s+` + sizePat + `\s*\)\s*(?:of\s+)?(.+?)\s*$`)

	// "2 (28 oz) cans crushed tomatoes" / "two 28 ounce cans of stewed tomatoes" /
	// "one 15 ounce can black beans" / "2 cans (8 ounces each) tomato sauce"
	// 裸寫尺寸前強制留空白，避免把 "28 oz can" 誤拆成數量 2 + 尺寸 8 oz
	countedCanPattern = regexp.MustCompile(`(?i)^\s*(` + countPat + `)\s*(?:\(\s*` + sizePat + `(?:\s+each)?\s*\)|\s+` + sizePat + `)?[\s-]*cans?\b\s*(?:\(\s*` + sizePat + `(?:\s+each)?\s*\))?\s*(?:of\s+)?(.+?)\s*$`)

	// "28 oz can tomatoes" / "28-ounce can of tomato sauce"（前方沒有容器數量）
	sizedCanPattern = regexp.MustCompile(`(?i)^\s*` + sizePat + `[\s-]*cans?\b\s*(?:of\s+)?(.+?)\s*$`)
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// ResolveContainerPhrase 將包裝食品片語拆解為 (數量, 單位, 食材名) 三元組
// 規則依序套用，先符合者為準：
//  1. 有明確容器數量 → 數量為罐數、單位為 can/cans，尺寸併入食材名
//  2. 無數量但尺寸在 can 之前 → 數量為尺寸數字、單位為標準化後的尺寸單位
//  3. 混合尺寸 → 罐數 + cans，各尺寸羅列於食材名
//
// "can"/"oz"/"ounce" 等字樣只會透過規則 1 以 can/cans 形式進入單位欄位
// 片語與容器無關時回傳 false，由呼叫端沿用原值
func ResolveContainerPhrase(phrase string) (IngredientLine, bool) {
	if !strings.Contains(strings.ToLower(phrase), "can") {
		return IngredientLine{}, false
	}

	// 規則 3：混合尺寸（必須先於一般計數規則檢查，否則會被其吞掉）
	if m := mixedSizeCanPattern.FindStringSubmatch(phrase); m != nil {
		count := parseCount(m[1])
		sizes := fmt.Sprintf("one %s %s, one %s %s",
			formatSizeNumber(m[2]), NormalizeUnit(m[3]),
			formatSizeNumber(m[4]), NormalizeUnit(m[5]))
		return IngredientLine{
			Ingredient: fmt.Sprintf("%s (%s)", m[6], sizes),
			Quantity:   strconv.Itoa(count),
			Unit:       canUnitFor(count),
		}, true
	}

	// 規則 1：明確容器數量
	if m := countedCanPattern.FindStringSubmatch(phrase); m != nil {
		count := parseCount(m[1])
		name := m[8]

		// 尺寸可能出現在 can 前（括號或裸寫）或 can 後的括號內
		sizeNum, sizeUnit := firstSize(m[2], m[3], m[4], m[5], m[6], m[7])
		if sizeNum != "" {
			name = fmt.Sprintf("%s (%s %s)", name, formatSizeNumber(sizeNum), NormalizeUnit(sizeUnit))
		}
		return IngredientLine{
			Ingredient: name,
			Quantity:   strconv.Itoa(count),
			Unit:       canUnitFor(count),
		}, true
	}

	// 規則 2：尺寸在前且無容器數量
	if m := sizedCanPattern.FindStringSubmatch(phrase); m != nil {
		return IngredientLine{
			Ingredient: m[3],
			Quantity:   formatSizeNumber(m[1]),
			Unit:       NormalizeUnit(m[2]),
		}, true
	}

	return IngredientLine{}, false
}

// canUnitFor 依容器數量決定單複數
func canUnitFor(count int) string {
	if count == 1 {
		return "can"
	}
	return "cans"
}

// parseCount 解析數字或英文數詞
func parseCount(raw string) int {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if n, ok := numberWords[raw]; ok {
		return n
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// formatSizeNumber 將 "14-1/2"、"1/2" 等尺寸寫法轉為十進位字串，整數維持原樣
func formatSizeNumber(raw string) string {
	raw = strings.TrimSpace(raw)

	whole := raw
	frac := ""
	if i := strings.IndexAny(raw, "-"); i != -1 && strings.Contains(raw[i+1:], "/") {
		whole, frac = raw[:i], raw[i+1:]
	} else if strings.Contains(raw, "/") {
		whole, frac = "", raw
	}

	value := 0.0
	if whole != "" {
		f, err := strconv.ParseFloat(whole, 64)
		if err != nil {
			return raw
		}
		value = f
	}
	if frac != "" {
		parts := strings.SplitN(frac, "/", 2)
		num, err1 := strconv.ParseFloat(parts[0], 64)
		den, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return raw
		}
		value += num / den
	}

	return strconv.FormatFloat(value, 'f', -1, 64)
}

// firstSize 回傳第一組非空的 (數字, 單位) 配對
func firstSize(pairs ...string) (string, string) {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i] != "" {
			return pairs[i], pairs[i+1]
		}
	}
	return "", ""
}
