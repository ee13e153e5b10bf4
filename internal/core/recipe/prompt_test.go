package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPromptContent(t *testing.T) {
	text := "2 cups flour\n1 tsp salt\nMix and bake."
	spec := BuildExtractionPrompt(text, SourceURL)

	assert.Contains(t, spec.System, "precise recipe parser")
	assert.Contains(t, spec.User, text)

	// 輸出結構與枚舉
	assert.Contains(t, spec.User, `"title"`)
	assert.Contains(t, spec.User, `"step_number"`)
	for _, course := range Courses {
		assert.Contains(t, spec.User, course)
	}
	for _, cuisine := range Cuisines {
		assert.Contains(t, spec.User, cuisine)
	}

	// 單位對照表與容器規則需和程式層驗證一致
	for _, unit := range CanonicalUnits() {
		assert.Contains(t, spec.User, unit)
	}
	assert.Contains(t, spec.User, "28 oz can tomatoes")
	assert.Contains(t, spec.User, "one 15 ounce can black beans")

	// 步驟改寫規則
	assert.Contains(t, spec.User, "DIRECTION REWRITE RULES")
	assert.Contains(t, spec.User, "Rewrite EVERY step")
}

func TestBuildExtractionPromptDeterminismKnobs(t *testing.T) {
	spec := BuildExtractionPrompt("anything", SourceFile)
	assert.InDelta(t, 0.1, spec.Temperature, 0.001)
	assert.Equal(t, 3000, spec.MaxTokens)
}

func TestBuildExtractionPromptPure(t *testing.T) {
	a := BuildExtractionPrompt("same text", SourceURL)
	b := BuildExtractionPrompt("same text", SourceURL)
	assert.Equal(t, a, b)
}

func TestBuildTranscriptionPrompt(t *testing.T) {
	spec := BuildTranscriptionPrompt()
	assert.Contains(t, spec.User, "Extract all text")
	assert.Equal(t, 2000, spec.MaxTokens)
	assert.InDelta(t, 0.1, spec.Temperature, 0.001)
}
