package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-importer/internal/pkg/common"
)

const validOutput = `{
	"title": "Venison Chili",
	"course": "Dinner",
	"cuisine": "American",
	"prep_time": "20 minutes",
	"cook_time": "2 hours",
	"total_time": "2 hours 20 minutes",
	"servings": "6",
	"primary_ingredient": "Venison",
	"ingredients": [
		{"ingredient": "ground venison", "quantity": "2", "unit": "lb"},
		{"ingredient": "chili powder", "quantity": "2", "unit": "tbsp"}
	],
	"directions": [
		{"step_number": 1, "instruction": "Brown the meat in a large pot."},
		{"step_number": 2, "instruction": "Add remaining ingredients and simmer for 2 hours."}
	],
	"comments": ["Freezes well."]
}`

func TestValidateResponseValid(t *testing.T) {
	result, err := ValidateResponse(validOutput)
	require.NoError(t, err)
	assert.Equal(t, "Venison Chili", result.Title)
	assert.Equal(t, "Dinner", result.Course)
	assert.Equal(t, "American", result.Cuisine)
	assert.Equal(t, "Venison", result.PrimaryIngredient)
	assert.Len(t, result.Ingredients, 2)
	assert.Len(t, result.Directions, 2)
	assert.Equal(t, []string{"Freezes well."}, result.Comments)
}

func TestValidateResponseFenceStripped(t *testing.T) {
	fenced := "```json\n" + validOutput + "\n```"
	plain, err := ValidateResponse(validOutput)
	require.NoError(t, err)
	stripped, err := ValidateResponse(fenced)
	require.NoError(t, err)
	assert.Equal(t, plain, stripped)
}

func TestValidateResponseSurroundingProse(t *testing.T) {
	wrapped := "Here is the recipe you asked for:\n" + validOutput + "\nLet me know if you need anything else."
	result, err := ValidateResponse(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "Venison Chili", result.Title)
}

func TestValidateResponseMalformed(t *testing.T) {
	_, err := ValidateResponse("not json at all")
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeMalformedOutput, common.ErrorCode(err))
}

func TestValidateResponseMissingTitle(t *testing.T) {
	_, err := ValidateResponse(`{"course": "Main Dish", "ingredients": []}`)
	require.Error(t, err)
	assert.Equal(t, common.ErrCodeMissingRequiredField, common.ErrorCode(err))
}

func TestValidateResponseEnumCoercion(t *testing.T) {
	result, err := ValidateResponse(`{
		"title": "Mystery Stew",
		"course": "Midnight Snack",
		"cuisine": "Klingon",
		"primary_ingredient": "Tofu"
	}`)
	require.NoError(t, err)
	assert.Equal(t, FallbackCourse, result.Course)
	assert.Equal(t, FallbackCuisine, result.Cuisine)
	assert.Equal(t, FallbackPrimaryIngredient, result.PrimaryIngredient)
}

func TestValidateResponseUnitRepair(t *testing.T) {
	result, err := ValidateResponse(`{
		"title": "Soup",
		"ingredients": [
			{"ingredient": "flour", "quantity": "2", "unit": "Cups"},
			{"ingredient": "salt", "quantity": "1", "unit": "teaspoons"},
			{"ingredient": "basil", "quantity": "1", "unit": "bunch"}
		]
	}`)
	require.NoError(t, err)
	require.Len(t, result.Ingredients, 3)
	assert.Equal(t, "cups", result.Ingredients[0].Unit)
	assert.Equal(t, "tsp", result.Ingredients[1].Unit)
	// 無法收斂的單位清空，仍保留該行
	assert.Equal(t, "", result.Ingredients[2].Unit)
	assert.Equal(t, "basil", result.Ingredients[2].Ingredient)
}

func TestValidateResponseContainerRepair(t *testing.T) {
	// 模型把容器描述塞進單位欄位時由容器解析修復
	result, err := ValidateResponse(`{
		"title": "Chili",
		"ingredients": [
			{"ingredient": "crushed tomatoes", "quantity": "2", "unit": "(28 oz) cans"}
		]
	}`)
	require.NoError(t, err)
	require.Len(t, result.Ingredients, 1)
	line := result.Ingredients[0]
	assert.Equal(t, "2", line.Quantity)
	assert.Equal(t, "cans", line.Unit)
	assert.Contains(t, line.Ingredient, "crushed tomatoes")
	assert.Contains(t, line.Ingredient, "28 oz")
}

func TestValidateResponseDropsNamelessIngredients(t *testing.T) {
	result, err := ValidateResponse(`{
		"title": "Soup",
		"ingredients": [
			{"ingredient": "", "quantity": "2", "unit": "cups"},
			{"ingredient": "water", "quantity": "4", "unit": "cups"}
		]
	}`)
	require.NoError(t, err)
	require.Len(t, result.Ingredients, 1)
	assert.Equal(t, "water", result.Ingredients[0].Ingredient)
}

func TestValidateResponseRenumbersDirections(t *testing.T) {
	result, err := ValidateResponse(`{
		"title": "Soup",
		"directions": [
			{"step_number": 3, "instruction": "Chop the onions."},
			{"step_number": 3, "instruction": ""},
			{"step_number": 9, "instruction": "Simmer for 30 minutes."}
		]
	}`)
	require.NoError(t, err)
	require.Len(t, result.Directions, 2)
	assert.Equal(t, 1, result.Directions[0].StepNumber)
	assert.Equal(t, "Chop the onions.", result.Directions[0].Instruction)
	assert.Equal(t, 2, result.Directions[1].StepNumber)
	assert.Equal(t, "Simmer for 30 minutes.", result.Directions[1].Instruction)
}

func TestValidateResponseMissingCollectionsDefaultEmpty(t *testing.T) {
	result, err := ValidateResponse(`{"title": "Bare Minimum"}`)
	require.NoError(t, err)
	assert.NotNil(t, result.Ingredients)
	assert.Empty(t, result.Ingredients)
	assert.NotNil(t, result.Directions)
	assert.Empty(t, result.Directions)
	assert.NotNil(t, result.Comments)
	assert.Empty(t, result.Comments)
}
