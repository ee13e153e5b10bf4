package recipe

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	recipeCore "recipe-importer/internal/core/recipe"
	"recipe-importer/internal/infrastructure/storage"
	"recipe-importer/internal/pkg/common"
)

// UpdateRecipeRequest 更新食譜的完整內容
// 更新採整份覆寫，子紀錄整批替換
type UpdateRecipeRequest struct {
	Title             string                      `json:"title" binding:"required"`
	Course            string                      `json:"course"`
	Cuisine           string                      `json:"cuisine"`
	PrepTime          string                      `json:"prep_time"`
	CookTime          string                      `json:"cook_time"`
	TotalTime         string                      `json:"total_time"`
	Servings          string                      `json:"servings"`
	PrimaryIngredient string                      `json:"primary_ingredient"`
	RecipeSource      string                      `json:"recipe_source"`
	IsURL             int                         `json:"is_url"`
	Ingredients       []recipeCore.IngredientLine `json:"ingredients"`
	Directions        []recipeCore.DirectionStep  `json:"directions"`
	Comments          []string                    `json:"comments"`
}

// recipeIDOf 解析路徑參數中的食譜識別碼
func recipeIDOf(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return 0, false
	}
	return id, true
}

// HandleListRecipes 取得使用者的全部食譜
func (h *Handler) HandleListRecipes(c *gin.Context) {
	requestID := requestIDOf(c)
	userID := userIDOf(c)

	recipes, err := h.store.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		common.LogError("食譜列表查詢失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.Int64("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recipes"})
		return
	}

	if recipes == nil {
		recipes = []*storage.StoredRecipe{}
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// HandleGetRecipe 取得單一食譜
func (h *Handler) HandleGetRecipe(c *gin.Context) {
	requestID := requestIDOf(c)
	recipeID, ok := recipeIDOf(c)
	if !ok {
		return
	}

	stored, err := h.store.GetRecipe(c.Request.Context(), recipeID, userIDOf(c))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		common.LogError("食譜查詢失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.Int64("recipe_id", recipeID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe"})
		return
	}

	c.JSON(http.StatusOK, stored)
}

// HandleUpdateRecipe 覆寫食譜內容，子紀錄整批替換
func (h *Handler) HandleUpdateRecipe(c *gin.Context) {
	requestID := requestIDOf(c)
	recipeID, ok := recipeIDOf(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	upd := &storage.StoredRecipe{
		Title:             req.Title,
		Course:            recipeCore.CoerceCourse(req.Course),
		Cuisine:           recipeCore.CoerceCuisine(req.Cuisine),
		PrepTime:          req.PrepTime,
		CookTime:          req.CookTime,
		TotalTime:         req.TotalTime,
		Servings:          req.Servings,
		PrimaryIngredient: recipeCore.CoercePrimaryIngredient(req.PrimaryIngredient),
		RecipeSource:      req.RecipeSource,
		IsURL:             req.IsURL,
		Ingredients:       req.Ingredients,
		Directions:        req.Directions,
		Comments:          req.Comments,
	}

	stored, err := h.store.UpdateRecipe(c.Request.Context(), recipeID, userIDOf(c), upd)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		common.LogError("食譜更新失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.Int64("recipe_id", recipeID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	common.LogInfo("食譜已更新",
		zap.String("request_id", requestID),
		zap.Int64("recipe_id", recipeID),
	)
	c.JSON(http.StatusOK, stored)
}

// HandleDeleteRecipe 刪除食譜
func (h *Handler) HandleDeleteRecipe(c *gin.Context) {
	requestID := requestIDOf(c)
	recipeID, ok := recipeIDOf(c)
	if !ok {
		return
	}

	if err := h.store.DeleteRecipe(c.Request.Context(), recipeID, userIDOf(c)); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		common.LogError("食譜刪除失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.Int64("recipe_id", recipeID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	common.LogInfo("食譜已刪除",
		zap.String("request_id", requestID),
		zap.Int64("recipe_id", recipeID),
	)
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}
