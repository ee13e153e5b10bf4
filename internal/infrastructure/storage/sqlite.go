package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"recipe-importer/internal/core/recipe"
	"recipe-importer/internal/pkg/common"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Store SQLite 持久層
// 持久化的食譜由這裡擁有：核心管線交出 StructuredRecipe 後不再讀回
type Store struct {
	db *sql.DB
}

// StoredRecipe 已持久化的食譜，含資料庫識別碼與子紀錄
type StoredRecipe struct {
	ID                int64                   `json:"id"`
	Title             string                  `json:"title"`
	Course            string                  `json:"course"`
	Cuisine           string                  `json:"cuisine"`
	PrepTime          string                  `json:"prep_time"`
	CookTime          string                  `json:"cook_time"`
	TotalTime         string                  `json:"total_time"`
	Servings          string                  `json:"servings"`
	PrimaryIngredient string                  `json:"primary_ingredient"`
	RecipeSource      string                  `json:"recipe_source"`
	IsURL             int                     `json:"is_url"`
	CreatedAt         time.Time               `json:"created_at"`
	Ingredients       []recipe.IngredientLine `json:"ingredients"`
	Directions        []recipe.DirectionStep  `json:"directions"`
	Comments          []string                `json:"comments"`
}

const schema = `
CREATE TABLE IF NOT EXISTS recipes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	course TEXT NOT NULL DEFAULT 'Uncategorized',
	cuisine TEXT NOT NULL DEFAULT 'Other',
	prep_time TEXT NOT NULL DEFAULT 'Unknown',
	cook_time TEXT NOT NULL DEFAULT 'Unknown',
	total_time TEXT NOT NULL DEFAULT 'Unknown',
	servings TEXT NOT NULL DEFAULT 'Unknown',
	primary_ingredient TEXT NOT NULL DEFAULT 'Other',
	recipe_source TEXT NOT NULL DEFAULT '',
	is_url INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS ingredients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
	ingredient TEXT NOT NULL,
	quantity TEXT NOT NULL DEFAULT '',
	unit TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS directions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
	step_number INTEGER NOT NULL,
	instruction TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
	comments TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recipes_user ON recipes(user_id);
`

// NewStore 打開資料庫並建立資料表
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	common.LogInfo("資料庫已初始化", zap.String("path", path))
	return &Store{db: db}, nil
}

// isURLFlag 將來源種類轉為歷史慣例的 is_url 欄位值
// 注意：欄位命名與語意相反是既有線上資料的慣例，1 代表來自上傳檔案
// 新程式碼一律使用 SourceKind，此對映只存在於這一個函式
func isURLFlag(kind recipe.SourceKind) int {
	if kind == recipe.SourceFile {
		return 1
	}
	return 0
}

// sourceKindOf isURLFlag 的反向對映
func sourceKindOf(flag int) recipe.SourceKind {
	if flag == 1 {
		return recipe.SourceFile
	}
	return recipe.SourceURL
}

// SaveRecipe 儲存一份新食譜及其子紀錄，回傳資料庫識別碼
// 全部寫入在單一交易內完成，任何失敗都會整筆回滾
func (s *Store) SaveRecipe(ctx context.Context, userID int64, rec *recipe.StructuredRecipe) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO recipes (user_id, title, course, cuisine, prep_time, cook_time, total_time, servings, primary_ingredient, recipe_source, is_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, rec.Title, rec.Course, rec.Cuisine, rec.PrepTime, rec.CookTime,
		rec.TotalTime, rec.Servings, rec.PrimaryIngredient, rec.RecipeSource,
		isURLFlag(rec.SourceKind),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert recipe: %w", err)
	}

	recipeID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get recipe id: %w", err)
	}

	if err := insertChildren(ctx, tx, recipeID, rec.Ingredients, rec.Directions, rec.Comments); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	common.LogInfo("食譜已儲存",
		zap.Int64("recipe_id", recipeID),
		zap.String("title", rec.Title),
	)
	return recipeID, nil
}

// UpdateRecipe 更新既有食譜
// 子紀錄採整批替換（先刪後插），與主檔更新同屬一個交易，
// 任何失敗整筆回滾，不會留下半套子紀錄
func (s *Store) UpdateRecipe(ctx context.Context, recipeID, userID int64, upd *StoredRecipe) (*StoredRecipe, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE recipes SET title=?, course=?, cuisine=?, prep_time=?, cook_time=?, total_time=?, servings=?, primary_ingredient=?, recipe_source=?, is_url=?
		 WHERE id=? AND user_id=?`,
		upd.Title, upd.Course, upd.Cuisine, upd.PrepTime, upd.CookTime,
		upd.TotalTime, upd.Servings, upd.PrimaryIngredient, upd.RecipeSource,
		upd.IsURL, recipeID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrNotFound
	}

	// 先刪除舊的子紀錄
	for _, table := range []string{"ingredients", "directions", "comments"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE recipe_id=?", table), recipeID); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertChildren(ctx, tx, recipeID, upd.Ingredients, upd.Directions, upd.Comments); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	common.LogInfo("食譜已更新", zap.Int64("recipe_id", recipeID))
	return s.GetRecipe(ctx, recipeID, userID)
}

// insertChildren 寫入子紀錄，必須在既有交易內呼叫
func insertChildren(ctx context.Context, tx *sql.Tx, recipeID int64, ingredients []recipe.IngredientLine, directions []recipe.DirectionStep, comments []string) error {
	for _, ing := range ingredients {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ingredients (recipe_id, ingredient, quantity, unit) VALUES (?, ?, ?, ?)`,
			recipeID, ing.Ingredient, ing.Quantity, ing.Unit,
		); err != nil {
			return fmt.Errorf("failed to insert ingredient: %w", err)
		}
	}

	for _, dir := range directions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO directions (recipe_id, step_number, instruction) VALUES (?, ?, ?)`,
			recipeID, dir.StepNumber, dir.Instruction,
		); err != nil {
			return fmt.Errorf("failed to insert direction: %w", err)
		}
	}

	for _, comment := range comments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO comments (recipe_id, comments) VALUES (?, ?)`,
			recipeID, comment,
		); err != nil {
			return fmt.Errorf("failed to insert comment: %w", err)
		}
	}

	return nil
}

// ListRecipes 取得使用者的全部食譜（含子紀錄），依建立時間由新到舊
func (s *Store) ListRecipes(ctx context.Context, userID int64) ([]*StoredRecipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, course, cuisine, prep_time, cook_time, total_time, servings, primary_ingredient, recipe_source, is_url, created_at
		 FROM recipes WHERE user_id=? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var result []*StoredRecipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}

	for _, rec := range result {
		if err := s.loadChildren(ctx, rec); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// GetRecipe 取得單一食譜，查無資料時回傳 NOT_FOUND
func (s *Store) GetRecipe(ctx context.Context, recipeID, userID int64) (*StoredRecipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, course, cuisine, prep_time, cook_time, total_time, servings, primary_ingredient, recipe_source, is_url, created_at
		 FROM recipes WHERE id=? AND user_id=?`, recipeID, userID)

	rec, err := scanRecipe(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	if err := s.loadChildren(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteRecipe 刪除食譜，子紀錄由外鍵 CASCADE 一併刪除
func (s *Store) DeleteRecipe(ctx context.Context, recipeID, userID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id=? AND user_id=?`, recipeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	common.LogInfo("食譜已刪除", zap.Int64("recipe_id", recipeID))
	return nil
}

// SourceKind 取得儲存列的來源種類
func (r *StoredRecipe) SourceKind() recipe.SourceKind {
	return sourceKindOf(r.IsURL)
}

// FromStructured 將管線輸出轉為儲存列形態
func FromStructured(rec *recipe.StructuredRecipe) *StoredRecipe {
	return &StoredRecipe{
		Title:             rec.Title,
		Course:            rec.Course,
		Cuisine:           rec.Cuisine,
		PrepTime:          rec.PrepTime,
		CookTime:          rec.CookTime,
		TotalTime:         rec.TotalTime,
		Servings:          rec.Servings,
		PrimaryIngredient: rec.PrimaryIngredient,
		RecipeSource:      rec.RecipeSource,
		IsURL:             isURLFlag(rec.SourceKind),
		Ingredients:       rec.Ingredients,
		Directions:        rec.Directions,
		Comments:          rec.Comments,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row rowScanner) (*StoredRecipe, error) {
	var rec StoredRecipe
	if err := row.Scan(
		&rec.ID, &rec.Title, &rec.Course, &rec.Cuisine, &rec.PrepTime,
		&rec.CookTime, &rec.TotalTime, &rec.Servings, &rec.PrimaryIngredient,
		&rec.RecipeSource, &rec.IsURL, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

// loadChildren 載入食譜的全部子紀錄
func (s *Store) loadChildren(ctx context.Context, rec *StoredRecipe) error {
	rec.Ingredients = []recipe.IngredientLine{}
	rec.Directions = []recipe.DirectionStep{}
	rec.Comments = []string{}

	ingRows, err := s.db.QueryContext(ctx,
		`SELECT ingredient, quantity, unit FROM ingredients WHERE recipe_id=? ORDER BY id`, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer ingRows.Close()
	for ingRows.Next() {
		var line recipe.IngredientLine
		if err := ingRows.Scan(&line.Ingredient, &line.Quantity, &line.Unit); err != nil {
			return err
		}
		rec.Ingredients = append(rec.Ingredients, line)
	}
	if err := ingRows.Err(); err != nil {
		return err
	}

	dirRows, err := s.db.QueryContext(ctx,
		`SELECT step_number, instruction FROM directions WHERE recipe_id=? ORDER BY step_number`, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to query directions: %w", err)
	}
	defer dirRows.Close()
	for dirRows.Next() {
		var step recipe.DirectionStep
		if err := dirRows.Scan(&step.StepNumber, &step.Instruction); err != nil {
			return err
		}
		rec.Directions = append(rec.Directions, step)
	}
	if err := dirRows.Err(); err != nil {
		return err
	}

	comRows, err := s.db.QueryContext(ctx,
		`SELECT comments FROM comments WHERE recipe_id=? ORDER BY id`, rec.ID)
	if err != nil {
		return fmt.Errorf("failed to query comments: %w", err)
	}
	defer comRows.Close()
	for comRows.Next() {
		var comment string
		if err := comRows.Scan(&comment); err != nil {
			return err
		}
		rec.Comments = append(rec.Comments, comment)
	}
	return comRows.Err()
}

// Close 關閉資料庫
func (s *Store) Close() error {
	return s.db.Close()
}
