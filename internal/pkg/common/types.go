package common

// RecipeCandidate 候選食譜摘要
type RecipeCandidate struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Short    string   `json:"short"`
	Required []string `json:"required"`
}

// RecipeListRequest POST /ai-recipes 請求
type RecipeListRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
	N           *int     `json:"n,omitempty"` // 省略時使用預設值
}

// RecipeListResponse POST /ai-recipes 響應
type RecipeListResponse struct {
	Candidates []RecipeCandidate `json:"candidates"`
}

// RecipeDetailRequest POST /ai-recipe-detail 請求
type RecipeDetailRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
	Title       *string  `json:"title" binding:"required"` // 可為空字串，但鍵必須存在
	Required    []string `json:"required" binding:"required"`
}

// RecipeDetail POST /ai-recipe-detail 響應
// Missing 一定是 Required 的子集，兩者皆已排序且不重複
type RecipeDetail struct {
	Title            string   `json:"title"`
	Required         []string `json:"required"`
	Missing          []string `json:"missing"`
	Steps            []string `json:"steps"`
	CookpadSearchURL string   `json:"cookpad_search_url"`
}
