package recipe

import (
	"context"

	"fridge-recipes/internal/pkg/common"
)

// RecipeDetail 產生指定料理的作り方，並計算缺少的材料。
// 模型失敗時 steps 為空，其餘欄位照常計算。
func (s *Service) RecipeDetail(ctx context.Context, ingredients []string, title string, required []string) common.RecipeDetail {
	fridge := Normalize(ingredients)
	requiredSorted, missing := Reconcile(required, fridge)

	prompt := buildDetailPrompt(title, fridge, missing)

	steps := OrEmpty(invoke(ctx, s.generator, prompt),
		func(v common.Value) []string {
			field, _ := v.Field("steps")
			return field.Strings()
		},
		[]string{},
	)

	return common.RecipeDetail{
		Title:            title,
		Required:         requiredSorted,
		Missing:          missing,
		Steps:            steps,
		CookpadSearchURL: s.SearchURL(title),
	}
}

// SearchURL 組出外部食譜搜尋連結，標題原樣接在後面不做編碼
func (s *Service) SearchURL(title string) string {
	return s.opts.SearchURLBase + title
}
