package recipe

import (
	"fridge-recipes/internal/pkg/common"
)

var candidateKeys = []string{"id", "title", "short", "required"}

// Sanitize 從模型輸出中挑出結構完整的候補，最多 limit 筆。
// 任何輸入都不會失敗：形狀不符時回傳空切片。
//   - 根節點不是物件、或 candidates 不是陣列：回傳空
//   - 元素不是物件、缺少任一必要鍵、或 id/title/short 不是字串：丟棄
//   - required 不是陣列時視為空陣列，陣列中的非字串元素會被略過
func Sanitize(parsed common.Value, limit int) []common.RecipeCandidate {
	out := []common.RecipeCandidate{}
	if limit <= 0 {
		return out
	}

	list, ok := parsed.Field("candidates")
	if !ok {
		return out
	}
	items, ok := list.AsArray()
	if !ok {
		return out
	}

	for _, item := range items {
		if len(out) >= limit {
			break
		}
		c, ok := toCandidate(item)
		if !ok {
			continue
		}
		out = append(out, c)
	}

	return out
}

// toCandidate 將單一元素轉為候補
func toCandidate(item common.Value) (common.RecipeCandidate, bool) {
	obj, ok := item.AsObject()
	if !ok || !obj.HasAll(candidateKeys...) {
		return common.RecipeCandidate{}, false
	}

	id, ok1 := stringField(obj, "id")
	title, ok2 := stringField(obj, "title")
	short, ok3 := stringField(obj, "short")
	if !ok1 || !ok2 || !ok3 {
		return common.RecipeCandidate{}, false
	}

	required, _ := obj.Get("required")

	return common.RecipeCandidate{
		ID:       id,
		Title:    title,
		Short:    short,
		Required: required.Strings(),
	}, true
}

func stringField(obj common.Object, key string) (string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}
