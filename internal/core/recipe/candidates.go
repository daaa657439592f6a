package recipe

import (
	"context"

	"fridge-recipes/internal/pkg/common"

	"go.uber.org/zap"
)

// ListCandidates 依冰箱食材向模型要求 n 道料理候補。
// 模型呼叫失敗或輸出不合格式時回傳空切片，不回傳錯誤。
func (s *Service) ListCandidates(ctx context.Context, ingredients []string, n int) []common.RecipeCandidate {
	if n <= 0 {
		return []common.RecipeCandidate{}
	}
	if s.opts.MaxCandidates > 0 && n > s.opts.MaxCandidates {
		common.LogDebug("候補數超過上限，已調整",
			zap.Int("requested", n),
			zap.Int("max", s.opts.MaxCandidates),
		)
		n = s.opts.MaxCandidates
	}

	fridge := Normalize(ingredients)
	prompt := buildCandidatesPrompt(fridge, n)

	candidates := OrEmpty(invoke(ctx, s.generator, prompt),
		func(v common.Value) []common.RecipeCandidate { return Sanitize(v, n) },
		[]common.RecipeCandidate{},
	)

	return ensureUniqueIDs(candidates)
}

// ensureUniqueIDs 重複的 id 改用新的 UUID，保留第一筆
func ensureUniqueIDs(candidates []common.RecipeCandidate) []common.RecipeCandidate {
	seen := make(map[string]struct{}, len(candidates))
	for i := range candidates {
		if _, dup := seen[candidates[i].ID]; dup {
			candidates[i].ID = common.GenerateUUID()
		}
		seen[candidates[i].ID] = struct{}{}
	}
	return candidates
}
