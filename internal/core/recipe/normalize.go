package recipe

import "strings"

// Normalize 整理使用者輸入的食材清單：去除前後空白、丟棄空字串、
// 依首次出現順序去重。比對區分大小寫。
func Normalize(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for _, item := range raw {
		s := strings.TrimSpace(item)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
