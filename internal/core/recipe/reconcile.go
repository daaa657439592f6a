package recipe

import (
	"sort"
	"strings"
)

// Reconcile 比對食譜所需材料與冰箱內容。
// required 會去除空白並去重後排序；missing 為 required 中不在 fridge 的項目，同樣排序。
// 比對為完全相符，區分大小寫。
func Reconcile(required, fridge []string) (requiredSorted, missing []string) {
	have := make(map[string]struct{}, len(fridge))
	for _, f := range fridge {
		have[f] = struct{}{}
	}

	seen := make(map[string]struct{}, len(required))
	requiredSorted = make([]string, 0, len(required))
	missing = make([]string, 0)

	for _, r := range required {
		s := strings.TrimSpace(r)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		requiredSorted = append(requiredSorted, s)
		if _, ok := have[s]; !ok {
			missing = append(missing, s)
		}
	}

	sort.Strings(requiredSorted)
	sort.Strings(missing)
	return requiredSorted, missing
}
