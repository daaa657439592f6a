package recipe

import (
	"fmt"
	"strings"

	"fridge-recipes/internal/pkg/common"
)

// buildCandidatesPrompt 生成候補清單的提示詞
func buildCandidatesPrompt(fridge []string, n int) string {
	var b strings.Builder

	b.WriteString("あなたは料理アシスタントです。\n")
	fmt.Fprintf(&b, "ユーザーが持っている材料: %s\n\n", common.JoinIngredients(fridge))
	fmt.Fprintf(&b, "候補を %d 件提案してください。\n", n)
	b.WriteString("各候補は:\n")
	b.WriteString("- id: 英数字の短いID\n")
	b.WriteString("- title: 料理名（短く）\n")
	b.WriteString("- short: 1文の説明\n")
	b.WriteString("- required: 必要材料（調味料も必要なら入れる）\n\n")
	b.WriteString("必ず **次の形式のJSONだけ** を返してください（前後に文章を付けない）:\n")
	b.WriteString(`{"candidates":[{"id":"...","title":"...","short":"...","required":["..."]}]}`)
	b.WriteString("\n")

	return b.String()
}

// buildDetailPrompt 生成作り方的提示詞。
// 要求一般化的家庭料理步驟，不得轉載特定食譜網站的內容。
func buildDetailPrompt(title string, fridge, missing []string) string {
	missingText := "なし"
	if len(missing) > 0 {
		missingText = common.JoinIngredients(missing)
	}

	var b strings.Builder

	b.WriteString("あなたは家庭料理のアシスタントです。\n")
	b.WriteString("特定のレシピサイト（クックパッド等）の文章を要約・転載してはいけません。\n")
	b.WriteString("一般的な家庭料理として成立する作り方を、独自に再構成してください。\n\n")
	fmt.Fprintf(&b, "料理名: %s\n", title)
	fmt.Fprintf(&b, "手持ち食材: %s\n", common.JoinIngredients(fridge))
	fmt.Fprintf(&b, "不足の可能性がある材料: %s\n\n", missingText)
	b.WriteString("制約:\n")
	b.WriteString("- 分量は数値で書かない（「適量」「お好み」でOK）\n")
	b.WriteString("- 手順は6〜9ステップ\n")
	b.WriteString("- 特定個人の工夫や口調を避ける\n")
	b.WriteString("- 一般的で安全な調理手順にする\n")
	b.WriteString("- 最後に注意点を1行入れる\n\n")
	b.WriteString("必ずJSONで返す:\n")
	b.WriteString(`{"steps":["...","..."]}`)
	b.WriteString("\n")

	return b.String()
}
