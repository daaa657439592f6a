package recipe

import (
	"context"
	"errors"
	"testing"

	"fridge-recipes/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator 回傳固定結果並記錄收到的 prompt
type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func TestInvoke(t *testing.T) {
	boom := errors.New("upstream unavailable")

	tests := []struct {
		name    string
		gen     *fakeGenerator
		wantErr error
	}{
		{"client error", &fakeGenerator{err: boom}, boom},
		{"empty text", &fakeGenerator{text: ""}, common.ErrEmptyGeneration},
		{"whitespace text", &fakeGenerator{text: "  \n\t "}, common.ErrEmptyGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := invoke(context.Background(), tt.gen, "prompt")
			require.Error(t, r.Err())
			assert.ErrorIs(t, r.Err(), tt.wantErr)
			assert.Len(t, tt.gen.prompts, 1)
		})
	}
}

func TestInvokeParseFailure(t *testing.T) {
	gen := &fakeGenerator{text: "Sure! Here are some recipes."}
	r := invoke(context.Background(), gen, "prompt")
	assert.Error(t, r.Err())
}

func TestInvokeParsesJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"plain", `{"steps":["a"]}`},
		{"surrounding whitespace", "\n  {\"steps\":[\"a\"]}  \n"},
		{"code fence", "```json\n{\"steps\":[\"a\"]}\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := invoke(context.Background(), &fakeGenerator{text: tt.text}, "prompt")
			require.NoError(t, r.Err())

			steps := OrEmpty(r, func(v common.Value) []string {
				f, _ := v.Field("steps")
				return f.Strings()
			}, nil)
			assert.Equal(t, []string{"a"}, steps)
		})
	}
}

func TestInvokeNilGenerator(t *testing.T) {
	r := invoke(context.Background(), nil, "prompt")
	assert.ErrorIs(t, r.Err(), common.ErrGenerationDisabled)
}

func TestOrEmpty(t *testing.T) {
	project := func(v common.Value) int { return 1 }

	assert.Equal(t, 0, OrEmpty(Failed(errors.New("x")), project, 0))
	assert.Equal(t, 1, OrEmpty(Parsed(common.NewValue(nil)), project, 0))
}
