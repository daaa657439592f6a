package recipe

import (
	"context"
	"fmt"
	"strings"

	"fridge-recipes/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator 對模型發出一次生成呼叫，回傳原始文字
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result 一次生成呼叫的結果：Parsed 或 Failed
type Result struct {
	value common.Value
	err   error
}

// Parsed 成功解析的結果
func Parsed(v common.Value) Result {
	return Result{value: v}
}

// Failed 失敗的結果
func Failed(err error) Result {
	return Result{err: err}
}

// Err 回傳失敗原因；成功時為 nil
func (r Result) Err() error {
	return r.err
}

// OrEmpty 成功時以 project 取出結果，失敗時回傳 empty。
// 所有生成失敗都在這裡降級為空值。
func OrEmpty[T any](r Result, project func(common.Value) T, empty T) T {
	if r.err != nil {
		return empty
	}
	return project(r.value)
}

// invoke 呼叫模型一次並解析 JSON，不重試
func invoke(ctx context.Context, gen Generator, prompt string) Result {
	if gen == nil {
		return Failed(common.ErrGenerationDisabled)
	}

	raw, err := gen.Generate(ctx, prompt)
	if err != nil {
		common.LogWarn("生成呼叫失敗",
			zap.String("request_id", common.RequestIDFrom(ctx)),
			zap.Error(err),
		)
		return Failed(err)
	}

	text := strings.TrimSpace(raw)
	common.LogDebug("模型原始輸出",
		zap.String("request_id", common.RequestIDFrom(ctx)),
		zap.String("raw", text),
	)
	if text == "" {
		return Failed(common.ErrEmptyGeneration)
	}

	parsed, err := common.ParseValue(common.UnwrapCodeFence(text))
	if err != nil {
		common.LogWarn("模型輸出不是有效的 JSON",
			zap.String("request_id", common.RequestIDFrom(ctx)),
			zap.Error(err),
		)
		return Failed(fmt.Errorf("parse generation output: %w", err))
	}

	return Parsed(parsed)
}
