package recipe

import (
	"errors"
	"net/http"

	"fridge-recipes/internal/api/middleware"
	recipeService "fridge-recipes/internal/core/recipe"
	"fridge-recipes/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜相關 API
type Handler struct {
	recipeService *recipeService.Service
	debug         bool
}

// NewHandler 創建食譜 handler；debug 時錯誤回應會附上細節
func NewHandler(svc *recipeService.Service, debug bool) *Handler {
	return &Handler{
		recipeService: svc,
		debug:         debug,
	}
}

// HandleListCandidates 依冰箱食材推薦料理候補。
// 請求格式正確時一律回 200，生成失敗時 candidates 為空陣列。
func (h *Handler) HandleListCandidates(c *gin.Context) {
	var req common.RecipeListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	n := h.recipeService.DefaultCandidates()
	if req.N != nil {
		n = *req.N
	}

	reqID := requestid.Get(c)
	ctx := common.WithRequestID(c.Request.Context(), reqID)

	common.LogInfo("收到候補請求",
		zap.String("request_id", reqID),
		zap.Int("ingredients", len(req.Ingredients)),
		zap.Int("n", n),
	)

	candidates := h.recipeService.ListCandidates(ctx, req.Ingredients, n)
	middleware.RecordOutcome(c, len(candidates))

	c.JSON(http.StatusOK, common.RecipeListResponse{Candidates: candidates})
}

// HandleRecipeDetail 產生指定料理的作り方與缺少材料
func (h *Handler) HandleRecipeDetail(c *gin.Context) {
	var req common.RecipeDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	title := *req.Title
	reqID := requestid.Get(c)
	ctx := common.WithRequestID(c.Request.Context(), reqID)

	common.LogInfo("收到作り方請求",
		zap.String("request_id", reqID),
		zap.String("title", title),
		zap.Int("required", len(req.Required)),
	)

	detail := h.recipeService.RecipeDetail(ctx, req.Ingredients, title, req.Required)
	middleware.RecordOutcome(c, len(detail.Steps))

	c.JSON(http.StatusOK, detail)
}

// badRequest 回應請求格式錯誤；超過大小限制時回 413
func (h *Handler) badRequest(c *gin.Context, err error) {
	apiErr := common.ErrInvalidRequest
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		apiErr = common.ErrPayloadTooLarge
	}

	common.LogWarn("請求格式錯誤",
		zap.String("request_id", requestid.Get(c)),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)

	c.AbortWithStatusJSON(apiErr.Status, apiErr.WithError(err).Response(h.debug))
}
