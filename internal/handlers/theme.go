package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/squadmakers/chistes/internal/store"
	"github.com/squadmakers/chistes/pkg/logger"
)

type ThemeHandler struct {
	store *store.Store
}

func NewThemeHandler(s *store.Store) *ThemeHandler {
	return &ThemeHandler{store: s}
}

// CreateTheme handles POST /tematicas with the same upsert contract as users.
func (h *ThemeHandler) CreateTheme(ctx *gin.Context) {
	var req CreateEntityRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.store.UpsertTheme(ctx.Request.Context(), req.Name)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	logger.Info("theme upserted", logger.String("name", result.Name), logger.Any("created", result.Created))
	ctx.JSON(status, result)
}

// ListThemes handles GET /tematicas.
func (h *ThemeHandler) ListThemes(ctx *gin.Context) {
	themes, err := h.store.ListThemes(ctx.Request.Context())
	if err != nil {
		writeStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"count": len(themes), "themes": themes})
}
