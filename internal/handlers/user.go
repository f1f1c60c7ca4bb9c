package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/squadmakers/chistes/internal/store"
	"github.com/squadmakers/chistes/pkg/logger"
)

type UserHandler struct {
	store *store.Store
}

func NewUserHandler(s *store.Store) *UserHandler {
	return &UserHandler{store: s}
}

type CreateEntityRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateUser handles POST /usuarios: create-or-return by name. Replies 201
// when the row was inserted, 200 when it already existed.
func (h *UserHandler) CreateUser(ctx *gin.Context) {
	var req CreateEntityRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.store.UpsertUser(ctx.Request.Context(), req.Name)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	logger.Info("user upserted", logger.String("name", result.Name), logger.Any("created", result.Created))
	ctx.JSON(status, result)
}

// ListUsers handles GET /usuarios.
func (h *UserHandler) ListUsers(ctx *gin.Context) {
	users, err := h.store.ListUsers(ctx.Request.Context())
	if err != nil {
		writeStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}
