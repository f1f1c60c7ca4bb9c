package handlers

import (
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/squadmakers/chistes/internal/jokes"
	"github.com/squadmakers/chistes/internal/store"
	"github.com/squadmakers/chistes/pkg/logger"
)

type JokeHandler struct {
	store  *store.Store
	client *jokes.Client
}

func NewJokeHandler(s *store.Store, c *jokes.Client) *JokeHandler {
	return &JokeHandler{store: s, client: c}
}

type CreateJokeRequest struct {
	Text     string `json:"text" binding:"required"`
	Usuario  string `json:"usuario" binding:"required"`
	Tematica string `json:"tematica" binding:"required"`
}

type UpdateJokeRequest struct {
	Text string `json:"text" binding:"required"`
}

type CreateJokeResponse struct {
	ID    uint             `json:"id"`
	Text  string           `json:"text"`
	User  store.EntityView `json:"user"`
	Theme store.EntityView `json:"theme"`
}

// GetRandomJoke handles GET /chistes: a joke from a randomly chosen source.
func (h *JokeHandler) GetRandomJoke(ctx *gin.Context) {
	source := jokes.SourceChuck
	if rand.IntN(2) == 1 {
		source = jokes.SourceDad
	}

	joke, err := h.client.FetchRandom(ctx.Request.Context(), source)
	if err != nil {
		logger.Error("random joke fetch failed", logger.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"joke": joke, "source": source})
}

// GetJokeBySource handles GET /chistes/:source for 'Chuck' or 'Dad'.
func (h *JokeHandler) GetJokeBySource(ctx *gin.Context) {
	source := jokes.Source(ctx.Param("source"))

	joke, err := h.client.FetchRandom(ctx.Request.Context(), source)
	if err != nil {
		if errors.Is(err, jokes.ErrInvalidSource) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("joke fetch failed", logger.String("source", string(source)), logger.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"joke": joke, "source": source})
}

// GetPairedJokes handles GET /chistes/emparejados: five Chuck/Dad pairs.
func (h *JokeHandler) GetPairedJokes(ctx *gin.Context) {
	pairs, err := h.client.FetchPaired(ctx.Request.Context())
	if err != nil {
		logger.Error("paired joke fetch failed", logger.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, pairs)
}

// SaveJoke handles POST /chistes: upserts the user and theme, then persists
// the joke against their ids.
func (h *JokeHandler) SaveJoke(ctx *gin.Context) {
	var req CreateJokeRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.UpsertUser(ctx.Request.Context(), req.Usuario)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}

	theme, err := h.store.UpsertTheme(ctx.Request.Context(), req.Tematica)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}

	joke, err := h.store.CreateJoke(ctx.Request.Context(), req.Text, user.ID, theme.ID)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}

	logger.Info("joke saved",
		logger.Int("id", int(joke.ID)),
		logger.String("user", user.Name),
		logger.String("theme", theme.Name))

	ctx.JSON(http.StatusCreated, CreateJokeResponse{
		ID:    joke.ID,
		Text:  joke.Text,
		User:  store.EntityView{ID: user.ID, Name: user.Name},
		Theme: store.EntityView{ID: theme.ID, Name: theme.Name},
	})
}

// UpdateJoke handles PUT /chistes/:id: full text replacement.
func (h *JokeHandler) UpdateJoke(ctx *gin.Context) {
	id, err := parseJokeID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateJokeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	joke, err := h.store.UpdateJokeText(ctx.Request.Context(), id, req.Text)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": joke.ID, "text": joke.Text})
}

// DeleteJoke handles DELETE /chistes/:id.
func (h *JokeHandler) DeleteJoke(ctx *gin.Context) {
	id, err := parseJokeID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.DeleteJoke(ctx.Request.Context(), id); err != nil {
		writeStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

func parseJokeID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(id), nil
}

func writeStoreError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrEmptyName), errors.Is(err, store.ErrEmptyText):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("store operation failed", logger.Err(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
