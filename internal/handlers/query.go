package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/squadmakers/chistes/internal/store"
)

type QueryHandler struct {
	store *store.Store
}

func NewQueryHandler(s *store.Store) *QueryHandler {
	return &QueryHandler{store: s}
}

// GetJokes handles GET /consultas?user_name=&theme_name=. At least one filter
// is required; with both, only jokes matching user and theme are returned.
// The response echoes the filters so count and list always agree with them.
func (h *QueryHandler) GetJokes(ctx *gin.Context) {
	userName := ctx.Query("user_name")
	themeName := ctx.Query("theme_name")

	var (
		jokes []store.JokeView
		err   error
	)

	switch {
	case userName != "" && themeName != "":
		jokes, err = h.store.FindJokesByUserAndTheme(ctx.Request.Context(), userName, themeName)
	case userName != "":
		jokes, err = h.store.FindJokesByUser(ctx.Request.Context(), userName)
	case themeName != "":
		jokes, err = h.store.FindJokesByTheme(ctx.Request.Context(), themeName)
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "at least one of 'user_name' or 'theme_name' is required",
		})
		return
	}

	if err != nil {
		writeStoreError(ctx, err)
		return
	}

	response := gin.H{"count": len(jokes), "jokes": jokes}
	if userName != "" {
		response["user"] = userName
	}
	if themeName != "" {
		response["theme"] = themeName
	}

	ctx.JSON(http.StatusOK, response)
}
