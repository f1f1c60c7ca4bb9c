package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/squadmakers/chistes/internal/utils"
)

// Math handles GET /matematico. With ?numbers=1,2,3 it returns the least
// common multiple; with ?number=5 it returns the number plus one.
func Math(ctx *gin.Context) {
	if raw := ctx.Query("numbers"); raw != "" {
		numbers := []string{}
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				numbers = append(numbers, trimmed)
			}
		}

		lcm, err := utils.LCM(numbers)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"numbers": numbers, "lcm": lcm})
		return
	}

	if raw := ctx.Query("number"); raw != "" {
		number, result, err := utils.AddOne(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"number": number, "result": result})
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'numbers' or 'number' is required"})
}
