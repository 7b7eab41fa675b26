package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam извлекает числовой параметр URL и кладёт его в
// контекст Gin под ключом contextKey ("matchID", "gameID" и т.п.).
// Хендлеры дальше читают значение через c.MustGet(contextKey).(uint).
func ExtractUintParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Param(paramName)
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":      fmt.Sprintf("Invalid %s parameter", paramName),
				"error_type": "validation",
			})
			return
		}
		c.Set(contextKey, uint(id))
		c.Next()
	}
}
