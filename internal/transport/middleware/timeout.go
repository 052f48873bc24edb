package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout ограничивает каждый запрос дедлайном: цикл повторов координатора
// прерывается по нему, а не продолжает фиксацию после истечения срока
func Timeout(seconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(seconds)*time.Second)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
