package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/okami-ct/okami-dashboard/internal/service"
	"github.com/okami-ct/okami-dashboard/pkg/response"
)

// PathIDs rejects requests whose route parameters are not usable as ids.
func PathIDs() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range c.Params {
			if err := service.ValidateID(p.Value); err != nil {
				response.Error(c, err)
				return
			}
		}
		c.Next()
	}
}
