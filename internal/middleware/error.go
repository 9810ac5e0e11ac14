// File: internal/middleware/error.go
package middleware

import (
	"bhoomi_backend/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler creates a Gin middleware for centralized error handling.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			ginErr := c.Errors[0]
			if apiErr, ok := common.IsAPIError(ginErr.Err); ok {
				c.AbortWithStatusJSON(apiErr.StatusCode, common.Envelope{
					Success: false,
					Message: apiErr.Message,
					Errors:  gin.H{"code": apiErr.Code, "details": apiErr.Details},
				})
				return
			}

			logger.Error("Unhandled application error",
				zap.Error(ginErr.Err),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString(RequestIDContextKey)),
			)
			genericError := common.ErrInternalServer
			if gin.Mode() == gin.DebugMode && ginErr.Err != nil {
				genericError = genericError.WithDetails(ginErr.Err.Error())
			}
			c.AbortWithStatusJSON(genericError.StatusCode, common.Envelope{
				Success: false,
				Message: genericError.Message,
				Errors:  gin.H{"code": genericError.Code, "details": genericError.Details},
			})
			return
		}

		if c.Writer.Status() == 404 && !c.Writer.Written() {
			notFoundErr := common.ErrNotFound.WithDetails("The requested endpoint does not exist.")
			c.AbortWithStatusJSON(notFoundErr.StatusCode, common.Envelope{
				Success: false,
				Message: notFoundErr.Message,
				Errors:  gin.H{"code": notFoundErr.Code, "details": notFoundErr.Details},
			})
			return
		}
		if c.Writer.Status() == 405 && !c.Writer.Written() {
			methodErr := common.NewAPIError(405, "METHOD_NOT_ALLOWED", "The method is not allowed for the requested URL.")
			c.AbortWithStatusJSON(methodErr.StatusCode, common.Envelope{
				Success: false,
				Message: methodErr.Message,
				Errors:  gin.H{"code": methodErr.Code},
			})
		}
	}
}
