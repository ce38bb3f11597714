package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPErrorResponse представляет структуру HTTP ответа об ошибке
type HTTPErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func ErrorResponse(message string, details interface{}) HTTPErrorResponse {
	return HTTPErrorResponse{
		Error:   message,
		Details: details,
	}
}

func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Если есть ошибки после выполнения запроса
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			code, response := ToHTTPResponse(err)
			c.JSON(code, response)
			c.Abort()
			return
		}
	}
}

func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse(
			fmt.Sprintf("Путь не найден: %s", c.Request.URL.Path), nil,
		))
	}
}

func MethodNotAllowedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse(
			fmt.Sprintf("Метод %s не поддерживается для пути %s", c.Request.Method, c.Request.URL.Path), nil,
		))
	}
}

func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var err error
				switch t := r.(type) {
				case string:
					err = fmt.Errorf("паника: %s", t)
				case error:
					err = fmt.Errorf("паника: %w", t)
				default:
					err = fmt.Errorf("паника: %v", r)
				}
				LogError(err, "Recovery")
				c.JSON(http.StatusInternalServerError, ErrorResponse("Внутренняя ошибка сервера", nil))
				c.Abort()
			}
		}()
		c.Next()
	}
}
