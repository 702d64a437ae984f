package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// JSONFormErrors answers a rejected form submission with its inline errors.
func JSONFormErrors(c *gin.Context, errs FormErrors) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": errs})
}
