package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

// paramID reads a positive integer path parameter. Anything else is a 404,
// the same as an unknown record.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusNotFound, "not found")
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto responses: inline form errors, 404,
// or a logged 500.
func respondError(c *gin.Context, err error) {
	if fe, ok := utils.AsFormErrors(err); ok {
		utils.JSONFormErrors(c, fe)
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrUnsupportedImage):
		utils.JSONError(c, http.StatusBadRequest, "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	default:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}

// bindForm binds form, multipart or JSON bodies. A body that cannot even be
// decoded is reported as a non-field error.
func bindForm(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		errs := utils.FormErrors{}
		errs.AddNonField("Invalid form submission: " + err.Error())
		utils.JSONFormErrors(c, errs)
		return false
	}
	return true
}
