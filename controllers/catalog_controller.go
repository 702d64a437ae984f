package controllers

import (
	"net/http"

	"hostel-backend/services"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogSvc *services.CatalogService
}

func NewCatalogController(svc *services.CatalogService) *CatalogController {
	return &CatalogController{CatalogSvc: svc}
}

// Home (GET /) lists hostels by name.
func (ctrl *CatalogController) Home(c *gin.Context) {
	hostels, err := ctrl.CatalogSvc.ListHostels()
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]hostelView, 0, len(hostels))
	for _, h := range hostels {
		views = append(views, newHostelView(h))
	}
	c.JSON(http.StatusOK, gin.H{"hostels": views})
}

// HostelDetail (GET /hostels/:id/) shows a hostel and its rooms, cheapest first.
func (ctrl *CatalogController) HostelDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	hostel, err := ctrl.CatalogSvc.GetHostel(id)
	if err != nil {
		respondError(c, err)
		return
	}
	rooms, err := ctrl.CatalogSvc.RoomsForHostel(hostel.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hostel": newHostelView(*hostel),
		"rooms":  newRoomViews(rooms),
	})
}
