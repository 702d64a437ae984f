package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"hostel-backend/models"
	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminSvc *services.AdminService
	MediaSvc *services.MediaService
}

func NewAdminController(admin *services.AdminService, media *services.MediaService) *AdminController {
	return &AdminController{AdminSvc: admin, MediaSvc: media}
}

type imagePayload struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// adminBookingView adds the owning account to the public booking view.
type adminBookingView struct {
	bookingView
	User *ref `json:"user"`
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return false
	}
	return true
}

// Index (GET /admin/)
func (ctrl *AdminController) Index(c *gin.Context) {
	counts, err := ctrl.AdminSvc.Counts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// ----------------------------------------------------
// Amenities
// ----------------------------------------------------

func (ctrl *AdminController) ListAmenities(c *gin.Context) {
	amenities, err := ctrl.AdminSvc.ListAmenities(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, amenities)
}

func (ctrl *AdminController) CreateAmenity(c *gin.Context) {
	var in services.AmenityInput
	if !bindJSON(c, &in) {
		return
	}
	amenity, err := ctrl.AdminSvc.CreateAmenity(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, amenity)
}

func (ctrl *AdminController) DeleteAmenity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.AdminSvc.DeleteAmenity(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Amenity deleted"})
}

// ----------------------------------------------------
// Hostels
// ----------------------------------------------------

func (ctrl *AdminController) ListHostels(c *gin.Context) {
	hostels, err := ctrl.AdminSvc.ListHostels(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hostels)
}

func (ctrl *AdminController) GetHostel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	hostel, err := ctrl.AdminSvc.GetHostel(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hostel)
}

func (ctrl *AdminController) CreateHostel(c *gin.Context) {
	var in services.HostelInput
	if !bindJSON(c, &in) {
		return
	}
	hostel, err := ctrl.AdminSvc.CreateHostel(in)
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("✅ Hostel %d (%s) created", hostel.ID, hostel.Name)
	c.JSON(http.StatusCreated, hostel)
}

func (ctrl *AdminController) UpdateHostel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.HostelInput
	if !bindJSON(c, &in) {
		return
	}
	hostel, err := ctrl.AdminSvc.UpdateHostel(id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hostel)
}

func (ctrl *AdminController) DeleteHostel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	hostel, err := ctrl.AdminSvc.DeleteHostel(id)
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl.removeMedia(hostel.Image)
	for _, r := range hostel.Rooms {
		ctrl.removeMedia(r.Image)
	}
	log.Printf("✅ Hostel ID %d deleted.", id)
	c.JSON(http.StatusOK, gin.H{"message": "Hostel deleted"})
}

// UploadHostelImage (POST /admin/hostels/:id/image) takes a multipart "image"
// file or a JSON {"image_base64": ...} body.
func (ctrl *AdminController) UploadHostelImage(c *gin.Context) {
	ctrl.uploadImage(c, "hostels", ctrl.AdminSvc.SetHostelImage)
}

// ----------------------------------------------------
// Rooms
// ----------------------------------------------------

func (ctrl *AdminController) ListRooms(c *gin.Context) {
	var f services.RoomFilter
	if v := c.Query("hostel"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid hostel filter")
			return
		}
		f.HostelID = uint(id)
	}
	if v := c.Query("is_private"); v != "" {
		private := utils.IsTruthy(v)
		f.IsPrivate = &private
	}
	rooms, err := ctrl.AdminSvc.ListRooms(f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *AdminController) CreateRoom(c *gin.Context) {
	var in services.RoomInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := ctrl.AdminSvc.CreateRoom(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (ctrl *AdminController) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.RoomInput
	if !bindJSON(c, &in) {
		return
	}
	room, err := ctrl.AdminSvc.UpdateRoom(id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *AdminController) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.AdminSvc.DeleteRoom(id)
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl.removeMedia(room.Image)
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

func (ctrl *AdminController) UploadRoomImage(c *gin.Context) {
	ctrl.uploadImage(c, "rooms", ctrl.AdminSvc.SetRoomImage)
}

// ----------------------------------------------------
// Bookings
// ----------------------------------------------------

// ListBookings (GET /admin/bookings) filters: hostel, room, created_from,
// created_to (YYYY-MM-DD, inclusive) and q.
func (ctrl *AdminController) ListBookings(c *gin.Context) {
	f := services.BookingFilter{Query: c.Query("q")}
	for param, dst := range map[string]*uint{"hostel": &f.HostelID, "room": &f.RoomID} {
		if v := c.Query(param); v != "" {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "invalid "+param+" filter")
				return
			}
			*dst = uint(id)
		}
	}
	if v := c.Query("created_from"); v != "" {
		t, err := time.ParseInLocation(models.DateLayout, v, time.UTC)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid created_from filter")
			return
		}
		f.CreatedFrom = &t
	}
	if v := c.Query("created_to"); v != "" {
		t, err := time.ParseInLocation(models.DateLayout, v, time.UTC)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid created_to filter")
			return
		}
		end := t.AddDate(0, 0, 1)
		f.CreatedTo = &end
	}

	bookings, err := ctrl.AdminSvc.ListBookings(f)
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]adminBookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, newAdminBookingView(b))
	}
	c.JSON(http.StatusOK, views)
}

func (ctrl *AdminController) GetBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	booking, err := ctrl.AdminSvc.GetBooking(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAdminBookingView(*booking))
}

func (ctrl *AdminController) DeleteBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.AdminSvc.DeleteBooking(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// ----------------------------------------------------
// helpers
// ----------------------------------------------------

func (ctrl *AdminController) uploadImage(c *gin.Context, subdir string, set func(id uint, path string) (string, error)) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var path string
	var err error
	if fh, ferr := c.FormFile("image"); ferr == nil {
		path, err = ctrl.MediaSvc.SaveUpload(fh, subdir)
	} else {
		var payload imagePayload
		if !bindJSON(c, &payload) {
			return
		}
		path, err = ctrl.MediaSvc.SaveBase64Image(payload.ImageBase64, subdir)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	old, err := set(id, path)
	if err != nil {
		ctrl.removeMedia(path)
		respondError(c, err)
		return
	}
	ctrl.removeMedia(old)
	c.JSON(http.StatusOK, gin.H{"image": path, "image_url": mediaURL(path)})
}

func (ctrl *AdminController) removeMedia(path string) {
	if err := ctrl.MediaSvc.Remove(path); err != nil {
		log.Printf("warning: failed to remove media %s: %v", path, err)
	}
}

func newAdminBookingView(b models.Booking) adminBookingView {
	v := adminBookingView{bookingView: newBookingView(b)}
	if b.User != nil {
		v.User = &ref{ID: b.User.ID, Name: b.User.Username}
	}
	return v
}
