package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hostel-backend/config"
	"hostel-backend/controllers"
	"hostel-backend/middleware"
)

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}
}

// SetupRouter wires every page of the site. users resolves session tokens.
func SetupRouter(
	s config.Settings,
	users middleware.UserLoader,
	ac *controllers.AuthController,
	cc *controllers.CatalogController,
	bc *controllers.BookingController,
	adm *controllers.AdminController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.AllowedHosts(s.AllowedHosts))
	r.Use(cors.New(corsConfig(s.CorsOrigins)))
	r.Use(middleware.Session(s.SecretKey, users))

	r.Static("/static", s.StaticRoot)
	if s.MediaServed() {
		r.Static("/media", s.MediaRoot)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	accounts := r.Group("/accounts")
	{
		accounts.GET("/signup/", ac.SignupPage)
		accounts.POST("/signup/", ac.Signup)
		accounts.GET("/login/", ac.LoginPage)
		accounts.POST("/login/", ac.Login)
		accounts.POST("/logout/", ac.Logout)

		password := accounts.Group("/password_change", middleware.RequireLogin())
		password.GET("/", ac.PasswordChangePage)
		password.POST("/", ac.ChangePassword)
		password.GET("/done/", ac.PasswordChangeDone)
	}

	site := r.Group("/", middleware.RequireLogin())
	{
		site.GET("/", cc.Home)
		site.GET("/hostels/:id/", cc.HostelDetail)
		site.GET("/hostels/:id/book/", bc.BookingForm)
		site.POST("/hostels/:id/book/", bc.CreateBooking)

		site.GET("/bookings/", bc.ListBookings)
		site.GET("/bookings/:id/success/", bc.BookingSuccess)
		site.GET("/bookings/:id/payment/", bc.PaymentPage)
		site.POST("/bookings/:id/payment/", bc.ConfirmPayment)
		site.GET("/bookings/:id/receipt/", bc.Receipt)
	}

	admin := r.Group("/admin", middleware.RequireLogin(), middleware.RequireStaff())
	{
		admin.GET("/", adm.Index)

		amenities := admin.Group("/amenities")
		{
			amenities.GET("", adm.ListAmenities)
			amenities.POST("", adm.CreateAmenity)
			amenities.DELETE("/:id", adm.DeleteAmenity)
		}

		hostels := admin.Group("/hostels")
		{
			hostels.GET("", adm.ListHostels)
			hostels.POST("", adm.CreateHostel)
			hostels.GET("/:id", adm.GetHostel)
			hostels.PUT("/:id", adm.UpdateHostel)
			hostels.DELETE("/:id", adm.DeleteHostel)
			hostels.POST("/:id/image", adm.UploadHostelImage)
		}

		rooms := admin.Group("/rooms")
		{
			rooms.GET("", adm.ListRooms)
			rooms.POST("", adm.CreateRoom)
			rooms.PUT("/:id", adm.UpdateRoom)
			rooms.DELETE("/:id", adm.DeleteRoom)
			rooms.POST("/:id/image", adm.UploadRoomImage)
		}

		bookings := admin.Group("/bookings")
		{
			bookings.GET("", adm.ListBookings)
			bookings.GET("/:id", adm.GetBooking)
			bookings.DELETE("/:id", adm.DeleteBooking)
		}
	}

	return r
}
