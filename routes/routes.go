package routes

import (
	"net/http"

	"deskhive/auth"
	"deskhive/booking"
	"deskhive/globals"
	"deskhive/middleware"
	"deskhive/places"
	"deskhive/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/workspacepic/*filepath", http.Dir("static/workspacepic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/users/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/users/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/users/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/users/token/refresh", ratelim.RateLimit(middleware.Authenticate(auth.RefreshToken)))
}

func AddPlaceRoutes(router *httprouter.Router) {
	router.GET("/api/place/organizations", places.GetOrganizations)
	router.POST("/api/place/organizations", middleware.Authenticate(places.CreateOrganization))

	router.GET("/api/place/workspaces", places.GetWorkspaces)
	// Deprecated alias kept for older clients
	router.GET("/api/workspaces", places.GetWorkspaces)

	router.POST("/api/place/workspaces",
		middleware.Authenticate(middleware.RequireRole(globals.RoleAdmin, places.CreateWorkspace)))
	router.DELETE("/api/place/workspaces/:workspaceid",
		middleware.Authenticate(middleware.RequireRole(globals.RoleAdmin, places.DeleteWorkspace)))
	router.POST("/api/place/workspaces/:workspaceid/photo",
		middleware.Authenticate(middleware.RequireRole(globals.RoleAdmin, places.UploadWorkspacePhoto)))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.GET("/api/bookings/availability", booking.CheckAvailability)
	router.GET("/api/bookings/verify", booking.VerifyPass)
	router.GET("/api/bookings/my", middleware.Authenticate(booking.MyBookings))
	router.POST("/api/bookings", ratelim.RateLimit(middleware.Authenticate(booking.CreateBooking)))
	router.GET("/api/bookings/pass/:bookingid", middleware.Authenticate(booking.PrintPass))
	router.DELETE("/api/bookings/:bookingid", middleware.Authenticate(booking.DeleteBooking))

	router.GET("/ws/bookings/:workspaceid", booking.HandleWS)
}
