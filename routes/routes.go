// File: routes/routes.go
package routes

import (
	"net/http"
	"time"

	"clinibook/handlers"
	"clinibook/middleware"
	"clinibook/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and login.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)
	}
}

// RegisterClientRoutes registers the client profile surface.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clients")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	api.Use(middleware.RequireRole(models.RoleClient))
	{
		api.GET("/me", hb.ClientMeHandler)
		api.PUT("/me", hb.ClientUpdateMeHandler)
		api.DELETE("/me", hb.ClientDeleteMeHandler)
	}
}

// RegisterProfessionalRoutes registers the public directory, the public
// window/slot queries and the professional's own availability management.
func RegisterProfessionalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/professionals")
	{
		// Public surface: anyone can browse professionals and their open
		// slots. The "/id/:id" shape avoids wildcard conflicts with "/me".
		api.GET("", hb.ListProfessionalsHandler)
		api.GET("/id/:id", hb.GetProfessionalHandler)
		api.GET("/id/:id/windows", hb.PublicWindowsHandler)
		api.GET("/id/:id/slots", hb.SlotsHandler)

		// Availability management requires a professional identity.
		me := api.Group("/me/availability")
		me.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		me.Use(middleware.RequireRole(models.RoleProfessional))
		me.Use(middleware.ResolveProfessional(hb.ProRepo))
		me.PUT("", hb.RegisterWindowsHandler)
		me.GET("", hb.MyWindowsHandler)
		me.DELETE("", hb.RemoveWindowsHandler)
	}
}

// RegisterReservationRoutes registers the booking lifecycle endpoints.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reservations")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		client := api.Group("")
		client.Use(middleware.RequireRole(models.RoleClient))
		client.Use(middleware.ResolveClient(hb.ClientRepo))
		client.POST("", hb.BookHandler)
		client.GET("/mine", hb.MineHandler)
		client.PUT("/id/:id/cancel", hb.CancelHandler)
		client.DELETE("/id/:id", hb.DeleteHandler)

		pro := api.Group("")
		pro.Use(middleware.RequireRole(models.RoleProfessional))
		pro.Use(middleware.ResolveProfessional(hb.ProRepo))
		pro.PUT("/id/:id/confirm", hb.ConfirmHandler)
		pro.GET("/queue", hb.QueueHandler)
	}
}

// RegisterNotificationRoutes registers the polled notification surface.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("", hb.ListNotificationsHandler)
		api.PUT("/:id/read", hb.MarkNotificationHandler)
		api.DELETE("/:id", hb.DeleteNotificationHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	api.Use(middleware.RequireRole(models.RoleAdmin))
	{
		api.GET("/clients", hb.AdminListClientsHandler)
		api.GET("/professionals", hb.AdminListProfessionalsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Clinibook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterProfessionalRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
