// File: handlers/bundle.go
package handlers

import (
	clientRepo "clinibook/database/repository/client"
	professionalRepo "clinibook/database/repository/professional"
	userRepo "clinibook/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct. The repos are
// carried alongside because the auth middleware needs them at route
// registration time.
type HandlerBundle struct {
	UserRepo   userRepo.UserRepository
	ClientRepo clientRepo.ClientRepository
	ProRepo    professionalRepo.ProfessionalRepository

	// Auth endpoints.
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc

	// Client profile endpoints.
	ClientMeHandler       gin.HandlerFunc
	ClientUpdateMeHandler gin.HandlerFunc
	ClientDeleteMeHandler gin.HandlerFunc

	// Professional directory endpoints.
	ListProfessionalsHandler gin.HandlerFunc
	GetProfessionalHandler   gin.HandlerFunc

	// Availability endpoints.
	RegisterWindowsHandler gin.HandlerFunc
	MyWindowsHandler       gin.HandlerFunc
	RemoveWindowsHandler   gin.HandlerFunc
	PublicWindowsHandler   gin.HandlerFunc
	SlotsHandler           gin.HandlerFunc

	// Reservation endpoints.
	BookHandler    gin.HandlerFunc
	ConfirmHandler gin.HandlerFunc
	CancelHandler  gin.HandlerFunc
	DeleteHandler  gin.HandlerFunc
	MineHandler    gin.HandlerFunc
	QueueHandler   gin.HandlerFunc

	// Notification endpoints.
	ListNotificationsHandler  gin.HandlerFunc
	MarkNotificationHandler   gin.HandlerFunc
	DeleteNotificationHandler gin.HandlerFunc

	// Admin endpoints.
	AdminListClientsHandler       gin.HandlerFunc
	AdminListProfessionalsHandler gin.HandlerFunc
}
