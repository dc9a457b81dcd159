// File: clinibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinibook/config"
	"clinibook/cron"
	"clinibook/database"
	availabilityRepoPkg "clinibook/database/repository/availability"
	clientRepoPkg "clinibook/database/repository/client"
	notificationRepoPkg "clinibook/database/repository/notification"
	professionalRepoPkg "clinibook/database/repository/professional"
	reservationRepoPkg "clinibook/database/repository/reservation"
	userRepoPkg "clinibook/database/repository/user"
	"clinibook/handlers"
	"clinibook/middleware"
	"clinibook/routes"
	"clinibook/services/account"
	"clinibook/services/availability"
	"clinibook/services/booking"
	"clinibook/services/notification"
	"clinibook/services/reminder"
	"clinibook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	users := userRepoPkg.NewMongoUserRepo()
	clients := clientRepoPkg.NewMongoClientRepo()
	pros := professionalRepoPkg.NewMongoProfessionalRepo()
	availabilities := availabilityRepoPkg.NewMongoAvailabilityRepo()
	reservations := reservationRepoPkg.NewMongoReservationRepo()
	notifications := notificationRepoPkg.NewMongoNotificationRepo()

	for _, ensure := range []func() error{
		users.EnsureIndexes,
		clients.EnsureIndexes,
		pros.EnsureIndexes,
		availabilities.EnsureIndexes,
		reservations.EnsureIndexes,
		notifications.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	notificationService := notification.NewNotificationService(notifications)
	accountService := account.NewAccountService(users, clients, pros)
	availabilityService := availability.NewAvailabilityService(availabilities, reservations, pros)
	bookingService := booking.NewBookingService(reservations, availabilities, clients, pros, notificationService)
	reminderService := reminder.NewReminderService(reservations, clients, notifications, notificationService)

	// handlers.
	authHandler := handlers.NewAuthHandler(accountService)
	clientHandler := handlers.NewClientHandler(accountService, clients)
	professionalHandler := handlers.NewProfessionalHandler(pros, users)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(clients, pros)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:   users,
		ClientRepo: clients,
		ProRepo:    pros,

		RegisterHandler: authHandler.RegisterHandler,
		LoginHandler:    authHandler.LoginHandler,

		ClientMeHandler:       clientHandler.MeHandler,
		ClientUpdateMeHandler: clientHandler.UpdateMeHandler,
		ClientDeleteMeHandler: clientHandler.DeleteMeHandler,

		ListProfessionalsHandler: professionalHandler.ListHandler,
		GetProfessionalHandler:   professionalHandler.GetHandler,

		RegisterWindowsHandler: availabilityHandler.RegisterWindowsHandler,
		MyWindowsHandler:       availabilityHandler.MyWindowsHandler,
		RemoveWindowsHandler:   availabilityHandler.RemoveWindowsHandler,
		PublicWindowsHandler:   availabilityHandler.PublicWindowsHandler,
		SlotsHandler:           availabilityHandler.SlotsHandler,

		BookHandler:    bookingHandler.BookHandler,
		ConfirmHandler: bookingHandler.ConfirmHandler,
		CancelHandler:  bookingHandler.CancelHandler,
		DeleteHandler:  bookingHandler.DeleteHandler,
		MineHandler:    bookingHandler.MineHandler,
		QueueHandler:   bookingHandler.QueueHandler,

		ListNotificationsHandler:  notificationHandler.ListHandler,
		MarkNotificationHandler:   notificationHandler.MarkReadHandler,
		DeleteNotificationHandler: notificationHandler.DeleteHandler,

		AdminListClientsHandler:       adminHandler.ListClientsHandler,
		AdminListProfessionalsHandler: adminHandler.ListProfessionalsHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker + scheduler.
	cron.InitReminderWorker(reminderService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	database.CloseDB()

	logger.Sugar().Info("main: server stopped gracefully")
}
