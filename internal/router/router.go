package router

import (
	"net/http"

	"github.com/jrabinat-art/agenda/internal/config"
	"github.com/jrabinat-art/agenda/internal/filestore"
	"github.com/jrabinat-art/agenda/internal/handler"
	"github.com/jrabinat-art/agenda/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and mounts the four dashboards.
func SetupRouter(cfg *config.Config, db *gorm.DB, contacts *filestore.Store) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ====== API ======
	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret

	// register/login need no auth
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.Issuer, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// everything else requires a live session
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/me", handler.GetMe)
	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db, cfg.Security.BcryptCost))

	// address book
	clientHandler := handler.NewClientHandler(db)
	protected.POST("/clients", clientHandler.CreateClient)
	protected.GET("/clients", clientHandler.ListClients)
	protected.PUT("/clients/:id", clientHandler.UpdateClient)
	protected.DELETE("/clients/:id", clientHandler.DeleteClient)

	// team roster
	rosterHandler := handler.NewRosterHandler(db)
	protected.POST("/players", rosterHandler.CreatePlayer)
	protected.GET("/players", rosterHandler.ListPlayers)
	protected.PUT("/players/:id", rosterHandler.UpdatePlayer)
	protected.DELETE("/players/:id", rosterHandler.DeletePlayer)

	// habit tracker
	habitHandler := handler.NewHabitHandler(db)
	protected.POST("/habits", habitHandler.CreateHabit)
	protected.GET("/habits", habitHandler.ListHabits)
	protected.GET("/habits/today", habitHandler.Today)
	protected.PUT("/habits/:id", habitHandler.UpdateHabit)
	protected.POST("/habits/:id/toggle", habitHandler.ToggleHabit)
	protected.DELETE("/habits/:id", habitHandler.DeleteHabit)
	protected.POST("/habits/:id/logs", habitHandler.UpsertLog)
	protected.GET("/habits/:id/progress", habitHandler.Progress)

	// file-backed contact list
	contactsHandler := handler.NewContactsHandler(contacts)
	protected.GET("/contacts", contactsHandler.ListContacts)
	protected.POST("/contacts", contactsHandler.AddContact)
	protected.DELETE("/contacts/:index", contactsHandler.DeleteContact)

	// spreadsheet downloads
	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/clients.csv", exportHandler.ExportClientsCSV)
	protected.GET("/export/clients.xlsx", exportHandler.ExportClientsXLSX)
	protected.GET("/export/roster.xlsx", exportHandler.ExportRosterXLSX)

	return r
}
