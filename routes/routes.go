package routes

import (
	"github.com/julienschmidt/httprouter"

	"github.com/MilanMareels/ap-gaming-hub/auth"
	"github.com/MilanMareels/ap-gaming-hub/db"
	"github.com/MilanMareels/ap-gaming-hub/events"
	"github.com/MilanMareels/ap-gaming-hub/highscores"
	"github.com/MilanMareels/ap-gaming-hub/middleware"
	"github.com/MilanMareels/ap-gaming-hub/ratelim"
	"github.com/MilanMareels/ap-gaming-hub/reservations"
	"github.com/MilanMareels/ap-gaming-hub/rosters"
	"github.com/MilanMareels/ap-gaming-hub/schedule"
	"github.com/MilanMareels/ap-gaming-hub/settings"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.KeyLimiter) {
	AddAuthRoutes(router)
	AddReservationRoutes(router, rateLimiter)
	AddScheduleRoutes(router)
	AddSettingsRoutes(router)
	AddEventRoutes(router)
	AddHighscoreRoutes(router, rateLimiter)
	AddRosterRoutes(router)
	AddAdminRoutes(router)
	AddLiveRoutes(router)
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/login", auth.Login)
}

func AddReservationRoutes(router *httprouter.Router, rateLimiter *ratelim.KeyLimiter) {
	router.GET("/api/availability", reservations.GetAvailability)
	router.POST("/api/reservations", reservations.CreateReservation(rateLimiter))
	router.GET("/api/reservations", reservations.GetReservations)
	router.GET("/api/reservations/:id/ticket", reservations.PrintTicket)
}

func AddScheduleRoutes(router *httprouter.Router) {
	router.GET("/api/schedule", schedule.GetSchedule)
}

func AddSettingsRoutes(router *httprouter.Router) {
	router.GET("/api/settings", settings.GetSettings)
}

func AddEventRoutes(router *httprouter.Router) {
	router.GET("/api/events", events.GetEvents)
}

func AddHighscoreRoutes(router *httprouter.Router, rateLimiter *ratelim.KeyLimiter) {
	router.GET("/api/highscores", highscores.GetHighscores)
	router.POST("/api/highscores", rateLimiter.Limit(highscores.SubmitScore))
}

func AddRosterRoutes(router *httprouter.Router) {
	router.GET("/api/rosters", rosters.GetRosters)
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/admin/reservations", middleware.Admin(reservations.GetReservations))
	router.PATCH("/api/admin/reservations/:id/status", middleware.Admin(reservations.UpdateStatus))
	router.DELETE("/api/admin/reservations/:id", middleware.Admin(reservations.Delete))
	router.GET("/api/admin/noshows", middleware.Admin(reservations.GetNoShows))
	router.DELETE("/api/admin/noshows/:snumber", middleware.Admin(reservations.ResetStrikes))

	router.PUT("/api/admin/schedule", middleware.Admin(schedule.SaveTimetable))
	router.GET("/api/admin/schedule/pdf", middleware.Admin(schedule.PrintWeek))

	router.PUT("/api/admin/settings", middleware.Admin(settings.UpdateSettings))
	router.PATCH("/api/admin/inventory", middleware.Admin(settings.UpdateInventory))

	router.POST("/api/admin/events", middleware.Admin(events.AddEvent))
	router.DELETE("/api/admin/events/:id", middleware.Admin(events.DeleteEvent))

	router.PATCH("/api/admin/highscores/:id/approve", middleware.Admin(highscores.ApproveScore))
	router.DELETE("/api/admin/highscores/:id", middleware.Admin(highscores.DeleteScore))

	router.POST("/api/admin/rosters/:game/players", middleware.Admin(rosters.AddPlayer))
	router.DELETE("/api/admin/rosters/:game/players/:index", middleware.Admin(rosters.DeletePlayer))
}

func AddLiveRoutes(router *httprouter.Router) {
	router.GET("/ws/content/:doc", db.Content.HandleWS)
}
