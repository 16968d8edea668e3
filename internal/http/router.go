package api

import (
	"database/sql"
	stdhttp "net/http"

	"carwash/internal/config"
	h "carwash/internal/http/handlers"
	"carwash/internal/http/middleware"
	"carwash/internal/repositories"
	"carwash/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func NewRouter(env config.Env, db *sql.DB, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery(), middleware.Metrics(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{"success": false, "error": "Route not found"})
	})

	repo := repositories.BookingRepository{DB: db}
	bookingHandler := h.BookingHandler{
		Service:  services.BookingService{Repo: repo, Log: log},
		Receipts: services.ReceiptService{Repo: repo},
		Exports:  services.ExportService{Repo: repo},
		Log:      log,
	}
	systemHandler := h.SystemHandler{DB: db}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", systemHandler.Health)

		bookings := api.Group("/bookings")
		// static routes must be registered before the :id pattern
		bookings.GET("/search", bookingHandler.Search)
		bookings.GET("/export", bookingHandler.Export)

		bookings.GET("", bookingHandler.List)
		bookings.POST("", bookingHandler.Create)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.PUT("/:id", bookingHandler.Update)
		bookings.DELETE("/:id", bookingHandler.Delete)
		bookings.GET("/:id/receipt", bookingHandler.Receipt)
	}

	return r
}
