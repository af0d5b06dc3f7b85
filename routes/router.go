package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wahyudsn/absensi/config"
	"github.com/wahyudsn/absensi/controllers"
	"github.com/wahyudsn/absensi/middleware"
	"github.com/wahyudsn/absensi/repository"
	"github.com/wahyudsn/absensi/services"
	"github.com/wahyudsn/absensi/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		utils.Sugar.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	kartuRepo := repository.NewKartuRepository(db)
	akunRepo := repository.NewAkunRepository(db)
	absenRepo := repository.NewAbsenRepository(db)
	fotoRepo := repository.NewFotoRepository(db)

	absenController := controllers.NewAbsenController(services.NewAbsenService(kartuRepo, akunRepo, absenRepo, loc))
	akunController := controllers.NewAkunController(services.NewAkunService(kartuRepo, akunRepo))
	fotoController := controllers.NewFotoController(fotoRepo, cfg.UploadDir, cfg.UploadMaxSizeMB)

	r.GET("/health", func(ctx *gin.Context) {
		dbHealthy := false
		if sqlDB, err := db.DB(); err == nil {
			dbHealthy = sqlDB.PingContext(ctx.Request.Context()) == nil
		}
		redisHealthy := utils.GetRedis().Ping(ctx.Request.Context()).Err() == nil
		status := http.StatusOK
		if !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
	})

	rateLimited := middleware.RateLimitMiddleware()

	r.GET("/absen", absenController.List)
	r.GET("/absen/:id", absenController.Get)
	r.POST("/absen", rateLimited, absenController.Record)

	r.POST("/foto", rateLimited, fotoController.Upload)
	r.GET("/images", fotoController.List)
	r.GET("/images/:filename", fotoController.Serve)

	user := r.Group("/user")
	user.GET("", akunController.List)
	user.GET("/:id", akunController.Get)
	user.POST("/register", rateLimited, akunController.Register)
	user.PUT("/:id", rateLimited, akunController.Update)
	user.DELETE("/:id", rateLimited, akunController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, "route not found")
	})

	return r
}
