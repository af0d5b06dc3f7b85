package main

import (
	"github.com/wahyudsn/absensi/config"
	"github.com/wahyudsn/absensi/models"
	"github.com/wahyudsn/absensi/routes"
	"github.com/wahyudsn/absensi/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.Kartu{}, &models.Akun{}, &models.Absen{}, &models.UploadedFoto{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
