package main

import (
	"farmstay/config"
	"farmstay/di"
	"farmstay/helper"
	"farmstay/shared/logger"
)

// @title Farmstay API
// @version 1.0
// @description Farmhouse listings, bookings and enquiries.
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	helper.AutoMigrate(cfg)

	http := di.InitializeService()
	http.Serve()
}
