package main

import (
	"os"

	"github.com/pskth/attendance-management-system/internal/pkg/logger"
	"github.com/pskth/attendance-management-system/internal/server"
)

// @title Attendance Management System API
// @version 1.0
// @description Relational integrity and bulk exchange backend for academic records.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}
