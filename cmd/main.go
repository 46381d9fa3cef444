package main

import (
	"parcels/internal/app"

	"github.com/sirupsen/logrus"
)

// @title       Parcels API
// @version     1.0
// @description Parcel registration with delivery cost calculation and transport company assignment.
// @host        localhost:8080
// @BasePath    /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped")
	}
}
