package main

import (
	"log"

	"github.com/dakshininfra/purchase-api/app"
	_ "github.com/dakshininfra/purchase-api/docs"
)

// @title Dakshin Infra Purchase API
// @version 0.1
// @description Backend API for the Dakshin Infra unit purchase flow.
// @contact.name Dakshin Infra Engineering
// @license.name MIT
// @host localhost:3000
// @BasePath /
func main() {
	if err := app.SetupAndRunApp(); err != nil {
		log.Fatal(err)
	}
}
