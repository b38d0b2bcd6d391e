package main

import (
	"caseload-api/core/logger"
	"caseload-api/core/server"

	_ "caseload-api/docs" // Swagger docs
)

// @title Caseload API
// @version 1.0
// @description Backend for itinerant DHH caseload management: scheduling with drive-time conflicts, Ling 6 listening checks, IEP goals, service logs, equipment and activities.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
