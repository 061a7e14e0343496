package internal

import (
	"net/http"

	"aad/internal/controllers"
	"aad/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/attendance", http.HandlerFunc(apiController.GetAttendance))
	return routers
}
