package internal

import (
	"net/http"
	"resultsd/internal/controllers"
	"resultsd/internal/providers"
	"resultsd/internal/services"
	"resultsd/internal/structures"

	"github.com/go-chi/httprate"
)

// InitRoutes registers the /api surface. Paths are relative to the /api
// mount point; bearer-protected handlers are wrapped individually and the
// auth flows share one per-IP rate limiter.
func InitRoutes(results *controllers.ResultController, categories *controllers.CategoryController, auth *controllers.AuthController, appConfig *controllers.AppConfigController, authService services.AuthServiceInterface, conf *structures.Config, logger providers.Logger) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	bearer := providers.AuthMiddleware(authService, logger)
	protected := func(h http.HandlerFunc) http.Handler { return bearer(h) }
	limit := httprate.LimitByIP(conf.RateLimit.AuthRequests, conf.RateLimit.AuthWindow)
	limited := func(h http.HandlerFunc) http.Handler { return limit(h) }

	routers.Post("/result", protected(results.CreateResult))
	routers.Post("/result-with-authcode", http.HandlerFunc(results.CreateResult))
	routers.Get("/fetch-result", protected(results.FetchToday))
	routers.Get("/fetch-result-direct", http.HandlerFunc(results.FetchMonth))
	routers.Get("/fetch-result-by-date/{date}/{categoryname}", http.HandlerFunc(results.FetchByDate))
	routers.Get("/fetch-result-by-date/{date}/{categoryname}/{mode}", http.HandlerFunc(results.FetchByDate))
	routers.Get("/fetch-results-by-month/{selectedDate}/{categoryname}/{mode}", protected(results.FetchMonthWindow))
	routers.Get("/result/{id}", protected(results.FetchByID))
	routers.Put("/update-existing-result/{_id}", protected(results.UpdateEntry))
	routers.Patch("/delete-existing-result/{id}", protected(results.DeleteEntry))
	routers.Post("/upload-data", http.HandlerFunc(results.Upload))

	routers.Post("/add-key-for-result-updation", protected(categories.RegisterKey))
	routers.Get("/fetch-cate-result", protected(categories.ListCategories))
	routers.Get("/fetch-category-direct", http.HandlerFunc(categories.ListCategories))

	routers.Get("/app-config", http.HandlerFunc(appConfig.GetAppConfig))

	routers.Post("/login", limited(auth.Login))
	routers.Post("/generate-otp", limited(auth.GenerateOTP))
	routers.Post("/verify-otp", limited(auth.VerifyOTP))
	routers.Post("/resetpassword", limited(auth.ResetPassword))
	return routers
}
