package router

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	v1 "github.com/rcbudget/backend/internal/controllers/v1"
	"github.com/rcbudget/backend/internal/httputil"
	"github.com/rcbudget/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router controls the routes for the API.
func Router() (*gin.Engine, error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, out io.Writer, latency time.Duration) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Dur("latency", latency).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)

	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)

	r.GET("/healthz", GetHealthz)
	r.OPTIONS("/healthz", OptionsHealthz)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.Register(r, "debug/pprof")
	}

	// API v1 setup
	apiV1 := r.Group("/v1")
	{
		apiV1.GET("", GetV1)
		apiV1.DELETE("", v1.Cleanup)
		apiV1.OPTIONS("", OptionsV1)
	}

	v1.RegisterResponsibilityCentreRoutes(apiV1.Group("/responsibility-centres"))
	v1.RegisterFiscalYearRoutes(apiV1.Group("/fiscal-years"))
	v1.RegisterMoneyTypeRoutes(apiV1.Group("/money-types"))
	v1.RegisterCategoryRoutes(apiV1.Group("/categories"))
	v1.RegisterSpendingCategoryRoutes(apiV1.Group("/spending-categories"))
	v1.RegisterFundingItemRoutes(apiV1.Group("/funding-items"))
	v1.RegisterSpendingItemRoutes(apiV1.Group("/spending-items"))
	v1.RegisterProcurementItemRoutes(apiV1.Group("/procurement-items"))
	v1.RegisterTrainingItemRoutes(apiV1.Group("/training-items"))
	v1.RegisterTravelItemRoutes(apiV1.Group("/travel-items"))
	v1.RegisterSpendingEventRoutes(apiV1.Group("/spending-events"))
	v1.RegisterSpendingInvoiceRoutes(apiV1.Group("/spending-invoices"))
	v1.RegisterSpendingInvoiceFileRoutes(apiV1.Group("/spending-invoice-files"))
	v1.RegisterProcurementEventRoutes(apiV1.Group("/procurement-events"))
	v1.RegisterProcurementEventFileRoutes(apiV1.Group("/procurement-event-files"))
	v1.RegisterProcurementQuoteRoutes(apiV1.Group("/procurement-quotes"))
	v1.RegisterProcurementQuoteFileRoutes(apiV1.Group("/procurement-quote-files"))

	log.Info().Str("version", version).Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`
	Version string `json:"version" example:"https://example.com/api/version"`
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`
	V1      string `json:"v1" example:"https://example.com/api/v1"`
}

// GetRoot is the entrypoint for the API, listing all endpoints.
func GetRoot(c *gin.Context) {
	url := httputil.RequestHost(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      httputil.RequestPathV1(c),
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// GetVersion returns the software version of the API.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// GetHealthz returns the application health and, if not healthy, an error.
func GetHealthz(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsHealthz(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	ResponsibilityCentres string `json:"responsibilityCentres" example:"https://example.com/api/v1/responsibility-centres"`
	FiscalYears           string `json:"fiscalYears" example:"https://example.com/api/v1/fiscal-years"`
	MoneyTypes            string `json:"moneyTypes" example:"https://example.com/api/v1/money-types"`
	Categories            string `json:"categories" example:"https://example.com/api/v1/categories"`
	SpendingCategories    string `json:"spendingCategories" example:"https://example.com/api/v1/spending-categories"`
	FundingItems          string `json:"fundingItems" example:"https://example.com/api/v1/funding-items"`
	SpendingItems         string `json:"spendingItems" example:"https://example.com/api/v1/spending-items"`
	ProcurementItems      string `json:"procurementItems" example:"https://example.com/api/v1/procurement-items"`
	TrainingItems         string `json:"trainingItems" example:"https://example.com/api/v1/training-items"`
	TravelItems           string `json:"travelItems" example:"https://example.com/api/v1/travel-items"`
}

// GetV1 returns general information about the v1 API.
func GetV1(c *gin.Context) {
	base := httputil.RequestPathV1(c)

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			ResponsibilityCentres: base + "/responsibility-centres",
			FiscalYears:           base + "/fiscal-years",
			MoneyTypes:            base + "/money-types",
			Categories:            base + "/categories",
			SpendingCategories:    base + "/spending-categories",
			FundingItems:          base + "/funding-items",
			SpendingItems:         base + "/spending-items",
			ProcurementItems:      base + "/procurement-items",
			TrainingItems:         base + "/training-items",
			TravelItems:           base + "/travel-items",
		},
	})
}

func OptionsV1(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
