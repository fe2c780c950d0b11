// Indian Vehicles API
// @title Indian Vehicles API
// @version 0.1
// @description Lookup API for Indian car and bike specifications scraped from ZigWheels. Parameters are case-insensitive.
// @host localhost:8000
// @BasePath /

package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	_ "vehiclecatalog/docs"
	"vehiclecatalog/internal/catalog"
	"vehiclecatalog/internal/config"
	"vehiclecatalog/internal/database"
	"vehiclecatalog/internal/handlers"
	"vehiclecatalog/internal/middleware"
	"vehiclecatalog/internal/snapshot"
)

func main() {
	cfg := config.Load()

	vehicleHandler, err := handlers.NewVehicleHandler(catalogLoader(cfg))
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}

	r := gin.Default()

	r.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
		"172.16.0.0/12",  // Docker networks
		"10.0.0.0/8",     // Private networks
		"192.168.0.0/16", // Private networks
	})

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Admin-Key"}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.HTTPMethodFilter([]string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}))
	r.Use(middleware.UserAgentFilter())
	r.Use(middleware.SecurityScanDetection())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/swagger/index.html")
	})

	r.GET("/get_vehicle_info", vehicleHandler.GetVehicleInfo)
	r.GET("/get_vehicles_list", vehicleHandler.GetVehiclesList)

	api := r.Group("/api")
	{
		api.GET("/get_vehicle_info", vehicleHandler.GetVehicleInfo)
		api.GET("/get_vehicles_list", vehicleHandler.GetVehiclesList)
		api.GET("/health", vehicleHandler.Health)

		admin := api.Group("/admin", middleware.AdminKeyMiddleware(cfg.AdminKeyHash))
		admin.GET("/catalog-stats", vehicleHandler.CatalogStats)
		admin.POST("/reload-catalog", middleware.RefreshProtectionMiddleware(cfg.ReloadCooldown), vehicleHandler.ReloadCatalog)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// catalogLoader reads the SQLite catalog when CATALOG_DB is set and the merged
// data.json otherwise.
func catalogLoader(cfg *config.Config) handlers.Loader {
	if cfg.CatalogDB != "" {
		return func() (*catalog.Table, string, error) {
			db, err := database.NewDatabase(cfg.CatalogDB)
			if err != nil {
				return nil, "", err
			}
			defer db.Close()

			rows, err := db.LoadCatalog()
			if err != nil {
				return nil, "", err
			}
			return catalog.New(rows), cfg.CatalogDB, nil
		}
	}

	return func() (*catalog.Table, string, error) {
		if age, err := snapshot.GetFileAge(cfg.CatalogPath); err == nil {
			log.Printf("📅 %s last written %s ago", cfg.CatalogPath, age.Round(time.Second))
		}
		doc, err := snapshot.LoadDocument(cfg.CatalogPath)
		if err != nil {
			return nil, "", err
		}
		return catalog.FromDocument(doc), cfg.CatalogPath, nil
	}
}
