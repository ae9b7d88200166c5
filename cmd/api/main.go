package main

import (
	"log"
	"net/http"

	"github.com/ConectaSaudeBR/rede-scheduler/internal/config"
	dbpkg "github.com/ConectaSaudeBR/rede-scheduler/internal/db"
	"github.com/ConectaSaudeBR/rede-scheduler/internal/routes"
	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "rede-scheduler-api",
		})
	})

	routes.RegisterRoutes(r, db, cfg)

	// este binário só serve a API; o ciclo de faturamento roda no
	// cmd/billing-worker (ou via POST /billing/run manual)
	log.Printf("API disponível em %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
