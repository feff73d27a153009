package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"gather/api/middleware"
	"gather/api/routes"
	"gather/config"
	"gather/db"
	"gather/services"

	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	err := config.LoadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting server...")

	err = db.ConnectDB()
	if err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	// Redis и RabbitMQ опциональны: без них счетчики ходят в БД,
	// а уведомления уходят напрямую в WebSocket
	if err := services.InitRedis(); err != nil {
		log.Printf("Warning: Redis initialization failed: %v", err)
	}
	if err := services.InitRabbitMQ(); err != nil {
		log.Printf("Warning: RabbitMQ initialization failed: %v", err)
	} else {
		if err := services.StartNotifyConsumer(context.Background()); err != nil {
			log.Printf("Warning: notify consumer failed to start: %v", err)
		}
		defer services.CloseRabbitMQ()
	}

	router := gin.Default()
	router.Use(middleware.PrometheusMiddleware("gather"))

	routes.PublicApi(router)

	addr := fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	if config.AppConfig.Backend.Port == 0 {
		addr = ":8080"
	}
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
