package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"shop-service/internal/api"
	"shop-service/internal/config"
	"shop-service/internal/repository"
	"shop-service/internal/service"
	"shop-service/migrations"
)

func connectDB(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				log.Printf("Connected to DB %s", cfg.DBName)
				return db, nil
			}
		}
		log.Printf("Retry %d: failed to connect to DB %s (%s:%s): %v", i+1, cfg.DBName, cfg.DBHost, cfg.DBPort, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s at %s:%s after retries: %v", cfg.DBName, cfg.DBHost, cfg.DBPort, err)
}

func main() {
	cfg := config.Load()

	db, err := connectDB(cfg)
	if err != nil {
		panic(err)
	}

	if err := migrations.AutoMigrate(3, db); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, cfg.OrderTopic)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	clientRepo := repository.NewClientRepository(db)

	tokenStore := service.NewRedisTokenStore(rdb)
	authService := service.NewAuthService(userRepo, tokenStore, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, tokenStore)
	productService := service.NewProductService(productRepo, userRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, userRepo, kafkaWriter)
	clientService := service.NewClientService(clientRepo)
	statsService := service.NewStatsService(orderRepo, clientRepo)

	authHandler := api.NewAuthHandler(*authService, *userService)
	userHandler := api.NewUserHandler(*userService)
	productHandler := api.NewProductHandler(*productService)
	orderHandler := api.NewOrderHandler(*orderService)
	clientHandler := api.NewClientHandler(*clientService)
	statsHandler := api.NewStatsHandler(*statsService)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(10),
				Burst:     30,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	jwtGate := echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.JwtCustomClaims)
		},
		SigningKey: []byte(cfg.JWTSecret),
	})

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/token", authHandler.ObtainToken)
	e.POST("/auth/verify", authHandler.VerifyToken)
	e.POST("/auth/refresh", authHandler.RefreshToken)
	e.POST("/auth/password", authHandler.ChangePassword, jwtGate)
	e.GET("/auth/me", authHandler.Me, jwtGate)

	e.GET("/users", userHandler.ListUsers)
	e.DELETE("/users/:id", userHandler.DeleteUser)

	e.GET("/products", productHandler.ListProducts)
	e.POST("/products", productHandler.CreateProduct)
	e.PUT("/products/:id", productHandler.UpdateProduct)
	e.DELETE("/products/:id", productHandler.DeleteProduct)

	e.GET("/orders", orderHandler.ListOrders)
	e.POST("/orders", orderHandler.CreateOrder)
	e.DELETE("/orders/:id", orderHandler.DeleteOrder)

	e.GET("/clients", clientHandler.ListClients)
	e.POST("/clients", clientHandler.CreateClient)
	e.PUT("/clients/:id", clientHandler.UpdateClient)
	e.DELETE("/clients/:id", clientHandler.DeleteClient)

	e.GET("/stats/dashboard", statsHandler.Dashboard)
	e.GET("/stats/monthly-sales", statsHandler.MonthlySales)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "shop-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}
