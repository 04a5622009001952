// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jewelry-commerce/controllers"
	"jewelry-commerce/middleware"
	"jewelry-commerce/routes"
	"jewelry-commerce/store"
	"jewelry-commerce/utils"
)

const defaultShippingFee = 50.0

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	logger := utils.NewLogger()
	defer logger.Sync()

	// Set the JWT secret key
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		utils.JwtKey = []byte(secret)
	} else {
		logger.Warn("JWT_SECRET not set, using insecure default")
	}

	shippingFee := defaultShippingFee
	if feeStr := os.Getenv("SHIPPING_FEE"); feeStr != "" {
		if fee, err := strconv.ParseFloat(feeStr, 64); err == nil {
			shippingFee = fee
		}
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "jewelry"
	}

	// Initialize EmailService
	emailService := utils.NewEmailService(logger)

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			logger.Error("mongo disconnect failed", zap.Error(err))
		}
	}()
	db := client.Database(dbName)

	// Stores
	cartStore := store.NewCartStore(db, logger)
	if err := cartStore.EnsureIndexes(context.Background()); err != nil {
		logger.Fatal("cart index creation failed", zap.Error(err))
	}
	guestCartStore := store.NewGuestCartStore()
	orderStore := store.NewOrderStore(client, db, shippingFee, logger)

	// Initialize controllers
	userController := controllers.NewUserController(client, dbName, logger)
	productController := controllers.NewProductController(client, dbName, logger)
	collectionController := controllers.NewCollectionController(client, dbName, logger)
	categoryController := controllers.NewCategoryController(client, dbName, logger)
	cartController := controllers.NewCartController(cartStore, guestCartStore, db.Collection("products"), logger)
	guestCartController := controllers.NewGuestCartController(guestCartStore, logger)
	orderController := controllers.NewOrderController(orderStore, emailService, logger)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.CORSMiddleware)
	routes.RegisterRoutes(router,
		userController,
		productController,
		collectionController,
		categoryController,
		cartController,
		guestCartController,
		orderController,
	)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	logger.Info("server listening", zap.String("port", port))
	// An error here falls through to the deferred Disconnect and Sync.
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
