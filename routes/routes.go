// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"jewelry-commerce/controllers"
	"jewelry-commerce/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	collectionController *controllers.CollectionController,
	categoryController *controllers.CategoryController,
	cartController *controllers.CartController,
	guestCartController *controllers.GuestCartController,
	orderController *controllers.OrderController,
) {
	api := router.PathPrefix("/api").Subrouter()

	// Health
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}).Methods("GET")

	// Auth
	api.HandleFunc("/auth/register", userController.Register).Methods("POST")
	api.HandleFunc("/auth/login", userController.Login).Methods("POST")

	// Public catalog
	api.HandleFunc("/products", productController.GetProducts).Methods("GET")
	api.HandleFunc("/products/{slug}", productController.GetProductBySlug).Methods("GET")
	api.HandleFunc("/collections", collectionController.GetCollections).Methods("GET")
	api.HandleFunc("/collections/{slug}", collectionController.GetCollectionBySlug).Methods("GET")
	api.HandleFunc("/categories", categoryController.GetCategories).Methods("GET")

	// Guest cart (public, keyed by guest_id)
	api.HandleFunc("/guest/cart", guestCartController.AddItem).Methods("POST")
	api.HandleFunc("/guest/cart/{guest_id}", guestCartController.GetCart).Methods("GET")
	api.HandleFunc("/guest/cart/{guest_id}/update", guestCartController.UpdateQuantity).Methods("POST")
	api.HandleFunc("/guest/cart/{guest_id}/remove", guestCartController.RemoveItem).Methods("POST")
	api.HandleFunc("/guest/cart/{guest_id}/clear", guestCartController.ClearCart).Methods("POST")

	// Order placement is open to guests; the body carries the customer
	// snapshot and the already-computed item subtotals.
	api.HandleFunc("/orders", orderController.CreateOrder).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("/").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", userController.GetProfile).Methods("GET")
	protected.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	protected.HandleFunc("/cart/add", cartController.AddToCart).Methods("POST")
	protected.HandleFunc("/cart/update", cartController.UpdateQuantity).Methods("POST")
	protected.HandleFunc("/cart/remove", cartController.RemoveFromCart).Methods("POST")
	protected.HandleFunc("/cart/clear", cartController.ClearCart).Methods("POST")
	protected.HandleFunc("/cart/merge", cartController.MergeCart).Methods("POST")
	protected.HandleFunc("/orders/{id}", orderController.GetOrder).Methods("GET")
	protected.HandleFunc("/user/orders", orderController.GetUserOrders).Methods("GET")
	protected.HandleFunc("/user/orders/stats/summary", orderController.GetOrderStats).Methods("GET")

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("/products", productController.ListProducts).Methods("GET")
	admin.HandleFunc("/products", productController.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")
	admin.HandleFunc("/products/{id}", productController.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", productController.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/collections", collectionController.ListCollections).Methods("GET")
	admin.HandleFunc("/collections", collectionController.CreateCollection).Methods("POST")
	admin.HandleFunc("/collections/{id}", collectionController.GetCollectionByID).Methods("GET")
	admin.HandleFunc("/collections/{id}", collectionController.UpdateCollection).Methods("PUT")
	admin.HandleFunc("/collections/{id}", collectionController.DeleteCollection).Methods("DELETE")
	admin.HandleFunc("/categories", categoryController.ListCategories).Methods("GET")
	admin.HandleFunc("/categories", categoryController.CreateCategory).Methods("POST")
	admin.HandleFunc("/categories/{id}", categoryController.UpdateCategory).Methods("PUT")
	admin.HandleFunc("/categories/{id}", categoryController.DeleteCategory).Methods("DELETE")
	admin.HandleFunc("/orders/{id}/status", orderController.UpdateOrderStatus).Methods("PUT")
}
