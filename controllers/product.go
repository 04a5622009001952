package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"jewelry-commerce/models"
)

// ProductController handles catalog product requests
type ProductController struct {
	Products    *mongo.Collection
	Categories  *mongo.Collection
	Collections *mongo.Collection
	Logger      *zap.Logger
}

// NewProductController creates a new ProductController
func NewProductController(client *mongo.Client, dbName string, logger *zap.Logger) *ProductController {
	db := client.Database(dbName)
	return &ProductController{
		Products:    db.Collection("products"),
		Categories:  db.Collection("categories"),
		Collections: db.Collection("collections"),
		Logger:      logger,
	}
}

// GetProducts retrieves products, filtered by featured/category/collection
// slug and optionally limited.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	query := bson.M{}
	q := r.URL.Query()

	if q.Get("featured") == "true" {
		query["featured"] = true
	}
	if slug := q.Get("category"); slug != "" {
		var cat models.Category
		if err := pc.Categories.FindOne(ctx, bson.M{"slug": slug}).Decode(&cat); err == nil {
			query["category_id"] = cat.ID
		}
	}
	if slug := q.Get("collection"); slug != "" {
		var col models.Collection
		if err := pc.Collections.FindOne(ctx, bson.M{"slug": slug}).Decode(&col); err == nil {
			query["collection_id"] = col.ID
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.ParseInt(limitStr, 10, 64); err == nil && limit > 0 {
			opts.SetLimit(limit)
		}
	}

	cursor, err := pc.Products.Find(ctx, query, opts)
	if err != nil {
		pc.Logger.Error("find products failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		pc.Logger.Error("decode products failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetProductBySlug retrieves a single product by its slug
func (pc *ProductController) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	err := pc.Products.FindOne(ctx, bson.M{"slug": slug}).Decode(&product)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// ListProducts returns a paginated product list (admin)
func (pc *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page, limit := parsePagination(r)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := pc.Products.Find(ctx, bson.M{}, opts)
	if err != nil {
		pc.Logger.Error("find products failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		pc.Logger.Error("decode products failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	total, err := pc.Products.CountDocuments(ctx, bson.M{})
	if err != nil {
		pc.Logger.Error("count products failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products":   products,
		"pagination": paginationBody(page, limit, total),
	})
}

// GetProductByID retrieves a single product by its ID (admin)
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := pc.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// CreateProduct adds a new product (admin). Name, slug and price are
// required; the slug must be unique.
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if product.Name == "" || product.Slug == "" || product.Price < 0 {
		writeMessage(w, http.StatusBadRequest, "Missing required fields: name, slug, and price are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := pc.Products.CountDocuments(ctx, bson.M{"slug": product.Slug})
	if err != nil {
		pc.Logger.Error("count products failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if count > 0 {
		writeMessage(w, http.StatusConflict, "Product with this slug already exists")
		return
	}

	if product.CategoryID != nil {
		if err := pc.Categories.FindOne(ctx, bson.M{"_id": *product.CategoryID}).Err(); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid category_id")
			return
		}
	}
	if product.CollectionID != nil {
		if err := pc.Collections.FindOne(ctx, bson.M{"_id": *product.CollectionID}).Err(); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid collection_id")
			return
		}
	}

	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Materials == nil {
		product.Materials = []string{}
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	result, err := pc.Products.InsertOne(ctx, product)
	if err != nil {
		pc.Logger.Error("insert product failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct updates a product (admin)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if product.Slug != "" {
		count, err := pc.Products.CountDocuments(ctx, bson.M{"slug": product.Slug, "_id": bson.M{"$ne": id}})
		if err != nil {
			pc.Logger.Error("count products failed", zap.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		if count > 0 {
			writeMessage(w, http.StatusConflict, "Product with this slug already exists")
			return
		}
	}

	product.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":          product.Name,
		"slug":          product.Slug,
		"description":   product.Description,
		"price":         product.Price,
		"category_id":   product.CategoryID,
		"collection_id": product.CollectionID,
		"images":        product.Images,
		"materials":     product.Materials,
		"in_stock":      product.InStock,
		"featured":      product.Featured,
		"updated_at":    product.UpdatedAt,
	}}

	result, err := pc.Products.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		pc.Logger.Error("update product failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if result.MatchedCount == 0 {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	writeMessage(w, http.StatusOK, "Product updated")
}

// DeleteProduct deletes a product (admin)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := pc.Products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		pc.Logger.Error("delete product failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if result.DeletedCount == 0 {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	writeMessage(w, http.StatusOK, "Product deleted")
}
