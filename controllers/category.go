package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"jewelry-commerce/models"
)

// CategoryController handles product taxonomy requests
type CategoryController struct {
	Categories *mongo.Collection
	Logger     *zap.Logger
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(client *mongo.Client, dbName string, logger *zap.Logger) *CategoryController {
	return &CategoryController{
		Categories: client.Database(dbName).Collection("categories"),
		Logger:     logger,
	}
}

// GetCategories retrieves all categories
func (cc *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := cc.Categories.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		cc.Logger.Error("find categories failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		cc.Logger.Error("decode categories failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// ListCategories returns a paginated category list (admin)
func (cc *CategoryController) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page, limit := parsePagination(r)

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := cc.Categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		cc.Logger.Error("find categories failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		cc.Logger.Error("decode categories failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	total, err := cc.Categories.CountDocuments(ctx, bson.M{})
	if err != nil {
		cc.Logger.Error("count categories failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"pagination": paginationBody(page, limit, total),
	})
}

// CreateCategory adds a new category (admin)
func (cc *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if category.Name == "" || category.Slug == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields: name and slug are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := cc.Categories.CountDocuments(ctx, bson.M{"slug": category.Slug})
	if err != nil {
		cc.Logger.Error("count categories failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if count > 0 {
		writeMessage(w, http.StatusConflict, "Category with this slug already exists")
		return
	}

	category.CreatedAt = time.Now()
	result, err := cc.Categories.InsertOne(ctx, category)
	if err != nil {
		cc.Logger.Error("insert category failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, category)
}

// UpdateCategory updates a category (admin)
func (cc *CategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        category.Name,
		"slug":        category.Slug,
		"description": category.Description,
	}}

	result, err := cc.Categories.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		cc.Logger.Error("update category failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if result.MatchedCount == 0 {
		writeMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	writeMessage(w, http.StatusOK, "Category updated")
}

// DeleteCategory deletes a category (admin)
func (cc *CategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := cc.Categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		cc.Logger.Error("delete category failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if result.DeletedCount == 0 {
		writeMessage(w, http.StatusNotFound, "Category not found")
		return
	}

	writeMessage(w, http.StatusOK, "Category deleted")
}
