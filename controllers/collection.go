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

// CollectionController handles merchandising collection requests
type CollectionController struct {
	Collections *mongo.Collection
	Logger      *zap.Logger
}

// NewCollectionController creates a new CollectionController
func NewCollectionController(client *mongo.Client, dbName string, logger *zap.Logger) *CollectionController {
	return &CollectionController{
		Collections: client.Database(dbName).Collection("collections"),
		Logger:      logger,
	}
}

// GetCollections retrieves all collections, optionally featured only
func (cc *CollectionController) GetCollections(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	query := bson.M{}
	if r.URL.Query().Get("featured") == "true" {
		query["featured"] = true
	}

	cursor, err := cc.Collections.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		cc.Logger.Error("find collections failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	collections := []models.Collection{}
	if err := cursor.All(ctx, &collections); err != nil {
		cc.Logger.Error("decode collections failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, collections)
}

// GetCollectionBySlug retrieves a single collection by its slug
func (cc *CollectionController) GetCollectionBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var collection models.Collection
	err := cc.Collections.FindOne(ctx, bson.M{"slug": slug}).Decode(&collection)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Collection not found")
		return
	}

	writeJSON(w, http.StatusOK, collection)
}

// ListCollections returns a paginated collection list (admin)
func (cc *CollectionController) ListCollections(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	page, limit := parsePagination(r)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := cc.Collections.Find(ctx, bson.M{}, opts)
	if err != nil {
		cc.Logger.Error("find collections failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	defer cursor.Close(ctx)

	collections := []models.Collection{}
	if err := cursor.All(ctx, &collections); err != nil {
		cc.Logger.Error("decode collections failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	total, err := cc.Collections.CountDocuments(ctx, bson.M{})
	if err != nil {
		cc.Logger.Error("count collections failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"collections": collections,
		"pagination":  paginationBody(page, limit, total),
	})
}

// GetCollectionByID retrieves a single collection by its ID (admin)
func (cc *CollectionController) GetCollectionByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var collection models.Collection
	if err := cc.Collections.FindOne(ctx, bson.M{"_id": id}).Decode(&collection); err != nil {
		writeMessage(w, http.StatusNotFound, "Collection not found")
		return
	}

	writeJSON(w, http.StatusOK, collection)
}

// CreateCollection adds a new collection (admin)
func (cc *CollectionController) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var collection models.Collection
	if err := json.NewDecoder(r.Body).Decode(&collection); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if collection.Name == "" || collection.Slug == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields: name and slug are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := cc.Collections.CountDocuments(ctx, bson.M{"slug": collection.Slug})
	if err != nil {
		cc.Logger.Error("count collections failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if count > 0 {
		writeMessage(w, http.StatusConflict, "Collection with this slug already exists")
		return
	}

	collection.CreatedAt = time.Now()
	collection.UpdatedAt = collection.CreatedAt

	result, err := cc.Collections.InsertOne(ctx, collection)
	if err != nil {
		cc.Logger.Error("insert collection failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	collection.ID = result.InsertedID.(primitive.ObjectID)

	writeJSON(w, http.StatusCreated, collection)
}

// UpdateCollection updates a collection (admin)
func (cc *CollectionController) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	var collection models.Collection
	if err := json.NewDecoder(r.Body).Decode(&collection); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if collection.Slug != "" {
		count, err := cc.Collections.CountDocuments(ctx, bson.M{"slug": collection.Slug, "_id": bson.M{"$ne": id}})
		if err != nil {
			cc.Logger.Error("count collections failed", zap.Error(err))
			writeMessage(w, http.StatusInternalServerError, "Server error")
			return
		}
		if count > 0 {
			writeMessage(w, http.StatusConflict, "Collection with this slug already exists")
			return
		}
	}

	update := bson.M{"$set": bson.M{
		"name":        collection.Name,
		"slug":        collection.Slug,
		"description": collection.Description,
		"image_url":   collection.ImageURL,
		"featured":    collection.Featured,
		"updated_at":  time.Now(),
	}}

	result, err := cc.Collections.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		cc.Logger.Error("update collection failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if result.MatchedCount == 0 {
		writeMessage(w, http.StatusNotFound, "Collection not found")
		return
	}

	writeMessage(w, http.StatusOK, "Collection updated")
}

// DeleteCollection deletes a collection (admin)
func (cc *CollectionController) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid collection ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := cc.Collections.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		cc.Logger.Error("delete collection failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	if result.DeletedCount == 0 {
		writeMessage(w, http.StatusNotFound, "Collection not found")
		return
	}

	writeMessage(w, http.StatusOK, "Collection deleted")
}
