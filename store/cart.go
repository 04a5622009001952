package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"jewelry-commerce/models"
)

// CartStore persists one cart per registered user and applies the cart
// mutations. Mutations on the same user's cart are serialized through a
// per-user lock; different users proceed in parallel.
type CartStore struct {
	collection *mongo.Collection
	logger     *zap.Logger

	// Lock entries are never evicted; the map holds one mutex per user
	// seen since startup.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCartStore creates a CartStore over the "carts" collection.
func NewCartStore(db *mongo.Database, logger *zap.Logger) *CartStore {
	return &CartStore{
		collection: db.Collection("carts"),
		logger:     logger,
		locks:      make(map[string]*sync.Mutex),
	}
}

// EnsureIndexes creates the unique one-cart-per-user index.
func (s *CartStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *CartStore) userLock(userID primitive.ObjectID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userID.Hex()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// GetCart returns the user's cart, lazily creating an empty one if none
// exists. The upsert is a single atomic operation, so no lock is needed.
func (s *CartStore) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	now := time.Now()
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var cart models.Cart
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"user": userID},
		bson.M{"$setOnInsert": bson.M{"items": []models.CartItem{}, "created_at": now, "updated_at": now}},
		opts,
	).Decode(&cart)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &cart, nil
}

// AddItem increments the quantity of an existing line with the same
// productId, or appends the item as a new line. Returns the updated cart.
func (s *CartStore) AddItem(ctx context.Context, userID primitive.ObjectID, item models.CartItem) (*models.Cart, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"user": userID, "items.productId": item.ProductID},
		bson.M{
			"$inc": bson.M{"items.$.quantity": item.Quantity},
			"$set": bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount > 0 {
		return s.findByUser(ctx, userID)
	}

	// No line with that productId yet: push it, creating the cart if needed.
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var cart models.Cart
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"user": userID},
		bson.M{
			"$push":        bson.M{"items": item},
			"$set":         bson.M{"updated_at": now},
			"$setOnInsert": bson.M{"created_at": now},
		},
		opts,
	).Decode(&cart)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &cart, nil
}

// UpdateQuantity sets a line's quantity to an absolute value. Quantity 0
// removes the line. An absent productId fails with ErrNotFound; new lines
// are introduced through AddItem only.
func (s *CartStore) UpdateQuantity(ctx context.Context, userID primitive.ObjectID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, userID, productID)
	}
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	res, err := s.collection.UpdateOne(ctx,
		bson.M{"user": userID, "items.productId": productID},
		bson.M{
			"$set": bson.M{"items.$.quantity": quantity, "updated_at": time.Now()},
		},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.findByUser(ctx, userID)
}

// RemoveItem deletes the matching line. Removing an absent line, or removing
// from a not-yet-created cart, is a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, userID primitive.ObjectID, productID string) (*models.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	_, err := s.collection.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"productId": productID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

// Clear empties all lines but keeps the cart record.
func (s *CartStore) Clear(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	_, err := s.collection.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, userID)
}

// MergeGuestItems folds a guest cart's lines into the user's persisted cart:
// quantities are summed per productId, guest-only lines are appended. The
// per-user lock keeps two concurrent logins from merging twice. On any error
// nothing is persisted, so the caller can retain the guest cart untouched.
func (s *CartStore) MergeGuestItems(ctx context.Context, userID primitive.ObjectID, guest []models.CartItem) (*models.Cart, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := models.MergeItems(cart.Items, guest)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Cart
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": cart.ID},
		bson.M{"$set": bson.M{"items": merged, "updated_at": time.Now()}},
		opts,
	).Decode(&updated)
	if err != nil {
		return nil, err
	}
	s.logger.Info("merged guest cart",
		zap.String("user_id", userID.Hex()),
		zap.Int("guest_lines", len(guest)),
		zap.Int("merged_lines", len(updated.Items)))
	return &updated, nil
}

func (s *CartStore) findByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}
