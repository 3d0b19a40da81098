package lineitem

import (
	"context"
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ProductLookup is the catalog query used to join rows with their products.
type ProductLookup interface {
	GetProducts(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

type cartItemDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	ProductID string    `bson:"product_id"`
	Quantity  int       `bson:"quantity"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per line item in the cart_items collection.
// When products is set, List attaches the product of every row it can resolve.
type MongoStore struct {
	collection *mongo.Collection
	products   ProductLookup
	log        *zap.Logger
}

func NewMongoStore(db *mongo.Database, products ProductLookup, log *zap.Logger) *MongoStore {
	return &MongoStore{
		collection: db.Collection("cart_items"),
		products:   products,
		log:        logger.OrNop(log).Named("mongo_store"),
	}
}

func (m *MongoStore) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (m *MongoStore) List(ctx context.Context, mode domain.Mode) ([]domain.Row, error) {
	if err := requireUser(mode); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := m.collection.Find(ctx, bson.M{"user_id": mode.UserID}, opts)
	if err != nil {
		return nil, remoteErr("failed to list cart items", err)
	}

	var docs []cartItemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, remoteErr("failed to decode cart items", err)
	}

	rows := make([]domain.Row, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, domain.Row{ID: d.ID, ProductID: d.ProductID, Quantity: d.Quantity})
	}

	if err := m.join(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (m *MongoStore) join(ctx context.Context, rows []domain.Row) error {
	if m.products == nil || len(rows) == 0 {
		return nil
	}

	ids := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.ProductID]; !ok {
			seen[r.ProductID] = struct{}{}
			ids = append(ids, r.ProductID)
		}
	}

	products, err := m.products.GetProducts(ctx, ids)
	if err != nil {
		return remoteErr("failed to join products", err)
	}
	for i := range rows {
		if p, ok := products[rows[i].ProductID]; ok {
			rows[i].Product = &p
		}
	}
	return nil
}

func (m *MongoStore) Insert(ctx context.Context, mode domain.Mode, productID string, quantity int) (domain.Row, error) {
	if err := requireUser(mode); err != nil {
		return domain.Row{}, err
	}
	if quantity <= 0 {
		return domain.Row{}, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrValidation)
	}

	now := time.Now().UTC()
	doc := cartItemDocument{
		ID:        uuid.NewString(),
		UserID:    mode.UserID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := m.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Row{}, fmt.Errorf("%w: product %s", domain.ErrDuplicateItem, productID)
		}
		return domain.Row{}, remoteErr("failed to insert cart item", err)
	}

	return domain.Row{ID: doc.ID, ProductID: doc.ProductID, Quantity: doc.Quantity}, nil
}

func (m *MongoStore) Update(ctx context.Context, mode domain.Mode, id string, quantity int) error {
	if quantity <= 0 {
		return m.Delete(ctx, mode, id)
	}
	if err := requireUser(mode); err != nil {
		return err
	}

	filter := bson.M{"_id": id, "user_id": mode.UserID}
	update := bson.M{
		"$set": bson.M{
			"quantity":   quantity,
			"updated_at": time.Now().UTC(),
		},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return remoteErr("failed to update item quantity", err)
	}
	if result.MatchedCount == 0 {
		m.log.Debug("update matched no cart item", zap.String("item_id", id), zap.String("mode", mode.Key()))
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, mode domain.Mode, id string) error {
	if err := requireUser(mode); err != nil {
		return err
	}

	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": mode.UserID}); err != nil {
		return remoteErr("failed to remove item", err)
	}
	return nil
}

func (m *MongoStore) Clear(ctx context.Context, mode domain.Mode) error {
	if err := requireUser(mode); err != nil {
		return err
	}

	if _, err := m.collection.DeleteMany(ctx, bson.M{"user_id": mode.UserID}); err != nil {
		return remoteErr("failed to clear cart", err)
	}
	return nil
}

func requireUser(mode domain.Mode) error {
	if mode.IsAnonymous() {
		return fmt.Errorf("%w: remote cart requires an authenticated user", domain.ErrPermissionDenied)
	}
	return nil
}

func remoteErr(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrRemoteUnavailable, err)
}
