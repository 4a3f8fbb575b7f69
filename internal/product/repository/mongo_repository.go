package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adaschool/product-service/internal/platform/logger"
	"github.com/adaschool/product-service/internal/product/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productDocument is the stored shape of a product.
type productDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Category   string             `bson:"category"`
	Price      float64            `bson:"price"`
	Dimensions string             `bson:"dimensions"`
	Store      string             `bson:"store"`
	Score      float64            `bson:"score"`
}

func toDocument(p *domain.Product, id primitive.ObjectID) productDocument {
	return productDocument{
		ID:         id,
		Name:       p.Name,
		Category:   p.Category,
		Price:      p.Price,
		Dimensions: p.Dimensions,
		Store:      p.StoreID,
		Score:      p.Score,
	}
}

func (d productDocument) toDomain() domain.Product {
	return domain.Product{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Category:   d.Category,
		Price:      d.Price,
		Dimensions: d.Dimensions,
		StoreID:    d.Store,
		Score:      d.Score,
	}
}

type mongoProductRepository struct {
	coll         *mongo.Collection
	queryTimeout time.Duration
}

func NewMongoProductRepository(coll *mongo.Collection, queryTimeout time.Duration) ProductRepository {
	return &mongoProductRepository{coll: coll, queryTimeout: queryTimeout}
}

// EnsureIndexes creates the category index used by ListProductsByCategory.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}},
		Options: options.Index().SetName("category_1"),
	})
	if err != nil {
		return fmt.Errorf("failed to create category index: %w", err)
	}
	return nil
}

func (r *mongoProductRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

func (r *mongoProductRepository) find(ctx context.Context, filter bson.M, op string) ([]domain.Product, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		logger.Error(op+": query failed", err)
		return nil, err
	}

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.Error(op+": decode failed", err)
		return nil, err
	}

	products := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toDomain())
	}
	return products, nil
}

func (r *mongoProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return r.find(ctx, bson.M{}, "ListProducts")
}

func (r *mongoProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.find(ctx, bson.M{"category": category}, "ListProductsByCategory")
}

func (r *mongoProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc productDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err)
		return nil, err
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *mongoProductRepository) SaveProduct(ctx context.Context, p *domain.Product) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if p.ID == "" {
		res, err := r.coll.InsertOne(ctx, toDocument(p, primitive.NilObjectID))
		if err != nil {
			logger.Error("SaveProduct: insert failed", err)
			return err
		}
		oid, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
		}
		p.ID = oid.Hex()
		return nil
	}

	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", p.ID, err)
	}
	_, err = r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toDocument(p, oid), options.Replace().SetUpsert(true))
	if err != nil {
		logger.Error("SaveProduct: replace failed", err)
		return err
	}
	return nil
}

func (r *mongoProductRepository) DeleteProduct(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil // tidak ada dokumen dengan id seperti ini
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		logger.Error("DeleteProduct: delete failed", err)
		return err
	}
	return nil
}
