package repository

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopline/catalog-service/internal/domain"
)

// ProductsCollection is the Mongo collection holding products.
const ProductsCollection = "products"

// ProductRepository defines persistence access for products.
type ProductRepository interface {
	// Find returns products whose title contains titleFilter, ignoring case.
	// An empty filter returns every product.
	Find(ctx context.Context, titleFilter string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type productDocument struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty"`
	ID       string             `bson:"id"`
	Title    string             `bson:"title"`
	Price    float64            `bson:"price"`
}

func (d productDocument) toDomain() domain.Product {
	return domain.Product{ID: d.ID, Title: d.Title, Price: d.Price}
}

type productRepository struct {
	coll *mongo.Collection
}

// NewProductRepository returns a Mongo-backed implementation.
func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepository{coll: db.Collection(ProductsCollection)}
}

func (r *productRepository) Find(ctx context.Context, titleFilter string) ([]domain.Product, error) {
	filter := bson.M{}
	if titleFilter != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(titleFilter), Options: "i"}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, persistenceErr("products.find", err)
	}
	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, persistenceErr("products.find", err)
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, doc.toDomain())
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, persistenceErr("products.get", err)
	}
	product := doc.toDomain()
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	doc := productDocument{ID: product.ID, Title: product.Title, Price: product.Price}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyErr("products.create", err)
		}
		return persistenceErr("products.create", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc productDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, persistenceErr("products.update", err)
	}
	product := doc.toDomain()
	return &product, nil
}

func (r *productRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, persistenceErr("products.delete", err)
	}
	return res.DeletedCount == 1, nil
}
