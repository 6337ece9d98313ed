package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopline/catalog-service/internal/domain"
)

// UsersCollection is the Mongo collection holding users.
const UsersCollection = "users"

// UserRepository defines persistence access for users. Email uniqueness is
// enforced by the backend and reported as ErrDuplicateKey.
type UserRepository interface {
	Find(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id string, changes domain.UserChanges) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type userDocument struct {
	ObjectID  primitive.ObjectID `bson:"_id,omitempty"`
	ID        string             `bson:"id"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	FirstName *string            `bson:"firstName,omitempty"`
	LastName  *string            `bson:"lastName,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:           d.ID,
		Email:        d.Email,
		PasswordHash: d.Password,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository returns a Mongo-backed implementation.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{coll: db.Collection(UsersCollection)}
}

func (r *userRepository) Find(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, persistenceErr("users.find", err)
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, persistenceErr("users.find", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toDomain())
	}
	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, persistenceErr("users.get", err)
	}
	user := doc.toDomain()
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	doc := userDocument{
		ID:        user.ID,
		Email:     user.Email,
		Password:  user.PasswordHash,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyErr("users.create", err)
		}
		return persistenceErr("users.create", err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, id string, changes domain.UserChanges) (*domain.User, error) {
	update := bson.M{"$max": bson.M{"updatedAt": changes.UpdatedAt}}
	set := bson.M{}
	if changes.Email != nil {
		set["email"] = *changes.Email
	}
	if changes.PasswordHash != nil {
		set["password"] = *changes.PasswordHash
	}
	if changes.FirstName != nil {
		set["firstName"] = *changes.FirstName
	}
	if changes.LastName != nil {
		set["lastName"] = *changes.LastName
	}
	if len(set) > 0 {
		update["$set"] = set
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, duplicateKeyErr("users.update", err)
		}
		return nil, persistenceErr("users.update", err)
	}
	user := doc.toDomain()
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, persistenceErr("users.delete", err)
	}
	return res.DeletedCount == 1, nil
}
