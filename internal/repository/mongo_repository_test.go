package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/shopline/catalog-service/internal/domain"
)

const productsNS = "catalog.products"
const usersNS = "catalog.users"

func TestMongoProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find decodes documents", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch,
			bson.D{{Key: "id", Value: "p1"}, {Key: "title", Value: "Pen"}, {Key: "price", Value: 1.5}},
			bson.D{{Key: "id", Value: "p2"}, {Key: "title", Value: "Pencil"}, {Key: "price", Value: 2.0}},
		))

		products, err := repo.Find(context.Background(), "pen")
		require.NoError(mt, err)
		assert.Equal(mt, []domain.Product{
			{ID: "p1", Title: "Pen", Price: 1.5},
			{ID: "p2", Title: "Pencil", Price: 2},
		}, products)
	})

	mt.Run("find sends a literal case-insensitive title filter", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch))

		products, err := repo.Find(context.Background(), "a.c(")
		require.NoError(mt, err)
		assert.Empty(mt, products)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		pattern, options := filter.Lookup("title").Regex()
		assert.Equal(mt, `a\.c\(`, pattern)
		assert.Equal(mt, "i", options)
	})

	mt.Run("find without filter matches everything", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch))

		_, err := repo.Find(context.Background(), "")
		require.NoError(mt, err)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		elems, err := filter.Elements()
		require.NoError(mt, err)
		assert.Empty(mt, elems)
	})

	mt.Run("find failure is a persistence error", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 1, Message: "boom", Name: "InternalError"}))

		_, err := repo.Find(context.Background(), "")
		var perr *PersistenceError
		require.True(mt, errors.As(err, &perr))
		assert.Equal(mt, "products.find", perr.Op)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, productsNS, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("create duplicate id", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}))

		err := repo.Create(context.Background(), &domain.Product{ID: "p1", Title: "Pen", Price: 1})
		assert.ErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("update returns post-image", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "id", Value: "p1"}, {Key: "title", Value: "Pen"}, {Key: "price", Value: 3.0},
		}}))

		price := 3.0
		product, err := repo.Update(context.Background(), "p1", domain.ProductPatch{Price: &price})
		require.NoError(mt, err)
		assert.Equal(mt, domain.Product{ID: "p1", Title: "Pen", Price: 3}, *product)
	})

	mt.Run("delete reports removal", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		deleted, err := repo.Delete(context.Background(), "p1")
		require.NoError(mt, err)
		assert.True(mt, deleted)

		deleted, err = repo.Delete(context.Background(), "p1")
		require.NoError(mt, err)
		assert.False(mt, deleted)
	})
}

func TestMongoUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	mt.Run("get by id decodes optional names", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{
			{Key: "id", Value: "u1"},
			{Key: "email", Value: "a@b.com"},
			{Key: "password", Value: "hash"},
			{Key: "firstName", Value: "Ann"},
			{Key: "createdAt", Value: created},
			{Key: "updatedAt", Value: created},
		}))

		user, err := repo.GetByID(context.Background(), "u1")
		require.NoError(mt, err)
		assert.Equal(mt, "a@b.com", user.Email)
		assert.Equal(mt, "hash", user.PasswordHash)
		require.NotNil(mt, user.FirstName)
		assert.Equal(mt, "Ann", *user.FirstName)
		assert.Nil(mt, user.LastName)
		assert.True(mt, user.CreatedAt.Equal(created))
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error index: email_1"}))

		err := repo.Create(context.Background(), &domain.User{ID: "u2", Email: "a@b.com", CreatedAt: created, UpdatedAt: created})
		assert.ErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("update duplicate email", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11000, Message: "E11000 duplicate key error", Name: "DuplicateKey"}))

		email := "taken@b.com"
		_, err := repo.Update(context.Background(), "u1", domain.UserChanges{Email: &email, UpdatedAt: created})
		assert.ErrorIs(mt, err, ErrDuplicateKey)
	})

	mt.Run("update missing user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := repo.Update(context.Background(), "missing", domain.UserChanges{UpdatedAt: created})
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestEnsureMongoIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates indexes on both collections", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		require.NoError(mt, EnsureMongoIndexes(context.Background(), mt.DB))

		first := mt.GetStartedEvent()
		require.NotNil(mt, first)
		assert.Equal(mt, "createIndexes", first.CommandName)
		second := mt.GetStartedEvent()
		require.NotNil(mt, second)
		assert.Equal(mt, UsersCollection, second.Command.Lookup("createIndexes").StringValue())
	})

	mt.Run("surfaces failures", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad index", Name: "BadValue"}))
		assert.Error(mt, EnsureMongoIndexes(context.Background(), mt.DB))
	})
}
