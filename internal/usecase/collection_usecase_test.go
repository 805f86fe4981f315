package usecase

import (
	"context"
	"net/http"
	"testing"

	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCollectionUsecaseWithMocks() (*CollectionUsecase, *collectionRepoMock, *productRepoMock) {
	collections := &collectionRepoMock{}
	products := &productRepoMock{}
	repos := &fakeRepos{collections: collections, products: products}
	return NewCollectionUsecase(repos, &fakeTx{repos: repos}), collections, products
}

func TestCollectionUsecase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("with products is 405", func(t *testing.T) {
		uc, collections, products := newCollectionUsecaseWithMocks()
		collections.On("Exists", mock.Anything, int64(3)).Return(true, nil)
		products.On("CountByCollectionID", mock.Anything, int64(3)).Return(int64(2), nil)

		err := uc.Delete(ctx, 3)

		he, ok := AsHTTPError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusMethodNotAllowed, he.Status)
		assert.Equal(t, "collection cannot be deleted because it is associated with products", he.Message)
		collections.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("empty collection is deleted", func(t *testing.T) {
		uc, collections, products := newCollectionUsecaseWithMocks()
		collections.On("Exists", mock.Anything, int64(3)).Return(true, nil)
		products.On("CountByCollectionID", mock.Anything, int64(3)).Return(int64(0), nil)
		collections.On("Delete", mock.Anything, int64(3)).Return(nil)

		require.NoError(t, uc.Delete(ctx, 3))
		collections.AssertExpectations(t)
	})

	t.Run("foreign key race is 405", func(t *testing.T) {
		uc, collections, products := newCollectionUsecaseWithMocks()
		collections.On("Exists", mock.Anything, int64(3)).Return(true, nil)
		products.On("CountByCollectionID", mock.Anything, int64(3)).Return(int64(0), nil)
		collections.On("Delete", mock.Anything, int64(3)).Return(repo.ErrReferenced)

		he, ok := AsHTTPError(uc.Delete(ctx, 3))
		require.True(t, ok)
		assert.Equal(t, http.StatusMethodNotAllowed, he.Status)
	})

	t.Run("unknown is 404", func(t *testing.T) {
		uc, collections, _ := newCollectionUsecaseWithMocks()
		collections.On("Exists", mock.Anything, int64(9)).Return(false, nil)

		he, ok := AsHTTPError(uc.Delete(ctx, 9))
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Status)
	})
}

func TestCollectionInput_BlankTitle(t *testing.T) {
	uc, _, _ := newCollectionUsecaseWithMocks()

	_, err := uc.Create(context.Background(), CollectionInput{Title: "   "})

	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Contains(t, he.Fields, "title")
}
