package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type CollectionUsecase struct {
	repos repo.TxRepos
	tx    repo.TransactionManager
}

func NewCollectionUsecase(repos repo.TxRepos, tx repo.TransactionManager) *CollectionUsecase {
	return &CollectionUsecase{repos: repos, tx: tx}
}

type CollectionInput struct {
	Title string
}

func (in CollectionInput) validate() (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", NewValidationError("title", "this field may not be blank")
	}
	if err := checkMaxChars("title", title); err != nil {
		return "", err
	}
	return title, nil
}

func (u *CollectionUsecase) List(ctx context.Context) ([]CollectionOutput, error) {
	cs, err := u.repos.Collections().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return mapSlice(cs, toCollectionOutput), nil
}

func (u *CollectionUsecase) Get(ctx context.Context, id int64) (CollectionOutput, error) {
	c, err := u.repos.Collections().FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return CollectionOutput{}, errNotFound
	}
	if err != nil {
		return CollectionOutput{}, fmt.Errorf("find collection: %w", err)
	}
	return toCollectionOutput(c), nil
}

func (u *CollectionUsecase) Create(ctx context.Context, in CollectionInput) (CollectionOutput, error) {
	title, err := in.validate()
	if err != nil {
		return CollectionOutput{}, err
	}

	c, err := u.repos.Collections().Create(ctx, model.Collection{Title: title})
	if err != nil {
		return CollectionOutput{}, fmt.Errorf("create collection: %w", err)
	}
	return CollectionOutput{ID: c.ID, Title: c.Title}, nil
}

func (u *CollectionUsecase) Update(ctx context.Context, id int64, in CollectionInput) (CollectionOutput, error) {
	title, err := in.validate()
	if err != nil {
		return CollectionOutput{}, err
	}

	if err := u.repos.Collections().Update(ctx, model.Collection{ID: id, Title: title}); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CollectionOutput{}, errNotFound
		}
		return CollectionOutput{}, fmt.Errorf("update collection: %w", err)
	}
	return u.Get(ctx, id)
}

// Delete refuses (405) while any product still belongs to the collection.
func (u *CollectionUsecase) Delete(ctx context.Context, id int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Collections().Exists(ctx, id)
		if err != nil {
			return fmt.Errorf("find collection: %w", err)
		}
		if !ok {
			return errNotFound
		}

		n, err := r.Products().CountByCollectionID(ctx, id)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		if n > 0 {
			return errCollectionReferenced
		}

		err = r.Collections().Delete(ctx, id)
		switch {
		case errors.Is(err, repo.ErrReferenced):
			// a product was added after the count
			return errCollectionReferenced
		case errors.Is(err, repo.ErrNotFound):
			return errNotFound
		case err != nil:
			return fmt.Errorf("delete collection: %w", err)
		}
		return nil
	})
}
