package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type ReviewUsecase struct {
	repos repo.TxRepos
}

func NewReviewUsecase(repos repo.TxRepos) *ReviewUsecase {
	return &ReviewUsecase{repos: repos}
}

type ReviewInput struct {
	Name        string
	Description string
}

func (in ReviewInput) validate() (ReviewInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" {
		return in, NewValidationError("name", "this field may not be blank")
	}
	if err := checkMaxChars("name", in.Name); err != nil {
		return in, err
	}
	if in.Description == "" {
		return in, NewValidationError("description", "this field may not be blank")
	}
	return in, nil
}

// every review route is scoped by a product that must exist
func (u *ReviewUsecase) requireProduct(ctx context.Context, productID int64) error {
	ok, err := u.repos.Products().Exists(ctx, productID)
	if err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if !ok {
		return errNotFound
	}
	return nil
}

func (u *ReviewUsecase) List(ctx context.Context, productID int64) ([]ReviewOutput, error) {
	if err := u.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	rs, err := u.repos.Reviews().ListByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return mapSlice(rs, toReviewOutput), nil
}

func (u *ReviewUsecase) Get(ctx context.Context, productID int64, reviewID int64) (ReviewOutput, error) {
	rv, err := u.repos.Reviews().FindByID(ctx, productID, reviewID)
	if errors.Is(err, repo.ErrNotFound) {
		return ReviewOutput{}, errNotFound
	}
	if err != nil {
		return ReviewOutput{}, fmt.Errorf("find review: %w", err)
	}
	return toReviewOutput(rv), nil
}

func (u *ReviewUsecase) Create(ctx context.Context, productID int64, in ReviewInput) (ReviewOutput, error) {
	in, err := in.validate()
	if err != nil {
		return ReviewOutput{}, err
	}
	if err := u.requireProduct(ctx, productID); err != nil {
		return ReviewOutput{}, err
	}

	rv, err := u.repos.Reviews().Create(ctx, model.Review{
		ProductID:   productID,
		Name:        in.Name,
		Description: in.Description,
		Date:        time.Now(),
	})
	if err != nil {
		return ReviewOutput{}, fmt.Errorf("create review: %w", err)
	}
	return toReviewOutput(rv), nil
}

func (u *ReviewUsecase) Update(ctx context.Context, productID int64, reviewID int64, in ReviewInput) (ReviewOutput, error) {
	in, err := in.validate()
	if err != nil {
		return ReviewOutput{}, err
	}

	err = u.repos.Reviews().Update(ctx, model.Review{
		ID:          reviewID,
		ProductID:   productID,
		Name:        in.Name,
		Description: in.Description,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return ReviewOutput{}, errNotFound
	}
	if err != nil {
		return ReviewOutput{}, fmt.Errorf("update review: %w", err)
	}
	return u.Get(ctx, productID, reviewID)
}

func (u *ReviewUsecase) Delete(ctx context.Context, productID int64, reviewID int64) error {
	err := u.repos.Reviews().Delete(ctx, productID, reviewID)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound
	}
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}
