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

type CustomerUsecase struct {
	repos repo.TxRepos
	users repo.UserRepository
	tx    repo.TransactionManager
}

func NewCustomerUsecase(repos repo.TxRepos, users repo.UserRepository, tx repo.TransactionManager) *CustomerUsecase {
	return &CustomerUsecase{repos: repos, users: users, tx: tx}
}

// CustomerInput is the writable part of a customer.
// BirthDate is "YYYY-MM-DD" or empty; Membership empty keeps the current tier.
type CustomerInput struct {
	UserID     int64
	Phone      string
	BirthDate  string
	Membership string
}

func (in CustomerInput) apply(c *model.Customer) error {
	phone := strings.TrimSpace(in.Phone)
	if err := checkMaxChars("phone", phone); err != nil {
		return err
	}
	c.Phone = phone

	c.BirthDate = nil
	if s := strings.TrimSpace(in.BirthDate); s != "" {
		d, err := time.Parse(birthDateLayout, s)
		if err != nil {
			return NewValidationError("birth_date", "date has wrong format, use YYYY-MM-DD")
		}
		c.BirthDate = &d
	}

	if in.Membership != "" {
		m := model.Membership(in.Membership)
		if !m.Valid() {
			return NewValidationError("membership", fmt.Sprintf("%q is not a valid choice", in.Membership))
		}
		c.Membership = m
	}
	return nil
}

func (u *CustomerUsecase) List(ctx context.Context, in PageInput) (PageOutput[CustomerOutput], error) {
	page, err := in.normalize()
	if err != nil {
		return PageOutput[CustomerOutput]{}, err
	}
	cs, total, err := u.repos.Customers().List(ctx, page.Page, page.Limit)
	if err != nil {
		return PageOutput[CustomerOutput]{}, fmt.Errorf("list customers: %w", err)
	}
	return PageOutput[CustomerOutput]{
		Items: mapSlice(cs, toCustomerOutput),
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	}, nil
}

func (u *CustomerUsecase) Get(ctx context.Context, id int64) (CustomerOutput, error) {
	c, err := u.repos.Customers().FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return CustomerOutput{}, errNotFound
	}
	if err != nil {
		return CustomerOutput{}, fmt.Errorf("find customer: %w", err)
	}
	return toCustomerOutput(c), nil
}

// Create links a new customer to an existing user (staff only).
func (u *CustomerUsecase) Create(ctx context.Context, in CustomerInput) (CustomerOutput, error) {
	if in.UserID <= 0 {
		return CustomerOutput{}, NewValidationError("user_id", "this field is required")
	}
	c := model.Customer{UserID: in.UserID, Membership: model.MembershipBasic}
	if err := in.apply(&c); err != nil {
		return CustomerOutput{}, err
	}

	if _, err := u.users.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CustomerOutput{}, NewValidationError("user_id", "no user with the given id was found")
		}
		return CustomerOutput{}, fmt.Errorf("find user: %w", err)
	}

	created, err := u.repos.Customers().Create(ctx, c)
	if errors.Is(err, repo.ErrDuplicate) {
		return CustomerOutput{}, NewValidationError("user_id", "customer with this user already exists")
	}
	if err != nil {
		return CustomerOutput{}, fmt.Errorf("create customer: %w", err)
	}
	return toCustomerOutput(created), nil
}

func (u *CustomerUsecase) Update(ctx context.Context, id int64, in CustomerInput) (CustomerOutput, error) {
	c, err := u.repos.Customers().FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return CustomerOutput{}, errNotFound
	}
	if err != nil {
		return CustomerOutput{}, fmt.Errorf("find customer: %w", err)
	}

	if err := in.apply(&c); err != nil {
		return CustomerOutput{}, err
	}
	if err := u.repos.Customers().Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CustomerOutput{}, errNotFound
		}
		return CustomerOutput{}, fmt.Errorf("update customer: %w", err)
	}
	return toCustomerOutput(c), nil
}

// Delete refuses (405) while the customer has orders.
func (u *CustomerUsecase) Delete(ctx context.Context, id int64) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Customers().FindByID(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound
			}
			return fmt.Errorf("find customer: %w", err)
		}

		n, err := r.Orders().CountByCustomerID(ctx, id)
		if err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		if n > 0 {
			return errCustomerReferenced
		}

		err = r.Customers().Delete(ctx, id)
		switch {
		case errors.Is(err, repo.ErrReferenced):
			return errCustomerReferenced
		case errors.Is(err, repo.ErrNotFound):
			return errNotFound
		case err != nil:
			return fmt.Errorf("delete customer: %w", err)
		}
		return nil
	})
}

// Me returns the caller's customer record, creating it on first access.
func (u *CustomerUsecase) Me(ctx context.Context, userID int64) (CustomerOutput, error) {
	c, err := u.repos.Customers().GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CustomerOutput{}, fmt.Errorf("get customer: %w", err)
	}
	return toCustomerOutput(c), nil
}

// UpdateMe changes phone and birth date; membership is left to staff.
func (u *CustomerUsecase) UpdateMe(ctx context.Context, userID int64, in CustomerInput) (CustomerOutput, error) {
	c, err := u.repos.Customers().GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CustomerOutput{}, fmt.Errorf("get customer: %w", err)
	}

	in.Membership = ""
	if err := in.apply(&c); err != nil {
		return CustomerOutput{}, err
	}
	if err := u.repos.Customers().Update(ctx, c); err != nil {
		return CustomerOutput{}, fmt.Errorf("update customer: %w", err)
	}
	return toCustomerOutput(c), nil
}

// History lists one customer's orders, newest first.
func (u *CustomerUsecase) History(ctx context.Context, customerID int64, in PageInput) (PageOutput[OrderOutput], error) {
	page, err := in.normalize()
	if err != nil {
		return PageOutput[OrderOutput]{}, err
	}
	if _, err := u.repos.Customers().FindByID(ctx, customerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return PageOutput[OrderOutput]{}, errNotFound
		}
		return PageOutput[OrderOutput]{}, fmt.Errorf("find customer: %w", err)
	}
	return listOrders(ctx, u.repos, repo.OrderListFilter{Page: page.Page, Limit: page.Limit, CustomerID: &customerID})
}
