package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// OrderEventPublisher announces committed orders. Nil disables events.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, ev model.OrderCreatedEvent) error
}

type OrderUsecase struct {
	repos     repo.TxRepos
	tx        repo.TransactionManager
	publisher OrderEventPublisher
	logger    *log.Logger
}

func NewOrderUsecase(repos repo.TxRepos, tx repo.TransactionManager, publisher OrderEventPublisher, logger *log.Logger) *OrderUsecase {
	if logger == nil {
		logger = log.New("order")
	}
	return &OrderUsecase{repos: repos, tx: tx, publisher: publisher, logger: logger}
}

type CheckoutInput struct {
	CartID string
}

type UpdateOrderInput struct {
	PaymentStatus string
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID  int64
	IsStaff bool
}

var (
	errCartNotFound = NewValidationError("cart_id", "no cart with the given id was found")
	errCartEmpty    = NewValidationError("cart_id", "cart is empty")
)

// Checkout turns the cart into a pending order in one transaction and
// deletes the cart. Nothing is written if any step fails.
func (u *OrderUsecase) Checkout(ctx context.Context, userID int64, in CheckoutInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	cartID, err := uuid.Parse(strings.TrimSpace(in.CartID))
	if err != nil {
		return OrderOutput{}, errCartNotFound
	}

	var (
		order model.Order
		items []model.OrderItem
	)

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Carts().FindByID(ctx, cartID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errCartNotFound
			}
			return fmt.Errorf("find cart: %w", err)
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cartID)
		if err != nil {
			return fmt.Errorf("list cart items: %w", err)
		}
		if len(cartItems) == 0 {
			return errCartEmpty
		}

		customer, err := r.Customers().GetOrCreateByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("get customer: %w", err)
		}

		order, err = r.Orders().Create(ctx, model.Order{
			CustomerID:    customer.ID,
			PlacedAt:      time.Now(),
			PaymentStatus: model.PaymentStatusPending,
		})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		// snapshot the live price; cart order is kept
		snapshot := make([]model.OrderItem, 0, len(cartItems))
		for _, ci := range cartItems {
			if ci.Product == nil {
				return fmt.Errorf("cart item %d: product %d not loaded", ci.ID, ci.ProductID)
			}
			snapshot = append(snapshot, model.OrderItem{
				ProductID: ci.ProductID,
				UnitPrice: ci.Product.UnitPrice,
				Quantity:  ci.Quantity,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, snapshot); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		if err := r.Carts().Delete(ctx, cartID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				// checked out concurrently
				return errCartNotFound
			}
			return fmt.Errorf("delete cart: %w", err)
		}

		items, err = r.OrderItems().ListByOrderID(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("list order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.publishCreated(ctx, order, items)
	return toOrderOutput(order, items), nil
}

// publish failures never undo a committed order
func (u *OrderUsecase) publishCreated(ctx context.Context, order model.Order, items []model.OrderItem) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.PublishOrderCreated(ctx, model.NewOrderCreatedEvent(order, items)); err != nil {
		u.logger.Warnf("publish order.created order_id=%d: %v", order.ID, err)
	}
}

// List shows staff every order and everyone else their own.
func (u *OrderUsecase) List(ctx context.Context, caller Caller, in PageInput) (PageOutput[OrderOutput], error) {
	page, err := in.normalize()
	if err != nil {
		return PageOutput[OrderOutput]{}, err
	}

	f := repo.OrderListFilter{Page: page.Page, Limit: page.Limit}
	if !caller.IsStaff {
		customer, err := u.repos.Customers().GetOrCreateByUserID(ctx, caller.UserID)
		if err != nil {
			return PageOutput[OrderOutput]{}, fmt.Errorf("get customer: %w", err)
		}
		f.CustomerID = &customer.ID
	}
	return listOrders(ctx, u.repos, f)
}

func listOrders(ctx context.Context, repos repo.TxRepos, f repo.OrderListFilter) (PageOutput[OrderOutput], error) {
	orders, total, err := repos.Orders().List(ctx, f)
	if err != nil {
		return PageOutput[OrderOutput]{}, fmt.Errorf("list orders: %w", err)
	}

	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderOutput(o, o.Items))
	}
	return PageOutput[OrderOutput]{Items: out, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// Get hides other customers' orders behind 404.
func (u *OrderUsecase) Get(ctx context.Context, caller Caller, orderID int64) (OrderOutput, error) {
	o, err := u.repos.Orders().FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, errNotFound
	}
	if err != nil {
		return OrderOutput{}, fmt.Errorf("find order: %w", err)
	}

	if !caller.IsStaff {
		customer, err := u.repos.Customers().GetOrCreateByUserID(ctx, caller.UserID)
		if err != nil {
			return OrderOutput{}, fmt.Errorf("get customer: %w", err)
		}
		if o.CustomerID != customer.ID {
			return OrderOutput{}, errNotFound
		}
	}
	return toOrderOutput(o, o.Items), nil
}

// UpdatePaymentStatus is the only change an order accepts after checkout.
func (u *OrderUsecase) UpdatePaymentStatus(ctx context.Context, actorUserID int64, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	if actorUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	status := model.PaymentStatus(strings.TrimSpace(in.PaymentStatus))
	if !status.Valid() {
		return OrderOutput{}, NewValidationError("payment_status", fmt.Sprintf("%q is not a valid choice", in.PaymentStatus))
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound
		}
		if err != nil {
			return fmt.Errorf("find order: %w", err)
		}

		before := o.PaymentStatus
		o.PaymentStatus = status
		out = toOrderOutput(o, o.Items)

		// already there: nothing to record
		if before == status {
			return nil
		}

		if err := r.Orders().UpdatePaymentStatus(ctx, orderID, status); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound
			}
			return fmt.Errorf("update payment status: %w", err)
		}

		return writeAudit(ctx, r, actorUserID, model.AuditActionUpdatePaymentStatus, model.AuditResourceOrder, orderID,
			map[string]interface{}{"payment_status": before},
			map[string]interface{}{"payment_status": status},
		)
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Delete removes the order and its items (staff only).
func (u *OrderUsecase) Delete(ctx context.Context, actorUserID int64, orderID int64) error {
	if actorUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound
		}
		if err != nil {
			return fmt.Errorf("find order: %w", err)
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errNotFound
			}
			return fmt.Errorf("delete order: %w", err)
		}

		return writeAudit(ctx, r, actorUserID, model.AuditActionDeleteOrder, model.AuditResourceOrder, orderID,
			map[string]interface{}{"customer": o.CustomerID, "payment_status": o.PaymentStatus, "items": len(o.Items)},
			map[string]interface{}{},
		)
	})
}
