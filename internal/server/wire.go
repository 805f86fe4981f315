package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"
	infrarepo "storefront/internal/infra/repository"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// Wire builds repositories, use cases and handlers over one gorm pool.
// publisher may be nil; order events are then skipped.
func Wire(cfg config.Config, gdb *gorm.DB, publisher usecase.OrderEventPublisher, logger *log.Logger) (Handlers, *usecase.AuthUsecase) {
	//repositories (gorm)
	repos := infrarepo.NewTxRepos(gdb)
	txm := infrarepo.NewTxManagerGorm(gdb)
	users := infrarepo.NewUserGormRepository(gdb)

	//Usecase
	authUC := usecase.NewAuthUsecase(cfg, users, validator.NewAuthValidator(users))
	collectionUC := usecase.NewCollectionUsecase(repos, txm)
	productUC := usecase.NewProductUsecase(repos, txm)
	reviewUC := usecase.NewReviewUsecase(repos)
	cartUC := usecase.NewCartUsecase(repos)
	customerUC := usecase.NewCustomerUsecase(repos, users, txm)
	orderUC := usecase.NewOrderUsecase(repos, txm, publisher, logger)
	auditUC := usecase.NewAuditLogUsecase(repos)

	//Handler
	return Handlers{
		Auth:       handler.NewAuthHandler(authUC),
		Collection: handler.NewCollectionHandler(collectionUC),
		Product:    handler.NewProductHandler(productUC),
		Review:     handler.NewReviewHandler(reviewUC),
		Cart:       handler.NewCartHandler(cartUC),
		Customer:   handler.NewCustomerHandler(customerUC),
		Order:      handler.NewOrderHandler(orderUC),
		AuditLog:   handler.NewAuditLogHandler(auditUC),
	}, authUC
}
