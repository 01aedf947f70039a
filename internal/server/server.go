package server

import (
	"context"
	"fmt"
	"log/slog"

	"starbank/internal/config"
	"starbank/internal/handlers"
	"starbank/internal/middleware"
	"starbank/internal/repositories"
	"starbank/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Server wires repositories, services and handlers onto an echo instance.
type Server struct {
	echo        *echo.Echo
	config      *config.Config
	logger      *slog.Logger
	rateLimiter *middleware.RateLimiter
}

// New builds a fully wired server over the given database handle.
func New(cfg *config.Config, db *gorm.DB, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery(logger))
	e.Use(middleware.SecurityHeaders())
	rateLimiter := middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2)
	e.Use(rateLimiter.Middleware())

	userRepo := repositories.NewUserRepository(db)
	accountRepo := repositories.NewBankAccountRepository(db)
	cardRepo := repositories.NewCardRepository(db)
	depositRepo := repositories.NewDepositRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	typeRepo := repositories.NewTransactionTypeRepository(db)
	cashbackRepo := repositories.NewCashbackRepository(db)
	cardTypeRepo := repositories.NewCardTypeRepository(db)
	designRepo := repositories.NewCardDesignRepository(db)

	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordService()
	userService := services.NewUserService(userRepo, passwordService, logger, metrics)
	accountService := services.NewAccountService(accountRepo, cardRepo, depositRepo, userRepo, logger, metrics)
	transferService := services.NewTransferService(accountRepo, transactionRepo, typeRepo, logger, metrics)
	catalogService := services.NewCatalogService(typeRepo, cashbackRepo, cardTypeRepo, designRepo)

	registerRoutes(e, db,
		handlers.NewUserHandler(userService),
		handlers.NewAccountHandler(accountService),
		handlers.NewCardHandler(accountService),
		handlers.NewDepositHandler(accountService),
		handlers.NewCatalogHandler(catalogService),
		handlers.NewTransferHandler(transferService),
	)

	return &Server{echo: e, config: cfg, logger: logger, rateLimiter: rateLimiter}
}

func registerRoutes(
	e *echo.Echo,
	db *gorm.DB,
	userHandler *handlers.UserHandler,
	accountHandler *handlers.AccountHandler,
	cardHandler *handlers.CardHandler,
	depositHandler *handlers.DepositHandler,
	catalogHandler *handlers.CatalogHandler,
	transferHandler *handlers.TransferHandler,
) {
	healthHandler := handlers.NewHealthCheckHandler(db)
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/users", userHandler.CreateUser)
	e.GET("/users", userHandler.ListUsers)
	e.GET("/users/:id", userHandler.GetUser)
	e.PUT("/users/:id", userHandler.UpdateUser)
	e.DELETE("/users/:id", userHandler.DeleteUser)
	e.GET("/users/:id/accounts", accountHandler.GetUserAccounts)
	e.GET("/users/:id/cards", cardHandler.GetUserCards)
	e.GET("/users/:id/deposits", depositHandler.GetUserDeposits)
	e.GET("/users/:id/transactions", transferHandler.GetUserTransactions)

	e.GET("/accounts", accountHandler.ListAccounts)
	e.GET("/accounts/:id", accountHandler.GetAccount)
	e.PUT("/accounts/:id", accountHandler.UpdateAccount)
	e.DELETE("/accounts/:id", accountHandler.DeleteAccount)

	e.POST("/cards", cardHandler.CreateCard)
	e.GET("/cards", cardHandler.ListCards)
	e.GET("/cards/:id", cardHandler.GetCard)
	e.PUT("/cards/:id", cardHandler.UpdateCard)
	e.DELETE("/cards/:id", cardHandler.DeleteCard)

	e.POST("/deposits", depositHandler.CreateDeposit)
	e.GET("/deposits", depositHandler.ListDeposits)
	e.GET("/deposits/:id", depositHandler.GetDeposit)
	e.PUT("/deposits/:id", depositHandler.UpdateDeposit)
	e.DELETE("/deposits/:id", depositHandler.DeleteDeposit)

	e.POST("/transaction-types", catalogHandler.CreateTransactionType)
	e.GET("/transaction-types", catalogHandler.ListTransactionTypes)
	e.GET("/transaction-types/:id", catalogHandler.GetTransactionType)
	e.PUT("/transaction-types/:id", catalogHandler.UpdateTransactionType)
	e.DELETE("/transaction-types/:id", catalogHandler.DeleteTransactionType)

	e.POST("/cashbacks", catalogHandler.CreateCashback)
	e.GET("/cashbacks", catalogHandler.ListCashbacks)
	e.GET("/cashbacks/:id", catalogHandler.GetCashback)
	e.PUT("/cashbacks/:id", catalogHandler.UpdateCashback)
	e.DELETE("/cashbacks/:id", catalogHandler.DeleteCashback)

	e.POST("/card-types", catalogHandler.CreateCardType)
	e.GET("/card-types", catalogHandler.ListCardTypes)
	e.GET("/card-types/:id", catalogHandler.GetCardType)
	e.PUT("/card-types/:id", catalogHandler.UpdateCardType)
	e.DELETE("/card-types/:id", catalogHandler.DeleteCardType)

	e.POST("/card-designs", catalogHandler.CreateCardDesign)
	e.GET("/card-designs", catalogHandler.ListCardDesigns)
	e.GET("/card-designs/:id", catalogHandler.GetCardDesign)
	e.PUT("/card-designs/:id", catalogHandler.UpdateCardDesign)
	e.DELETE("/card-designs/:id", catalogHandler.DeleteCardDesign)

	e.POST("/transactions", transferHandler.CreateTransfer)
	e.GET("/transactions", transferHandler.ListTransactions)
	e.GET("/transactions/:id", transferHandler.GetTransaction)
	e.DELETE("/transactions/:id", transferHandler.DeleteTransaction)
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start runs the HTTP server until the listener fails.
func (s *Server) Start() error {
	address := fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("starting server", slog.String("address", address))

	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout

	return s.echo.Start(address)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiter.Stop()
	return s.echo.Shutdown(ctx)
}
