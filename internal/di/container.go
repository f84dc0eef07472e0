package di

import (
	"github.com/Cha17/gowra-sub000/internal/auth"
	"github.com/Cha17/gowra-sub000/internal/handler"
	"github.com/Cha17/gowra-sub000/internal/repository"
	"github.com/Cha17/gowra-sub000/internal/service"
	"github.com/Cha17/gowra-sub000/pkg/config"
	"github.com/Cha17/gowra-sub000/pkg/database"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB     *database.PostgresDB
	Tokens *auth.TokenManager

	// Repositories
	UserRepo         repository.UserRepository
	AdminRepo        repository.AdminRepository
	EventRepo        repository.EventRepository
	RegistrationRepo repository.RegistrationRepository
	PaymentRepo      repository.PaymentRepository
	StatsRepo        repository.StatsRepository

	// Services
	AuthService         service.AuthService
	EventService        service.EventService
	RegistrationService service.RegistrationService
	PaymentService      service.PaymentService
	AdminService        service.AdminService

	// Handlers
	HealthHandler       *handler.HealthHandler
	AuthHandler         *handler.AuthHandler
	EventHandler        *handler.EventHandler
	RegistrationHandler *handler.RegistrationHandler
	PaymentHandler      *handler.PaymentHandler
	AdminHandler        *handler.AdminHandler
}

// NewContainer wires repositories, services and handlers
func NewContainer(cfg *config.Config, db *database.PostgresDB) *Container {
	c := &Container{DB: db}

	c.Tokens = auth.NewTokenManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
	).WithIssuer(cfg.JWT.Issuer)

	pool := db.Pool()
	c.UserRepo = repository.NewPostgresUserRepository(pool)
	c.AdminRepo = repository.NewPostgresAdminRepository(pool)
	c.EventRepo = repository.NewPostgresEventRepository(pool)
	c.RegistrationRepo = repository.NewPostgresRegistrationRepository(pool)
	c.PaymentRepo = repository.NewPostgresPaymentRepository(pool)
	c.StatsRepo = repository.NewPostgresStatsRepository(pool)

	c.AuthService = service.NewAuthService(c.UserRepo, c.AdminRepo, c.Tokens)
	c.EventService = service.NewEventService(c.EventRepo)
	c.RegistrationService = service.NewRegistrationService(c.RegistrationRepo, c.EventRepo)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.RegistrationRepo, c.EventRepo)
	c.AdminService = service.NewAdminService(c.StatsRepo, c.UserRepo, c.RegistrationRepo)

	c.HealthHandler = handler.NewHealthHandler(db)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.EventHandler = handler.NewEventHandler(c.EventService)
	c.RegistrationHandler = handler.NewRegistrationHandler(c.RegistrationService)
	c.PaymentHandler = handler.NewPaymentHandler(c.PaymentService)
	c.AdminHandler = handler.NewAdminHandler(c.AdminService, c.EventService)

	return c
}
