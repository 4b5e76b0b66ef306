package provider

import (
	"github.com/bcexpress/tracking-api/internal/authz"
	"github.com/bcexpress/tracking-api/internal/cache"
	"github.com/bcexpress/tracking-api/internal/config"
	"github.com/bcexpress/tracking-api/internal/logger"
	"github.com/bcexpress/tracking-api/internal/models"
	"github.com/bcexpress/tracking-api/internal/queue"
	"github.com/bcexpress/tracking-api/internal/repository"
	"github.com/bcexpress/tracking-api/internal/service"
)

// Container is the dependency injection root.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo     repository.UserRepository
	ShipmentRepo repository.ShipmentRepository
	HistoryRepo  repository.ShipmentHistoryRepository
	ManifestRepo repository.ManifestRepository
	BookingRepo  repository.BookingRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	CaptchaService    *service.CaptchaService
	UploadService     *service.UploadService
	ShipmentService   *service.ShipmentService
	ScanService       *service.ScanService
	BookingService    *service.BookingService
	WhatsAppService   *service.WhatsAppService
	BranchSyncService *service.BranchSyncService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ShipmentRepo = repository.NewShipmentRepository(db)
	c.HistoryRepo = repository.NewShipmentHistoryRepository(db)
	c.ManifestRepo = repository.NewManifestRepository(db)
	c.BookingRepo = repository.NewBookingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config)
	c.WhatsAppService = service.NewWhatsAppService(c.Config.WhatsApp)
	c.BranchSyncService = service.NewBranchSyncService(c.Config.BranchSync)
	c.ShipmentService = service.NewShipmentService(c.Config, c.ShipmentRepo, c.HistoryRepo, c.ManifestRepo, c.QueueClient, c.BranchSyncService)
	c.ScanService = service.NewScanService(c.Config, c.ShipmentRepo, c.HistoryRepo, c.ManifestRepo, c.QueueClient, c.BranchSyncService)
	c.BookingService = service.NewBookingService(c.Config, c.BookingRepo, c.ManifestRepo)
}
