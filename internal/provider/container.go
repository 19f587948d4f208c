package provider

import (
	"github.com/parcel-next/internal/authz"
	"github.com/parcel-next/internal/cache"
	"github.com/parcel-next/internal/config"
	"github.com/parcel-next/internal/logger"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/queue"
	"github.com/parcel-next/internal/repository"
	"github.com/parcel-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo    repository.UserRepository
	ParcelRepo  repository.ParcelRepository
	ContactRepo repository.ContactMessageRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	EmailService       *service.EmailService
	VendorService      *service.VendorService
	CustomerService    *service.CustomerService
	ParcelService      *service.ParcelService
	AdminParcelService *service.AdminParcelService
	AdminUserService   *service.AdminUserService
	ContactService     *service.ContactService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
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

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ParcelRepo = repository.NewParcelRepository(db)
	c.ContactRepo = repository.NewContactMessageRepository(db)
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

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.VendorService = service.NewVendorService(c.ParcelRepo, c.UserRepo, c.QueueClient)
	c.CustomerService = service.NewCustomerService(c.ParcelRepo, c.QueueClient)
	c.ParcelService = service.NewParcelService(c.Config, c.ParcelRepo, c.UserRepo)
	c.AdminParcelService = service.NewAdminParcelService(c.ParcelRepo, c.QueueClient)
	c.AdminUserService = service.NewAdminUserService(c.UserRepo)
	c.ContactService = service.NewContactService(c.ContactRepo)
}
