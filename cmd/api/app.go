package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pos-inventario/docs"
	"github.com/hugohenrick/pos-inventario/internal/adapter/api/controller"
	"github.com/hugohenrick/pos-inventario/internal/adapter/api/route"
	"github.com/hugohenrick/pos-inventario/internal/adapter/events"
	"github.com/hugohenrick/pos-inventario/internal/adapter/idempotency"
	"github.com/hugohenrick/pos-inventario/internal/adapter/repository"
	"github.com/hugohenrick/pos-inventario/internal/adapter/repository/memory"
	"github.com/hugohenrick/pos-inventario/internal/config"
	"github.com/hugohenrick/pos-inventario/internal/domain/product"
	"github.com/hugohenrick/pos-inventario/internal/domain/user"
	"github.com/hugohenrick/pos-inventario/internal/infrastructure/database"
	"github.com/hugohenrick/pos-inventario/internal/usecase"
	"github.com/hugohenrick/pos-inventario/pkg/auth"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
	"github.com/hugohenrick/pos-inventario/pkg/metrics"
	"github.com/hugohenrick/pos-inventario/pkg/pkcs12"
	pkgrepo "github.com/hugohenrick/pos-inventario/pkg/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"
)

const (
	serviceName     = "pos-inventario"
	shutdownTimeout = 10 * time.Second
)

// App representa a aplicação e suas dependências
type App struct {
	cfg      config.Config
	log      logger.Logger
	router   *gin.Engine
	db       *database.PostgresDB
	rdb      *redis.Client
	idem     *idempotency.RedisStore
	events   *events.KafkaPublisher
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	productController *controller.ProductController
	saleController    *controller.SaleController
	userController    *controller.UserController
	jwtService        *auth.JWTService
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	if cfg.PrometheusEnabled {
		a.registry = prometheus.NewRegistry()
		a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		a.metrics = metrics.New(a.registry)
	}

	store, users, err := a.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.jwtService = jwtService

	stock := usecase.NewStockControl(a.metrics)
	barcodes := product.NewBarcodeGenerator(nil, cfg.BarcodeMaxAttempts)
	catalog := usecase.NewCatalogService(store, stock, barcodes, log)
	sales := usecase.NewSaleService(store, stock, log,
		usecase.WithIdempotency(a.idempotencyStore()),
		usecase.WithEvents(a.publisher()),
		usecase.WithMetrics(a.metrics),
		usecase.WithMaxAttempts(cfg.SaleMaxAttempts),
	)
	userService := usecase.NewUserService(users, log)

	a.productController = controller.NewProductController(catalog, log)
	a.saleController = controller.NewSaleController(sales, log)
	a.userController = controller.NewUserController(userService, jwtService, log)

	gin.SetMode(cfg.GinMode)
	a.router = gin.New()
	a.router.Use(gin.Logger(), gin.Recovery(), a.metrics.Middleware(), cors.New(a.corsConfig()))
	a.SetupRoutes()

	return a, nil
}

// openStorage escolhe o armazenamento conforme STORAGE_DRIVER
func (a *App) openStorage(ctx context.Context) (pkgrepo.Store, user.Repository, error) {
	switch a.cfg.StorageDriver {
	case config.DriverMemory:
		a.log.Warn("usando armazenamento em memória; os dados se perdem ao reiniciar")
		s := memory.NewStore()
		return s, s.Users(), nil
	case config.DriverPostgres:
		if a.cfg.AutoMigrate {
			if err := database.RunMigrations(a.cfg.Database.ConnectionString(), a.cfg.MigrationsPath); err != nil {
				return nil, nil, err
			}
			a.log.Info("migrações aplicadas", "caminho", a.cfg.MigrationsPath)
		}
		db, err := database.NewPostgresDB(ctx, a.cfg.Database, a.log)
		if err != nil {
			return nil, nil, err
		}
		a.db = db
		s := repository.NewStore(db)
		return s, s.Users(), nil
	default:
		return nil, nil, fmt.Errorf("STORAGE_DRIVER desconhecido: %q", a.cfg.StorageDriver)
	}
}

func (a *App) idempotencyStore() usecase.IdempotencyStore {
	if a.cfg.RedisAddr == "" {
		return idempotency.NewMemoryStore(a.cfg.IdempotencyTTL)
	}
	a.rdb = idempotency.NewRedisClient(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
	a.idem = idempotency.NewRedisStore(a.rdb, a.cfg.IdempotencyTTL)
	return a.idem
}

func (a *App) publisher() usecase.EventPublisher {
	if len(a.cfg.KafkaBrokers) == 0 {
		return usecase.NopPublisher{}
	}
	w := events.NewKafkaWriter(a.cfg.KafkaBrokers, a.cfg.KafkaTopicSales)
	a.events = events.NewKafkaPublisher(w, serviceName, 256, a.log)
	return a.events
}

func (a *App) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", controller.IdempotencyHeader)
	if len(a.cfg.CORSAllowedOrigins) == 0 || (len(a.cfg.CORSAllowedOrigins) == 1 && a.cfg.CORSAllowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = a.cfg.CORSAllowedOrigins
	}
	return cfg
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes() {
	var guards []gin.HandlerFunc
	if a.cfg.AuthRequired {
		guards = append(guards, auth.JWTAuthMiddleware(a.jwtService))
	}

	a.router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Servidor de inventario y ventas en funcionamiento")
	})
	a.router.GET("/health", a.health)

	if a.registry != nil {
		a.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	}

	docs.SwaggerInfo.BasePath = "/"
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	root := a.router.Group("")
	route.SetupProductRoutes(root, a.productController, guards...)
	route.SetupSaleRoutes(root, a.saleController, guards...)
	route.SetupUserRoutes(root, a.userController, guards...)
}

// health verifica as dependências externas configuradas
func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"storage": a.cfg.StorageDriver}
	status := http.StatusOK
	if a.db != nil {
		if err := a.db.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["postgres"] = "ok"
		}
	}
	if a.idem != nil {
		if err := a.idem.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks["redis"] = "ok"
		}
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{"status": state, "version": "1.0.0", "checks": checks})
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Run atende HTTP (ou HTTPS com bundle .p12) até ctx ser cancelado
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if a.cfg.TLSP12Path != "" {
		tlsCfg, err := pkcs12.LoadTLSConfig(a.cfg.TLSP12Path, a.cfg.TLSP12Password)
		if err != nil {
			return err
		}
		srv.TLSConfig = tlsCfg
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("servidor iniciado", "endereco", a.cfg.HTTPAddr, "tls", srv.TLSConfig != nil)
		var err error
		if srv.TLSConfig != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		a.log.Info("encerrando servidor")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.events != nil {
		if err := a.events.Close(ctx); err != nil {
			a.log.Error("erro ao fechar publicador de eventos", "erro", err)
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.log.Error("erro ao fechar redis", "erro", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
