package router

import (
	"time"

	"kensai/internal/config"
	"kensai/internal/handler"
	"kensai/internal/infra"
	"kensai/internal/middleware"
	"kensai/internal/model"
	"kensai/internal/repository"
	"kensai/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers into the Gin engine.
// It is the single composition root besides cmd/server.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, cb *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimiter(200, time.Minute))

	// Repositories
	cotizacionRepo := repository.NewCotizacionRepository(db)
	tareaRepo := repository.NewTareaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	colaboradorRepo := repository.NewColaboradorRepository(db)
	notificacionRepo := repository.NewNotificacionRepository(db)

	// Services
	notificacionSvc := service.NewNotificacionService(notificacionRepo)
	cotizacionSvc := service.NewCotizacionService(cotizacionRepo, tareaRepo, clienteRepo, notificacionSvc)
	produccionSvc := service.NewProduccionService(tareaRepo, cotizacionRepo, notificacionSvc)
	contabilidadSvc := service.NewContabilidadService(cotizacionRepo, tareaRepo, clienteRepo, produccionSvc)
	catalogoSvc := service.NewCatalogoService(clienteRepo, productoRepo)
	authSvc := service.NewAuthService(
		colaboradorRepo,
		cfg.JWTSecret,
		time.Duration(cfg.JWTExpirationHours)*time.Hour,
		time.Duration(cfg.JWTRefreshHours)*time.Hour,
	)
	sugerenciaSvc := service.NewSugerenciaService(cfg.OpenAIAPIKey, cb)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	cotizacionH := handler.NewCotizacionHandler(cotizacionSvc)
	contabilidadH := handler.NewContabilidadHandler(contabilidadSvc)
	produccionH := handler.NewProduccionHandler(produccionSvc)
	catalogoH := handler.NewCatalogoHandler(catalogoSvc)
	notificacionH := handler.NewNotificacionHandler(notificacionSvc)
	sugerenciaH := handler.NewSugerenciaHandler(sugerenciaSvc)
	initH := handler.NewInitHandler(catalogoSvc, authSvc, cotizacionRepo, tareaRepo, notificacionSvc)

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
			auth.POST("/refresh", authH.Refresh)
		}

		api := v1.Group("")
		api.Use(middleware.JWTAuth(cfg.JWTSecret))
		{
			api.GET("/init", initH.Cargar)

			ventas := middleware.RequireRole(model.RolAdministrador, model.RolVentas)
			admin := middleware.RequireRole(model.RolAdministrador)

			cot := api.Group("/cotizaciones")
			{
				cot.GET("", cotizacionH.Listar)
				cot.GET("/:id", cotizacionH.Obtener)
				cot.POST("", ventas, cotizacionH.Crear)
				cot.PUT("/:id", ventas, cotizacionH.Actualizar)
				cot.PUT("/:id/estado", ventas, cotizacionH.CambiarEstado)
				cot.POST("/:id/pagos", ventas, contabilidadH.RegistrarPago)
				cot.GET("/:id/monto-sugerido", ventas, contabilidadH.MontoSugerido)
			}

			conta := api.Group("/contabilidad", ventas)
			{
				conta.GET("/anticipos-pendientes", contabilidadH.AnticiposPendientes)
				conta.GET("/liquidaciones-entrega", contabilidadH.LiquidacionesEntrega)
				conta.GET("/cartera-creditos", contabilidadH.CarteraCreditos)
				conta.GET("/ventas", contabilidadH.VentasPorPeriodo)
			}

			tareas := api.Group("/tareas")
			{
				tareas.GET("", produccionH.Listar)
				tareas.GET("/:id", produccionH.Obtener)
				tareas.PUT("/:id/asignacion", admin, produccionH.ActualizarAsignacion)
				tareas.POST("/:id/diseno/iniciar", produccionH.IniciarDiseno)
				tareas.POST("/:id/diseno/entregar", produccionH.EntregarDiseno)
				tareas.POST("/:id/revision", produccionH.DecisionCliente)
				tareas.POST("/:id/taller/finalizar", produccionH.FinalizarTaller)
				tareas.POST("/:id/entregar", produccionH.MarcarEntregada)
				tareas.POST("/:id/chat", produccionH.AgregarMensaje)
			}

			clientes := api.Group("/clientes")
			{
				clientes.GET("", catalogoH.ListarClientes)
				clientes.POST("", ventas, catalogoH.CrearCliente)
				clientes.PUT("/:id", ventas, catalogoH.ActualizarCliente)
				clientes.DELETE("/:id", admin, catalogoH.BajaCliente)
			}

			productos := api.Group("/productos")
			{
				productos.GET("", catalogoH.ListarProductos)
				productos.POST("", ventas, catalogoH.CrearProducto)
				productos.PUT("/:id", ventas, catalogoH.ActualizarProducto)
				productos.DELETE("/:id", admin, catalogoH.BajaProducto)
			}

			colaboradores := api.Group("/colaboradores")
			{
				colaboradores.GET("", authH.ListarColaboradores)
				colaboradores.POST("", admin, authH.CrearColaborador)
				colaboradores.PUT("/:id", admin, authH.ActualizarColaborador)
				colaboradores.DELETE("/:id", admin, authH.BajaColaborador)
			}

			notificaciones := api.Group("/notificaciones")
			{
				notificaciones.GET("", notificacionH.Listar)
				notificaciones.PUT("/leidas", notificacionH.MarcarTodasLeidas)
				notificaciones.PUT("/:id/leida", notificacionH.MarcarLeida)
				notificaciones.DELETE("", notificacionH.LimpiarTodas)
			}

			api.GET("/sugerencias", sugerenciaH.Sugerir)
		}
	}

	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
