package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/tu-usuario/prestamos-pro/internal/application/auth"
	"github.com/tu-usuario/prestamos-pro/internal/application/device"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/prestamos-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/prestamos-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/prestamos-pro/internal/infrastructure/storage"
	httpRouter "github.com/tu-usuario/prestamos-pro/internal/interfaces/http"
	"github.com/tu-usuario/prestamos-pro/migrations"
	"github.com/tu-usuario/prestamos-pro/pkg/config"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.App.MigrateOnStart {
		db := stdlib.OpenDBFromPool(pool)
		if err := migrations.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrando conexión de migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	deviceRepo := postgres.NewDeviceAuthRepository(pool)
	usoTiempoRepo := postgres.NewUsoTiempoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	prestamoRepo := postgres.NewPrestamoRepository(pool)
	pagoRepo := postgres.NewPagoRepository(pool)
	cajaRepo := postgres.NewCajaRepository(pool)
	cierreRepo := postgres.NewCierreRepository(pool)
	susuRepo := postgres.NewSusuRepository(pool)
	nominaRepo := postgres.NewNominaRepository(pool)
	auditoriaRepo := postgres.NewAuditoriaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	docStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de documentos")
	}

	auditoriaUC := usecase.NewAuditoriaUseCase(auditoriaRepo, log)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	gateUC := device.NewGateUseCase(deviceRepo)
	tiempoUC := usecase.NewTiempoUseCase(usoTiempoRepo)
	usuarioUC := usecase.NewUsuarioUseCase(userRepo, auditoriaUC)
	clienteUC := usecase.NewClienteUseCase(clienteRepo, auditoriaUC)
	prestamoUC := usecase.NewPrestamoUseCase(prestamoRepo, pagoRepo, clienteRepo, userRepo, txRunner, auditoriaUC)
	cajaUC := usecase.NewCajaUseCase(cajaRepo)
	cierreUC := usecase.NewCierreUseCase(cierreRepo, userRepo, infrapdf.NewMarotoPDFGenerator())
	susuUC := usecase.NewSusuUseCase(susuRepo, clienteRepo)
	nominaUC := usecase.NewNominaUseCase(nominaRepo, userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Prestamos Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		GateUC:      gateUC,
		TiempoUC:    tiempoUC,
		UsuarioUC:   usuarioUC,
		ClienteUC:   clienteUC,
		PrestamoUC:  prestamoUC,
		CajaUC:      cajaUC,
		CierreUC:    cierreUC,
		SusuUC:      susuUC,
		NominaUC:    nominaUC,
		AuditoriaUC: auditoriaUC,
		Storage:     docStorage,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
