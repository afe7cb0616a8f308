package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/prestamos-pro/internal/application/auth"
	"github.com/tu-usuario/prestamos-pro/internal/application/device"
	"github.com/tu-usuario/prestamos-pro/internal/application/usecase"
	"github.com/tu-usuario/prestamos-pro/internal/domain/entity"
	"github.com/tu-usuario/prestamos-pro/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	GateUC      *device.GateUseCase
	TiempoUC    *usecase.TiempoUseCase
	UsuarioUC   *usecase.UsuarioUseCase
	ClienteUC   *usecase.ClienteUseCase
	PrestamoUC  *usecase.PrestamoUseCase
	CajaUC      *usecase.CajaUseCase
	CierreUC    *usecase.CierreUseCase
	SusuUC      *usecase.SusuUseCase
	NominaUC    *usecase.NominaUseCase
	AuditoriaUC *usecase.AuditoriaUseCase
	Storage     DocumentStorage
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
//
// Toda ruta protegida pasa por la cadena completa: sesión válida, dispositivo
// autorizado y presupuesto de tiempo vigente, en ese orden. El control por rol
// se aplica después, por grupo o por ruta.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.TiempoUC, deps.Log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (sesión + dispositivo + tiempo)
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret),
		DeviceGateMiddleware(deps.GateUC),
		TimeBudgetMiddleware(deps.TiempoUC),
	)

	protected.Post("/auth/refresh", authHandler.Refresh)
	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/auth/tiempo", authHandler.Tiempo)

	supervisorOMas := RequireRole(entity.RolAdministrador, entity.RolSupervisor)
	soloAdmin := RequireRole(entity.RolAdministrador)

	// Clientes: lectura para todos los roles, escritura SUPERVISOR+,
	// desactivación solo ADMINISTRADOR.
	clienteHandler := NewClienteHandler(deps.ClienteUC, deps.Storage, deps.Log)
	clientes := protected.Group("/clientes")
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.Get)
	clientes.Get("/:id/documento", clienteHandler.DescargarDocumento)
	clientes.Post("/", supervisorOMas, clienteHandler.Create)
	clientes.Put("/:id", supervisorOMas, clienteHandler.Update)
	clientes.Post("/:id/documento", supervisorOMas, clienteHandler.SubirDocumento)
	clientes.Delete("/:id", soloAdmin, clienteHandler.Delete)

	// Préstamos: originación SUPERVISOR+, pagos cualquier rol de campo.
	prestamoHandler := NewPrestamoHandler(deps.PrestamoUC, deps.Log)
	prestamos := protected.Group("/prestamos")
	prestamos.Get("/", prestamoHandler.List)
	prestamos.Get("/:id", prestamoHandler.Get)
	prestamos.Get("/:id/pagos", prestamoHandler.ListPagos)
	prestamos.Post("/", supervisorOMas, prestamoHandler.Create)
	prestamos.Post("/:id/anular", supervisorOMas, prestamoHandler.Anular)
	protected.Post("/pagos", prestamoHandler.RegistrarPago)

	// Caja chica
	cajaHandler := NewCajaHandler(deps.CajaUC, deps.Log)
	caja := protected.Group("/caja", supervisorOMas)
	caja.Post("/movimientos", cajaHandler.Registrar)
	caja.Get("/balance", cajaHandler.Balance)

	// Cierres diarios
	cierreHandler := NewCierreHandler(deps.CierreUC, deps.Log)
	cierres := protected.Group("/cierres", supervisorOMas)
	cierres.Get("/resumen", cierreHandler.Resumen)
	cierres.Post("/", cierreHandler.Confirmar)
	cierres.Get("/", cierreHandler.List)
	cierres.Get("/:id", cierreHandler.Get)
	cierres.Get("/:id/pdf", cierreHandler.PDF)

	// SUSU: lectura para cualquier rol, gestión SUPERVISOR+.
	susuHandler := NewSusuHandler(deps.SusuUC, deps.Log)
	susu := protected.Group("/susu/grupos")
	susu.Get("/", susuHandler.ListGrupos)
	susu.Get("/:id", susuHandler.GetGrupo)
	susu.Get("/:id/participantes", susuHandler.ListParticipantes)
	susu.Post("/", supervisorOMas, susuHandler.CreateGrupo)
	susu.Post("/:id/participantes", supervisorOMas, susuHandler.AddParticipante)
	susu.Post("/:id/avanzar", supervisorOMas, susuHandler.AvanzarTurno)
	susu.Post("/:id/cerrar", supervisorOMas, susuHandler.CerrarGrupo)

	// Nómina: lectura SUPERVISOR+, escritura solo ADMINISTRADOR.
	nominaHandler := NewNominaHandler(deps.NominaUC, deps.Log)
	nomina := protected.Group("/nomina")
	nomina.Get("/", supervisorOMas, nominaHandler.List)
	nomina.Get("/:usuarioId", supervisorOMas, nominaHandler.GetByUsuario)
	nomina.Put("/", soloAdmin, nominaHandler.Upsert)

	// Usuarios y sus dispositivos: solo ADMINISTRADOR.
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC, deps.GateUC, deps.Log)
	usuarios := protected.Group("/usuarios", soloAdmin)
	usuarios.Post("/", usuarioHandler.Create)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.Get)
	usuarios.Put("/:id", usuarioHandler.Update)
	usuarios.Delete("/:id", usuarioHandler.Delete)
	usuarios.Get("/:id/dispositivos", usuarioHandler.ListDispositivos)
	usuarios.Post("/:id/dispositivos/:deviceId/autorizar", usuarioHandler.AutorizarDispositivo)
	usuarios.Post("/:id/dispositivos/:deviceId/rechazar", usuarioHandler.RechazarDispositivo)
	usuarios.Post("/:id/dispositivos/:deviceId/bloquear", usuarioHandler.BloquearDispositivo)

	// Auditoría: ADMINISTRADOR, o quien tenga el permiso explícito delegado.
	auditoriaHandler := NewAuditoriaHandler(deps.AuditoriaUC, deps.Log)
	protected.Get("/auditoria", RequirePermission("auditoria.ver"), auditoriaHandler.List)
}
