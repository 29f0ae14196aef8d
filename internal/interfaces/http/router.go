package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacensaas/almacen-api/internal/application/analytics"
	"github.com/almacensaas/almacen-api/internal/application/auth"
	"github.com/almacensaas/almacen-api/internal/application/billing"
	"github.com/almacensaas/almacen-api/internal/application/inventory"
	"github.com/almacensaas/almacen-api/internal/application/notifications"
	"github.com/almacensaas/almacen-api/internal/application/orders"
	"github.com/almacensaas/almacen-api/internal/application/products"
	"github.com/almacensaas/almacen-api/internal/application/users"
	"github.com/almacensaas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	UserUC      *users.UseCase
	ProductUC   *products.UseCase
	OrderUC     *orders.UseCase
	InventoryUC *inventory.UseCase
	NotifUC     *notifications.UseCase
	BillingUC   *billing.UseCase
	AnalyticsUC *analytics.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Profile)

	adminOnly := RequireRole(entity.RoleAdmin)

	// Usuarios (cambio de contraseña propio; administración solo admin)
	usuarios := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC)
	usuarios.Patch("/password", userHandler.ChangePassword)
	usuarios.Get("/", adminOnly, userHandler.List)
	usuarios.Get("/:id", adminOnly, userHandler.GetByID)
	usuarios.Put("/:id", adminOnly, userHandler.Update)
	usuarios.Delete("/:id", adminOnly, userHandler.Delete)

	// Productos (catálogo protegido; mutaciones solo admin)
	productos := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	productos.Get("/", productHandler.List)
	productos.Get("/:id", productHandler.GetByID)
	productos.Post("/", adminOnly, productHandler.Create)
	productos.Put("/:id", adminOnly, productHandler.Update)
	productos.Delete("/:id", adminOnly, productHandler.Delete)

	// Pedidos (protegido)
	pedidos := protected.Group("/pedidos")
	orderHandler := NewOrderHandler(deps.OrderUC)
	pedidos.Post("/", orderHandler.Create)
	pedidos.Get("/", adminOnly, orderHandler.List)
	pedidos.Get("/mios", orderHandler.ListMine)
	pedidos.Get("/:id", orderHandler.GetByID)
	pedidos.Patch("/:id/estado", adminOnly, orderHandler.ChangeStatus)
	pedidos.Patch("/:id/repartidor", adminOnly, orderHandler.AssignCourier)
	pedidos.Post("/:id/cancelar", orderHandler.Cancel)
	pedidos.Delete("/:id", adminOnly, orderHandler.Delete)
	pedidos.Post("/:id/detalles", orderHandler.AddItem)
	pedidos.Delete("/detalles/:itemId", orderHandler.RemoveItem)

	// Inventario (solo admin)
	inventario := protected.Group("/inventario", adminOnly)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventario.Post("/movimientos", inventoryHandler.RegisterMovement)
	inventario.Get("/movimientos", inventoryHandler.ListMovements)
	inventario.Get("/movimientos/:id", inventoryHandler.GetMovement)
	inventario.Get("/stock/:productId", inventoryHandler.CurrentStock)

	// Notificaciones (bandeja del usuario autenticado)
	notificaciones := protected.Group("/notificaciones")
	notificationHandler := NewNotificationHandler(deps.NotifUC)
	notificaciones.Get("/", notificationHandler.List)
	notificaciones.Get("/sin-leer", notificationHandler.CountUnread)
	notificaciones.Patch("/leidas", notificationHandler.MarkAllRead)
	notificaciones.Patch("/:id/leida", notificationHandler.MarkRead)
	notificaciones.Delete("/:id", notificationHandler.Delete)

	// Facturas (solo admin)
	facturas := protected.Group("/facturas", adminOnly)
	invoiceHandler := NewInvoiceHandler(deps.BillingUC)
	facturas.Post("/", invoiceHandler.Create)
	facturas.Get("/", invoiceHandler.List)
	facturas.Get("/:id", invoiceHandler.GetByID)

	// Dashboard (solo admin)
	dashboardHandler := NewDashboardHandler(deps.AnalyticsUC)
	protected.Get("/dashboard", adminOnly, dashboardHandler.Stats)
}
