package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/event-marketplace/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Vendors        *handlers.VendorsHandler
	Events         *handlers.EventsHandler
	Reviews        *handlers.ReviewsHandler
	Chats          *handlers.ChatsHandler
	Contracts      *handlers.ContractsHandler
	Admin          *handlers.AdminHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Groups that mix public and protected routes attach the auth
// middleware per route, since group middleware in fiber applies to the whole prefix.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authed := cfg.AuthMiddleware.Handle
	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Get("/", authed, auth.RequireAdmin(), cfg.Users.List)
	users.Get("/:id", authed, cfg.Users.Get)
	users.Put("/:id", authed, cfg.Users.Update)
	users.Delete("/:id", authed, cfg.Users.Delete)
	users.Get("/:id/activities", authed, cfg.Users.Activities)

	vendors := api.Group("/vendors")
	vendors.Get("/", cfg.Vendors.List)
	vendors.Get("/featured", cfg.Vendors.Featured)
	vendors.Get("/user/:userId", cfg.Vendors.GetByUser)
	vendors.Post("/register", authed, cfg.Vendors.Register)
	vendors.Get("/:id", cfg.Vendors.Get)
	vendors.Get("/:id/details", cfg.Vendors.Details)
	vendors.Put("/:id", authed, cfg.Vendors.Update)
	vendors.Get("/:vendorId/packages", cfg.Vendors.ListPackages)
	vendors.Post("/:vendorId/packages", authed, cfg.Vendors.CreatePackage)
	vendors.Put("/:vendorId/packages/:packageId", authed, cfg.Vendors.UpdatePackage)
	vendors.Delete("/:vendorId/packages/:packageId", authed, cfg.Vendors.DeletePackage)

	reviews := api.Group("/reviews")
	reviews.Get("/vendor/:vendorId", cfg.Reviews.ListByVendor)
	reviews.Get("/user/:userId", cfg.Reviews.ListByUser)
	reviews.Post("/", authed, cfg.Reviews.Create)
	reviews.Put("/:id", authed, cfg.Reviews.Update)
	reviews.Delete("/:id", authed, cfg.Reviews.Delete)

	events := api.Group("/events", authed)
	events.Post("/", cfg.Events.Create)
	events.Get("/user/:userId", cfg.Events.ListByUser)
	events.Get("/user/:userId/upcoming", cfg.Events.Upcoming)
	events.Get("/:id", cfg.Events.Get)
	events.Put("/:id", cfg.Events.Update)
	events.Delete("/:id", cfg.Events.Delete)
	events.Get("/:id/featured-vendors", cfg.Events.FeaturedVendors)

	chats := api.Group("/chats", authed)
	chats.Post("/", cfg.Chats.OpenWithVendor)
	chats.Post("/vendor", cfg.Chats.OpenWithPeerVendor)
	chats.Post("/support", cfg.Chats.OpenSupport)
	chats.Get("/user/:userId", cfg.Chats.ListByUser)
	chats.Get("/vendor/:vendorId", cfg.Chats.ListByVendor)
	chats.Get("/:id", cfg.Chats.Get)

	messages := api.Group("/messages", authed)
	messages.Post("/", cfg.Chats.SendMessage)
	messages.Get("/chat/:chatId", cfg.Chats.ListMessages)
	messages.Put("/chat/:chatId/seen", cfg.Chats.MarkSeen)
	messages.Get("/unread/count", cfg.Chats.UnreadCount)
	messages.Get("/unread", cfg.Chats.Unread)

	contracts := api.Group("/contracts", authed)
	contracts.Post("/", cfg.Contracts.Create)
	contracts.Get("/", auth.RequireAdmin(), cfg.Contracts.List)
	contracts.Get("/event/:eventId", cfg.Contracts.ListByEvent)
	contracts.Get("/user/:userId", cfg.Contracts.ListByUser)
	contracts.Get("/:id", cfg.Contracts.Get)

	payments := api.Group("/payments", authed)
	payments.Post("/", cfg.Contracts.Pay)
	payments.Get("/contract/:contractId", cfg.Contracts.ListPayments)
	payments.Get("/:id", cfg.Contracts.GetPayment)

	notifications := api.Group("/notifications", authed)
	notifications.Get("/", cfg.Notifications.List)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)
	notifications.Put("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Put("/:id/read", cfg.Notifications.MarkRead)
	notifications.Delete("/:id", cfg.Notifications.Delete)

	admin := api.Group("/admin", authed, auth.RequireAdmin())
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/vendors/pending", cfg.Admin.PendingVendors)
	admin.Get("/vendors/best", cfg.Admin.BestVendors)
	admin.Put("/vendors/:id/approve", cfg.Admin.ApproveVendor)
	admin.Put("/vendors/:id/reject", cfg.Admin.RejectVendor)
	admin.Get("/support-chats", cfg.Admin.SupportChats)
	admin.Get("/reports/growth", cfg.Admin.Growth)
}
