package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/241luca/soccer-manager/internal/adapters/controller/http/handlers"
	"github.com/241luca/soccer-manager/internal/adapters/controller/http/middleware"
	"github.com/241luca/soccer-manager/internal/domain/permissions"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Organization  *handlers.OrganizationHandler
	Athlete       *handlers.AthleteHandler
	Team          *handlers.TeamHandler
	Match         *handlers.MatchHandler
	Payment       *handlers.PaymentHandler
	Document      *handlers.DocumentHandler
	Transport     *handlers.TransportHandler
	Notification  *handlers.NotificationHandler
	Dashboard     *handlers.DashboardHandler
}

// NewRouter wires the /api/v1 surface. Everything except the auth endpoints
// runs behind token authentication, tenant resolution, permission guards and
// the audit trail.
func NewRouter(h Handlers, mw *middleware.Middleware, audit func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.Auth.Login)
		r.Post("/login/super-admin", h.Auth.LoginSuperAdmin)
		r.Post("/register", h.Auth.Register)
		r.Post("/refresh", h.Auth.Refresh)
		r.Post("/logout", h.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate)
			r.Post("/switch-organization", h.Auth.SwitchOrganization)
			r.Get("/organizations", h.Auth.MyOrganizations)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Authenticate)
		r.Use(middleware.RequireOrganization)
		r.Use(audit)

		r.Get("/ws", h.Notification.WebSocket)
		r.With(middleware.RequirePermission(permissions.ReportView)).Get("/dashboard/stats", h.Dashboard.Stats)

		r.Route("/organization", func(r chi.Router) {
			r.With(middleware.RequirePermission(permissions.OrgSettingsView)).Get("/", h.Organization.Get)
			r.With(middleware.RequirePermission(permissions.OrgSettingsUpdate)).Put("/", h.Organization.Update)
			r.With(middleware.RequirePermission(permissions.OrgSettingsUpdate)).Post("/logo", h.Organization.UploadLogo)
			r.With(middleware.RequirePermission(permissions.UserView)).Get("/members", h.Organization.ListMembers)
			r.With(middleware.RequirePermission(permissions.UserInvite)).Post("/invitations", h.Organization.InviteUser)
			r.With(middleware.RequirePermission(permissions.UserUpdate)).Put("/members/{userID}/role", h.Organization.ChangeMemberRole)
			r.With(middleware.RequirePermission(permissions.UserDelete)).Delete("/members/{userID}", h.Organization.RemoveMember)
			r.With(middleware.RequirePermission(permissions.OrgSettingsUpdate)).Post("/transfer-ownership", h.Organization.TransferOwnership)

			r.With(middleware.RequirePermission(permissions.RoleView)).Get("/roles", h.Organization.ListRoles)
			r.With(middleware.RequirePermission(permissions.RoleCreate)).Post("/roles", h.Organization.CreateRole)
			r.With(middleware.RequirePermission(permissions.RoleUpdate)).Put("/roles/{roleID}", h.Organization.UpdateRole)
			r.With(middleware.RequirePermission(permissions.RoleDelete)).Delete("/roles/{roleID}", h.Organization.DeleteRole)
		})

		r.Route("/athletes", func(r chi.Router) {
			r.With(middleware.RequirePermission(permissions.AthleteView)).Get("/", h.Athlete.List)
			r.With(middleware.RequirePermission(permissions.AthleteView)).Get("/{id}", h.Athlete.Get)
			r.With(middleware.RequirePermission(permissions.AthleteCreate)).Post("/", h.Athlete.Create)
			r.With(middleware.RequirePermission(permissions.AthleteUpdate)).Put("/{id}", h.Athlete.Update)
			r.With(middleware.RequirePermission(permissions.AthleteDelete)).Delete("/{id}", h.Athlete.Delete)
		})

		r.Route("/teams", func(r chi.Router) {
			r.With(middleware.RequirePermission(permissions.TeamView)).Get("/", h.Team.List)
			r.With(middleware.RequirePermission(permissions.TeamView)).Get("/{id}", h.Team.Get)
			r.With(middleware.RequirePermission(permissions.TeamView)).Get("/{id}/roster", h.Team.Roster)
			r.With(middleware.RequirePermission(permissions.TeamCreate)).Post("/", h.Team.Create)
			r.With(middleware.RequirePermission(permissions.TeamUpdate)).Put("/{id}", h.Team.Update)
			r.With(middleware.RequirePermission(permissions.TeamDelete)).Delete("/{id}", h.Team.Delete)
		})

		r.Route("/matches", func(r chi.Router) {
			r.With(middleware.RequirePermission(permissions.MatchView)).Get("/", h.Match.List)
			r.With(middleware.RequirePermission(permissions.MatchView)).Get("/{id}", h.Match.Get)
			r.With(middleware.RequirePermission(permissions.MatchCreate)).Post("/", h.Match.Create)
			r.With(middleware.RequirePermission(permissions.MatchUpdate)).Put("/{id}", h.Match.Update)
			r.With(middleware.RequirePermission(permissions.MatchUpdate)).Put("/{id}/status", h.Match.UpdateStatus)
			r.With(middleware.RequirePermission(permissions.MatchUpdateResults)).Post("/{id}/result", h.Match.RecordResult)
			r.With(middleware.RequirePermission(permissions.MatchManageRoster)).Put("/{id}/roster", h.Match.ReplaceRoster)
			r.With(middleware.RequirePermission(permissions.MatchUpdateResults)).Put("/{id}/stats", h.Match.RecordStats)
			r.With(middleware.RequirePermission(permissions.MatchDelete)).Delete("/{id}", h.Match.Delete)
		})

		r.Route("/payments", func(r chi.Router) {
			r.With(middleware.RequirePermission(permissions.PaymentView)).Get("/", h.Payment.List)
			r.With(middleware.RequirePermission(permissions.PaymentView)).Get("/summary", h.Payment.Summary)
			r.With(middleware.RequirePermission(permissions.PaymentView)).Get("/types", h.Payment.ListTypes)
			r.With(middleware.RequirePermission(permissions.PaymentView)).Get("/{id}", h.Payment.Get)
			r.With(middleware.RequirePermission(permissions.PaymentCreate)).Post("/", h.Payment.Create)
			r.With(middleware.RequirePermission(permissions.PaymentUpdate)).Put("/{id}", h.Payment.Update)
			r.With(middleware.RequirePermission(permissions.PaymentRecord)).Post("/{id}/record", h.Payment.Record)
			r.With(middleware.RequirePermission(permissions.PaymentDelete)).Delete("/{id}", h.Payment.Delete)
		})

		r.Route("/documents", func(r chi.Router) {
			r.With(middleware.RequirePermission(permissions.DocumentView)).Get("/", h.Document.List)
			r.With(middleware.RequirePermission(permissions.DocumentView)).Get("/types", h.Document.ListTypes)
			r.With(middleware.RequirePermission(permissions.DocumentUpload)).Post("/types", h.Document.CreateType)
			r.With(middleware.RequirePermission(permissions.DocumentView)).Get("/{id}", h.Document.Get)
			r.With(middleware.RequirePermission(permissions.DocumentView)).Get("/{id}/download", h.Document.Download)
			r.With(middleware.RequirePermission(permissions.DocumentUpload)).Post("/", h.Document.Upload)
			r.With(middleware.RequirePermission(permissions.DocumentDelete)).Delete("/{id}", h.Document.Delete)
		})

		r.Route("/transport", func(r chi.Router) {
			r.With(middleware.RequirePermission(permissions.TransportView)).Get("/zones", h.Transport.ListZones)
			r.With(middleware.RequirePermission(permissions.TransportManage)).Post("/zones", h.Transport.CreateZone)
			r.With(middleware.RequirePermission(permissions.TransportManage)).Delete("/zones/{id}", h.Transport.DeleteZone)
			r.With(middleware.RequirePermission(permissions.TransportView)).Get("/buses", h.Transport.ListBuses)
			r.With(middleware.RequirePermission(permissions.TransportManage)).Post("/buses", h.Transport.CreateBus)
			r.With(middleware.RequirePermission(permissions.TransportView)).Get("/routes", h.Transport.ListRoutes)
			r.With(middleware.RequirePermission(permissions.TransportManage)).Post("/routes", h.Transport.CreateRoute)
			r.With(middleware.RequirePermission(permissions.TransportView)).Get("/utilization", h.Transport.Utilization)
			r.With(middleware.RequirePermission(permissions.TransportManage)).Post("/assignments", h.Transport.Assign)
			r.With(middleware.RequirePermission(permissions.TransportManage)).Delete("/assignments/{id}", h.Transport.Unassign)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.Notification.List)
			r.With(middleware.RequirePermission(permissions.NotificationSend)).Post("/", h.Notification.Create)
			r.Put("/{id}/read", h.Notification.MarkRead)
			r.Put("/read-all", h.Notification.MarkAllRead)
			r.Delete("/{id}", h.Notification.Delete)
			r.Delete("/", h.Notification.ClearAll)
			r.With(middleware.RequirePermission(permissions.NotificationManage)).Post("/sweep", h.Notification.TriggerSweep)
		})

		r.With(middleware.RequirePermission(permissions.AuditView)).Get("/audit", h.Dashboard.AuditLog)
	})

	return r
}
