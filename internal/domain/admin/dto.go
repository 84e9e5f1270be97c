package admin

import "time"

// LoginRequest represents admin login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`

	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     PrincipalInfo `json:"admin"`
}

// PrincipalInfo is the public view of a principal; never carries the digest.
type PrincipalInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CreatePrincipalRequest is used by the setup routine and the operator CLI.
type CreatePrincipalRequest struct {
	Username string
	Password string
	Role     string
}

// Module is a dashboard entry.
type Module struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// DashboardModules lists what an authenticated admin can manage.
var DashboardModules = []Module{
	{ID: "hero-content", Name: "Hero Content", Description: "Manage main page hero section content in all languages", Icon: "🏠"},
	{ID: "products", Name: "Products", Description: "Manage products, pricing, and inventory in all languages", Icon: "🛍️"},
	{ID: "thoughts", Name: "User Thoughts", Description: "Review and moderate thoughts shared by visitors", Icon: "💬"},
}
