package handlers

// API endpoint request structures

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type FavoriteRequest struct {
	ReportID string `json:"report_id" binding:"required"`
}

type SetUserActiveRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Active *bool  `json:"active" binding:"required"`
}

type SetUserRoleRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=admin user"`
}
