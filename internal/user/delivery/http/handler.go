package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/dairy-ledger/internal/user/domain"
	"github.com/tair/dairy-ledger/internal/user/usecase/command"
	"github.com/tair/dairy-ledger/internal/user/usecase/query"
	"github.com/tair/dairy-ledger/pkg/httpx"
)

func init() {
	httpx.RegisterStatus(domain.ErrInvalidCredentials, http.StatusUnauthorized)
	httpx.RegisterStatus(domain.ErrAccountDisabled, http.StatusForbidden)
	httpx.RegisterStatus(domain.ErrWrongPassword, http.StatusBadRequest)
	httpx.RegisterStatus(domain.ErrUserTypeInUse, http.StatusConflict)
}

// UserHandler handles HTTP requests for staff users and user types
type UserHandler struct {
	createHandler         *command.CreateUserHandler
	loginHandler          *command.LoginUserHandler
	updateHandler         *command.UpdateUserHandler
	deleteHandler         *command.DeleteUserHandler
	changePasswordHandler *command.ChangePasswordHandler
	toggleActiveHandler   *command.ToggleActiveHandler

	createTypeHandler *command.CreateUserTypeHandler
	updateTypeHandler *command.UpdateUserTypeHandler
	deleteTypeHandler *command.DeleteUserTypeHandler

	getUserHandler *query.GetUserHandler
	listHandler    *query.ListUsersHandler
	listTypes      *query.ListUserTypesHandler
	statsHandler   *query.GetStatsHandler

	guard   *httpx.Guard
	metrics *httpx.Metrics
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	createHandler *command.CreateUserHandler,
	loginHandler *command.LoginUserHandler,
	updateHandler *command.UpdateUserHandler,
	deleteHandler *command.DeleteUserHandler,
	changePasswordHandler *command.ChangePasswordHandler,
	toggleActiveHandler *command.ToggleActiveHandler,
	createTypeHandler *command.CreateUserTypeHandler,
	updateTypeHandler *command.UpdateUserTypeHandler,
	deleteTypeHandler *command.DeleteUserTypeHandler,
	getUserHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
	listTypes *query.ListUserTypesHandler,
	statsHandler *query.GetStatsHandler,
	guard *httpx.Guard,
	metrics *httpx.Metrics,
) *UserHandler {
	return &UserHandler{
		createHandler:         createHandler,
		loginHandler:          loginHandler,
		updateHandler:         updateHandler,
		deleteHandler:         deleteHandler,
		changePasswordHandler: changePasswordHandler,
		toggleActiveHandler:   toggleActiveHandler,
		createTypeHandler:     createTypeHandler,
		updateTypeHandler:     updateTypeHandler,
		deleteTypeHandler:     deleteTypeHandler,
		getUserHandler:        getUserHandler,
		listHandler:           listHandler,
		listTypes:             listTypes,
		statsHandler:          statsHandler,
		guard:                 guard,
		metrics:               metrics,
	}
}

// RegisterRoutes registers the login endpoint and the users page
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	public := httpx.NewRoutes(router, nil, h.metrics, "")
	public.Handle(http.MethodPost, "/api/auth/login", h.Login)

	routes := httpx.NewRoutes(router, h.guard, h.metrics, httpx.PageUsers)

	routes.Handle(http.MethodGet, "/api/users", h.ListUsers)
	routes.Handle(http.MethodGet, "/api/users/stats", h.GetStats)
	routes.Handle(http.MethodGet, "/api/users/{id}", h.GetUser)
	routes.Handle(http.MethodPost, "/api/users", h.CreateUser)
	routes.Handle(http.MethodPut, "/api/users/{id}", h.UpdateUser)
	routes.Handle(http.MethodDelete, "/api/users/{id}", h.DeleteUser)
	routes.Handle(http.MethodPut, "/api/users/{id}/password", h.ChangePassword)
	routes.Handle(http.MethodPatch, "/api/users/{id}/active", h.ToggleActive)

	routes.Handle(http.MethodGet, "/api/user-types", h.ListUserTypes)
	routes.Handle(http.MethodPost, "/api/user-types", h.CreateUserType)
	routes.Handle(http.MethodPut, "/api/user-types/{id}", h.UpdateUserType)
	routes.Handle(http.MethodDelete, "/api/user-types/{id}", h.DeleteUserType)
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Login successful", resp)
}

type userRequest struct {
	Name     string          `json:"name"`
	Mobile   string          `json:"mobile"`
	Email    string          `json:"email"`
	Username string          `json:"username"`
	Password string          `json:"password"`
	Address  string          `json:"address"`
	UserType string          `json:"user_type"`
	UserPay  decimal.Decimal `json:"user_pay"`
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	user, err := h.createHandler.Handle(r.Context(), command.CreateUserCommand{
		Name:     req.Name,
		Mobile:   req.Mobile,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Address:  req.Address,
		UserType: req.UserType,
		UserPay:  req.UserPay,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusCreated, "User created successfully", user)
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var req userRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	user, err := h.updateHandler.Handle(r.Context(), command.UpdateUserCommand{
		ID:       id,
		Name:     req.Name,
		Mobile:   req.Mobile,
		Email:    req.Email,
		Address:  req.Address,
		UserType: req.UserType,
		UserPay:  req.UserPay,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "User updated successfully", user)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), id); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "User deleted successfully", nil)
}

// ChangePassword handles PUT /api/users/{id}/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	err = h.changePasswordHandler.Handle(r.Context(), command.ChangePasswordCommand{
		UserID:          id,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "Password changed successfully", nil)
}

// ToggleActive handles PATCH /api/users/{id}/active
func (h *UserHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	user, err := h.toggleActiveHandler.Handle(r.Context(), command.ToggleActiveCommand{UserID: id, IsActive: req.IsActive})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	message := "User deactivated successfully"
	if user.IsActive {
		message = "User activated successfully"
	}
	httpx.RespondOK(w, http.StatusOK, message, user)
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	user, err := h.getUserHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", user)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.listHandler.Handle(r.Context(), domain.ListFilter{
		Search:   r.URL.Query().Get("search"),
		UserType: r.URL.Query().Get("user_type"),
		Limit:    httpx.QueryInt(r, "limit"),
		Offset:   httpx.QueryInt(r, "offset"),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// GetStats handles GET /api/users/stats
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", stats)
}

type userTypeRequest struct {
	UserType string   `json:"user_type"`
	Pages    []string `json:"pages"`
	IsActive *bool    `json:"is_active"`
}

func (req userTypeRequest) active() bool {
	return req.IsActive == nil || *req.IsActive
}

// ListUserTypes handles GET /api/user-types
func (h *UserHandler) ListUserTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.listTypes.Handle(r.Context())
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "", map[string]interface{}{
		"user_types": types,
		"pages":      httpx.AllPages,
	})
}

// CreateUserType handles POST /api/user-types
func (h *UserHandler) CreateUserType(w http.ResponseWriter, r *http.Request) {
	var req userTypeRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	userType, err := h.createTypeHandler.Handle(r.Context(), command.UserTypeCommand{
		Name:     req.UserType,
		Pages:    req.Pages,
		IsActive: req.active(),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusCreated, "User type created successfully", userType)
}

// UpdateUserType handles PUT /api/user-types/{id}
func (h *UserHandler) UpdateUserType(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	var req userTypeRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	userType, err := h.updateTypeHandler.Handle(r.Context(), command.UserTypeCommand{
		ID:       id,
		Pages:    req.Pages,
		IsActive: req.active(),
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "User type updated successfully", userType)
}

// DeleteUserType handles DELETE /api/user-types/{id}
func (h *UserHandler) DeleteUserType(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	if err := h.deleteTypeHandler.Handle(r.Context(), id); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	httpx.RespondOK(w, http.StatusOK, "User type deleted successfully", nil)
}
