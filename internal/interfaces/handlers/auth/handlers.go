package auth

import (
	authsvc "gfg-stable-backend/internal/application/auth"
	"gfg-stable-backend/internal/middleware"
	"gfg-stable-backend/internal/pkg/response"
	"gfg-stable-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

const forgotPasswordMessage = "If an account exists with this email, you will receive password reset instructions."

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service *authsvc.Service
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register POST /api/auth/register. Public sign-up always creates a member.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var in authsvc.RegisterInput
	if err := validation.Body(c, &in); err != nil {
		return err
	}
	in.RoleID = nil
	result, err := h.Service.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "User registered successfully", result)
}

// Login POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var in authsvc.LoginInput
	if err := validation.Body(c, &in); err != nil {
		return err
	}
	result, err := h.Service.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return response.Success(c, "Login successful", result)
}

// ForgotPassword POST /api/auth/forgot-password. The reply never depends on whether the email exists.
func (h *Handlers) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := validation.Body(c, &req); err != nil {
		return err
	}
	if err := h.Service.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return err
	}
	return response.Success(c, forgotPasswordMessage, nil)
}

// ResetPassword POST /api/auth/reset-password
func (h *Handlers) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := validation.Body(c, &req); err != nil {
		return err
	}
	if err := h.Service.ResetPassword(c.UserContext(), req.Token, req.Password); err != nil {
		return err
	}
	return response.Success(c, "Password reset successfully", nil)
}

// Logout POST /api/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	if err := h.Service.Logout(c.UserContext(), middleware.GetToken(c)); err != nil {
		return err
	}
	return response.Success(c, "Logout successful", nil)
}

// Me GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	claims := middleware.GetUser(c)
	if claims == nil {
		return response.Unauthorized(c, "Access token required")
	}
	user, err := h.Service.GetCurrentUser(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return response.Success(c, "Current user retrieved successfully", user)
}

// UpdateProfile PUT /api/auth/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	claims := middleware.GetUser(c)
	if claims == nil {
		return response.Unauthorized(c, "Access token required")
	}
	var p authsvc.ProfileUpdate
	if err := validation.Body(c, &p); err != nil {
		return err
	}
	user, err := h.Service.UpdateProfile(c.UserContext(), claims.UserID, p)
	if err != nil {
		return err
	}
	return response.Success(c, "Profile updated successfully", user)
}

// ListUsers GET /api/auth/users
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	users, err := h.Service.GetAllUsers(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, "Users retrieved successfully", users)
}

// ListMembers GET /api/auth/members
func (h *Handlers) ListMembers(c *fiber.Ctx) error {
	members, err := h.Service.GetAllMembers(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, "Members retrieved successfully", members)
}

// UpdateUserRole PUT /api/auth/users/:id/role
func (h *Handlers) UpdateUserRole(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req authsvc.RoleUpdate
	if err := validation.Body(c, &req); err != nil {
		return err
	}
	user, err := h.Service.UpdateUserRole(c.UserContext(), id, req.RoleID)
	if err != nil {
		return err
	}
	return response.Success(c, "User role updated successfully", user)
}

// DeactivateUser DELETE /api/auth/users/:id
func (h *Handlers) DeactivateUser(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.DeactivateUser(c.UserContext(), id); err != nil {
		return err
	}
	return response.Success(c, "User deactivated successfully", nil)
}

// CreateMember POST /api/auth/admin/create-member. Admins may pick the role.
func (h *Handlers) CreateMember(c *fiber.Ctx) error {
	var in authsvc.RegisterInput
	if err := validation.Body(c, &in); err != nil {
		return err
	}
	result, err := h.Service.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Member created successfully", result.User)
}

// UpdateMember PUT /api/auth/members/:id
func (h *Handlers) UpdateMember(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	var m authsvc.MemberUpdate
	if err := validation.Body(c, &m); err != nil {
		return err
	}
	user, err := h.Service.UpdateMember(c.UserContext(), id, m)
	if err != nil {
		return err
	}
	return response.Success(c, "Member updated successfully", user)
}

// DeleteMember DELETE /api/auth/members/:id
func (h *Handlers) DeleteMember(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.DeleteMember(c.UserContext(), id); err != nil {
		return err
	}
	return response.Success(c, "Member deleted successfully", nil)
}
