package horses

import (
	horsesvc "gfg-stable-backend/internal/application/horses"
	"gfg-stable-backend/internal/constants"
	"gfg-stable-backend/internal/middleware"
	"gfg-stable-backend/internal/pkg/apperr"
	"gfg-stable-backend/internal/pkg/response"
	"gfg-stable-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

var errPurchaseForOther = apperr.Forbidden("Members may only purchase shares for themselves")

// Handlers holds dependencies for horse endpoints.
type Handlers struct {
	Service *horsesvc.Service
}

// List GET /api/horses
func (h *Handlers) List(c *fiber.Ctx) error {
	var f horsesvc.HorseFilters
	if err := validation.Query(c, &f); err != nil {
		return err
	}
	page, err := h.Service.GetHorses(c.UserContext(), f)
	if err != nil {
		return err
	}
	return response.Paginated(c, page.Horses, response.Pagination{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	})
}

// Get GET /api/horses/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	horse, err := h.Service.GetHorseByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.Success(c, "", horse)
}

// Stats GET /api/horses/stats/overview
func (h *Handlers) Stats(c *fiber.Ctx) error {
	stats, err := h.Service.GetStatistics(c.UserContext())
	if err != nil {
		return err
	}
	return response.Success(c, "", stats)
}

// ByMember GET /api/horses/member/:memberId
func (h *Handlers) ByMember(c *fiber.Ctx) error {
	memberID, err := validation.ParamID(c, "memberId")
	if err != nil {
		return err
	}
	horses, err := h.Service.GetHorsesByMember(c.UserContext(), memberID)
	if err != nil {
		return err
	}
	return response.Success(c, "", horses)
}

// Create POST /api/horses
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req horsesvc.CreateHorseRequest
	if err := validation.Body(c, &req); err != nil {
		return err
	}
	horse, err := h.Service.CreateHorse(c.UserContext(), req, middleware.GetUser(c).UserID)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Horse created successfully", horse)
}

// Update PUT /api/horses/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req horsesvc.UpdateHorseRequest
	if err := validation.Body(c, &req); err != nil {
		return err
	}
	horse, err := h.Service.UpdateHorse(c.UserContext(), id, req, middleware.GetUser(c).UserID)
	if err != nil {
		return err
	}
	return response.Success(c, "Horse updated successfully", horse)
}

// Delete DELETE /api/horses/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Service.DeleteHorse(c.UserContext(), id); err != nil {
		return err
	}
	return response.Success(c, "Horse deleted successfully", nil)
}

// Purchase POST /api/horses/:id/purchase. memberId defaults to the caller;
// buying for someone else needs a staff role.
func (h *Handlers) Purchase(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	user := middleware.GetUser(c)
	var req horsesvc.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return validation.ErrInvalidBody
	}
	if req.MemberID == 0 {
		req.MemberID = user.UserID
	}
	if err := validation.Check(&req); err != nil {
		return err
	}
	if req.MemberID != user.UserID && !constants.AllowedRole(constants.PurchaseForMembers, user.RoleName) {
		return errPurchaseForOther
	}
	ownership, err := h.Service.PurchaseShares(c.UserContext(), id, req, user.UserID)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Shares purchased successfully", ownership)
}

// UpdatePerformance PATCH /api/horses/:id/performance
func (h *Handlers) UpdatePerformance(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req horsesvc.UpdatePerformanceRequest
	if err := validation.Body(c, &req); err != nil {
		return err
	}
	update, err := h.Service.UpdatePerformance(c.UserContext(), id, req, middleware.GetUser(c).UserID)
	if err != nil {
		return err
	}
	return response.Success(c, "Performance updated successfully", update)
}

// UpdateFinancials PATCH /api/horses/:id/financials
func (h *Handlers) UpdateFinancials(c *fiber.Ctx) error {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		return err
	}
	var req horsesvc.UpdateFinancialsRequest
	if err := validation.Body(c, &req); err != nil {
		return err
	}
	update, err := h.Service.UpdateFinancials(c.UserContext(), id, req, middleware.GetUser(c).UserID)
	if err != nil {
		return err
	}
	return response.Success(c, "Financials updated successfully", update)
}
