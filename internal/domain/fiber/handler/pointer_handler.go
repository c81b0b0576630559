package handler

import (
	"github.com/fadilmartias/interview-coach/internal/dto"
	"github.com/fadilmartias/interview-coach/internal/middleware"
	"github.com/fadilmartias/interview-coach/internal/usecase"
	"github.com/fadilmartias/interview-coach/internal/util"
	"github.com/gofiber/fiber/v2"
)

type PointerHandler struct {
	uc *usecase.ReconciliationUsecase
}

func NewPointerHandler(uc *usecase.ReconciliationUsecase) *PointerHandler {
	return &PointerHandler{uc: uc}
}

func (h *PointerHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/pointers", h.List)
	r.Post("/pointers", h.Create)
	r.Post("/pointers/approve", h.Approve)
	r.Put("/pointers/:id", h.Update)
	r.Delete("/pointers/:id", h.Delete)
	r.Post("/pointers/:id/complete", h.Complete)
	r.Post("/pointers/:id/reopen", h.Reopen)
	r.Post("/pointers/:id/check", h.Check)
	r.Get("/pointers/:id/history", h.History)
}

func (h *PointerHandler) List(c *fiber.Ctx) error {
	pointers, err := h.uc.List(c.UserContext(), middleware.OwnerID(c))
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to get pointers")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get pointers",
		Data:    pointers,
	})
}

func (h *PointerHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePointerRequest
	if err := parseBody(c, &req); err != nil {
		return util.ErrorFromErr(c, err, "failed to create pointer")
	}
	p, err := h.uc.Create(c.UserContext(), middleware.OwnerID(c), req)
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to create pointer")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create pointer",
		Data:    p,
	})
}

// Approve applies a suggestion the user accepted from a feedback analysis.
func (h *PointerHandler) Approve(c *fiber.Ctx) error {
	var req dto.ApprovePointerRequest
	if err := parseBody(c, &req); err != nil {
		return util.ErrorFromErr(c, err, "failed to approve suggestion")
	}
	p, err := h.uc.Apply(c.UserContext(), req.Suggestion, middleware.OwnerID(c))
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to approve suggestion")
	}
	code := fiber.StatusCreated
	if req.Suggestion.TargetsExisting() {
		code = fiber.StatusOK
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    code,
		Message: "Success approve suggestion",
		Data:    p,
	})
}

func (h *PointerHandler) Update(c *fiber.Ctx) error {
	id, err := pointerID(c)
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to update pointer")
	}
	var req dto.UpdatePointerRequest
	if err := parseBody(c, &req); err != nil {
		return util.ErrorFromErr(c, err, "failed to update pointer")
	}
	p, err := h.uc.Update(c.UserContext(), id, middleware.OwnerID(c), req)
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to update pointer")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update pointer",
		Data:    p,
	})
}

func (h *PointerHandler) Delete(c *fiber.Ctx) error {
	id, err := pointerID(c)
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to delete pointer")
	}
	if err := h.uc.Delete(c.UserContext(), id, middleware.OwnerID(c)); err != nil {
		return util.ErrorFromErr(c, err, "failed to delete pointer")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete pointer",
	})
}

func (h *PointerHandler) Complete(c *fiber.Ctx) error {
	id, err := pointerID(c)
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to complete pointer")
	}
	p, err := h.uc.MarkComplete(c.UserContext(), id, middleware.OwnerID(c))
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to complete pointer")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success complete pointer",
		Data:    p,
	})
}

func (h *PointerHandler) Reopen(c *fiber.Ctx) error {
	id, err := pointerID(c)
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to reopen pointer")
	}
	var req dto.ReopenPointerRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return util.ErrorFromErr(c, err, "failed to reopen pointer")
		}
	}
	p, err := h.uc.Reopen(c.UserContext(), id, middleware.OwnerID(c), req.Reason)
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to reopen pointer")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success reopen pointer",
		Data:    p,
	})
}

func (h *PointerHandler) Check(c *fiber.Ctx) error {
	id, err := pointerID(c)
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to check pointer")
	}
	var req dto.CheckCompletionRequest
	if err := parseBody(c, &req); err != nil {
		return util.ErrorFromErr(c, err, "failed to check pointer")
	}
	result, err := h.uc.CheckCompletion(c.UserContext(), id, middleware.OwnerID(c), req.Feedback)
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to check pointer")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success check pointer",
		Data:    result,
	})
}

func (h *PointerHandler) History(c *fiber.Ctx) error {
	id, err := pointerID(c)
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to get pointer history")
	}
	history, err := h.uc.History(c.UserContext(), id, middleware.OwnerID(c))
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to get pointer history")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get pointer history",
		Data:    history,
	})
}
