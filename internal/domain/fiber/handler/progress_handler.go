package handler

import (
	"github.com/fadilmartias/interview-coach/internal/middleware"
	"github.com/fadilmartias/interview-coach/internal/usecase"
	"github.com/fadilmartias/interview-coach/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ProgressHandler struct {
	uc *usecase.ProgressUsecase
}

func NewProgressHandler(uc *usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{uc: uc}
}

func (h *ProgressHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/progress", h.Progress)
}

func (h *ProgressHandler) Progress(c *fiber.Ctx) error {
	metrics, err := h.uc.Metrics(c.UserContext(), middleware.OwnerID(c))
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to get progress")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get progress",
		Data:    metrics,
	})
}
