package handler

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/fadilmartias/interview-coach/internal/dto"
	"github.com/fadilmartias/interview-coach/internal/middleware"
	"github.com/fadilmartias/interview-coach/internal/usecase"
	"github.com/fadilmartias/interview-coach/internal/util"
	"github.com/gofiber/fiber/v2"
)

const maxUploadSize = 5 * 1024 * 1024

type FeedbackHandler struct {
	uc *usecase.FeedbackUsecase
}

func NewFeedbackHandler(uc *usecase.FeedbackUsecase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

func (h *FeedbackHandler) RegisterRoutes(r fiber.Router) {
	analyze := middleware.RateLimiter(10, time.Minute)
	r.Post("/feedback", analyze, h.Submit)
	r.Post("/feedback/upload", analyze, h.Upload)
	r.Get("/feedback-sessions", h.Sessions)
}

func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitFeedbackRequest
	if err := parseBody(c, &req); err != nil {
		return util.ErrorFromErr(c, err, "failed to submit feedback")
	}
	return h.submit(c, req)
}

// Upload accepts a PDF with the feedback text, read with the same path as Submit.
func (h *FeedbackHandler) Upload(c *fiber.Ctx) error {
	text, err := h.readUpload(c, "file")
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to read feedback file")
	}
	req := dto.SubmitFeedbackRequest{
		Feedback:           text,
		DevilsAdvocateMode: c.FormValue("devils_advocate_mode") == "true",
	}
	return h.submit(c, req)
}

func (h *FeedbackHandler) submit(c *fiber.Ctx, req dto.SubmitFeedbackRequest) error {
	result, err := h.uc.Submit(c.UserContext(), middleware.OwnerID(c), req)
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to analyze feedback")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success analyze feedback",
		Data:    result,
	})
}

func (h *FeedbackHandler) readUpload(c *fiber.Ctx, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", &apperror.ValidationError{Message: field + " file is required", Err: err}
	}
	if file.Size > maxUploadSize {
		return "", apperror.NewValidationError(field+" file size is too large (max 5MB)", nil)
	}
	if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".pdf" {
		return "", apperror.NewValidationError("unsupported "+field+" file type", map[string]string{field: "only .pdf is accepted"})
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	text, err := util.ExtractPDFText(data)
	if err != nil {
		return "", &apperror.ValidationError{Message: "failed to extract " + field + " text", Err: err}
	}
	return text, nil
}

func (h *FeedbackHandler) Sessions(c *fiber.Ctx) error {
	sessions, pagination, err := h.uc.ListSessions(c.UserContext(), middleware.OwnerID(c), c.QueryInt("page", 1), c.QueryInt("page_size", usecase.DefaultPageSize))
	if err != nil {
		return util.ErrorFromErr(c, err, "failed to get feedback sessions")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get feedback sessions",
		Data:       sessions,
		Pagination: pagination,
	})
}
