package util

import (
	"errors"
	"runtime/debug"

	"github.com/fadilmartias/interview-coach/internal/apperror"
	"github.com/fadilmartias/interview-coach/internal/config"
	"github.com/fadilmartias/interview-coach/internal/response"
	"github.com/gofiber/fiber/v2"
)

type SuccessResponseFormat struct {
	Code       int
	Message    string
	Data       any
	Pagination *response.Pagination
	Meta       any
}

type OrderedSuccessResponse struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Meta       any                  `json:"meta,omitempty"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
	Data       any                  `json:"data,omitempty"`
}

type ErrorResponseFormat struct {
	Code       int
	Kind       string
	Message    string
	DevMessage string
	Details    any
	Trace      string
}

type OrderedErrorResponse struct {
	Success    bool   `json:"success"`
	Kind       string `json:"kind,omitempty"`
	Message    string `json:"message"`
	DevMessage string `json:"dev_message,omitempty"`
	Details    any    `json:"details,omitempty"`
	Trace      string `json:"trace,omitempty"`
}

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *fiber.Ctx, params SuccessResponseFormat) error {
	code := params.Code
	if code == 0 {
		code = fiber.StatusOK
	}
	response := OrderedSuccessResponse{
		Success:    true,
		Message:    params.Message,
		Data:       params.Data,
		Pagination: params.Pagination,
		Meta:       params.Meta,
	}
	return c.Status(code).JSON(response)
}

// ErrorResponse writes the standard error envelope. Dev details are omitted in production.
func ErrorResponse(c *fiber.Ctx, params ErrorResponseFormat, errs ...error) error {
	response := OrderedErrorResponse{
		Success: false,
		Kind:    params.Kind,
		Message: params.Message,
	}
	if params.Details != nil {
		response.Details = params.Details
	}
	if !config.LoadAppConfig().IsProduction() {
		if len(errs) > 0 && errs[0] != nil {
			response.DevMessage = errs[0].Error()
			response.Trace = string(debug.Stack())
		}

		if params.DevMessage != "" {
			response.DevMessage = params.DevMessage
		}
		if params.Trace != "" {
			response.Trace = params.Trace
		}
	}

	errorCode := params.Code
	if params.Code == 0 {
		errorCode = fiber.StatusInternalServerError
	}
	return c.Status(errorCode).JSON(response)
}

// ErrorFromErr maps an apperror kind to a status and a user-facing message.
// A ConfigError wins over the analysis that wrapped it. fallback is used for
// errors outside the taxonomy.
func ErrorFromErr(c *fiber.Ctx, err error, fallback string) error {
	format := ErrorResponseFormat{Code: fiber.StatusInternalServerError, Kind: "internal", Message: fallback}

	var (
		validationErr   *apperror.ValidationError
		notFoundErr     *apperror.NotFoundError
		unauthorizedErr *apperror.UnauthorizedError
		configErr       *apperror.ConfigError
		gatewayErr      *apperror.GatewayError
		decodeErr       *apperror.DecodeError
		analysisErr     *apperror.AnalysisError
	)
	switch {
	case errors.As(err, &validationErr):
		format = ErrorResponseFormat{Code: fiber.StatusBadRequest, Kind: "validation", Message: validationErr.Message}
		if len(validationErr.Fields) > 0 {
			format.Details = validationErr.Fields
		}
	case errors.As(err, &notFoundErr):
		format = ErrorResponseFormat{Code: fiber.StatusNotFound, Kind: "not_found", Message: notFoundErr.Error()}
	case errors.As(err, &unauthorizedErr):
		format = ErrorResponseFormat{Code: fiber.StatusUnauthorized, Kind: "unauthorized", Message: unauthorizedErr.Error()}
	case errors.As(err, &configErr):
		format = ErrorResponseFormat{Code: fiber.StatusServiceUnavailable, Kind: "config", Message: configErr.Error()}
	case errors.As(err, &analysisErr):
		format = ErrorResponseFormat{Code: fiber.StatusBadGateway, Kind: "analysis", Message: analysisErr.Message}
	case errors.As(err, &gatewayErr):
		format = ErrorResponseFormat{Code: fiber.StatusBadGateway, Kind: "gateway", Message: "language model request failed"}
	case errors.As(err, &decodeErr):
		format = ErrorResponseFormat{Code: fiber.StatusBadGateway, Kind: "decode", Message: "language model returned invalid JSON"}
	}
	return ErrorResponse(c, format, err)
}
