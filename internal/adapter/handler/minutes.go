package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/errors"
	minutesdto "github.com/johnquangdev/meeting-minutes/internal/adapter/dto/minutes"
	"github.com/johnquangdev/meeting-minutes/internal/adapter/presenter"
	uerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// Minutes handles the minutes generation and retrieval endpoints.
type Minutes struct {
	service *minutes.Service
	report  *presenter.Report
	cfg     *config.PipelineConfig
	logger  *zap.Logger
}

// NewMinutes creates a new minutes handler
func NewMinutes(service *minutes.Service, cfg *config.PipelineConfig, logger *zap.Logger) *Minutes {
	return &Minutes{
		service: service,
		report:  presenter.NewReport(cfg.GroupActionsByOwner),
		cfg:     cfg,
		logger:  logger,
	}
}

// Generate handles POST /v1/minutes
func (h *Minutes) Generate(c echo.Context) error {
	var req minutesdto.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	out, err := h.service.Generate(c.Request().Context(), req.Title, req.Transcript)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMinutesResponse(out.Record, out.Cached))
}

// GenerateFromStorage handles POST /v1/minutes/from-storage
func (h *Minutes) GenerateFromStorage(c echo.Context) error {
	var req minutesdto.GenerateFromStorageRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	out, err := h.service.GenerateFromStorage(c.Request().Context(), req.Title, req.ObjectKey)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMinutesResponse(out.Record, out.Cached))
}

// Get handles GET /v1/minutes/:id
func (h *Minutes) Get(c echo.Context) error {
	record, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMinutesResponse(record, false))
}

// List handles GET /v1/minutes
func (h *Minutes) List(c echo.Context) error {
	var req minutesdto.ListRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	records, total, err := h.service.List(c.Request().Context(), req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToListResponse(records, total, req.Page, req.PageSize))
}

// Report handles GET /v1/minutes/:id/report?format=markdown
func (h *Minutes) Report(c echo.Context) error {
	id := c.Param("id")
	format := c.QueryParam("format")
	if format == "" {
		format = h.cfg.OutputFormat
	}

	record, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := record.GetMinutes()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	rendered, err := h.report.Render(m, format)
	if err != nil {
		if stdErrors.Is(err, uerrors.ErrInvalidFormat) {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("unsupported report format: "+format))
		}
		return HandleError(h.logger, c, errors.ErrReportExportFailed(format, err))
	}

	resp := &minutesdto.ReportResponse{
		ID:     id,
		Format: format,
		Report: rendered,
	}

	if c.QueryParam("store") == "true" {
		objectKey, err := h.service.StoreReport(c.Request().Context(), id, format, rendered)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		resp.ObjectKey = objectKey
	}

	return HandleSuccess(h.logger, c, resp)
}
