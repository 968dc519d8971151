package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"

	"github.com/ecoloop/backend/internal/llm/extract"
	"github.com/ecoloop/backend/internal/llm/prompt"
	"github.com/ecoloop/backend/internal/models"
	"github.com/ecoloop/backend/internal/usecase"
)

// maxImageBytes caps uploads to /predictimage.
const maxImageBytes = 8 << 20

type AnalysisController interface {
	PredictImage(c echo.Context) error
	Metrics(c echo.Context) error
	Recycling(c echo.Context) error
	SupplyChain(c echo.Context) error
}

type analysisController struct {
	analysisUsecase usecase.AnalysisUsecase
}

func NewAnalysisController(analysisUsecase usecase.AnalysisUsecase) AnalysisController {
	return &analysisController{
		analysisUsecase: analysisUsecase,
	}
}

func (ac *analysisController) PredictImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing image file")
	}
	if fileHeader.Size > maxImageBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}

	mimeType := fileHeader.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(mimeType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "file must be an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read image file")
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read image file")
	}

	ctx := c.Request().Context()
	text, err := ac.analysisUsecase.PredictImage(ctx, mimeType, image)
	if err != nil {
		return upstreamError(ctx, "predict image", err)
	}

	return c.String(http.StatusOK, text)
}

func (ac *analysisController) Metrics(c echo.Context) error {
	attrs, err := bindAttributes(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	parsed, err := ac.analysisUsecase.Metrics(ctx, attrs)
	if err != nil {
		return upstreamError(ctx, "metrics", err)
	}

	return c.JSON(http.StatusOK, parsed)
}

func (ac *analysisController) Recycling(c echo.Context) error {
	attrs, err := bindAttributes(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	parsed, err := ac.analysisUsecase.Recycling(ctx, attrs)
	if err != nil {
		return upstreamError(ctx, "recycling", err)
	}

	return c.JSON(http.StatusOK, parsed)
}

func (ac *analysisController) SupplyChain(c echo.Context) error {
	var req models.SupplyChainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "productName is required")
	}

	ctx := c.Request().Context()
	sections, err := ac.analysisUsecase.SupplyChain(ctx, req.ProductName)
	if err != nil {
		return upstreamError(ctx, "supply chain", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"supplyChainPrediction": sections,
	})
}

func bindAttributes(c echo.Context) (prompt.Attributes, error) {
	var req models.AnalysisRequest
	if err := c.Bind(&req); err != nil {
		return prompt.Attributes{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return prompt.Attributes{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return prompt.Attributes{
		Name:     req.Name,
		Size:     req.Size,
		Type:     req.Type,
		Material: req.Material,
		Cost:     req.Cost,
	}, nil
}

// upstreamError keeps unparseable model replies distinct from transport
// faults in the logs, but both surface to the client as a 500.
func upstreamError(ctx context.Context, op string, err error) error {
	var parseErr *extract.ParseError
	if errors.As(err, &parseErr) {
		log.Errorw(ctx, "model reply was not parseable", "op", op, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "model returned an unparseable response")
	}
	log.Errorw(ctx, "model request failed", "op", op, "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "model request failed")
}
