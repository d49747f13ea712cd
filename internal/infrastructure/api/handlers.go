package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maalberto-engineer/IoT-Data-Generator/internal/application"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/entities"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/domain/ports"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/pkg/logger"
)

// DatasetService is the dataset lifecycle surface the handlers need.
type DatasetService interface {
	StartGeneration(ctx context.Context) error
	Status() application.RunStatus
	Current() *entities.Dataset
	Summary() *entities.DatasetSummary
	Preview(rows int) ([][]string, error)
}

// ExportService serializes the current dataset into downloadable files.
type ExportService interface {
	ExportJSON(ctx context.Context, dataset *entities.Dataset) ([]byte, string, error)
	ExportCSV(ctx context.Context, dataset *entities.Dataset) ([]byte, string, error)
	ExportExcel(ctx context.Context, dataset *entities.Dataset) ([]byte, string, error)
}

type APIHandler struct {
	datasetService DatasetService
	exportService  ExportService
	plotRenderer   ports.PlotRenderer
	storage        ports.ObjectStorage
	previewRows    int
	logger         logger.Logger
}

func NewAPIHandler(
	datasetService DatasetService,
	exportService ExportService,
	plotRenderer ports.PlotRenderer,
	storage ports.ObjectStorage,
	previewRows int,
) *APIHandler {
	return &APIHandler{
		datasetService: datasetService,
		exportService:  exportService,
		plotRenderer:   plotRenderer,
		storage:        storage,
		previewRows:    previewRows,
		logger:         logger.New("info", "development").WithField("component", "api_handler"),
	}
}

// GenerateDataset kicks off a background generation run. The run is
// asynchronous; poll the status endpoint for progress.
func (h *APIHandler) GenerateDataset(c *gin.Context) {
	if err := h.datasetService.StartGeneration(context.Background()); err != nil {
		if errors.Is(err, application.ErrGenerationInProgress) {
			h.respondError(c, http.StatusConflict, err.Error())
			return
		}
		h.respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to start generation: %v", err))
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Data generation started",
		"status":  h.datasetService.Status(),
	})
}

func (h *APIHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.datasetService.Status())
}

// GetPreview returns the first readings grid, one row per user.
func (h *APIHandler) GetPreview(c *gin.Context) {
	rows := h.previewRows
	if rowsParam := c.Query("rows"); rowsParam != "" {
		parsed, err := strconv.Atoi(rowsParam)
		if err != nil || parsed <= 0 {
			h.respondError(c, http.StatusBadRequest, "rows parameter must be a positive integer")
			return
		}
		rows = parsed
	}

	preview, err := h.datasetService.Preview(rows)
	if err != nil {
		if errors.Is(err, application.ErrNoData) {
			h.respondError(c, http.StatusNotFound, err.Error())
			return
		}
		h.respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to build preview: %v", err))
		return
	}

	c.JSON(http.StatusOK, PreviewResponse{
		Columns: application.PreviewColumns,
		Rows:    preview,
	})
}

func (h *APIHandler) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.datasetService.Summary())
}

// GetSummaryText renders the summary as the plain text statistics report.
func (h *APIHandler) GetSummaryText(c *gin.Context) {
	c.String(http.StatusOK, h.datasetService.Summary().Text())
}

func (h *APIHandler) ExportJSON(c *gin.Context) {
	h.export(c, application.ContentTypeJSON, h.exportService.ExportJSON)
}

func (h *APIHandler) ExportCSV(c *gin.Context) {
	h.export(c, application.ContentTypeCSV, h.exportService.ExportCSV)
}

func (h *APIHandler) ExportExcel(c *gin.Context) {
	h.export(c, application.ContentTypeXLSX, h.exportService.ExportExcel)
}

func (h *APIHandler) export(
	c *gin.Context,
	contentType string,
	exportFn func(ctx context.Context, dataset *entities.Dataset) ([]byte, string, error),
) {
	dataset := h.datasetService.Current()
	if dataset == nil {
		h.respondError(c, http.StatusNotFound, application.ErrNoData.Error())
		return
	}

	data, fileName, err := exportFn(c.Request.Context(), dataset)
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to export dataset: %v", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
	c.Data(http.StatusOK, contentType, data)
}

// GetPlot renders one of the three fixed plot variants over the current
// dataset. The format query selects png (default), svg or pdf.
func (h *APIHandler) GetPlot(c *gin.Context) {
	variant := ports.PlotVariant(c.Param("variant"))
	switch variant {
	case ports.PlotOutsideTempHistogram, ports.PlotTempComparison, ports.PlotAllDistributions:
	default:
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("unknown plot variant %q, use a, b or c", string(variant)))
		return
	}

	format := ports.ImageFormat(c.DefaultQuery("format", string(ports.FormatPNG)))
	switch format {
	case ports.FormatPNG, ports.FormatSVG, ports.FormatPDF:
	default:
		h.respondError(c, http.StatusBadRequest, fmt.Sprintf("unknown image format %q, use png, svg or pdf", string(format)))
		return
	}

	dataset := h.datasetService.Current()
	if dataset == nil {
		h.respondError(c, http.StatusNotFound, application.ErrNoData.Error())
		return
	}

	data, contentType, err := h.plotRenderer.Render(c.Request.Context(), variant, format, dataset.FlattenReadings())
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to render plot: %v", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"iot_plot_%s.%s\"", string(variant), string(format)))
	c.Data(http.StatusOK, contentType, data)
}

func (h *APIHandler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	healthStatus := HealthResponse{
		Status:  "healthy",
		Version: "1.0.0",
		Time:    time.Now(),
		Services: map[string]string{
			"api":     "healthy",
			"dataset": string(h.datasetService.Status().State),
		},
	}

	if h.storage != nil {
		if err := h.storage.HealthCheck(ctx); err != nil {
			healthStatus.Status = "degraded"
			healthStatus.Services["storage"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			healthStatus.Services["storage"] = "healthy"
		}
	}

	c.JSON(http.StatusOK, healthStatus)
}

func (h *APIHandler) respondError(c *gin.Context, status int, message string) {
	h.logger.Errorf("HTTP %d: %s", status, message)
	c.JSON(status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Time:    time.Now(),
	})
}

type PreviewResponse struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Time     time.Time         `json:"time"`
	Services map[string]string `json:"services"`
}
