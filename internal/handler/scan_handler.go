package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dimos082/website-monitor/internal/model"
	"github.com/dimos082/website-monitor/internal/repository"
	"github.com/dimos082/website-monitor/internal/service"
)

type ScanHandler struct {
	scanService service.ScanService
}

func NewScanHandler(svc service.ScanService) *ScanHandler { return &ScanHandler{scanService: svc} }

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(v), true
}

func paginationFromQuery(c *gin.Context) repository.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return repository.Pagination{Page: page, PageSize: size}
}

// @Summary Create scan and queue it
// @Tags    scans
// @Accept  json
// @Produce json
// @Param   input body model.CreateScanInput true "site to scan"
// @Success 201 {object} map[string]uint "{id}"
// @Failure 400 {object} map[string]string "error"
// @Security JWTAuth
// @Security BasicAuth
// @Router  /api/v1/scans [post]
func (h *ScanHandler) Create(c *gin.Context) {
	var in model.CreateScanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	uidAny, _ := c.Get("user_id")
	userID, _ := uidAny.(uint)

	id, err := h.scanService.Create(userID, &in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary List scans (paginated)
// @Tags    scans
// @Produce json
// @Param   page      query int false "page"
// @Param   page_size query int false "page_size"
// @Success 200 {array} model.ScanDTO
// @Security JWTAuth
// @Security BasicAuth
// @Router  /api/v1/scans [get]
func (h *ScanHandler) List(c *gin.Context) {
	uidAny, _ := c.Get("user_id")
	userID, _ := uidAny.(uint)

	items, err := h.scanService.List(userID, paginationFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Get one scan
// @Tags    scans
// @Produce json
// @Param   id path int true "Scan ID"
// @Success 200 {object} model.ScanDTO
// @Security JWTAuth
// @Security BasicAuth
// @Router  /api/v1/scans/{id} [get]
func (h *ScanHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	dto, err := h.scanService.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// @Summary Delete scan
// @Tags    scans
// @Produce json
// @Param   id path int true "Scan ID"
// @Success 200 {object} map[string]string "deleted"
// @Security JWTAuth
// @Security BasicAuth
// @Router  /api/v1/scans/{id} [delete]
func (h *ScanHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.scanService.Delete(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// @Summary Queue scan again
// @Tags    scans
// @Produce json
// @Param   id path int true "Scan ID"
// @Success 202 {object} map[string]string "queued"
// @Security JWTAuth
// @Security BasicAuth
// @Router  /api/v1/scans/{id}/start [patch]
func (h *ScanHandler) Start(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.scanService.Start(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": model.StatusQueued})
}

// @Summary Stop queued or running scan
// @Tags    scans
// @Produce json
// @Param   id path int true "Scan ID"
// @Success 202 {object} map[string]string "stopped"
// @Security JWTAuth
// @Security BasicAuth
// @Router  /api/v1/scans/{id}/stop [patch]
func (h *ScanHandler) Stop(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.scanService.Stop(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": model.StatusStopped})
}

// @Summary Broken-image findings of a scan (paginated)
// @Tags    scans
// @Produce json
// @Param   id        path  int true  "Scan ID"
// @Param   page      query int false "page"
// @Param   page_size query int false "page_size"
// @Success 200 {array} model.FindingDTO
// @Security JWTAuth
// @Security BasicAuth
// @Router  /api/v1/scans/{id}/findings [get]
func (h *ScanHandler) Findings(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	items, err := h.scanService.Findings(id, paginationFromQuery(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary Rendered HTML report of a scan
// @Tags    scans
// @Produce html
// @Param   id path int true "Scan ID"
// @Success 200 {string} string "HTML report"
// @Security JWTAuth
// @Security BasicAuth
// @Router  /api/v1/scans/{id}/report [get]
func (h *ScanHandler) Report(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.scanService.WriteReport(id, c.Writer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
}

func (h *ScanHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/scans", h.Create)
	rg.GET("/scans", h.List)
	rg.GET("/scans/:id", h.Get)
	rg.DELETE("/scans/:id", h.Delete)
	rg.PATCH("/scans/:id/start", h.Start)
	rg.PATCH("/scans/:id/stop", h.Stop)
	rg.GET("/scans/:id/findings", h.Findings)
	rg.GET("/scans/:id/report", h.Report)
}
