package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"vehiclecatalog/internal/catalog"
	"vehiclecatalog/internal/models"
	"vehiclecatalog/internal/util"
	"vehiclecatalog/internal/validation"
)

// Loader builds a fresh catalog table and reports where it was read from
type Loader func() (*catalog.Table, string, error)

type catalogState struct {
	table    *catalog.Table
	source   string
	loadedAt time.Time
}

// VehicleHandler serves lookups against an immutable catalog table. Reloads
// swap the whole table, so requests never see a partially built one.
type VehicleHandler struct {
	state atomic.Pointer[catalogState]
	load  Loader
}

// HealthResponse reports whether a catalog is loaded
type HealthResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// CatalogStatsResponse describes the loaded catalog
type CatalogStatsResponse struct {
	Source   string              `json:"source"`
	LoadedAt time.Time           `json:"loadedAt"`
	Rows     int                 `json:"rows"`
	Types    []catalog.TypeStats `json:"types"`
}

// NewVehicleHandler loads the catalog once and fails when it cannot
func NewVehicleHandler(load Loader) (*VehicleHandler, error) {
	h := &VehicleHandler{load: load}
	if err := h.reload(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *VehicleHandler) reload() error {
	table, source, err := h.load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	h.state.Store(&catalogState{table: table, source: source, loadedAt: time.Now()})
	log.Printf("📚 Catalog loaded from %s: %d variants", source, table.Len())
	return nil
}

func (h *VehicleHandler) table() *catalog.Table {
	return h.state.Load().table
}

// GetVehicleInfo godoc
// @Summary Get one vehicle variant
// @Description Returns the full record of a variant. All parameters are matched case-insensitively after trimming whitespace.
// @Tags vehicles
// @Produce json
// @Param vtype query string true "Vehicle type" Enums(Car, Bike)
// @Param brand query string true "Brand, e.g. Toyota"
// @Param model query string true "Model, e.g. Camry"
// @Param variant query string true "Variant, e.g. Elegance"
// @Success 200 {object} models.VehicleRecord
// @Failure 400 {object} util.ErrorResponse "Malformed catalog"
// @Failure 404 {object} util.ErrorResponse "Vehicle not found"
// @Failure 422 {object} util.ErrorResponse "Missing or invalid parameter"
// @Failure 500 {object} util.ErrorResponse "Internal server error"
// @Router /get_vehicle_info [get]
func (h *VehicleHandler) GetVehicleInfo(c *gin.Context) {
	vtype, err := validation.ValidateVehicleType(c.Query("vtype"))
	if err != nil {
		respondError(c, err)
		return
	}

	params := make([]string, 3)
	for i, name := range []string{"brand", "model", "variant"} {
		if params[i], err = validation.ValidateRequiredParam(name, c.Query(name)); err != nil {
			respondError(c, err)
			return
		}
	}

	record, err := h.table().VehicleInfo(vtype, params[0], params[1], params[2])
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetVehiclesList godoc
// @Summary List brands, models or variants
// @Description Without brand returns the brands of vtype, with brand the models of that brand, with model the variants of that model. Values are unique and keep catalog order.
// @Tags vehicles
// @Produce json
// @Param vtype query string false "Vehicle type (default Car)" Enums(Car, Bike)
// @Param brand query string false "Brand to list models of"
// @Param model query string false "Model to list variants of"
// @Success 200 {object} models.VehicleList
// @Failure 400 {object} util.ErrorResponse "Malformed catalog"
// @Failure 422 {object} util.ErrorResponse "Invalid parameter"
// @Failure 500 {object} util.ErrorResponse "Internal server error"
// @Router /get_vehicles_list [get]
func (h *VehicleHandler) GetVehiclesList(c *gin.Context) {
	vtype, err := validation.ValidateVehicleType(c.DefaultQuery("vtype", "Car"))
	if err != nil {
		respondError(c, err)
		return
	}

	brand, err := validation.ValidateOptionalParam("brand", c.Query("brand"))
	if err != nil {
		respondError(c, err)
		return
	}
	model, err := validation.ValidateOptionalParam("model", c.Query("model"))
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.table().VehiclesList(vtype, brand, model)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.VehicleList{Data: list})
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *VehicleHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Rows: h.table().Len()})
}

// CatalogStats godoc
// @Summary Catalog statistics
// @Description Per vehicle type counts of the loaded catalog. Requires X-Admin-Key.
// @Tags admin
// @Produce json
// @Param X-Admin-Key header string true "Admin key"
// @Success 200 {object} CatalogStatsResponse
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /api/admin/catalog-stats [get]
func (h *VehicleHandler) CatalogStats(c *gin.Context) {
	state := h.state.Load()
	c.JSON(http.StatusOK, CatalogStatsResponse{
		Source:   state.source,
		LoadedAt: state.loadedAt,
		Rows:     state.table.Len(),
		Types:    state.table.Stats(),
	})
}

// ReloadCatalog godoc
// @Summary Reload the catalog
// @Description Rebuilds the lookup table from its source after a new scrape. Requires X-Admin-Key and is limited to one call per cooldown.
// @Tags admin
// @Produce json
// @Param X-Admin-Key header string true "Admin key"
// @Success 200 {object} CatalogStatsResponse
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 429 {object} map[string]string "error: Refresh too frequent"
// @Failure 500 {object} util.ErrorResponse "Reload failed, previous catalog kept"
// @Router /api/admin/reload-catalog [post]
func (h *VehicleHandler) ReloadCatalog(c *gin.Context) {
	if err := h.reload(); err != nil {
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Failed to reload catalog", err)
		return
	}
	h.CatalogStats(c)
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, validation.ErrInvalidParam):
		util.SafeErrorResponse(c, http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, catalog.ErrNotFound):
		util.SafeErrorResponse(c, http.StatusNotFound, "Vehicle not found", err)
	case errors.Is(err, catalog.ErrUnknownColumn):
		util.SafeErrorResponse(c, http.StatusBadRequest, "Malformed catalog query", err)
	default:
		util.SafeErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
