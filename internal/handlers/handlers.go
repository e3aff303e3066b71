package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"inventory/internal/services"
)

type InventoryHandler struct {
	svc services.InventoryService
}

func RegisterRoutes(r *gin.Engine, svc services.InventoryService) {
	h := &InventoryHandler{svc: svc}

	// Users
	r.POST("/users", h.addUser)
	r.PUT("/users/:id", h.updateUser)
	r.GET("/users/:id", h.userData)
	r.DELETE("/users/:id", h.deleteUser)

	// Parts
	r.POST("/parts", h.addPart)
	r.PUT("/parts/:upc", h.updatePart)
	r.GET("/parts/:upc", h.partData)
	r.GET("/parts/:upc/label", h.partLabel)
	r.DELETE("/parts/:upc", h.deletePart)

	// Checkout state machine
	r.POST("/parts/:upc/checkout", h.checkout)
	r.POST("/parts/:upc/checkin", h.checkin)
	r.GET("/checkouts/:upc", h.checkoutData)
	r.DELETE("/checkouts/:key", h.clearCheckouts)

	// Manufacturers
	r.GET("/manufacturers/:name", h.manufacturerData)
	r.PUT("/manufacturers/:id/name", h.renameManufacturer)
	r.POST("/manufacturers/transfer", h.transferParts)
	r.DELETE("/manufacturers/:name", h.deleteManufacturer)

	// Search
	r.GET("/search/:kind", h.search)
}

// respondError maps domain sentinels onto HTTP statuses. Everything the
// engine returns as a sentinel is recoverable and renders as a body, not a
// blank 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPartNotFound),
		errors.Is(err, services.ErrManufacturerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNameAlreadyTaken),
		errors.Is(err, services.ErrEmailAlreadyTaken),
		errors.Is(err, services.ErrPlacementAlreadyTaken),
		errors.Is(err, services.ErrPartsStillCheckedOut):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoMatch):
		c.JSON(http.StatusOK, gin.H{"records": []services.Record{}, "message": "No matching items"})
	case errors.Is(err, services.ErrUnknownColumn),
		errors.Is(err, services.ErrMissingName),
		errors.Is(err, services.ErrPlacementTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type addUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
}

func (h *InventoryHandler) addUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.svc.AddUser(req.FirstName, req.LastName, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": id})
}

func (h *InventoryHandler) updateUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.UpdateUser(c.Param("id"), req.FirstName, req.LastName, req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) userData(c *gin.Context) {
	info, err := h.svc.UserData(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *InventoryHandler) deleteUser(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id"), services.KindUser); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addPartRequest struct {
	Description string `json:"description" binding:"required"`
	MfrName     string `json:"mfr_name" binding:"required"`
	MfrPN       string `json:"mfr_pn"`
	Placement   string `json:"placement"`
	URL         string `json:"url"`
	Quantity    int    `json:"quantity"`
}

func (h *InventoryHandler) addPart(c *gin.Context) {
	var req addPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upc, err := h.svc.AddPart(services.AddPartInput{
		Description: req.Description,
		MfrName:     req.MfrName,
		MfrPN:       req.MfrPN,
		Placement:   req.Placement,
		URL:         req.URL,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"part_upc": upc})
}

func (h *InventoryHandler) updatePart(c *gin.Context) {
	var req addPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.UpdatePart(services.UpdatePartInput{
		UPC:         c.Param("upc"),
		Description: req.Description,
		MfrName:     req.MfrName,
		MfrPN:       req.MfrPN,
		Placement:   req.Placement,
		URL:         req.URL,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) partData(c *gin.Context) {
	info, err := h.svc.PartData(c.Param("upc"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *InventoryHandler) partLabel(c *gin.Context) {
	label, err := h.svc.PartLabel(c.Param("upc"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (h *InventoryHandler) deletePart(c *gin.Context) {
	if err := h.svc.Delete(c.Param("upc"), services.KindPart); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type checkoutRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Force  bool   `json:"force"`
}

func (h *InventoryHandler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.Checkout(c.Param("upc"), req.UserID, req.Force)
	if err != nil {
		respondError(c, err)
		return
	}
	// The held case is a negotiation, not an error: 409 with the holder so
	// the caller can confirm and retry with force=true.
	if result.Status == services.CheckoutStatusHeld {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) checkin(c *gin.Context) {
	result, err := h.svc.Checkin(c.Param("upc"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) checkoutData(c *gin.Context) {
	info, err := h.svc.CheckoutData(c.Param("upc"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *InventoryHandler) clearCheckouts(c *gin.Context) {
	if err := h.svc.ClearCheckouts(c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) manufacturerData(c *gin.Context) {
	info, err := h.svc.ManufacturerData(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

type renameManufacturerRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *InventoryHandler) renameManufacturer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manufacturer id"})
		return
	}

	var req renameManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.RenameManufacturer(id, req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type transferPartsRequest struct {
	OldName string `json:"old_name" binding:"required"`
	NewName string `json:"new_name" binding:"required"`
}

func (h *InventoryHandler) transferParts(c *gin.Context) {
	var req transferPartsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.TransferParts(req.OldName, req.NewName); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) deleteManufacturer(c *gin.Context) {
	if err := h.svc.Delete(c.Param("name"), services.KindManufacturer); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// search runs GET /search/:kind?q=term&columns=col1,col2. Columns listed are
// the enabled filters; omitting the parameter enables none, which matches
// nothing when a query is present.
func (h *InventoryHandler) search(c *gin.Context) {
	kind := services.RecordKind(c.Param("kind"))

	filters := map[string]bool{}
	if cols := c.Query("columns"); cols != "" {
		for _, col := range strings.Split(cols, ",") {
			filters[strings.TrimSpace(col)] = true
		}
	}

	records, err := h.svc.Search(kind, c.Query("q"), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}
