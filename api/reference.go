package api

import (
	"net/http"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/gin-gonic/gin"
)

// ReferenceLookup is satisfied by *reference.Index.
type ReferenceLookup interface {
	Airport(code string) (domain.Airport, bool)
	Aircraft(typeCode string) (domain.Aircraft, bool)
	Airports() []domain.Airport
	AircraftTypes() []domain.Aircraft
}

type ReferenceHandler struct {
	lookup ReferenceLookup
}

func NewReferenceHandler(lookup ReferenceLookup) *ReferenceHandler {
	return &ReferenceHandler{lookup: lookup}
}

func (h *ReferenceHandler) Register(router *gin.RouterGroup) {
	router.GET("/airports", h.listAirports)
	router.GET("/airports/:code", h.getAirport)
	router.GET("/aircraft", h.listAircraft)
	router.GET("/aircraft/:type", h.getAircraft)
}

func (h *ReferenceHandler) listAirports(c *gin.Context) {
	c.JSON(http.StatusOK, h.lookup.Airports())
}

func (h *ReferenceHandler) getAirport(c *gin.Context) {
	airport, ok := h.lookup.Airport(c.Param("code"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ReasonUnknownAirport.String()})
		return
	}
	c.JSON(http.StatusOK, airport)
}

func (h *ReferenceHandler) listAircraft(c *gin.Context) {
	c.JSON(http.StatusOK, h.lookup.AircraftTypes())
}

func (h *ReferenceHandler) getAircraft(c *gin.Context) {
	aircraft, ok := h.lookup.Aircraft(c.Param("type"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ReasonUnknownAircraft.String()})
		return
	}
	c.JSON(http.StatusOK, aircraft)
}
