package api

import (
	"net/http"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/Domenick1991/routeprofit/internal/report"
	"github.com/Domenick1991/routeprofit/internal/service/evaluation"
	"github.com/gin-gonic/gin"
)

type EvaluationHandler struct {
	service  evaluation.EvaluationUseCase
	currency string
}

type seatsRequest struct {
	Economy    int `json:"economy" binding:"min=0"`
	Business   int `json:"business" binding:"min=0"`
	FirstClass int `json:"first_class" binding:"min=0"`
}

type faresRequest struct {
	Economy    float64 `json:"economy"`
	Business   float64 `json:"business"`
	FirstClass float64 `json:"first_class"`
}

type flightRequest struct {
	Origin       string       `json:"origin" binding:"required"`
	Destination  string       `json:"destination" binding:"required"`
	AircraftType string       `json:"aircraft_type" binding:"required"`
	Seats        seatsRequest `json:"seats"`
	Fares        faresRequest `json:"fares"`
}

type batchRequest struct {
	Flights []flightRequest `json:"flights" binding:"required,dive"`
}

type evaluationResponse struct {
	RunID           string                  `json:"run_id"`
	Row             int                     `json:"row,omitempty"`
	Origin          string                  `json:"origin"`
	Destination     string                  `json:"destination"`
	AircraftType    string                  `json:"aircraft_type"`
	Valid           bool                    `json:"valid"`
	Reason          string                  `json:"reason,omitempty"`
	Detail          string                  `json:"detail,omitempty"`
	Profit          *float64                `json:"profit,omitempty"`
	ProfitFormatted string                  `json:"profit_formatted,omitempty"`
	Breakdown       *domain.ProfitBreakdown `json:"breakdown,omitempty"`
}

type batchResponse struct {
	Evaluations []evaluationResponse `json:"evaluations"`
	Summary     domain.Summary       `json:"summary"`
}

func NewEvaluationHandler(service evaluation.EvaluationUseCase, currency string) *EvaluationHandler {
	return &EvaluationHandler{service: service, currency: currency}
}

func (h *EvaluationHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.evaluate)
	router.POST("/batch", h.evaluateBatch)
}

func (h *EvaluationHandler) evaluate(c *gin.Context) {
	var req flightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.service.Evaluate(c.Request.Context(), req.toDomain(0))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.toResponse(e))
}

func (h *EvaluationHandler) evaluateBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flights := make([]domain.FlightRequest, 0, len(req.Flights))
	for i, f := range req.Flights {
		flights = append(flights, f.toDomain(i+1))
	}

	evaluations, summary, err := h.service.EvaluateAll(c.Request.Context(), flights)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	resp := batchResponse{
		Evaluations: make([]evaluationResponse, 0, len(evaluations)),
		Summary:     summary,
	}
	for _, e := range evaluations {
		resp.Evaluations = append(resp.Evaluations, h.toResponse(e))
	}
	c.JSON(http.StatusOK, resp)
}

func (r flightRequest) toDomain(row int) domain.FlightRequest {
	return domain.FlightRequest{
		Row:          row,
		Origin:       r.Origin,
		Destination:  r.Destination,
		AircraftType: r.AircraftType,
		Seats: domain.SeatCounts{
			Economy:    r.Seats.Economy,
			Business:   r.Seats.Business,
			FirstClass: r.Seats.FirstClass,
		},
		Fares: domain.Fares{
			Economy:    r.Fares.Economy,
			Business:   r.Fares.Business,
			FirstClass: r.Fares.FirstClass,
		},
	}
}

func (h *EvaluationHandler) toResponse(e domain.Evaluation) evaluationResponse {
	resp := evaluationResponse{
		RunID:        e.RunID,
		Row:          e.Flight.Row,
		Origin:       e.Flight.Origin,
		Destination:  e.Flight.Destination,
		AircraftType: e.Flight.AircraftType,
		Valid:        e.Result.Valid,
		Reason:       e.Result.Reason.String(),
		Detail:       e.Result.Detail,
		Breakdown:    e.Breakdown,
	}
	if e.Result.Valid {
		profit := e.Profit()
		resp.Profit = &profit
		resp.ProfitFormatted = report.FormatMoney(h.currency, profit)
	}
	return resp
}
