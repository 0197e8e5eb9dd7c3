package evaluation_service_api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Domenick1991/routeprofit/internal/domain"
	"github.com/Domenick1991/routeprofit/internal/service/evaluation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Server implements EvaluationServiceServer on top of the evaluation use case.
type Server struct {
	evaluations evaluation.EvaluationUseCase
}

func NewServer(evaluations evaluation.EvaluationUseCase) *Server {
	return &Server{evaluations: evaluations}
}

func (s *Server) Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	flight, err := fromPBFlight(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	e, err := s.evaluations.Evaluate(ctx, flight)
	if err != nil {
		if st, ok := status.FromError(err); ok {
			return nil, st.Err()
		}
		return nil, status.FromContextError(err).Err()
	}

	resp, err := toPBEvaluation(e)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func fromPBFlight(req *structpb.Struct) (domain.FlightRequest, error) {
	var flight domain.FlightRequest
	if req == nil {
		return flight, errors.New("empty request")
	}
	raw, err := req.MarshalJSON()
	if err != nil {
		return flight, err
	}
	if err := json.Unmarshal(raw, &flight); err != nil {
		return flight, err
	}

	switch {
	case flight.Origin == "":
		return flight, errors.New("origin is required")
	case flight.Destination == "":
		return flight, errors.New("destination is required")
	case flight.AircraftType == "":
		return flight, errors.New("aircraft_type is required")
	}
	for _, class := range domain.SeatClasses {
		if flight.Seats.Of(class) < 0 {
			return flight, errors.New("seat counts must not be negative")
		}
	}
	return flight, nil
}

func toPBEvaluation(e domain.Evaluation) (*structpb.Struct, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if e.Result.Valid {
		fields["profit"] = e.Profit()
	}
	return structpb.NewStruct(fields)
}

var _ EvaluationServiceServer = (*Server)(nil)
