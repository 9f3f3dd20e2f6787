package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/propertyflow-backend/internal/domain"
	"github.com/simaogato/propertyflow-backend/internal/usecase/metrics"
	"github.com/simaogato/propertyflow-backend/internal/usecase/portfolio"
)

// Server implements the PortfolioService gRPC server
type Server struct {
	PortfolioService *portfolio.PortfolioService

	// seedSample is used when a CreateSession request does not say
	seedSample bool
}

// NewServer creates a new gRPC server instance
func NewServer(portfolioService *portfolio.PortfolioService, seedSample bool) *Server {
	return &Server{
		PortfolioService: portfolioService,
		seedSample:       seedSample,
	}
}

// CreateSession handles the CreateSession RPC
// Request: {seed_sample?: bool}
// Response: {session_id, created_at, source, records}
func (s *Server) CreateSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	seed, err := boolField(req, fieldSeedSample, s.seedSample)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	session, err := s.PortfolioService.CreateSession(ctx, seed)
	if err != nil {
		return nil, mapError(err)
	}

	resp := tableResponse(session.ID.String(), session.Active, metrics.AugmentStore(session.Store(session.Active)))
	resp.Fields[fieldCreatedAt] = structpb.NewStringValue(session.CreatedAt.UTC().Format(time.RFC3339Nano))
	return resp, nil
}

// AddProperty handles the AddProperty RPC
// Request: {session_id, property: {<column>: value, ...}}
// Response: {session_id, source, records} with the whole manual table
func (s *Server) AddProperty(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := parseSessionID(req)
	if err != nil {
		return nil, err
	}

	property, ok := req.GetFields()[fieldProperty]
	if !ok || property.GetStructValue() == nil {
		return nil, status.Error(codes.InvalidArgument, "property must be a struct")
	}

	record, err := recordFromStruct(property.GetStructValue())
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	records, err := s.PortfolioService.AddProperty(ctx, sessionID, record)
	if err != nil {
		return nil, mapError(err)
	}

	return tableResponse(sessionID.String(), domain.SourceManual, records), nil
}

// ImportTable handles the ImportTable RPC
// Request: {session_id, content: <delimited file text>}
// Response: {session_id, source, records} with the whole import table
func (s *Server) ImportTable(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := parseSessionID(req)
	if err != nil {
		return nil, err
	}

	content, err := stringField(req, fieldContent)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	records, err := s.PortfolioService.ImportCSV(ctx, sessionID, strings.NewReader(content))
	if err != nil {
		return nil, mapError(err)
	}

	return tableResponse(sessionID.String(), domain.SourceImport, records), nil
}

// GetTable handles the GetTable RPC
// Request: {session_id, source?: "MANUAL" | "IMPORT"}
// Response: {session_id, source, records}; without a source the table changed last is returned
func (s *Server) GetTable(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := parseSessionID(req)
	if err != nil {
		return nil, err
	}

	source, err := stringField(req, fieldSource)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	resolved, records, err := s.PortfolioService.Table(ctx, sessionID, domain.Source(strings.ToUpper(source)))
	if err != nil {
		return nil, mapError(err)
	}

	return tableResponse(sessionID.String(), resolved, records), nil
}

// EndSession handles the EndSession RPC
// Request: {session_id}
// Response: {}
func (s *Server) EndSession(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	sessionID, err := parseSessionID(req)
	if err != nil {
		return nil, err
	}

	if err := s.PortfolioService.EndSession(ctx, sessionID); err != nil {
		return nil, mapError(err)
	}

	return &structpb.Struct{}, nil
}

func parseSessionID(req *structpb.Struct) (uuid.UUID, error) {
	raw, err := stringField(req, fieldSessionID)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid session_id format: %v", err)
	}
	return id, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var (
		schemaErr    *domain.SchemaError
		noNumericErr *domain.NoNumericDataError
		parseErr     *domain.ParseError
		missingErr   *domain.MissingFieldError
		typeErr      *domain.FieldTypeError
	)

	switch {
	// Rejected input is the caller's fault
	case errors.As(err, &schemaErr),
		errors.As(err, &noNumericErr),
		errors.As(err, &parseErr),
		errors.As(err, &missingErr),
		errors.As(err, &typeErr),
		errors.Is(err, domain.ErrInvalidSource):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())

	case errors.Is(err, domain.ErrSessionNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())

	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err.Error())
}
