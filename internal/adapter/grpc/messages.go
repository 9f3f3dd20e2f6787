package grpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/propertyflow-backend/internal/domain"
)

// Field names used in request and response structs
const (
	fieldSessionID  = "session_id"
	fieldSeedSample = "seed_sample"
	fieldCreatedAt  = "created_at"
	fieldSource     = "source"
	fieldProperty   = "property"
	fieldContent    = "content"
	fieldRecords    = "records"
)

// stringField returns a string field of req, "" when absent
func stringField(req *structpb.Struct, name string) (string, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return "", nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s must be a string", name)
	}
	return s.StringValue, nil
}

// boolField returns a bool field of req, fallback when absent
func boolField(req *structpb.Struct, name string, fallback bool) (bool, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return fallback, nil
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, fmt.Errorf("%s must be a bool", name)
	}
	return b.BoolValue, nil
}

// recordFromStruct builds a manual entry from a struct keyed by column name.
// Absent columns surface as MissingFieldError and non-number values as
// FieldTypeError, both with Row -1. Every error is a client error.
func recordFromStruct(s *structpb.Struct) (domain.PropertyRecord, error) {
	fields := s.GetFields()

	nameValue, ok := fields[domain.ColumnProperty]
	if !ok {
		return domain.PropertyRecord{}, &domain.MissingFieldError{Row: -1, Field: domain.ColumnProperty}
	}
	name, ok := nameValue.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return domain.PropertyRecord{}, fmt.Errorf("%s must be a string", domain.ColumnProperty)
	}

	numbers := make(map[string]float64, len(domain.RequiredColumns)-1)
	for _, column := range domain.RequiredColumns[1:] {
		v, ok := fields[column]
		if !ok {
			continue
		}
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return domain.PropertyRecord{}, &domain.FieldTypeError{Row: -1, Field: column, Value: fmt.Sprint(v.AsInterface())}
		}
		numbers[column] = n.NumberValue
	}

	return domain.RecordFromFields(name.StringValue, numbers)
}

// recordsValue renders an augmented table as a list of structs keyed by
// column name. Non-finite numbers travel as IEEE values.
func recordsValue(records []domain.AugmentedRecord) *structpb.Value {
	values := make([]*structpb.Value, len(records))
	for i, rec := range records {
		fields := make(map[string]*structpb.Value, len(domain.RequiredColumns)+len(domain.DerivedColumns))
		fields[domain.ColumnProperty] = structpb.NewStringValue(rec.Property)
		for column, v := range rec.NumericFields() {
			fields[column] = structpb.NewNumberValue(v)
		}
		for column, v := range rec.Metrics.Values() {
			fields[column] = structpb.NewNumberValue(v)
		}
		values[i] = structpb.NewStructValue(&structpb.Struct{Fields: fields})
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

// tableResponse builds the response shared by every table-returning method
func tableResponse(sessionID string, source domain.Source, records []domain.AugmentedRecord) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldSessionID: structpb.NewStringValue(sessionID),
		fieldSource:    structpb.NewStringValue(string(source)),
		fieldRecords:   recordsValue(records),
	}}
}
