package constsvc

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/signalsfoundry/astroconst/registry"
)

// Field names used in Struct messages.
const (
	fieldNamespace   = "namespace"
	fieldName        = "name"
	fieldTable       = "table"
	fieldIndex       = "index"
	fieldValue       = "value"
	fieldUnit        = "unit"
	fieldUncertainty = "uncertainty"
	fieldCitation    = "citation"
	fieldDescription = "description"
	fieldDerived     = "derived"
	fieldInputs      = "inputs"
)

// ConstantRequest builds a GetConstant request.
func ConstantRequest(namespace, name string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldNamespace: structpb.NewStringValue(namespace),
		fieldName:      structpb.NewStringValue(name),
	}}
}

// LabelRequest builds a GetLabel request.
func LabelRequest(table string, index int) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldTable: structpb.NewStringValue(table),
		fieldIndex: structpb.NewNumberValue(float64(index)),
	}}
}

func constantToStruct(c registry.Constant) *structpb.Struct {
	inputs := make([]*structpb.Value, 0, len(c.Inputs))
	for _, in := range c.Inputs {
		inputs = append(inputs, structpb.NewStringValue(in.String()))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldNamespace:   structpb.NewStringValue(c.Namespace),
		fieldName:        structpb.NewStringValue(c.Name),
		fieldValue:       structpb.NewNumberValue(c.Value),
		fieldUnit:        structpb.NewStringValue(c.Unit),
		fieldUncertainty: structpb.NewNumberValue(c.Uncertainty),
		fieldCitation:    structpb.NewStringValue(c.Citation),
		fieldDescription: structpb.NewStringValue(c.Description),
		fieldDerived:     structpb.NewBoolValue(c.Derived),
		fieldInputs:      structpb.NewListValue(&structpb.ListValue{Values: inputs}),
	}}
}

func constantFromStruct(s *structpb.Struct) (registry.Constant, error) {
	ns, err := stringField(s, fieldNamespace)
	if err != nil {
		return registry.Constant{}, err
	}
	name, err := stringField(s, fieldName)
	if err != nil {
		return registry.Constant{}, err
	}
	value, ok := s.GetFields()[fieldValue].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return registry.Constant{}, fmt.Errorf("%w: field %q must be a number", ErrInvalidRequest, fieldValue)
	}

	f := s.GetFields()
	c := registry.Constant{
		Namespace:   ns,
		Name:        name,
		Value:       value.NumberValue,
		Unit:        f[fieldUnit].GetStringValue(),
		Uncertainty: f[fieldUncertainty].GetNumberValue(),
		Citation:    f[fieldCitation].GetStringValue(),
		Description: f[fieldDescription].GetStringValue(),
		Derived:     f[fieldDerived].GetBoolValue(),
	}
	for _, v := range f[fieldInputs].GetListValue().GetValues() {
		ref, err := registry.ParseRef(v.GetStringValue())
		if err != nil {
			return registry.Constant{}, err
		}
		c.Inputs = append(c.Inputs, ref)
	}
	return c, nil
}

func stringsToList(values []string) *structpb.ListValue {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(values))}
	for _, v := range values {
		list.Values = append(list.Values, structpb.NewStringValue(v))
	}
	return list
}

func listToStrings(list *structpb.ListValue) []string {
	out := make([]string, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		out = append(out, v.GetStringValue())
	}
	return out
}

func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", ErrInvalidRequest, key)
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok || sv.StringValue == "" {
		return "", fmt.Errorf("%w: field %q must be a non-empty string", ErrInvalidRequest, key)
	}
	return sv.StringValue, nil
}

func indexField(s *structpb.Struct, key string) (int, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q", ErrInvalidRequest, key)
	}
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: field %q must be a number", ErrInvalidRequest, key)
	}
	n := nv.NumberValue
	if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: field %q must be an integer, got %v", ErrInvalidRequest, key, n)
	}
	return int(n), nil
}
