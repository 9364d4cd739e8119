package hiveserver2

import "github.com/anandnalya/hue/tcliservice"

// decodeColumnValue converts a tagged wire value into a native scalar. The
// variants are tested in the protocol's declaration order. A value with no
// variant set is a SQL NULL and decodes to nil; the wire format guarantees
// exactly one variant is set otherwise.
func decodeColumnValue(v *tcliservice.ColumnValue) any {
	switch {
	case v == nil:
		return nil
	case v.BoolVal != nil:
		return v.BoolVal.Value
	case v.ByteVal != nil:
		return v.ByteVal.Value
	case v.I16Val != nil:
		return v.I16Val.Value
	case v.I32Val != nil:
		return v.I32Val.Value
	case v.I64Val != nil:
		return v.I64Val.Value
	case v.DoubleVal != nil:
		return v.DoubleVal.Value
	case v.StringVal != nil:
		return v.StringVal.Value
	}
	return nil
}

// resolveType returns the canonical name of a primitive column type, or the
// nested type entry itself for map/array/struct/union/user-defined types.
func resolveType(desc *tcliservice.TypeDesc) any {
	if desc == nil {
		return nil
	}
	for _, entry := range desc.Types {
		switch {
		case entry.PrimitiveEntry != nil:
			return entry.PrimitiveEntry.Type.String()
		case entry.MapEntry != nil:
			return entry.MapEntry
		case entry.UnionEntry != nil:
			return entry.UnionEntry
		case entry.ArrayEntry != nil:
			return entry.ArrayEntry
		case entry.StructEntry != nil:
			return entry.StructEntry
		case entry.UserDefinedTypeEntry != nil:
			return entry.UserDefinedTypeEntry
		}
	}
	return nil
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}
