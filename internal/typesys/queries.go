package typesys

// This file implements the behavioral queries of §4.7: is_integer,
// is_function, has_field, get_base_type, get_field, get_params,
// get_return_type, get_type_params, get_tuple_types, get_size, and
// is_signed. Never answers every is_* query true and every getter other
// than get_base_type/get_return_type with failure (the two that "return
// itself"); Any answers every query false; Union requires every member
// to agree, and a getter on a Union returns the union of per-member
// results (or fails if members disagree on shape).

// IsInteger reports whether t behaves as an integer type.
func IsInteger(t Type) bool {
	switch v := t.(type) {
	case IntegerType:
		return true
	case NeverType, UnknownType:
		return true
	case UnionType:
		return allMembers(v, IsInteger)
	default:
		return false
	}
}

// IsFunction reports whether t behaves as a function type.
func IsFunction(t Type) bool {
	switch v := t.(type) {
	case FunctionType:
		return true
	case NeverType, UnknownType:
		return true
	case UnionType:
		return allMembers(v, IsFunction)
	default:
		return false
	}
}

func allMembers(u UnionType, pred func(Type) bool) bool {
	if len(u.Members) == 0 {
		return false
	}
	for _, m := range u.Members {
		if !pred(m) {
			return false
		}
	}
	return true
}

// HasField reports whether t has a field named name.
func HasField(t Type, name string) bool {
	switch v := t.(type) {
	case StructType:
		_, ok := v.Field(name)
		return ok
	case NeverType, UnknownType:
		return true
	case UnionType:
		return allMembers(v, func(m Type) bool { return HasField(m, name) })
	default:
		return false
	}
}

// GetField returns the type of field name on t. Never/Unknown/Any fail:
// only get_base_type and get_return_type return the receiver itself for
// those kinds.
func GetField(t Type, name string) (Type, bool) {
	switch v := t.(type) {
	case StructType:
		return v.Field(name)
	case UnionType:
		return unionGetter(v, func(m Type) (Type, bool) { return GetField(m, name) })
	default:
		return nil, false
	}
}

// GetBaseType returns the element type of an Array; Never and Unknown
// return themselves.
func GetBaseType(t Type) (Type, bool) {
	switch v := t.(type) {
	case ArrayType:
		return v.Element, true
	case NeverType:
		return v, true
	case UnknownType:
		return v, true
	case UnionType:
		return unionGetter(v, GetBaseType)
	default:
		return nil, false
	}
}

// GetReturnType returns a Function's return type; Never and Unknown
// return themselves.
func GetReturnType(t Type) (Type, bool) {
	switch v := t.(type) {
	case FunctionType:
		return v.Return, true
	case NeverType:
		return v, true
	case UnknownType:
		return v, true
	case UnionType:
		return unionGetter(v, GetReturnType)
	default:
		return nil, false
	}
}

// GetParams returns a Function's parameter types.
func GetParams(t Type) ([]Type, bool) {
	switch v := t.(type) {
	case FunctionType:
		return v.Params, true
	case UnionType:
		return unionGetterSlice(v, GetParams)
	default:
		return nil, false
	}
}

// GetTypeParams returns a Function or Generic's type-parameter list.
func GetTypeParams(t Type) ([]TypeParamEntry, bool) {
	switch v := t.(type) {
	case FunctionType:
		return v.TypeParams, true
	case GenericType:
		return v.TypeParams, true
	default:
		return nil, false
	}
}

// GetTupleTypes returns a Tuple's member types.
func GetTupleTypes(t Type) ([]Type, bool) {
	switch v := t.(type) {
	case TupleType:
		return v.Members, true
	case UnionType:
		return unionGetterSlice(v, GetTupleTypes)
	default:
		return nil, false
	}
}

// GetSize returns the bit width of an Integer or Float type.
func GetSize(t Type) (int, bool) {
	switch v := t.(type) {
	case IntegerType:
		return v.Size, true
	case FloatType:
		return v.Size, true
	case UnionType:
		return unionGetterComparable(v, GetSize)
	default:
		return 0, false
	}
}

// IsSigned reports an Integer type's signedness.
func IsSigned(t Type) (bool, bool) {
	switch v := t.(type) {
	case IntegerType:
		return v.Signed, true
	case UnionType:
		return unionGetterComparable(v, IsSigned)
	default:
		return false, false
	}
}

// unionGetter applies get to every member of u and, if all succeed,
// returns the union of the results.
func unionGetter(u UnionType, get func(Type) (Type, bool)) (Type, bool) {
	if len(u.Members) == 0 {
		return nil, false
	}
	results := make([]Type, 0, len(u.Members))
	for _, m := range u.Members {
		r, ok := get(m)
		if !ok {
			return nil, false
		}
		results = append(results, r)
	}
	return UnionType{Members: results}, true
}

// unionGetterSlice applies get (which itself returns a []Type, e.g.
// parameter lists) to every member and joins results of equal arity
// position-wise with General; arity mismatches across members fail the
// query.
func unionGetterSlice(u UnionType, get func(Type) ([]Type, bool)) ([]Type, bool) {
	if len(u.Members) == 0 {
		return nil, false
	}
	first, ok := get(u.Members[0])
	if !ok {
		return nil, false
	}
	result := make([]Type, len(first))
	copy(result, first)
	for _, m := range u.Members[1:] {
		next, ok := get(m)
		if !ok || len(next) != len(result) {
			return nil, false
		}
		for i := range result {
			result[i] = General(result[i], next[i])
		}
	}
	return result, true
}

// unionGetterComparable applies get (a scalar getter like get_size or
// is_signed) to every member and requires they all agree exactly.
func unionGetterComparable[T comparable](u UnionType, get func(Type) (T, bool)) (T, bool) {
	var zero T
	if len(u.Members) == 0 {
		return zero, false
	}
	first, ok := get(u.Members[0])
	if !ok {
		return zero, false
	}
	for _, m := range u.Members[1:] {
		v, ok := get(m)
		if !ok || v != first {
			return zero, false
		}
	}
	return first, true
}
