package typesys

// AssignableFrom implements §4.7's `to.assignable_from(from)`: can a
// value of type from be used where to is expected. Never, Unknown, and
// Inferred are always assignable as a source regardless of target.
func AssignableFrom(to, from Type) bool {
	switch from.(type) {
	case NeverType, UnknownType, InferredType:
		return true
	}

	switch t := to.(type) {
	case IntegerType:
		f, ok := from.(IntegerType)
		return ok && integerAssignable(t, f)
	case FloatType:
		switch f := from.(type) {
		case FloatType:
			return t.Size >= f.Size
		case IntegerType:
			return true
		default:
			return false
		}
	case CharType:
		_, ok := from.(CharType)
		return ok
	case BoolType:
		_, ok := from.(BoolType)
		return ok
	case ArrayType:
		f, ok := from.(ArrayType)
		return ok && AssignableFrom(t.Element, f.Element)
	case StructType:
		f, ok := from.(StructType)
		if !ok {
			return false
		}
		for _, field := range t.Fields {
			ft, ok := f.Field(field.Name)
			if !ok || !AssignableFrom(field.Type, ft) {
				return false
			}
		}
		return true
	case TupleType:
		f, ok := from.(TupleType)
		if !ok || len(f.Members) != len(t.Members) {
			return false
		}
		for i := range t.Members {
			if !AssignableFrom(t.Members[i], f.Members[i]) {
				return false
			}
		}
		return true
	case FunctionType:
		f, ok := from.(FunctionType)
		if !ok || len(f.Params) != len(t.Params) {
			return false
		}
		if !AssignableFrom(t.Return, f.Return) {
			return false
		}
		for i := range t.Params {
			// Parameter types are contravariant: the source function must
			// accept everything the target signature promises to pass it.
			if !AssignableFrom(f.Params[i], t.Params[i]) {
				return false
			}
		}
		return true
	case ParamType:
		return AssignableFrom(constraintOrAny(t.Constraint), from)
	case ArgType:
		switch t.Variance {
		case Covariant:
			return AssignableFrom(t.Underlying, from)
		case Contravariant:
			return AssignableFrom(from, t.Underlying)
		default:
			return AssignableFrom(t.Underlying, from) && AssignableFrom(from, t.Underlying)
		}
	case UnionType:
		if f, ok := from.(UnionType); ok {
			for _, m := range f.Members {
				if !assignableToUnion(t, m) {
					return false
				}
			}
			return true
		}
		return assignableToUnion(t, from)
	case AnyType:
		return true
	case RecursiveType:
		return AssignableFrom(t.Decl.Resolved(), from)
	case GenericType:
		return false
	default:
		return false
	}
}

func constraintOrAny(c Type) Type {
	if c == nil {
		return Any
	}
	return c
}

func assignableToUnion(u UnionType, from Type) bool {
	for _, m := range u.Members {
		if AssignableFrom(m, from) {
			return true
		}
	}
	return false
}

// effectiveSize maps the unbounded-size sentinel (0) to an effectively
// infinite width for the assignability comparison.
func effectiveSize(size int) int {
	if size == 0 {
		return 1 << 30
	}
	return size
}

func integerAssignable(to, from IntegerType) bool {
	szTo, szFrom := effectiveSize(to.Size), effectiveSize(from.Size)
	if szTo < szFrom {
		return false
	}
	if !to.Signed && from.Signed {
		return false
	}
	if szTo == szFrom && to.Signed && !from.Signed {
		return false
	}
	return true
}

// Specify substitutes each Param occurrence named in bindings with its
// bound Type, recursing structurally. RecursiveType is left untouched to
// avoid unwinding an infinite type.
func Specify(t Type, bindings map[string]Type) Type {
	switch v := t.(type) {
	case ParamType:
		if b, ok := bindings[v.Name]; ok {
			return b
		}
		return v
	case ArgType:
		return ArgType{Variance: v.Variance, Underlying: Specify(v.Underlying, bindings)}
	case ArrayType:
		return ArrayType{Element: Specify(v.Element, bindings)}
	case StructType:
		fields := make([]StructField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = StructField{Name: f.Name, Type: Specify(f.Type, bindings)}
		}
		return StructType{Fields: fields}
	case TupleType:
		members := make([]Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = Specify(m, bindings)
		}
		return TupleType{Members: members}
	case FunctionType:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = Specify(p, bindings)
		}
		return FunctionType{Params: params, Return: Specify(v.Return, bindings), TypeParams: v.TypeParams}
	case UnionType:
		members := make([]Type, len(v.Members))
		for i, m := range v.Members {
			members[i] = Specify(m, bindings)
		}
		return UnionType{Members: members}
	case GenericType:
		return GenericType{TypeParams: v.TypeParams, Body: Specify(v.Body, bindings)}
	default:
		return v
	}
}

// InferTypeArguments implements `infer_type_arguments`: given a generic
// function's declared parameter types and the argument types at a call
// site, produce the narrowest binding for each type parameter that
// makes every argument assignable to its corresponding parameter.
func InferTypeArguments(fn FunctionType, argTypes []Type) map[string]Type {
	bindings := make(map[string]Type, len(fn.TypeParams))
	for _, tp := range fn.TypeParams {
		bindings[tp.Name] = Never
	}
	for i, paramType := range fn.Params {
		if i >= len(argTypes) {
			break
		}
		inferFrom(paramType, argTypes[i], bindings)
	}
	return bindings
}

func inferFrom(paramType, argType Type, bindings map[string]Type) {
	switch pt := paramType.(type) {
	case ParamType:
		if _, tracked := bindings[pt.Name]; tracked {
			bindings[pt.Name] = General(bindings[pt.Name], argType)
		}
	case ArrayType:
		if at, ok := argType.(ArrayType); ok {
			inferFrom(pt.Element, at.Element, bindings)
		}
	case TupleType:
		if at, ok := argType.(TupleType); ok {
			for i := range pt.Members {
				if i < len(at.Members) {
					inferFrom(pt.Members[i], at.Members[i], bindings)
				}
			}
		}
	case FunctionType:
		if at, ok := argType.(FunctionType); ok {
			for i := range pt.Params {
				if i < len(at.Params) {
					inferFrom(pt.Params[i], at.Params[i], bindings)
				}
			}
			inferFrom(pt.Return, at.Return, bindings)
		}
	case StructType:
		if at, ok := argType.(StructType); ok {
			for _, f := range pt.Fields {
				if af, ok := at.Field(f.Name); ok {
					inferFrom(f.Type, af, bindings)
				}
			}
		}
	case UnionType:
		if at, ok := argType.(UnionType); ok {
			for i := range pt.Members {
				if i < len(at.Members) {
					inferFrom(pt.Members[i], at.Members[i], bindings)
				}
			}
		}
	}
}

// General computes the "general type" join of a and b: whichever of the
// two the other is assignable to (the wider one), a if each is
// assignable to the other, Any if neither is.
func General(a, b Type) Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	aFromB := AssignableFrom(a, b)
	bFromA := AssignableFrom(b, a)
	switch {
	case aFromB && !bFromA:
		return a
	case bFromA && !aFromB:
		return b
	case !aFromB && !bFromA:
		return Any
	default:
		return a
	}
}
