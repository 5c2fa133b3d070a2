package typesys

import "testing"

// P4: every type is assignable to itself.
func TestReflexivity(t *testing.T) {
	i32 := NewInteger(32, true)
	cases := []Type{
		i32,
		NewFloat(64),
		Char,
		Bool,
		ArrayType{Element: i32},
		StructType{Fields: []StructField{{Name: "x", Type: i32}}},
		TupleType{Members: []Type{i32, Bool}},
		FunctionType{Params: []Type{i32}, Return: Bool},
		UnionType{Members: []Type{i32, Bool}},
		Any,
		Never,
		Unknown,
	}
	for _, c := range cases {
		if !AssignableFrom(c, c) {
			t.Errorf("%#v is not assignable from itself", c)
		}
	}
}

func TestIntegerWidening(t *testing.T) {
	i8 := NewInteger(8, true)
	i32 := NewInteger(32, true)
	if !AssignableFrom(i32, i8) {
		t.Error("i32 should accept i8")
	}
	if AssignableFrom(i8, i32) {
		t.Error("i8 should not accept i32")
	}
}

func TestUnsignedIntoSignedSameWidthRejected(t *testing.T) {
	u32 := NewInteger(32, false)
	i32 := NewInteger(32, true)
	if AssignableFrom(i32, u32) {
		t.Error("same-width unsigned should not be assignable to signed")
	}
	if !AssignableFrom(u32, u32) {
		t.Error("u32 assignable from itself")
	}
}

func TestFunctionContravariantParamsCovariantReturn(t *testing.T) {
	i8 := NewInteger(8, true)
	i32 := NewInteger(32, true)
	narrow := FunctionType{Params: []Type{i32}, Return: i8}
	wide := FunctionType{Params: []Type{i8}, Return: i32}
	// `narrow` can stand in for `wide`: narrow accepts i32 (wide's promise),
	// narrow returns i8 which is assignable where i32 was promised.
	if !AssignableFrom(wide, narrow) {
		t.Error("expected contravariant param / covariant return to accept substitute")
	}
}

// P5: specify with no bindings is the identity transform.
func TestSpecifyIdentityWithEmptyBindings(t *testing.T) {
	i32 := NewInteger(32, true)
	st := StructType{Fields: []StructField{{Name: "x", Type: ParamType{Name: "T"}}}}
	out := Specify(st, map[string]Type{})
	outStruct := out.(StructType)
	if _, ok := outStruct.Fields[0].Type.(ParamType); !ok {
		t.Fatalf("expected untouched Param, got %#v", outStruct.Fields[0].Type)
	}
	_ = i32
}

func TestSpecifySubstitutesParam(t *testing.T) {
	i32 := NewInteger(32, true)
	arr := ArrayType{Element: ParamType{Name: "T"}}
	out := Specify(arr, map[string]Type{"T": i32})
	got := out.(ArrayType).Element
	if got != i32 {
		t.Fatalf("expected i32 substituted, got %#v", got)
	}
}

// P6: inference picks the narrowest binding assignable from every use.
func TestInferTypeArguments(t *testing.T) {
	fn := FunctionType{
		Params:     []Type{ParamType{Name: "T"}, ParamType{Name: "T"}},
		Return:     ParamType{Name: "T"},
		TypeParams: []TypeParamEntry{{Name: "T"}},
	}
	i8 := NewInteger(8, true)
	i32 := NewInteger(32, true)
	bindings := InferTypeArguments(fn, []Type{i8, i32})
	if bindings["T"] != i32 {
		t.Fatalf("expected T=i32 (general of i8,i32), got %#v", bindings["T"])
	}
}

func TestGeneralOfUnrelatedTypesIsAny(t *testing.T) {
	g := General(Bool, Char)
	if _, ok := g.(AnyType); !ok {
		t.Fatalf("expected Any, got %#v", g)
	}
}

// P7: union behavioral queries require unanimity among members.
func TestIsIntegerOnMixedUnionFails(t *testing.T) {
	u := UnionType{Members: []Type{NewInteger(32, true), Bool}}
	if IsInteger(u) {
		t.Error("mixed union should not be considered integer")
	}
}

func TestIsIntegerOnHomogeneousUnion(t *testing.T) {
	u := UnionType{Members: []Type{NewInteger(8, true), NewInteger(32, true)}}
	if !IsInteger(u) {
		t.Error("homogeneous integer union should be integer")
	}
}

func TestGetFieldFailsOnNeverOtherThanBaseOrReturn(t *testing.T) {
	if _, ok := GetField(Never, "x"); ok {
		t.Error("get_field on Never should fail")
	}
	if bt, ok := GetBaseType(Never); !ok || bt != Never {
		t.Error("get_base_type on Never should return itself")
	}
	if rt, ok := GetReturnType(Never); !ok || rt != Never {
		t.Error("get_return_type on Never should return itself")
	}
}

func TestOperatorTableArithmeticWidensToLargerOperand(t *testing.T) {
	table := NewOperatorTable()
	i8 := NewInteger(8, true)
	i32 := NewInteger(32, true)
	result, ok := table.Resolve("+", Infix, i8, i32)
	if !ok {
		t.Fatal("expected + to resolve for two integers")
	}
	got := result.(IntegerType)
	if got.Size != 32 {
		t.Fatalf("expected widened to 32 bits, got %d", got.Size)
	}
}

func TestOperatorTableComparisonProducesBool(t *testing.T) {
	table := NewOperatorTable()
	i32 := NewInteger(32, true)
	result, ok := table.Resolve("<", Infix, i32, i32)
	if !ok {
		t.Fatal("expected < to resolve")
	}
	if _, ok := result.(BoolType); !ok {
		t.Fatalf("expected Bool, got %#v", result)
	}
}
