package typesys

// Fixity is where an operand sits relative to an operator symbol.
type Fixity int

const (
	Infix Fixity = iota
	Prefix
	Postfix
)

// OperatorEntry is one row of the operator table (§4.6): a resolver
// keyed by symbol and fixity. Resolve inspects the live operand types
// (rather than a fixed signature) so a single "+" entry can cover every
// integer width pairing via widenInteger rather than one entry per width.
type OperatorEntry struct {
	Symbol  string
	Fixity  Fixity
	Resolve func(left, right Type) (Type, bool)
}

// OperatorTable is consulted by the checker to resolve a binary or
// unary expression's result type. Entries are tried in registration
// order; the first match wins, mirroring how the teacher's semantic
// analyzer walks a fixed list of known operators.
type OperatorTable struct {
	entries []OperatorEntry
}

// NewOperatorTable builds the table with the language's built-in
// arithmetic, comparison, logical, and equality operators registered.
func NewOperatorTable() *OperatorTable {
	t := &OperatorTable{}
	t.registerDefaults()
	return t
}

// Register appends a custom entry, checked after all built-ins that
// were registered before it.
func (t *OperatorTable) Register(e OperatorEntry) {
	t.entries = append(t.entries, e)
}

// Resolve looks up the result type for symbol used with the given
// fixity and operand types. For Prefix operators, right is the operand
// and left is ignored; for Postfix, left is the operand and right is
// ignored.
func (t *OperatorTable) Resolve(symbol string, fixity Fixity, left, right Type) (Type, bool) {
	for _, e := range t.entries {
		if e.Symbol != symbol || e.Fixity != fixity {
			continue
		}
		if result, ok := e.Resolve(left, right); ok {
			return result, true
		}
	}
	return nil, false
}

func numeric(t Type) bool {
	_, isInt := t.(IntegerType)
	_, isFloat := t.(FloatType)
	return isInt || isFloat || IsInteger(t)
}

func arithmeticResult(left, right Type) (Type, bool) {
	li, lok := left.(IntegerType)
	ri, rok := right.(IntegerType)
	if lok && rok {
		return widenInteger(li, ri), true
	}
	lf, lfok := toFloat(left)
	rf, rfok := toFloat(right)
	if lfok || rfok {
		if !numeric(left) || !numeric(right) {
			return nil, false
		}
		size := 32
		if lfok && lf.Size > size {
			size = lf.Size
		}
		if rfok && rf.Size > size {
			size = rf.Size
		}
		return FloatType{Size: size}, true
	}
	return nil, false
}

func toFloat(t Type) (FloatType, bool) {
	f, ok := t.(FloatType)
	return f, ok
}

func widenInteger(a, b IntegerType) Type {
	size := effectiveSize(a.Size)
	if s := effectiveSize(b.Size); s > size {
		size = s
	}
	if size >= 1<<30 {
		size = 0
	}
	return IntegerType{Size: size, Signed: a.Signed || b.Signed}
}

func (t *OperatorTable) registerDefaults() {
	arithmetic := []string{"+", "-", "*", "/", "%"}
	for _, sym := range arithmetic {
		sym := sym
		t.Register(OperatorEntry{Symbol: sym, Fixity: Infix, Resolve: func(left, right Type) (Type, bool) {
			return arithmeticResult(left, right)
		}})
	}
	// char + char overload for '+', yielding char.
	t.Register(OperatorEntry{Symbol: "+", Fixity: Infix, Resolve: func(left, right Type) (Type, bool) {
		_, lok := left.(CharType)
		_, rok := right.(CharType)
		if lok && rok {
			return Char, true
		}
		return nil, false
	}})

	comparisons := []string{"<", "<=", ">", ">="}
	for _, sym := range comparisons {
		sym := sym
		t.Register(OperatorEntry{Symbol: sym, Fixity: Infix, Resolve: func(left, right Type) (Type, bool) {
			if !numeric(left) || !numeric(right) {
				if _, lok := left.(CharType); lok {
					if _, rok := right.(CharType); rok {
						return Bool, true
					}
				}
				return nil, false
			}
			return Bool, true
		}})
	}

	equality := []string{"==", "!="}
	for _, sym := range equality {
		sym := sym
		t.Register(OperatorEntry{Symbol: sym, Fixity: Infix, Resolve: func(left, right Type) (Type, bool) {
			if AssignableFrom(left, right) || AssignableFrom(right, left) {
				return Bool, true
			}
			return nil, false
		}})
	}

	logical := []string{"&&", "||"}
	for _, sym := range logical {
		sym := sym
		t.Register(OperatorEntry{Symbol: sym, Fixity: Infix, Resolve: func(left, right Type) (Type, bool) {
			_, lok := left.(BoolType)
			_, rok := right.(BoolType)
			if lok && rok {
				return Bool, true
			}
			return nil, false
		}})
	}

	t.Register(OperatorEntry{Symbol: "-", Fixity: Prefix, Resolve: func(_, right Type) (Type, bool) {
		if i, ok := right.(IntegerType); ok {
			return IntegerType{Size: i.Size, Signed: true}, true
		}
		if f, ok := right.(FloatType); ok {
			return f, true
		}
		return nil, false
	}})
	t.Register(OperatorEntry{Symbol: "!", Fixity: Prefix, Resolve: func(_, right Type) (Type, bool) {
		if _, ok := right.(BoolType); ok {
			return Bool, true
		}
		return nil, false
	}})
}
