package checker

import (
	"math"

	"github.com/nilolang/nilo/internal/typesys"
	"github.com/nilolang/nilo/pkg/ast"
)

// checkExpr type-checks e with no expected type from its call site.
func (c *Checker) checkExpr(e ast.Expression) typesys.Type {
	return c.checkExprExpected(e, nil)
}

// checkExprExpected type-checks e, using expected (nil if none) to
// resolve a lambda literal's inferred parameter/return types per
// §4.6's two-phase lambda resolution. Every other expression kind
// ignores expected and resolves independently; their cached Type()
// short-circuits a repeat visit.
func (c *Checker) checkExprExpected(e ast.Expression, expected typesys.Type) typesys.Type {
	if lam, ok := e.(*ast.LambdaExpr); ok {
		return c.checkLambda(lam, expected)
	}
	if t := e.Type(); t != nil {
		return t
	}

	var t typesys.Type
	switch expr := e.(type) {
	case *ast.IntegerLiteralExpr:
		t = integerLiteralType(expr.Value)
	case *ast.FloatLiteralExpr:
		t = typesys.NewFloat(64)
	case *ast.StringLiteralExpr:
		t = typesys.ArrayType{Element: typesys.Char}
	case *ast.CharLiteralExpr:
		t = typesys.Char
	case *ast.BoolLiteralExpr:
		t = typesys.Bool
	case *ast.IdentifierExpr:
		t = c.resolveIdent(expr.Name, expr.Range())
	case *ast.ParenthesizedExpr:
		t = c.checkExpr(expr.Inner)
	case *ast.VarDeclExpr:
		t = c.checkVarDecl(expr)
	case *ast.UnaryExpr:
		t = c.checkUnary(expr)
	case *ast.BinaryExpr:
		t = c.checkBinary(expr)
	case *ast.ApplicationExpr:
		t = c.checkApplication(expr)
	case *ast.ArrayAccessExpr:
		t = c.checkArrayAccess(expr)
	case *ast.FieldAccessExpr:
		t = c.checkFieldAccess(expr)
	case *ast.IfElseExpr:
		t = c.checkIfElse(expr)
	case *ast.ArrayLiteralExpr:
		t = c.checkArrayLiteral(expr)
	case *ast.TupleLiteralExpr:
		members := make([]typesys.Type, len(expr.Elements))
		for i, el := range expr.Elements {
			members[i] = c.checkExpr(el)
		}
		t = typesys.TupleType{Members: members}
	case *ast.StructLiteralExpr:
		t = c.checkStructLiteral(expr)
	case *ast.BlockExpr:
		t = c.checkBlockValue(expr.Block)
	default:
		t = typesys.Unknown
	}

	e.SetType(t)
	return t
}

// signedLimits[i] is the most negative value that still fits in a
// signed integer of size8Widths[i] bits (two's complement), computed as
// literal constants to avoid a same-width left-shift overflow at 64
// bits. unsignedLimits[i] is the exclusive upper bound for the
// corresponding unsigned width below 64 (unsigned 64 always fits an
// int64 value, which is never negative past this point).
var size8Widths = [4]int{8, 16, 32, 64}
var signedLimits = [4]int64{-128, -32768, -2147483648, math.MinInt64}
var unsignedLimits = [3]int64{256, 65536, 4294967296}

// integerLiteralType implements §4.6/P7: the narrowest signed width
// for a negative value, the narrowest unsigned width for a non-negative
// one, widening 8 → 16 → 32 → 64 → unbounded.
func integerLiteralType(v int64) typesys.Type {
	if v < 0 {
		for i, limit := range signedLimits {
			if v >= limit {
				return typesys.NewInteger(size8Widths[i], true)
			}
		}
		return typesys.NewInteger(64, true)
	}
	for i, limit := range unsignedLimits {
		if v < limit {
			return typesys.NewInteger(size8Widths[i], false)
		}
	}
	return typesys.NewInteger(64, false)
}

func (c *Checker) checkVarDecl(v *ast.VarDeclExpr) typesys.Type {
	var expected typesys.Type
	if v.Type != nil {
		expected = c.resolveType(v.Type)
	}
	valueType := c.checkExprExpected(v.Value, expected)

	t := valueType
	if expected != nil {
		if !typesys.AssignableFrom(expected, valueType) {
			c.errorf(v.Value.Range(), "type mismatch: expected "+describe(expected)+", got "+describe(valueType))
			t = typesys.Unknown
		} else {
			t = expected
		}
	}
	c.scope.define(identKey(v.Name), t)
	return t
}

func (c *Checker) checkUnary(u *ast.UnaryExpr) typesys.Type {
	operand := c.checkExpr(u.Operand)
	fixity := typesys.Prefix
	if u.Postfix {
		fixity = typesys.Postfix
	}
	var left, right typesys.Type
	if u.Postfix {
		left = operand
	} else {
		right = operand
	}
	if result, ok := c.ops.Resolve(u.Op, fixity, left, right); ok {
		return result
	}
	c.errorf(u.Range(), "invalid unary operator: "+u.Op)
	return typesys.Unknown
}

func (c *Checker) checkBinary(b *ast.BinaryExpr) typesys.Type {
	left := c.checkExpr(b.Left)
	right := c.checkExpr(b.Right)
	if result, ok := c.ops.Resolve(b.Op, typesys.Infix, left, right); ok {
		return result
	}
	c.errorf(b.Range(), "invalid binary operator: "+b.Op)
	return typesys.Unknown
}

func (c *Checker) checkArrayAccess(a *ast.ArrayAccessExpr) typesys.Type {
	arrType := c.checkExpr(a.Array)
	idxType := c.checkExpr(a.Index)
	if !typesys.IsInteger(idxType) {
		c.errorf(a.Index.Range(), "type mismatch: expected integer, got "+describe(idxType))
	}
	elem, ok := typesys.GetBaseType(arrType)
	if !ok {
		c.errorf(a.Array.Range(), "not array: "+kindName(arrType))
		return typesys.Unknown
	}
	return elem
}

func (c *Checker) checkFieldAccess(f *ast.FieldAccessExpr) typesys.Type {
	targetType := c.checkExpr(f.Target)
	if ns, ok := targetType.(typesys.NamespaceType); ok {
		if t, ok := namespaceMember(ns, f.Field); ok {
			return t
		}
		c.errorf(f.Range(), "module does not export: "+f.Field)
		return typesys.Unknown
	}
	if !typesys.HasField(targetType, f.Field) {
		c.errorf(f.Range(), "not struct: "+kindName(targetType))
		return typesys.Unknown
	}
	t, _ := typesys.GetField(targetType, f.Field)
	return t
}

func (c *Checker) checkIfElse(ie *ast.IfElseExpr) typesys.Type {
	cond := c.checkExpr(ie.Condition)
	if !typesys.AssignableFrom(typesys.Bool, cond) {
		c.errorf(ie.Condition.Range(), "type mismatch: expected bool, got "+describe(cond))
	}
	thenType := c.checkExpr(ie.Then)
	elseType := c.checkExpr(ie.Else)
	return typesys.General(thenType, elseType)
}

func (c *Checker) checkArrayLiteral(a *ast.ArrayLiteralExpr) typesys.Type {
	if len(a.Elements) == 0 {
		return typesys.ArrayType{Element: typesys.Any}
	}
	elem := c.checkExpr(a.Elements[0])
	for _, el := range a.Elements[1:] {
		elem = typesys.General(elem, c.checkExpr(el))
	}
	return typesys.ArrayType{Element: elem}
}

func (c *Checker) checkStructLiteral(s *ast.StructLiteralExpr) typesys.Type {
	fields := make([]typesys.StructField, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = typesys.StructField{Name: f.Name, Type: c.checkExpr(f.Value)}
	}
	inferred := typesys.StructType{Fields: fields}
	if s.TypeRef == nil {
		return inferred
	}
	declared := c.resolveType(s.TypeRef)
	if !typesys.AssignableFrom(declared, inferred) {
		c.errorf(s.Range(), "type mismatch: expected "+describe(declared)+", got "+describe(inferred))
		return typesys.Unknown
	}
	return declared
}
