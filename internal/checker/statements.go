package checker

import (
	"github.com/nilolang/nilo/internal/typesys"
	"github.com/nilolang/nilo/pkg/ast"
)

// checkFunctionBodyType dispatches over FunctionBody's three shapes
// (§4.4): a block folds every reachable exit the same as
// checkBlockReturnType always has; a bare expression body is an
// implicit return of its own value; a single non-block statement
// (e.g. a lone `return`) is folded the same way a one-statement block
// would be.
func (c *Checker) checkFunctionBodyType(body ast.Node) typesys.Type {
	switch b := body.(type) {
	case *ast.BlockStatement:
		return c.checkBlockReturnType(b)
	case ast.Expression:
		return c.checkExpr(b)
	case ast.Statement:
		c.scope.push(c.scope.inLoop())
		defer c.scope.pop()
		var exits []typesys.Type
		c.collectExits(b, &exits)
		return foldGeneralOr(exits, typesys.TupleType{})
	default:
		return typesys.Unknown
	}
}

// checkBlockReturnType implements §4.6's return-type inference for a
// function body: the general-type union of every return/throw/break/
// continue reachable anywhere in the block (throw/break/continue each
// contribute Never), defaulting to void when none is reachable. This
// walks into every nested block regardless of whether a preceding
// statement is guaranteed to terminate first — a conservative
// over-approximation of reachability rather than full dead-code
// analysis, which the grammar's lack of a standalone if-statement (only
// IfElseExpr) makes unnecessary for the common cases.
func (c *Checker) checkBlockReturnType(block *ast.BlockStatement) typesys.Type {
	c.scope.push(c.scope.inLoop())
	defer c.scope.pop()

	var exits []typesys.Type
	for _, s := range block.Statements {
		c.collectExits(s, &exits)
	}
	return foldGeneralOr(exits, typesys.TupleType{})
}

// checkBlockValue implements BlockExpr's value rule: the last
// statement's value if it is an expression statement, Void otherwise.
func (c *Checker) checkBlockValue(block *ast.BlockStatement) typesys.Type {
	c.scope.push(c.scope.inLoop())
	defer c.scope.pop()

	var discard []typesys.Type
	value := typesys.Type(typesys.TupleType{})
	for i, s := range block.Statements {
		if i == len(block.Statements)-1 {
			if es, ok := s.(*ast.ExpressionStatement); ok {
				value = c.checkExpr(es.Expr)
				continue
			}
		}
		c.collectExits(s, &discard)
	}
	return value
}

// collectExits type-checks stmt for its side effects (and, for nested
// blocks/loops, scope) and appends any return/throw/break/continue
// type it can reach to exits.
func (c *Checker) collectExits(stmt ast.Statement, exits *[]typesys.Type) {
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		c.scope.push(c.scope.inLoop())
		for _, inner := range s.Statements {
			c.collectExits(inner, exits)
		}
		c.scope.pop()

	case *ast.ExpressionStatement:
		c.checkExpr(s.Expr)

	case *ast.ForStatement:
		iterType := c.checkExpr(s.Iterable)
		elem, ok := typesys.GetBaseType(iterType)
		if !ok {
			c.errorf(s.Iterable.Range(), "not array: "+kindName(iterType))
			elem = typesys.Unknown
		}
		c.scope.push(true)
		c.scope.define(identKey(s.VarName), elem)
		c.collectExits(s.Body, exits)
		c.scope.pop()

	case *ast.WhileStatement:
		cond := c.checkExpr(s.Condition)
		if !typesys.AssignableFrom(typesys.Bool, cond) {
			c.errorf(s.Condition.Range(), "type mismatch: expected bool, got "+describe(cond))
		}
		c.scope.push(true)
		c.collectExits(s.Body, exits)
		c.scope.pop()

	case *ast.DoWhileStatement:
		c.scope.push(true)
		c.collectExits(s.Body, exits)
		c.scope.pop()
		cond := c.checkExpr(s.Condition)
		if !typesys.AssignableFrom(typesys.Bool, cond) {
			c.errorf(s.Condition.Range(), "type mismatch: expected bool, got "+describe(cond))
		}

	case *ast.TryCatchStatement:
		var tryExits, catchExits []typesys.Type
		c.collectExits(s.Try, &tryExits)

		c.scope.push(c.scope.inLoop())
		catchType := typesys.Any
		if s.CatchParam.Type != nil {
			catchType = c.resolveType(s.CatchParam.Type)
		}
		s.CatchParam.SetType(catchType)
		if s.CatchParam.Name != "" {
			c.scope.define(identKey(s.CatchParam.Name), catchType)
		}
		c.collectExits(s.Catch, &catchExits)
		c.scope.pop()

		if s.Finally != nil {
			c.collectExits(s.Finally, exits)
		}
		*exits = append(*exits, mergeBranches(tryExits, catchExits)...)

	case *ast.ReturnStatement:
		t := typesys.Type(typesys.TupleType{})
		if s.Value != nil {
			t = c.checkExpr(s.Value)
		}
		*exits = append(*exits, t)

	case *ast.ThrowStatement:
		c.checkExpr(s.Value)
		*exits = append(*exits, typesys.Never)

	case *ast.BreakStatement:
		if !c.scope.inLoop() {
			c.errorf(s.Range(), "invalid break")
		}
		*exits = append(*exits, typesys.Never)

	case *ast.ContinueStatement:
		if !c.scope.inLoop() {
			c.errorf(s.Range(), "invalid continue")
		}
		*exits = append(*exits, typesys.Never)
	}
}

// mergeBranches folds each branch's own exits down to one type (nil if
// the branch has none) and joins the two via General, modeling
// try-catch's branch merge.
func mergeBranches(try, catch []typesys.Type) []typesys.Type {
	a, aok := foldGeneral(try)
	b, bok := foldGeneral(catch)
	switch {
	case aok && bok:
		return []typesys.Type{typesys.General(a, b)}
	case aok:
		return []typesys.Type{a}
	case bok:
		return []typesys.Type{b}
	default:
		return nil
	}
}

func foldGeneral(ts []typesys.Type) (typesys.Type, bool) {
	if len(ts) == 0 {
		return nil, false
	}
	r := ts[0]
	for _, t := range ts[1:] {
		r = typesys.General(r, t)
	}
	return r, true
}

func foldGeneralOr(ts []typesys.Type, fallback typesys.Type) typesys.Type {
	if r, ok := foldGeneral(ts); ok {
		return r
	}
	return fallback
}
