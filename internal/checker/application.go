package checker

import (
	"github.com/nilolang/nilo/internal/typesys"
	"github.com/nilolang/nilo/pkg/ast"
)

// checkApplication implements §4.6's generic-application rules: a
// concrete generic Function resolves its type parameters either by
// inference from argument types (no explicit type arguments) or by
// validating an explicit type-argument list against each parameter's
// constraint; a non-generic callee rejects explicit type arguments
// outright.
func (c *Checker) checkApplication(app *ast.ApplicationExpr) typesys.Type {
	calleeType := c.checkExpr(app.Callee)
	switch calleeType.(type) {
	case typesys.UnknownType, typesys.NeverType:
		// Already diagnosed wherever the callee itself went wrong; avoid
		// cascading an "invalid arg count" on top of it.
		for _, a := range app.Args {
			c.checkExpr(a)
		}
		return typesys.Unknown
	}
	if !typesys.IsFunction(calleeType) {
		c.errorf(app.Range(), "not invokable: "+kindName(calleeType))
		for _, a := range app.Args {
			c.checkExpr(a)
		}
		return typesys.Unknown
	}

	fn, isConcrete := calleeType.(typesys.FunctionType)
	var params []typesys.Type
	var ret typesys.Type

	switch {
	case isConcrete && fn.IsGeneric() && len(app.TypeArgs) == 0:
		params, ret = c.applyGenericInferred(app, fn)
	case isConcrete && fn.IsGeneric():
		params, ret = c.applyGenericExplicit(app, fn)
	default:
		if len(app.TypeArgs) > 0 {
			c.errorf(app.Range(), "not generic function: "+kindName(calleeType))
		}
		params, _ = typesys.GetParams(calleeType)
		ret, _ = typesys.GetReturnType(calleeType)
	}

	if len(app.Args) != len(params) {
		c.errorf(app.Range(), "invalid arg count")
		for _, a := range app.Args {
			c.checkExpr(a)
		}
		return typesys.Unknown
	}

	for i, a := range app.Args {
		c.checkArgAgainst(a, params[i])
	}

	if ret == nil {
		return typesys.Unknown
	}
	return ret
}

// applyGenericInferred implements case 1: infer type-parameter
// bindings from the raw argument types, then specify the function's
// parameter and return types with them. Lambda arguments whose
// parameter types this inference resolves are re-checked against the
// specified parameter type to complete their two-phase resolution.
func (c *Checker) applyGenericInferred(app *ast.ApplicationExpr, fn typesys.FunctionType) ([]typesys.Type, typesys.Type) {
	argTypes := make([]typesys.Type, len(app.Args))
	for i, a := range app.Args {
		if i < len(fn.Params) {
			argTypes[i] = c.checkExprExpected(a, nil)
			continue
		}
		argTypes[i] = c.checkExpr(a)
	}
	bindings := typesys.InferTypeArguments(fn, argTypes)

	params := make([]typesys.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = typesys.Specify(p, bindings)
	}
	ret := typesys.Specify(fn.Return, bindings)

	for i, a := range app.Args {
		if i >= len(params) {
			continue
		}
		if lam, ok := a.(*ast.LambdaExpr); ok && lam.Type() == nil {
			c.checkLambda(lam, params[i])
		}
	}
	return params, ret
}

// applyGenericExplicit implements case 2: validate the explicit
// type-argument count and each argument's assignability to its
// parameter's constraint, then specify.
func (c *Checker) applyGenericExplicit(app *ast.ApplicationExpr, fn typesys.FunctionType) ([]typesys.Type, typesys.Type) {
	if len(app.TypeArgs) != len(fn.TypeParams) {
		c.errorf(app.Range(), "invalid type-arg count")
		for _, a := range app.Args {
			c.checkExpr(a)
		}
		return nil, typesys.Unknown
	}

	bindings := make(map[string]typesys.Type, len(fn.TypeParams))
	for i, tp := range fn.TypeParams {
		argType := c.resolveType(app.TypeArgs[i])
		if tp.Constraint != nil && !typesys.AssignableFrom(tp.Constraint, argType) {
			c.errorf(app.TypeArgs[i].Range(), "invalid type-arg: violates constraint on "+tp.Name)
			argType = typesys.Unknown
		}
		bindings[tp.Name] = typesys.ArgType{Variance: tp.Variance, Underlying: argType}
	}

	params := make([]typesys.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = typesys.Specify(p, bindings)
	}
	return params, typesys.Specify(fn.Return, bindings)
}

// checkArgAgainst type-checks a against expected, giving a lambda
// literal the expected function type as call-site context, then
// diagnoses a mismatch.
func (c *Checker) checkArgAgainst(a ast.Expression, expected typesys.Type) typesys.Type {
	actual := c.checkExprExpected(a, expected)
	if expected != nil && !typesys.AssignableFrom(expected, actual) {
		c.errorf(a.Range(), "type mismatch: expected "+describe(expected)+", got "+describe(actual))
	}
	return actual
}
