package checker

import (
	"github.com/nilolang/nilo/internal/typesys"
	"github.com/nilolang/nilo/pkg/ast"
)

// checkLambda implements §4.6's two-phase lambda resolution. A visit in
// which some parameter has neither an annotation nor an expected
// parameter type at its position produces a tentative
// Function(params, Inferred) without
// checking the body or caching a final type on the node; a later call
// with expected filled in from the call site completes the signature
// and checks the body, at which point the result is cached.
func (c *Checker) checkLambda(lam *ast.LambdaExpr, expected typesys.Type) typesys.Type {
	if t := lam.Type(); t != nil {
		return t
	}

	var expectedFn *typesys.FunctionType
	if fn, ok := expected.(typesys.FunctionType); ok {
		expectedFn = &fn
	}

	paramTypes := make([]typesys.Type, len(lam.Params))
	complete := true
	for i, p := range lam.Params {
		switch {
		case p.Type != nil:
			paramTypes[i] = c.resolveType(p.Type)
		case expectedFn != nil && i < len(expectedFn.Params):
			paramTypes[i] = expectedFn.Params[i]
		default:
			paramTypes[i] = typesys.Inferred
			complete = false
		}
	}

	var declaredReturn typesys.Type
	if lam.ReturnType != nil {
		declaredReturn = c.resolveType(lam.ReturnType)
	} else if expectedFn != nil {
		declaredReturn = expectedFn.Return
	}

	if !complete {
		// Still missing parameter types and no call-site context yet:
		// return the tentative signature without checking the body or
		// caching, so a later call with the real expected type can finish
		// the job.
		ret := declaredReturn
		if ret == nil {
			ret = typesys.Inferred
		}
		return typesys.FunctionType{Params: paramTypes, Return: ret}
	}

	c.scope.pushBoundary()
	typeParams := make([]typesys.TypeParamEntry, len(lam.TypeParams))
	for i, tp := range lam.TypeParams {
		var constraint typesys.Type
		if tp.Constraint != nil {
			constraint = c.resolveType(tp.Constraint)
		}
		typeParams[i] = typesys.TypeParamEntry{Name: tp.Name, Variance: tp.Variance, Constraint: constraint}
		c.scope.defineTypeParam(identKey(tp.Name), typesys.ParamType{Name: tp.Name, Variance: tp.Variance, Constraint: constraint})
	}
	for i := range lam.Params {
		lam.Params[i].SetType(paramTypes[i])
		c.scope.define(identKey(lam.Params[i].Name), paramTypes[i])
	}

	bodyType := c.checkExprExpected(lam.Body, declaredReturn)
	c.scope.pop()

	returnType := declaredReturn
	if returnType == nil {
		returnType = bodyType
	} else if !typesys.AssignableFrom(returnType, bodyType) {
		c.errorf(lam.Body.Range(), "type mismatch: expected "+describe(returnType)+", got "+describe(bodyType))
	}

	fnType := typesys.FunctionType{Params: paramTypes, Return: returnType, TypeParams: typeParams}
	lam.SetType(fnType)
	return fnType
}
