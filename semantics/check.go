package semantics

import (
	"github.com/silky/pikelet/bind"
	"github.com/silky/pikelet/core"
	"github.com/silky/pikelet/lexer"
)

// Infer synthesizes the type of a term with no external hint. The term
// comes back alongside its type; elaboration does not rewrite terms in
// this calculus, but front ends keep the pair together for display.
//
// gen supplies the fresh names used when the checker steps under a
// binder. It belongs to the session and must not be shared across
// sessions.
func Infer(gen *bind.FreshGen, ctx Context, t core.Term) (core.Term, core.Type, error) {
	c := &checker{gen: gen}
	ty, err := c.infer(ctx, t)
	if err != nil {
		return nil, nil, wrapInternal(err)
	}
	return t, ty, nil
}

// Check verifies a term against an expected type.
func Check(gen *bind.FreshGen, ctx Context, t core.Term, expected core.Type) (core.Term, error) {
	c := &checker{gen: gen}
	if err := c.check(ctx, t, expected); err != nil {
		return nil, wrapInternal(err)
	}
	return t, nil
}

// InferUniverse infers a term that must be a type and returns the
// universe level it lives at. Front ends use it to validate claim
// annotations before extending a context.
func InferUniverse(gen *bind.FreshGen, ctx Context, t core.Term) (uint32, error) {
	c := &checker{gen: gen}
	level, err := c.inferUniverse(ctx, t)
	if err != nil {
		return 0, wrapInternal(err)
	}
	return level, nil
}

type checker struct {
	gen *bind.FreshGen
}

func (c *checker) infer(ctx Context, t core.Term) (core.Type, error) {
	switch t := t.(type) {
	case *core.Universe:
		return &core.Universe{SpanOf: t.SpanOf, Level: t.Level + 1}, nil
	case *core.Var:
		switch ref := t.Ref.(type) {
		case bind.Free:
			ty, ok := ctx.LookupType(ref.Name)
			if !ok {
				return nil, UndefinedName{VarSpan: t.SpanOf, Name: ref.Name}
			}
			return ty, nil
		case bind.Bound:
			return nil, UnsubstitutedDebruijnIndex{
				Span:  t.SpanOf,
				Name:  ref.Binder.Name,
				Index: ref.Binder.Val,
			}
		default:
			panic("unreachable")
		}
	case *core.Ann:
		// the annotation must itself be a type; its normal form is
		// then the expected type of the inner term
		if _, err := c.inferUniverse(ctx, t.Type); err != nil {
			return nil, err
		}
		expected, err := norm(ctx, t.Type)
		if err != nil {
			return nil, err
		}
		if err := c.check(ctx, t.Expr, expected); err != nil {
			return nil, err
		}
		return expected, nil
	case *core.App:
		fnTy, err := c.infer(ctx, t.Fn)
		if err != nil {
			return nil, err
		}
		fnTy, err = norm(ctx, fnTy)
		if err != nil {
			return nil, err
		}
		pi, ok := fnTy.(*core.Pi)
		if !ok {
			return nil, NotAFunctionType{
				FnSpan:  t.Fn.Span(),
				ArgSpan: t.Arg.Span(),
				Found:   fnTy,
			}
		}
		if err := c.check(ctx, t.Arg, pi.Scope.Param.Val); err != nil {
			return nil, err
		}
		// beta-substitution at the type level
		return pi.Scope.Instantiate(t.Arg), nil
	case *core.Pi:
		ann := t.Scope.Param.Val
		if ann == nil {
			return nil, FunctionParamNeedsAnnotation{ParamSpan: t.SpanOf, Name: t.Scope.Param.Name}
		}
		domLevel, err := c.inferUniverse(ctx, ann)
		if err != nil {
			return nil, err
		}
		fresh := c.gen.Fresh()
		body := t.Scope.Instantiate(freeVar(t.SpanOf, fresh))
		codLevel, err := c.inferUniverse(ctx.Extend(fresh, ann), body)
		if err != nil {
			return nil, err
		}
		// predicative: the pi lives in the larger of the two universes
		return &core.Universe{SpanOf: t.SpanOf, Level: max(domLevel, codLevel)}, nil
	case *core.Lam:
		// lambdas only check against a pi type; without one there is
		// nothing to give the parameter
		return nil, FunctionParamNeedsAnnotation{ParamSpan: t.SpanOf, Name: t.Scope.Param.Name}
	default:
		panic("unreachable")
	}
}

// inferUniverse infers a term expected to be a type and returns its
// universe level.
func (c *checker) inferUniverse(ctx Context, t core.Term) (uint32, error) {
	ty, err := c.infer(ctx, t)
	if err != nil {
		return 0, err
	}
	ty, err = norm(ctx, ty)
	if err != nil {
		return 0, err
	}
	u, ok := ty.(*core.Universe)
	if !ok {
		return 0, ExpectedUniverse{Span: t.Span(), Found: ty}
	}
	return u.Level, nil
}

func (c *checker) check(ctx Context, t core.Term, expected core.Type) error {
	if lam, ok := t.(*core.Lam); ok {
		nexp, err := norm(ctx, expected)
		if err != nil {
			return err
		}
		pi, ok := nexp.(*core.Pi)
		if !ok {
			return UnexpectedFunction{Span: t.Span(), Expected: nexp}
		}
		domain := pi.Scope.Param.Val
		if lam.Scope.Param.Val != nil {
			eq, err := c.equal(ctx, lam.Scope.Param.Val, domain)
			if err != nil {
				return err
			}
			if !eq {
				return Mismatch{
					Span:     lam.Scope.Param.Val.Span(),
					Found:    lam.Scope.Param.Val,
					Expected: domain,
				}
			}
		}
		fresh := c.gen.Fresh()
		v := freeVar(lam.SpanOf, fresh)
		return c.check(ctx.Extend(fresh, domain), lam.Scope.Instantiate(v), pi.Scope.Instantiate(v))
	}
	found, err := c.infer(ctx, t)
	if err != nil {
		return err
	}
	eq, err := c.equal(ctx, found, expected)
	if err != nil {
		return err
	}
	if !eq {
		nf, err := norm(ctx, found)
		if err != nil {
			return err
		}
		ne, err := norm(ctx, expected)
		if err != nil {
			return err
		}
		return Mismatch{Span: t.Span(), Found: nf, Expected: ne}
	}
	return nil
}

// equal is definitional equality: normalize both sides and compare
// structurally. Indices carry binder identity, so the structural
// comparison is alpha-equivalence.
func (c *checker) equal(ctx Context, a, b core.Term) (bool, error) {
	na, err := norm(ctx, a)
	if err != nil {
		return false, err
	}
	nb, err := norm(ctx, b)
	if err != nil {
		return false, err
	}
	return core.AlphaEq(na, nb), nil
}

func freeVar(span lexer.Span, name bind.Name) *core.Var {
	return &core.Var{SpanOf: span, Ref: bind.Free{Name: name}}
}
