package semantics

import (
	"github.com/silky/pikelet/bind"
	"github.com/silky/pikelet/core"
)

// Normalize evaluates a term to a canonical form: context definitions
// are substituted, applications of lambdas beta-reduce, annotations are
// erased. Free variables with no definition stay neutral, and binder
// bodies are left alone until an application opens them, so the result
// is a weak head normal form pushed through subterm congruence.
//
// Well-typed terms always terminate. A term that never went through
// Check can loop; no step budget is enforced.
func Normalize(ctx Context, t core.Term) (core.Term, error) {
	v, err := norm(ctx, t)
	return v, wrapInternal(err)
}

func norm(ctx Context, t core.Term) (core.Term, error) {
	switch t := t.(type) {
	case *core.Universe:
		return t, nil
	case *core.Var:
		switch ref := t.Ref.(type) {
		case bind.Free:
			if def, ok := ctx.LookupDefinition(ref.Name); ok {
				return norm(ctx, def)
			}
			return t, nil
		case bind.Bound:
			// every binder must have been opened before its body
			// reaches the normalizer
			return nil, UnsubstitutedDebruijnIndex{
				Span:  t.SpanOf,
				Name:  ref.Binder.Name,
				Index: ref.Binder.Val,
			}
		default:
			panic("unreachable")
		}
	case *core.Ann:
		return norm(ctx, t.Expr)
	case *core.Lam:
		scope, err := normScope(ctx, t.Scope)
		if err != nil {
			return nil, err
		}
		return &core.Lam{SpanOf: t.SpanOf, Scope: scope}, nil
	case *core.Pi:
		scope, err := normScope(ctx, t.Scope)
		if err != nil {
			return nil, err
		}
		return &core.Pi{SpanOf: t.SpanOf, Scope: scope}, nil
	case *core.App:
		fn, err := norm(ctx, t.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := norm(ctx, t.Arg)
		if err != nil {
			return nil, err
		}
		if lam, ok := fn.(*core.Lam); ok {
			return norm(ctx, lam.Scope.Instantiate(arg))
		}
		return &core.App{SpanOf: t.SpanOf, Fn: fn, Arg: arg}, nil
	default:
		panic("unreachable")
	}
}

// normScope normalizes the parameter annotation only. The body stays
// closed; it is opened by Instantiate when the scope is applied.
func normScope(ctx Context, s core.Scope) (core.Scope, error) {
	if s.Param.Val == nil {
		return s, nil
	}
	ann, err := norm(ctx, s.Param.Val)
	if err != nil {
		return core.Scope{}, err
	}
	s.Param.Val = ann
	return s, nil
}
