package eval

import "github.com/sunholo/noolang/internal/ast"

func (ev *Evaluator) evalBinary(env *Environment, e *ast.BinaryExpr) (Value, error) {
	switch e.Operator {
	case ";":
		newEnv, _, err := ev.evalStatement(env, e.Left)
		if err != nil {
			return nil, err
		}
		return ev.Eval(newEnv, e.Right)

	case "$":
		fn, err := ev.Eval(env, e.Left)
		if err != nil {
			return nil, err
		}
		arg, err := ev.Eval(env, e.Right)
		if err != nil {
			return nil, err
		}
		return ev.apply(e.Location, fn, []Value{arg})

	case "|":
		return ev.evalThrush(env, e, false)

	case "|?":
		return ev.evalThrush(env, e, true)
	}

	left, err := ev.Eval(env, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := ev.Eval(env, e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "==":
		return &BoolValue{Value: valuesEqual(left, right)}, nil
	case "!=":
		return &BoolValue{Value: !valuesEqual(left, right)}, nil
	}

	// `+` dispatches on operand type: Float+Float adds, String+String
	// concatenates (spec §4.9/§8 scenario 2); any other combination is a
	// runtime error (the type checker already rejects it at compile time,
	// this only guards evaluation done without going through inference).
	if e.Operator == "+" {
		ls, lIsStr := left.(*StringValue)
		rs, rIsStr := right.(*StringValue)
		if lIsStr && rIsStr {
			return &StringValue{Value: ls.Value + rs.Value}, nil
		}
		ln, lok := left.(*NumberValue)
		rn, rok := right.(*NumberValue)
		if lok && rok {
			return &NumberValue{Value: ln.Value + rn.Value}, nil
		}
		return nil, runtimeErrorf(e.Location, "operator + requires two Float or two String operands, got %s and %s", left.TypeName(), right.TypeName())
	}

	ln, lok := left.(*NumberValue)
	rn, rok := right.(*NumberValue)
	if !lok || !rok {
		return nil, runtimeErrorf(e.Location, "operator %s requires Float operands, got %s and %s", e.Operator, left.TypeName(), right.TypeName())
	}
	switch e.Operator {
	case "-":
		return &NumberValue{Value: ln.Value - rn.Value}, nil
	case "*":
		return &NumberValue{Value: ln.Value * rn.Value}, nil
	case "/":
		if rn.Value == 0 {
			return nil, runtimeErrorf(e.Location, "division by zero")
		}
		return &NumberValue{Value: ln.Value / rn.Value}, nil
	case "%":
		if rn.Value == 0 {
			return nil, runtimeErrorf(e.Location, "division by zero")
		}
		return &NumberValue{Value: float64(int64(ln.Value) % int64(rn.Value))}, nil
	case "<":
		return &BoolValue{Value: ln.Value < rn.Value}, nil
	case ">":
		return &BoolValue{Value: ln.Value > rn.Value}, nil
	case "<=":
		return &BoolValue{Value: ln.Value <= rn.Value}, nil
	case ">=":
		return &BoolValue{Value: ln.Value >= rn.Value}, nil
	}
	return nil, runtimeErrorf(e.Location, "unknown operator %q", e.Operator)
}

// evalThrush types `value | fn`; the safe `|?` variant short-circuits on
// `None`/`Err e` instead of calling fn, mirroring inferThrush's structural
// (not trait-based) handling of Option/Result's shape.
func (ev *Evaluator) evalThrush(env *Environment, e *ast.BinaryExpr, safe bool) (Value, error) {
	left, err := ev.Eval(env, e.Left)
	if err != nil {
		return nil, err
	}
	fn, err := ev.Eval(env, e.Right)
	if err != nil {
		return nil, err
	}
	if !safe {
		return ev.apply(e.Location, fn, []Value{left})
	}
	ctor, ok := left.(*ConstructorValue)
	if !ok || (ctor.TypeName_ != "Option" && ctor.TypeName_ != "Result") {
		return nil, runtimeErrorf(e.Location, "'|?' requires an Option or Result on the left, got %s", left.TypeName())
	}
	if ctor.CtorName == "None" || ctor.CtorName == "Err" {
		return ctor, nil
	}
	payload := ctor.Args[len(ctor.Args)-1]
	result, err := ev.apply(e.Location, fn, []Value{payload})
	if err != nil {
		return nil, err
	}
	newArgs := append([]Value{}, ctor.Args[:len(ctor.Args)-1]...)
	newArgs = append(newArgs, result)
	return &ConstructorValue{TypeName_: ctor.TypeName_, CtorName: ctor.CtorName, Args: newArgs}, nil
}

func (ev *Evaluator) evalPipeline(env *Environment, e *ast.PipelineExpr) (Value, error) {
	cur, err := ev.Eval(env, e.Initial)
	if err != nil {
		return nil, err
	}
	for _, step := range e.Steps {
		stepVal, err := ev.Eval(env, step.Expr)
		if err != nil {
			return nil, err
		}
		switch step.Operator {
		case "|>":
			cur, err = ev.apply(e.Location, stepVal, []Value{cur})
		case "<|":
			cur, err = ev.apply(e.Location, cur, []Value{stepVal})
		}
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case *NumberValue:
		bv, ok := b.(*NumberValue)
		return ok && av.Value == bv.Value
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Value == bv.Value
	case *BoolValue:
		bv, ok := b.(*BoolValue)
		return ok && av.Value == bv.Value
	case *UnitValue:
		_, ok := b.(*UnitValue)
		return ok
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *TupleValue:
		bv, ok := b.(*TupleValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *RecordValue:
		bv, ok := b.(*RecordValue)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for k, v := range av.Fields {
			bvv, ok := bv.Fields[k]
			if !ok || !valuesEqual(v, bvv) {
				return false
			}
		}
		return true
	case *ConstructorValue:
		bv, ok := b.(*ConstructorValue)
		if !ok || av.CtorName != bv.CtorName || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !valuesEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}
