package eval

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/sunholo/noolang/internal/ast"
)

var stdinReader = bufio.NewReader(os.Stdin)

// InitializeBuiltins seeds env with runtime implementations of the
// effectful primitives infer.InitializeBuiltins types — grounded on the
// teacher's registerIOBuiltins/registerArithmeticBuiltins pattern of one
// BuiltinFunc per primitive, adapted to Noolang's BuiltinValue.
func InitializeBuiltins(env *Environment) *Environment {
	env = env.Extend("True", &BoolValue{Value: true})
	env = env.Extend("False", &BoolValue{Value: false})

	env = env.Extend("numberToString", &BuiltinValue{Name: "numberToString", Arity: 1, Fn: func(args []Value) (Value, error) {
		n := args[0].(*NumberValue)
		return &StringValue{Value: formatNumber(n.Value)}, nil
	}})

	env = env.Extend("print", &BuiltinValue{Name: "print", Arity: 1, Fn: func(args []Value) (Value, error) {
		fmt.Println(args[0].String())
		return &UnitValue{}, nil
	}})

	env = env.Extend("readLine", &BuiltinValue{Name: "readLine", Arity: 1, Fn: func(args []Value) (Value, error) {
		line, err := stdinReader.ReadString('\n')
		if err != nil && line == "" {
			return &StringValue{Value: ""}, nil
		}
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		return &StringValue{Value: line}, nil
	}})

	env = env.Extend("writeLine", &BuiltinValue{Name: "writeLine", Arity: 1, Fn: func(args []Value) (Value, error) {
		s := args[0].(*StringValue)
		fmt.Fprintln(os.Stdout, s.Value)
		return &UnitValue{}, nil
	}})

	env = env.Extend("now", &BuiltinValue{Name: "now", Arity: 1, Fn: func(args []Value) (Value, error) {
		return &NumberValue{Value: float64(time.Now().UnixMilli())}, nil
	}})

	env = env.Extend("random", &BuiltinValue{Name: "random", Arity: 1, Fn: func(args []Value) (Value, error) {
		return &NumberValue{Value: rand.Float64()}, nil
	}})

	env = env.Extend("ffiCall", &BuiltinValue{Name: "ffiCall", Arity: 2, Fn: func(args []Value) (Value, error) {
		name := args[0].(*StringValue)
		return nil, fmt.Errorf("no foreign function registered for %q", name.Value)
	}})

	env = env.Extend("spawn", &BuiltinValue{Name: "spawn", Arity: 1, Fn: func(args []Value) (Value, error) {
		return nil, fmt.Errorf("spawn: concurrent evaluation is not implemented by this evaluator")
	}})

	env = env.Extend("not", &BuiltinValue{Name: "not", Arity: 1, Fn: func(args []Value) (Value, error) {
		return &BoolValue{Value: !args[0].(*BoolValue).Value}, nil
	}})
	env = env.Extend("and", &BuiltinValue{Name: "and", Arity: 2, Fn: func(args []Value) (Value, error) {
		return &BoolValue{Value: args[0].(*BoolValue).Value && args[1].(*BoolValue).Value}, nil
	}})
	env = env.Extend("or", &BuiltinValue{Name: "or", Arity: 2, Fn: func(args []Value) (Value, error) {
		return &BoolValue{Value: args[0].(*BoolValue).Value || args[1].(*BoolValue).Value}, nil
	}})

	return env
}

// RegisterListInstances adds mapList/andThenList, the host-implemented
// backing for the Functor/Monad `List` instances (internal/stdlib wires
// them into the trait registry). Unlike InitializeBuiltins' other entries,
// these need to call back into ev.apply to invoke the mapping function
// passed at the call site, so they live on the Evaluator itself rather
// than in a free function.
func (ev *Evaluator) RegisterListInstances(env *Environment) *Environment {
	env = env.Extend("mapList", &BuiltinValue{Name: "mapList", Arity: 2, Fn: func(args []Value) (Value, error) {
		fn := args[0]
		list := args[1].(*ListValue)
		out := make([]Value, len(list.Elements))
		for i, elem := range list.Elements {
			v, err := ev.apply(ast.Location{}, fn, []Value{elem})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return &ListValue{Elements: out}, nil
	}})
	env = env.Extend("andThenList", &BuiltinValue{Name: "andThenList", Arity: 2, Fn: func(args []Value) (Value, error) {
		fn := args[0]
		list := args[1].(*ListValue)
		var out []Value
		for _, elem := range list.Elements {
			v, err := ev.apply(ast.Location{}, fn, []Value{elem})
			if err != nil {
				return nil, err
			}
			sub, ok := v.(*ListValue)
			if !ok {
				return nil, runtimeErrorf(ast.Location{}, "andThen's function must return a List, got %s", v.TypeName())
			}
			out = append(out, sub.Elements...)
		}
		return &ListValue{Elements: out}, nil
	}})
	return env
}

var _ = strconv.Itoa // retained for ffi-adjacent numeric conversions added here later
