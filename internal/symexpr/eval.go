package symexpr

import "math"

func (v *Var) Eval(vars map[string]float64) (float64, bool) {
	val, ok := vars[v.Name]
	if !ok {
		return 0, false
	}
	return val, true
}

func (n *Num) Eval(vars map[string]float64) (float64, bool) {
	return n.Val, true
}

func (u *Unary) Eval(vars map[string]float64) (float64, bool) {
	child, ok := u.Child.Eval(vars)
	if !ok {
		return 0, false
	}
	switch u.Op {
	case OpNeg:
		return -child, true
	default:
		return 0, false
	}
}

func (b *Binary) Eval(vars map[string]float64) (float64, bool) {
	left, ok := b.Left.Eval(vars)
	if !ok {
		return 0, false
	}
	right, ok := b.Right.Eval(vars)
	if !ok {
		return 0, false
	}

	var result float64
	switch b.Op {
	case OpAdd:
		result = left + right
	case OpSub:
		result = left - right
	case OpMul:
		result = left * right
	case OpDiv:
		if right == 0 {
			return 0, false
		}
		result = left / right
	case OpPow:
		result = math.Pow(left, right)
	default:
		return 0, false
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, false
	}
	return result, true
}

func (c *Call) Eval(vars map[string]float64) (float64, bool) {
	arg, ok := c.Arg.Eval(vars)
	if !ok {
		return 0, false
	}
	fn, ok := callTable[c.Fn]
	if !ok {
		return 0, false
	}
	result := fn(arg)
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, false
	}
	return result, true
}

var callTable = map[string]func(float64) float64{
	"sin":    math.Sin,
	"cos":    math.Cos,
	"tan":    math.Tan,
	"asin":   math.Asin,
	"acos":   math.Acos,
	"atan":   math.Atan,
	"sinh":   math.Sinh,
	"cosh":   math.Cosh,
	"tanh":   math.Tanh,
	"exp":    math.Exp,
	"log":    math.Log,
	"ln":     math.Log,
	"sqrt":   math.Sqrt,
	"abs":    math.Abs,
	"floor":  math.Floor,
	"ceil":   math.Ceil,
	"cbrt":   math.Cbrt,
	"arcsin": math.Asin,
	"arccos": math.Acos,
	"arctan": math.Atan,
}

// KnownCall reports whether name is a recognized function identifier.
func KnownCall(name string) bool {
	_, ok := callTable[name]
	return ok
}
