package symexpr

import (
	"context"
	"math"
)

const foldEps = 1e-12

// Simplify applies rewrite rules and constant folding until the tree reaches
// a fixed point. Algebraic simplification can blow up on adversarial input,
// so the loop polls ctx between passes; callers running under a deadline get
// control back at the next pass boundary.
func Simplify(ctx context.Context, node Node) (Node, error) {
	for i := 0; i < 50; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := simplifyOnce(node)
		if next.String() == node.String() {
			return next, nil
		}
		node = next
	}
	return node, nil
}

// IsZero reports whether a simplified tree denotes the constant zero.
func IsZero(node Node) bool {
	n, ok := node.(*Num)
	return ok && math.Abs(n.Val) < foldEps
}

// IsConstant reports whether a simplified tree denotes a constant, i.e.
// contains no free variable.
func IsConstant(node Node) bool {
	return node != nil && !ContainsVar(node)
}

func simplifyOnce(node Node) Node {
	// Constant subtrees fold to a single Num. Domain failures (log of a
	// negative constant, division by zero) leave the subtree alone.
	if !ContainsVar(node) {
		if val, ok := node.Eval(nil); ok {
			return &Num{Val: val}
		}
	}

	switch n := node.(type) {
	case *Var, *Num:
		return node

	case *Unary:
		child := simplifyOnce(n.Child)
		if n.Op == OpNeg {
			// -(-x) = x
			if inner, ok := child.(*Unary); ok && inner.Op == OpNeg {
				return inner.Child
			}
			if c, ok := child.(*Num); ok {
				return &Num{Val: -c.Val}
			}
		}
		return &Unary{Op: n.Op, Child: child}

	case *Call:
		return &Call{Fn: n.Fn, Arg: simplifyOnce(n.Arg)}

	case *Binary:
		left := simplifyOnce(n.Left)
		right := simplifyOnce(n.Right)

		lc, lok := constVal(left)
		rc, rok := constVal(right)

		switch n.Op {
		case OpAdd:
			if rok && rc == 0 {
				return left
			}
			if lok && lc == 0 {
				return right
			}
			// x + (-y) = x - y
			if ru, ok := right.(*Unary); ok && ru.Op == OpNeg {
				return &Binary{Op: OpSub, Left: left, Right: ru.Child}
			}
			// canonical operand order so x+y and y+x print identically
			if left.String() > right.String() {
				left, right = right, left
			}

		case OpSub:
			if rok && rc == 0 {
				return left
			}
			// x - (-y) = x + y
			if ru, ok := right.(*Unary); ok && ru.Op == OpNeg {
				return &Binary{Op: OpAdd, Left: left, Right: ru.Child}
			}
			// x - x = 0 (structural)
			if left.String() == right.String() {
				return &Num{Val: 0}
			}

		case OpMul:
			if (rok && rc == 0) || (lok && lc == 0) {
				return &Num{Val: 0}
			}
			if rok && rc == 1 {
				return left
			}
			if lok && lc == 1 {
				return right
			}
			if rok && rc == -1 {
				return &Unary{Op: OpNeg, Child: left}
			}
			if lok && lc == -1 {
				return &Unary{Op: OpNeg, Child: right}
			}
			if left.String() > right.String() {
				left, right = right, left
			}

		case OpDiv:
			if rok && rc == 1 {
				return left
			}
			if lok && lc == 0 && !(rok && rc == 0) {
				return &Num{Val: 0}
			}
			// x / x = 1 (structural, nonzero assumed for symbolic purposes)
			if left.String() == right.String() {
				return &Num{Val: 1}
			}

		case OpPow:
			if rok && rc == 0 {
				return &Num{Val: 1}
			}
			if rok && rc == 1 {
				return left
			}
			if lok && lc == 1 {
				return &Num{Val: 1}
			}
		}

		return &Binary{Op: n.Op, Left: left, Right: right}

	default:
		return node
	}
}

func constVal(node Node) (float64, bool) {
	n, ok := node.(*Num)
	if !ok {
		return 0, false
	}
	return n.Val, true
}
