package symexpr

import (
	"fmt"
	"strconv"
)

var binarySymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "**",
}

func (v *Var) String() string {
	return v.Name
}

func (n *Num) String() string {
	return strconv.FormatFloat(n.Val, 'g', -1, 64)
}

func (u *Unary) String() string {
	switch u.Op {
	case OpNeg:
		return fmt.Sprintf("(-%s)", u.Child.String())
	default:
		return fmt.Sprintf("(?%s)", u.Child.String())
	}
}

func (b *Binary) String() string {
	sym := binarySymbols[b.Op]
	if b.Op == OpPow {
		return fmt.Sprintf("(%s)**(%s)", b.Left.String(), b.Right.String())
	}
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), sym, b.Right.String())
}

func (c *Call) String() string {
	return fmt.Sprintf("%s(%s)", c.Fn, c.Arg.String())
}
