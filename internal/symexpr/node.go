package symexpr

// Node is the interface for all expression tree nodes.
type Node interface {
	Eval(vars map[string]float64) (float64, bool)
	String() string
	Clone() Node
	NodeCount() int
}

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

// Var references a free problem variable by name.
type Var struct {
	Name string
}

// Num is a numeric constant. Free constants fit by the external search are
// substituted into Num nodes at parse time, so a loaded candidate only
// contains Var leaves for problem variables.
type Num struct {
	Val float64
}

// Unary applies a unary operation to a child expression.
type Unary struct {
	Op    UnaryOp
	Child Node
}

// Binary applies a binary operation to two child expressions.
type Binary struct {
	Op          BinaryOp
	Left, Right Node
}

// Call applies a named function (sin, cos, exp, log, sqrt, ...) to an argument.
type Call struct {
	Fn  string
	Arg Node
}

func (v *Var) Clone() Node    { return &Var{Name: v.Name} }
func (n *Num) Clone() Node    { return &Num{Val: n.Val} }
func (u *Unary) Clone() Node  { return &Unary{Op: u.Op, Child: u.Child.Clone()} }
func (b *Binary) Clone() Node { return &Binary{Op: b.Op, Left: b.Left.Clone(), Right: b.Right.Clone()} }
func (c *Call) Clone() Node   { return &Call{Fn: c.Fn, Arg: c.Arg.Clone()} }

func (v *Var) NodeCount() int   { return 1 }
func (n *Num) NodeCount() int   { return 1 }
func (u *Unary) NodeCount() int { return 1 + u.Child.NodeCount() }
func (b *Binary) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}
func (c *Call) NodeCount() int { return 1 + c.Arg.NodeCount() }

// Complexity scores an expression by its node count.
func Complexity(node Node) int {
	if node == nil {
		return 0
	}
	return node.NodeCount()
}

// ContainsVar reports whether the expression tree references any free variable.
func ContainsVar(node Node) bool {
	switch n := node.(type) {
	case *Var:
		return true
	case *Num:
		return false
	case *Unary:
		return ContainsVar(n.Child)
	case *Binary:
		return ContainsVar(n.Left) || ContainsVar(n.Right)
	case *Call:
		return ContainsVar(n.Arg)
	default:
		return false
	}
}
