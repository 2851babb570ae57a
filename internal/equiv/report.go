// Package equiv decides whether candidate expressions are symbolically
// equivalent to a ground truth, under a hard wall-clock bound, and selects
// which candidate of a Pareto front to test.
package equiv

// Exception tags recorded on reports whose verdict defaulted to negative.
// Anything else in the Exception field is a free-form failure description.
const (
	TagNone        = ""
	TagTimeout     = "Timeout"
	TagLowReward   = "LowReward"
	TagNoFrontFile = "NoFrontFile"
	TagParseError  = "ParseError"
)

// Flag is a three-valued boolean: equivalence sub-results stay undetermined
// when the check never ran or was cut short.
type Flag int

const (
	Undetermined Flag = iota
	False
	True
)

func (f Flag) String() string {
	switch f {
	case True:
		return "True"
	case False:
		return "False"
	default:
		return ""
	}
}

// AsFloat maps a flag onto the 0/1 scale aggregation sums over. Undetermined
// counts as 0.
func (f Flag) AsFloat() float64 {
	if f == True {
		return 1
	}
	return 0
}

// FlagOf converts a decided boolean into a Flag.
func FlagOf(b bool) Flag {
	if b {
		return True
	}
	return False
}

// Report is the outcome of one equivalence assessment. Every field is always
// populated, even on failure, so consumers never branch on missing structure
// beyond inspecting Exception.
type Report struct {
	SymbolicError      string
	SymbolicFraction   string
	ErrorIsZero        Flag
	ErrorIsConstant    Flag
	FractionIsConstant Flag
	Exception          string
	SymbolicSolution   bool
}

// Negative returns the canonical failed report for the given exception tag:
// empty symbolic fields, undetermined sub-flags, verdict false.
func Negative(tag string) Report {
	return Report{Exception: tag}
}
