package calculator

const (
	KeyClear  = "C"
	KeyEquals = "="
)

// Keys is the button grid, row by row.
var Keys = []string{
	"7", "8", "9", "÷",
	"4", "5", "6", "×",
	"1", "2", "3", "−",
	KeyClear, "0", KeyEquals, "+",
}

// State is the calculator display: the expression buffer and the last result.
// Transitions return a new State.
type State struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

func (s State) Append(token string) State {
	s.Expression += token
	return s
}

func (s State) Clear() State {
	return State{}
}

// Evaluate keeps the expression and sets Result. An empty buffer yields
// ResultError.
func (s State) Evaluate() State {
	s.Result = Result(s.Expression)
	return s
}

// Press applies one key of the grid.
func (s State) Press(key string) State {
	switch key {
	case KeyClear:
		return s.Clear()
	case KeyEquals:
		return s.Evaluate()
	default:
		return s.Append(key)
	}
}
