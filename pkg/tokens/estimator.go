package tokens

// Estimator reports how many LLM tokens a piece of text costs.
type Estimator interface {
	Estimate(text string) int
}

// DefaultCharsPerToken is the divisor of the heuristic estimator. Four
// characters per token is a rough universal average across languages.
const DefaultCharsPerToken = 4

// Heuristic estimates tokens as ceil(len/CharsPerToken). It is a deliberate
// approximation, not a tokenizer: budgeting only needs a stable upper-bound
// signal, and keeping the divisor a parameter lets an exact tokenizer be
// swapped in without touching the budgeting logic.
type Heuristic struct {
	CharsPerToken int
}

func NewHeuristic(charsPerToken int) Heuristic {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return Heuristic{CharsPerToken: charsPerToken}
}

func (h Heuristic) Estimate(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + h.CharsPerToken - 1) / h.CharsPerToken
}
