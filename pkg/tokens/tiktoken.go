package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tkOnce sync.Once
	tk     *tiktoken.Tiktoken
)

// Tiktoken counts exact cl100k_base tokens for callers that want real
// counts instead of the heuristic. The encoding is expensive to load, so
// it is shared process-wide.
type Tiktoken struct{}

func (Tiktoken) Estimate(text string) int {
	if text == "" {
		return 0
	}
	return len(getEncoding().Encode(text, nil, nil))
}

func getEncoding() *tiktoken.Tiktoken {
	tkOnce.Do(func() {
		var err error
		tk, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			panic("failed to load tiktoken: " + err.Error())
		}
	})
	return tk
}
