package bizcontext

import "github.com/mentorhub/contextd/internal/core"

// Labels maps memory types to the section headers shown inside the context
// block. The table is injected so the same builder can serve other locales;
// unknown types fall back to the raw type identifier.
type Labels map[core.MemoryType]string

// DefaultLabels is the Croatian production table.
func DefaultLabels() Labels {
	return Labels{
		core.MemoryClientContext:    "Kontekst klijenta",
		core.MemoryProjectContext:   "Kontekst projekta",
		core.MemoryUserPreference:   "Preference korisnika",
		core.MemoryFactualStatement: "Poznate činjenice",
	}
}

func (l Labels) For(t core.MemoryType) string {
	if label, ok := l[t]; ok {
		return label
	}
	return string(t)
}
