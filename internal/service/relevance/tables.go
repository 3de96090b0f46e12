package relevance

// Tables holds the locale-specific scoring lookups. The defaults are the
// Croatian production set; a translated table can be injected per locale
// without touching the scoring logic.
type Tables struct {
	// Foundation categories are always relevant, regardless of any other
	// signal.
	Foundation []string

	// IndustryKeywords maps a lowercase keyword (matched as a substring of
	// the tenant's industry) to the categories relevant for it.
	IndustryKeywords map[string][]string

	// Universal categories apply to every industry at reduced weight.
	Universal []string

	// OrgUnits maps a lowercase org-unit label to the categories its
	// members care about.
	OrgUnits map[string][]string
}

func DefaultTables() Tables {
	return Tables{
		Foundation: []string{
			"Uvod u Poslovanje",
			"Osnove Poduzetništva",
			"Postavljanje Ciljeva",
		},
		IndustryKeywords: map[string][]string{
			"software":    {"Tehnologija", "Digitalni Marketing", "Automatizacija"},
			"tech":        {"Tehnologija", "Digitalni Marketing", "Automatizacija"},
			"informatika": {"Tehnologija", "Automatizacija"},
			"trgovina":    {"Prodaja", "Upravljanje Zalihama", "Usluga Kupcima"},
			"retail":      {"Prodaja", "Upravljanje Zalihama", "Usluga Kupcima"},
			"ugostitelj":  {"Usluga Kupcima", "Upravljanje Osobljem"},
			"hospitality": {"Usluga Kupcima", "Upravljanje Osobljem"},
			"financ":      {"Financije", "Računovodstvo", "Investicije"},
			"finance":     {"Financije", "Računovodstvo", "Investicije"},
			"marketing":   {"Marketing", "Brendiranje", "Digitalni Marketing"},
			"proizvodnja": {"Proizvodnja", "Lanac Opskrbe"},
			"manufactur":  {"Proizvodnja", "Lanac Opskrbe"},
		},
		Universal: []string{
			"Marketing",
			"Prodaja",
			"Financije",
			"Upravljanje Vremenom",
			"Vodstvo",
		},
		OrgUnits: map[string][]string{
			"marketing":       {"Marketing", "Brendiranje", "Digitalni Marketing", "Društvene Mreže"},
			"prodaja":         {"Prodaja", "Pregovaranje", "Usluga Kupcima"},
			"financije":       {"Financije", "Računovodstvo", "Investicije"},
			"it":              {"Tehnologija", "Automatizacija"},
			"ljudski resursi": {"Upravljanje Osobljem", "Vodstvo"},
		},
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
