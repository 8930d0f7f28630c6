// Package crosswalk holds the portfolio label mappings: the official
// display list, the display/internal alias pair, and the source-label
// normalization applied during extraction. The struct is built once at
// startup and passed explicitly to everything that needs it.
package crosswalk

// Crosswalk is an immutable two-way portfolio label mapping.
type Crosswalk struct {
	official   []string
	toDisplay  map[string]string // internal label -> display label
	toInternal map[string]string // display label -> internal label
	sourceFix  map[string]string // raw source label -> internal label
}

// New returns the crosswalk with the business defaults.
func New() *Crosswalk {
	display := map[string]string{
		"Falconi EUA": "América do Norte",
	}
	internal := make(map[string]string, len(display))
	for k, v := range display {
		internal[v] = k
	}
	return &Crosswalk{
		official: []string{
			"Agronegócio",
			"América do Norte",
			"Bens Não Duráveis",
			"Infraestrutura e Indústria de Base",
			"MID",
			"Saúde Educação Segurança e Adm.Pública",
			"Servicos e Tecnologia",
		},
		toDisplay:  display,
		toInternal: internal,
		sourceFix: map[string]string{
			"Saúde, Educação e Serviços Públicos": "Saúde Educação Segurança e Adm.Pública",
			"América do Norte":                    "Falconi EUA",
			"Varejo e Bens de Consumo":            "Bens Não Duráveis",
			"Indústria de Base e Bens de Capital": "Infraestrutura e Indústria de Base",
		},
	}
}

// Official returns a copy of the fixed display-label list.
func (c *Crosswalk) Official() []string {
	return append([]string(nil), c.official...)
}

// IsOfficial reports whether label is in the official display list.
func (c *Crosswalk) IsOfficial(label string) bool {
	for _, o := range c.official {
		if o == label {
			return true
		}
	}
	return false
}

// ToDisplay maps an internal label to its display label. Unmapped
// labels pass through unchanged.
func (c *Crosswalk) ToDisplay(label string) string {
	if v, ok := c.toDisplay[label]; ok {
		return v
	}
	return label
}

// ToInternal maps a display label to its internal label. Unmapped
// labels pass through unchanged.
func (c *Crosswalk) ToInternal(label string) string {
	if v, ok := c.toInternal[label]; ok {
		return v
	}
	return label
}

// NormalizeSource maps legacy source spellings onto internal labels.
// Extractors call this before anything else sees the value.
func (c *Crosswalk) NormalizeSource(label string) string {
	if v, ok := c.sourceFix[label]; ok {
		return v
	}
	return label
}
