package secid

// Detector determines which schemes a string validates under. Detection is a
// pure function of the registry's scheme list and the input; nothing is
// cached between calls.
type Detector struct {
	reg *Registry
}

// NewDetector builds a detector over reg.
func NewDetector(reg *Registry) *Detector {
	return &Detector{reg: reg}
}

// Detect returns the schemes the input validates under, most specific first.
// Blank or non-matching input yields an empty slice.
func (d *Detector) Detect(input string) []Scheme {
	return d.detectAmong(input, d.reg.order)
}

// detectAmong runs detection over a pre-resolved, canonical-ordered scheme
// list. Collecting in list order is what makes the result specificity
// ordered: the list itself carries the fixed tie-break.
func (d *Detector) detectAmong(input string, schemes []Scheme) []Scheme {
	var out []Scheme
	for _, s := range schemes {
		sp, ok := d.reg.spec(s)
		if !ok {
			continue
		}
		body := sp.clean(input)
		if body == "" {
			continue
		}
		if len(sp.validate(body)) == 0 {
			out = append(out, s)
		}
	}
	return out
}
