package models

// Report is the structured result of extracting one sheet.
type Report struct {
	// Source is the workbook file name (no path), when loaded from a file.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	// Sheet is the sheet the grid was read from.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	// Indicators maps indicator names to their values.
	Indicators map[string]Value `json:"indicators" yaml:"indicators"`
	// Sections holds the segmented tables in header-row order.
	Sections []Section `json:"sections" yaml:"sections"`
	// Lists holds keyword-anchored label/value runs.
	Lists []List `json:"lists,omitempty" yaml:"lists,omitempty"`
	// Tables holds keyword-anchored fixed-size tables.
	Tables []Section `json:"tables,omitempty" yaml:"tables,omitempty"`
	// Summary aggregates PnL and MTM across sections.
	Summary Summary `json:"summary" yaml:"summary"`
	// Issues lists unparsable numeric cells (strict mode only).
	Issues []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Section returns the section with the given name.
func (r *Report) Section(name string) (*Section, bool) {
	for i := range r.Sections {
		if r.Sections[i].Name == name {
			return &r.Sections[i], true
		}
	}
	return nil, false
}

// SectionNames returns section names in order.
func (r *Report) SectionNames() []string {
	names := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		names[i] = s.Name
	}
	return names
}

// PutSection stores s under its name. An existing section with the same name
// is replaced in place, keeping its original position.
func (r *Report) PutSection(s Section) {
	for i := range r.Sections {
		if r.Sections[i].Name == s.Name {
			r.Sections[i] = s
			return
		}
	}
	r.Sections = append(r.Sections, s)
}
