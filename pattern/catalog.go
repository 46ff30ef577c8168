package pattern

import "regexp"

// Role identifies the semantic meaning of a captured group.
type Role string

// Semantic roles a template group may carry.
const (
	RoleDate  Role = "date"
	RoleName  Role = "name"
	RoleValue Role = "value"
	RoleUnit  Role = "unit"
	RoleFlag  Role = "flag"
	RoleRange Role = "range"
)

// Captures maps roles to their captured text for one template match.
type Captures map[Role]string

// Template is one structural shape in the cascade. Group routing is by
// role name, so reordering the catalog or editing a regex never
// silently changes which capture feeds which field.
type Template struct {
	// Name identifies the template in provenance notes.
	Name string

	// Pattern is the compiled matcher. Groups are named after roles.
	Pattern *regexp.Regexp

	// Required lists roles that must capture non-empty text for the
	// match to be structurally valid.
	Required []Role

	// Optional lists roles the template may capture.
	Optional []Role
}

// Apply matches text against the template. It returns the captures
// routed by role, or false when the text does not match or the match
// is under-captured. A required role that is missing from the pattern,
// out of range of the match, or empty invalidates the whole match;
// the guard runs before any group is read.
func (t Template) Apply(text string) (Captures, bool) {
	m := t.Pattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}

	caps := make(Captures, len(t.Required)+len(t.Optional))
	for _, role := range t.Required {
		idx := t.Pattern.SubexpIndex(string(role))
		if idx < 0 || idx >= len(m) || m[idx] == "" {
			return nil, false
		}
		caps[role] = m[idx]
	}
	for _, role := range t.Optional {
		idx := t.Pattern.SubexpIndex(string(role))
		if idx < 0 || idx >= len(m) {
			continue
		}
		if m[idx] != "" {
			caps[role] = m[idx]
		}
	}
	return caps, true
}

// HasRole reports whether role is required or optional for the template.
func (t Template) HasRole(role Role) bool {
	for _, r := range t.Required {
		if r == role {
			return true
		}
	}
	for _, r := range t.Optional {
		if r == role {
			return true
		}
	}
	return false
}

// Requires reports whether role is in the template's required set.
func (t Template) Requires(role Role) bool {
	for _, r := range t.Required {
		if r == role {
			return true
		}
	}
	return false
}

// Sub-expressions shared by the catalog regexes.
const (
	reDate  = `\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}`
	reName  = `[A-Za-z][A-Za-z0-9 .\-'()#/]*?`
	reValue = `\d+(?:\.\d+)?`
	reUnit  = `[A-Za-z%][A-Za-z0-9%/^.\-]*`
	reFlag  = `[HL]\b|HIGH|LOW|High|Low`
	reRange = `\d+(?:\.\d+)?\s*[-–]\s*\d+(?:\.\d+)?|[<>≤≥]=?\s*\d+(?:\.\d+)?`
)

// Catalog returns the template cascade in priority order, most
// specific shape first. The order is part of the contract: the parser
// stops at the first accepted match.
func Catalog() []Template {
	return []Template{
		{
			Name: "date name value unit",
			Pattern: regexp.MustCompile(
				`^(?P<date>` + reDate + `)\s+(?P<name>` + reName + `)\s+(?P<value>` + reValue + `)\s+(?P<unit>` + reUnit + `)` +
					`(?:\s+(?P<flag>` + reFlag + `))?(?:\s+\(?(?P<range>` + reRange + `)\)?)?`),
			Required: []Role{RoleDate, RoleName, RoleValue, RoleUnit},
			Optional: []Role{RoleFlag, RoleRange},
		},
		{
			Name: "name colon value",
			Pattern: regexp.MustCompile(
				`^(?P<name>` + reName + `)\s*[:=]\s*(?P<value>` + reValue + `)\s*(?P<unit>` + reUnit + `)?` +
					`\s*(?:\((?P<range>[^)]+)\))?`),
			Required: []Role{RoleName, RoleValue},
			Optional: []Role{RoleUnit, RoleRange},
		},
		{
			Name: "date name value",
			Pattern: regexp.MustCompile(
				`^(?P<date>` + reDate + `)\s+(?P<name>` + reName + `)\s+(?P<value>` + reValue + `)` +
					`(?:\s+(?P<flag>` + reFlag + `))?\s*$`),
			Required: []Role{RoleDate, RoleName, RoleValue},
			Optional: []Role{RoleFlag},
		},
		{
			Name: "name value unit",
			Pattern: regexp.MustCompile(
				`^(?P<name>` + reName + `)\s+(?P<value>` + reValue + `)\s+(?P<unit>` + reUnit + `)` +
					`(?:\s+(?P<flag>` + reFlag + `))?(?:\s+\(?(?P<range>` + reRange + `)\)?)?`),
			Required: []Role{RoleName, RoleValue, RoleUnit},
			Optional: []Role{RoleFlag, RoleRange},
		},
		{
			Name: "name value flag",
			Pattern: regexp.MustCompile(
				`^(?P<name>` + reName + `)\s+(?P<value>` + reValue + `)\s*(?P<flag>` + reFlag + `)\s*$`),
			Required: []Role{RoleName, RoleValue, RoleFlag},
		},
		{
			Name: "name value",
			Pattern: regexp.MustCompile(
				`^(?P<name>` + reName + `)\s+(?P<value>` + reValue + `)\s*$`),
			Required: []Role{RoleName, RoleValue},
		},
		{
			Name: "value unit flag",
			Pattern: regexp.MustCompile(
				`^(?P<value>` + reValue + `)\s*(?P<unit>` + reUnit + `)\s+(?P<flag>` + reFlag + `)\s*$`),
			Required: []Role{RoleValue, RoleUnit, RoleFlag},
		},
		{
			Name: "value unit",
			Pattern: regexp.MustCompile(
				`^(?P<value>` + reValue + `)\s*(?P<unit>` + reUnit + `)\s*$`),
			Required: []Role{RoleValue, RoleUnit},
		},
		{
			Name: "value flag",
			Pattern: regexp.MustCompile(
				`^(?P<value>` + reValue + `)\s+(?P<flag>` + reFlag + `)\s*$`),
			Required: []Role{RoleValue, RoleFlag},
		},
		{
			Name: "bare value",
			Pattern: regexp.MustCompile(
				`^(?P<value>` + reValue + `)\s*$`),
			Required: []Role{RoleValue},
		},
		{
			Name: "name only",
			Pattern: regexp.MustCompile(
				`^(?P<name>[A-Za-z][A-Za-z .\-'()#/]*)$`),
			Required: []Role{RoleName},
		},
	}
}
