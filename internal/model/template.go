package model

// TemplateKey names a report template workbook. The workbook for key k
// lives at <templates-dir>/<k>.xlsx.
type TemplateKey string

// Template keys with a workbook in the templates directory.
const (
	TemplateCArm         TemplateKey = "c-arm"
	TemplateDental       TemplateKey = "dental"
	TemplateFluoro       TemplateKey = "fluoro"
	TemplateMiniCArm     TemplateKey = "mini-c-arm"
	TemplateOArm         TemplateKey = "o-arm"
	TemplateXRay         TemplateKey = "x-ray"
	TemplatePortableAGFA TemplateKey = "portable_agfa"
	TemplatePortableAMX  TemplateKey = "portable_amx"
)

// TemplateExt is the file extension of templates and generated reports.
const TemplateExt = ".xlsx"

// TemplateKeys returns every template key.
func TemplateKeys() []TemplateKey {
	return []TemplateKey{
		TemplateCArm,
		TemplateDental,
		TemplateFluoro,
		TemplateMiniCArm,
		TemplateOArm,
		TemplateXRay,
		TemplatePortableAGFA,
		TemplatePortableAMX,
	}
}

// FileName returns the template workbook file name, e.g. "x-ray.xlsx".
func (k TemplateKey) FileName() string {
	return string(k) + TemplateExt
}

// String returns the key.
func (k TemplateKey) String() string {
	return string(k)
}

// Resolution is the result of resolving one normalized type label.
// It is either Resolved, carrying a TemplateKey, or Unresolved.
type Resolution struct {
	// Label is the normalized type label, e.g. "X-Ray" or "Portable-X-Ray".
	Label string

	key      TemplateKey
	resolved bool
}

// Resolved creates a Resolution for a label that maps to key.
func Resolved(label string, key TemplateKey) Resolution {
	return Resolution{Label: label, key: key, resolved: true}
}

// Unresolved creates a Resolution for a label with no template.
func Unresolved(label string) Resolution {
	return Resolution{Label: label}
}

// Key returns the template key and whether the label was resolved.
func (r Resolution) Key() (TemplateKey, bool) {
	return r.key, r.resolved
}

// IsResolved reports whether the label maps to a template.
func (r Resolution) IsResolved() bool {
	return r.resolved
}

// String returns the template key, or "unresolved".
func (r Resolution) String() string {
	if !r.resolved {
		return "unresolved"
	}
	return string(r.key)
}
