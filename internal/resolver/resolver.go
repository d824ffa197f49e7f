// Package resolver maps raw equipment types to report templates.
//
// Resolution happens in two stages. Normalize turns a raw type into one or
// two hyphenated labels, splitting combined types into their parts. Each
// label is then resolved to a template key; portable units are resolved by
// manufacturer since each vendor's detector needs its own worksheet.
package resolver

import (
	"strings"

	"github.com/nao1215/medphys/internal/model"
	"golang.org/x/text/cases"
)

// portableLabel is the folded label of portable radiography units.
const portableLabel = "portable-x-ray"

// combinedTypes lists raw types that produce more than one report.
var combinedTypes = map[model.UnitType][]string{
	model.UnitTypeRadFluoro: {"X-Ray", "Fluoro"},
}

// directTemplates maps folded labels to the template of the same name.
var directTemplates = map[string]model.TemplateKey{
	"c-arm":      model.TemplateCArm,
	"dental":     model.TemplateDental,
	"fluoro":     model.TemplateFluoro,
	"mini-c-arm": model.TemplateMiniCArm,
	"o-arm":      model.TemplateOArm,
	"x-ray":      model.TemplateXRay,
}

// portableTemplates maps manufacturer names, spelled exactly as in the
// equipment database, to a portable template.
var portableTemplates = map[string]model.TemplateKey{
	"AGFA":    model.TemplatePortableAGFA,
	"Samsung": model.TemplatePortableAGFA,
	"GE":      model.TemplatePortableAMX,
}

// Normalize returns the type labels of a raw type in report order.
// Spaces become hyphens and case is kept, so "Portable X-Ray" yields
// ["Portable-X-Ray"]. "Rad/Fluoro" yields ["X-Ray", "Fluoro"].
func Normalize(rawType model.UnitType) []string {
	if parts, ok := combinedTypes[rawType]; ok {
		return append([]string(nil), parts...)
	}
	return []string{strings.ReplaceAll(string(rawType), " ", "-")}
}

// ResolveLabel resolves a single normalized label for a unit made by manufacturer.
// Labels match regardless of case; manufacturers of portable units must match
// exactly, so "ge" or " GE" leave the label unresolved.
func ResolveLabel(label, manufacturer string) model.Resolution {
	fold := cases.Fold()
	folded := fold.String(label)

	if key, ok := directTemplates[folded]; ok {
		return model.Resolved(label, key)
	}
	if folded == portableLabel {
		if key, ok := portableTemplates[manufacturer]; ok {
			return model.Resolved(label, key)
		}
	}
	return model.Unresolved(label)
}

// Resolve normalizes the unit's raw type and resolves every label.
// The result has the same order as Normalize.
func Resolve(unit model.UnitRecord) []model.Resolution {
	labels := Normalize(unit.RawType)
	resolutions := make([]model.Resolution, len(labels))
	for i, label := range labels {
		resolutions[i] = ResolveLabel(label, unit.Manufacturer)
	}
	return resolutions
}
