package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nao1215/medphys/internal/model"
)

// unitTypeTag is the validator tag for the equipment type vocabulary.
const unitTypeTag = "unittype"

// UnitEntry collects a new unit from the operator.
type UnitEntry struct {
	prompter *Prompter
	validate *validator.Validate
}

// NewUnitEntry creates a UnitEntry that asks its questions through prompter.
func NewUnitEntry(prompter *Prompter) *UnitEntry {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil function.
	_ = v.RegisterValidation(unitTypeTag, func(fl validator.FieldLevel) bool {
		return model.UnitType(fl.Field().String()).Known()
	})
	return &UnitEntry{prompter: prompter, validate: v}
}

// Prompt fills in the new unit form. The equipment type is asked again
// until it is one of the recognized types. When the operator rejects the
// summary, or a required answer is empty, the whole form starts over.
func (e *UnitEntry) Prompt() (model.UnitRecord, error) {
	for {
		e.prompter.Printf("\nFill in the following form to add a new unit\n")

		unit, err := e.fill()
		if err != nil {
			return model.UnitRecord{}, err
		}

		if err := e.validate.Struct(unit); err != nil {
			e.prompter.Printf("%s\n", describeValidation(err))
			continue
		}

		e.prompter.Printf("\nIs this info correct?\n")
		e.printUnit(unit)
		ok, err := e.prompter.Confirm("")
		if err != nil {
			return model.UnitRecord{}, err
		}
		if ok {
			return unit, nil
		}
	}
}

func (e *UnitEntry) fill() (model.UnitRecord, error) {
	var unit model.UnitRecord
	var err error

	fields := []struct {
		question string
		dest     *string
	}{
		{"ID Number: ", &unit.ID},
		{"Site: ", &unit.Site},
		{"Location: ", &unit.Location},
		{"Location detail (Nickname, Color/Number, Room): ", &unit.LocationDetail},
	}
	for _, f := range fields {
		if *f.dest, err = e.prompter.Ask(f.question); err != nil {
			return unit, err
		}
	}

	if unit.RawType, err = e.askType(); err != nil {
		return unit, err
	}

	if unit.Manufacturer, err = e.prompter.Ask("Manufacturer: "); err != nil {
		return unit, err
	}
	if unit.Model, err = e.prompter.Ask("Model: "); err != nil {
		return unit, err
	}
	return unit, nil
}

func (e *UnitEntry) askType() (model.UnitType, error) {
	question := "Equipment Type:\n" + typeMenu() + "Enter one of the above: "
	for {
		answer, err := e.prompter.Ask(question)
		if err != nil {
			return "", err
		}
		if e.validate.Var(answer, unitTypeTag) == nil {
			return model.UnitType(answer), nil
		}
		question = "Last input did not match valid types:\n" + typeMenu() + "Enter one of the above: "
	}
}

func (e *UnitEntry) printUnit(unit model.UnitRecord) {
	e.prompter.Printf("id : %s\n", unit.ID)
	e.prompter.Printf("site : %s\n", unit.Site)
	e.prompter.Printf("location : %s\n", unit.Location)
	e.prompter.Printf("location_detail : %s\n", unit.LocationDetail)
	e.prompter.Printf("type : %s\n", unit.RawType)
	e.prompter.Printf("manufacturer : %s\n", unit.Manufacturer)
	e.prompter.Printf("model : %s\n", unit.Model)
}

func typeMenu() string {
	var b strings.Builder
	for _, t := range model.UnitTypes() {
		b.WriteString("\t" + t.String() + "\n")
	}
	return b.String()
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	names := make([]string, len(verrs))
	for i, fe := range verrs {
		names[i] = fe.Field()
	}
	return fmt.Sprintf("missing required answers: %s - starting over", strings.Join(names, ", "))
}
