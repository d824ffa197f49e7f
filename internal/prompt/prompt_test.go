package prompt

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/medphys/internal/model"
)

// scriptedConfirmer answers Confirm calls from a fixed list.
type scriptedConfirmer struct {
	answers   []bool
	questions []string
}

// Confirm implements Confirmer.
func (s *scriptedConfirmer) Confirm(question string) (bool, error) {
	s.questions = append(s.questions, question)
	if len(s.answers) == 0 {
		return false, ErrNoInput
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("existing"), 0600); err != nil {
		t.Fatal(err)
	}
}

// TestPrompterConfirm tests yes/no parsing.
func TestPrompterConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr error
		retries int
	}{
		{name: "y", input: "y\n", want: true},
		{name: "yes", input: "yes\n", want: true},
		{name: "YES uppercase", input: "YES\n", want: true},
		{name: "n", input: "n\n", want: false},
		{name: "no", input: "no\n", want: false},
		{name: "garbage then yes", input: "maybe\n\nyes\n", want: true, retries: 2},
		{name: "answer without newline", input: "n", want: false},
		{name: "end of input", input: "", wantErr: ErrNoInput},
		{name: "garbage then end of input", input: "what\n", wantErr: ErrNoInput, retries: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("overwrite?")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confirm() = %v, expected %v", got, tt.want)
			}
			if n := strings.Count(out.String(), "input not understood"); n != tt.retries {
				t.Errorf("expected %d rejections, got %d", tt.retries, n)
			}
		})
	}
}

// TestGuardCheck tests the overwrite guard.
func TestGuardCheck(t *testing.T) {
	t.Parallel()

	t.Run("no existing files asks nothing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		c := &scriptedConfirmer{}
		g := NewGuard(c)

		err := g.Check([]string{filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.xlsx")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(c.questions) != 0 {
			t.Errorf("expected no questions, got %v", c.questions)
		}
	})

	t.Run("accepted overwrite passes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		existing := filepath.Join(dir, "a.xlsx")
		touch(t, existing)
		c := &scriptedConfirmer{answers: []bool{true}}

		if err := NewGuard(c).Check([]string{existing}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(c.questions) != 1 || !strings.Contains(c.questions[0], existing) {
			t.Errorf("expected one question naming the file, got %v", c.questions)
		}
	})

	t.Run("declining the second path aborts the job", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		first := filepath.Join(dir, "x-ray.xlsx")
		second := filepath.Join(dir, "fluoro.xlsx")
		touch(t, first)
		touch(t, second)
		c := &scriptedConfirmer{answers: []bool{true, false}}

		err := NewGuard(c).Check([]string{first, second})
		if !errors.Is(err, model.ErrOverwriteDeclined) {
			t.Fatalf("expected ErrOverwriteDeclined, got %v", err)
		}
		if len(c.questions) != 2 {
			t.Errorf("expected 2 questions, got %d", len(c.questions))
		}
	})

	t.Run("declining stops further questions", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		first := filepath.Join(dir, "a.xlsx")
		second := filepath.Join(dir, "b.xlsx")
		touch(t, first)
		touch(t, second)
		c := &scriptedConfirmer{answers: []bool{false, true}}

		err := NewGuard(c).Check([]string{first, second})
		if !errors.Is(err, model.ErrOverwriteDeclined) {
			t.Fatalf("expected ErrOverwriteDeclined, got %v", err)
		}
		if len(c.questions) != 1 {
			t.Errorf("expected 1 question, got %d", len(c.questions))
		}
	})

	t.Run("no answer counts as decline", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		existing := filepath.Join(dir, "a.xlsx")
		touch(t, existing)

		err := NewGuard(&scriptedConfirmer{}).Check([]string{existing})
		if !errors.Is(err, model.ErrOverwriteDeclined) {
			t.Fatalf("expected ErrOverwriteDeclined, got %v", err)
		}
	})

	t.Run("force replaces without asking", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		existing := filepath.Join(dir, "a.xlsx")
		touch(t, existing)
		c := &scriptedConfirmer{}

		if err := NewGuard(c, WithForce(true)).Check([]string{existing}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(c.questions) != 0 {
			t.Errorf("expected no questions, got %v", c.questions)
		}
	})

	t.Run("works with a terminal prompter", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		existing := filepath.Join(dir, "a.xlsx")
		touch(t, existing)
		p := NewPrompter(strings.NewReader("sure\nno\n"), io.Discard)

		err := NewGuard(p).Check([]string{existing})
		if !errors.Is(err, model.ErrOverwriteDeclined) {
			t.Fatalf("expected ErrOverwriteDeclined, got %v", err)
		}
	})
}

// TestUnitEntryPrompt tests the new unit form.
func TestUnitEntryPrompt(t *testing.T) {
	t.Parallel()

	t.Run("fills a unit", func(t *testing.T) {
		t.Parallel()

		input := strings.Join([]string{
			"5678", "Main Hospital", "ER", "Room 2", "Portable X-Ray", "GE", "AMX 4", "y",
		}, "\n") + "\n"
		var out bytes.Buffer
		e := NewUnitEntry(NewPrompter(strings.NewReader(input), &out))

		unit, err := e.Prompt()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := model.UnitRecord{
			ID:             "5678",
			Site:           "Main Hospital",
			Location:       "ER",
			LocationDetail: "Room 2",
			RawType:        model.UnitTypePortableXRay,
			Manufacturer:   "GE",
			Model:          "AMX 4",
		}
		if unit != want {
			t.Errorf("Prompt() = %+v, expected %+v", unit, want)
		}
		if !strings.Contains(out.String(), "Is this info correct?") {
			t.Error("expected confirmation summary")
		}
	})

	t.Run("invalid type is asked again", func(t *testing.T) {
		t.Parallel()

		input := strings.Join([]string{
			"1", "Site", "", "", "xray", "X-Ray/Fluoro", "Rad/Fluoro", "Shimadzu", "", "yes",
		}, "\n") + "\n"
		var out bytes.Buffer
		e := NewUnitEntry(NewPrompter(strings.NewReader(input), &out))

		unit, err := e.Prompt()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if unit.RawType != model.UnitTypeRadFluoro {
			t.Errorf("expected Rad/Fluoro, got %q", unit.RawType)
		}
		if n := strings.Count(out.String(), "Last input did not match valid types"); n != 2 {
			t.Errorf("expected 2 retries, got %d", n)
		}
	})

	t.Run("rejected summary restarts the form", func(t *testing.T) {
		t.Parallel()

		input := strings.Join([]string{
			"1", "Wrong Site", "", "", "Dental", "Planmeca", "", "n",
			"1", "Right Site", "", "", "Dental", "Planmeca", "ProX", "y",
		}, "\n") + "\n"
		e := NewUnitEntry(NewPrompter(strings.NewReader(input), io.Discard))

		unit, err := e.Prompt()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if unit.Site != "Right Site" || unit.Model != "ProX" {
			t.Errorf("expected second answers, got %+v", unit)
		}
	})

	t.Run("missing required answer restarts the form", func(t *testing.T) {
		t.Parallel()

		input := strings.Join([]string{
			"", "Site", "", "", "C-Arm", "OEC", "9900",
			"7", "Site", "", "", "C-Arm", "OEC", "9900", "y",
		}, "\n") + "\n"
		var out bytes.Buffer
		e := NewUnitEntry(NewPrompter(strings.NewReader(input), &out))

		unit, err := e.Prompt()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if unit.ID != "7" {
			t.Errorf("expected ID 7, got %q", unit.ID)
		}
		if !strings.Contains(out.String(), "missing required answers: ID") {
			t.Errorf("expected missing ID message, got %q", out.String())
		}
	})

	t.Run("end of input", func(t *testing.T) {
		t.Parallel()

		e := NewUnitEntry(NewPrompter(strings.NewReader("1\nSite\n"), io.Discard))
		if _, err := e.Prompt(); !errors.Is(err, ErrNoInput) {
			t.Errorf("expected ErrNoInput, got %v", err)
		}
	})
}
