package web

import (
	"fmt"
	"strconv"
	"strings"

	vm "github.com/ericfisherdev/maskpreview/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/maskpreview/internal/application"
	"github.com/ericfisherdev/maskpreview/internal/domain/model"
)

// stepFieldSep separates the fields of one animation step in the steps
// textarea. A literal bar inside a field is written \| and a literal
// backslash before a bar or another backslash is written \\.
const (
	stepFieldSep    = '|'
	stepFieldEscape = '\\'
)

var stepFieldEscaper = strings.NewReplacer(`\`, `\\`, `|`, `\|`)

// toPageViewModel builds the preview page from the catalog and a store snapshot.
func toPageViewModel(examples []model.MaskSettings, snap application.Snapshot, basePath, csrf, loadErr string) vm.PageViewModel {
	cards := make([]vm.ExampleCardViewModel, 0, len(examples))
	for _, ex := range examples {
		cards = append(cards, vm.ExampleCardViewModel{
			Name:            ex.Name,
			DisplayName:     DisplayName(ex.Name),
			DescriptionHTML: RenderDescription(ex.Description),
			CSS:             ex.CSSDeclarations(),
			Selected:        ex.Equal(snap.CurrentExample),
		})
	}

	return vm.PageViewModel{
		Title:     "Mask Image Tester",
		BasePath:  basePath,
		CSRFToken: csrf,
		Examples:  cards,
		LoadError: loadErr,
		Current:   toSettingsViewModel(snap.CurrentExample),
		Working:   toSettingsViewModel(snap.MaskSettings),
		Modified:  snap.Modified(),
		Version:   snap.Version,
	}
}

// toSettingsViewModel converts MaskSettings to form-ready strings.
func toSettingsViewModel(m model.MaskSettings) vm.SettingsViewModel {
	set := map[string]bool{"maskImage": true}
	deref := func(key string, p *string) string {
		if p == nil {
			return ""
		}
		set[key] = true
		return *p
	}

	steps := make([]vm.AnimationStepViewModel, 0, len(m.AnimationSteps))
	for i, s := range m.AnimationSteps {
		steps = append(steps, vm.AnimationStepViewModel{
			Index:     i,
			Easing:    s.Easing,
			Duration:  formatDuration(s.Duration),
			Variables: model.CloneVariables(s.Variables),
		})
	}

	return vm.SettingsViewModel{
		Name:          DisplayName(m.Name),
		MaskImage:     m.MaskImage,
		MaskSize:      deref("maskSize", m.MaskSize),
		MaskPosition:  deref("maskPosition", m.MaskPosition),
		MaskRepeat:    deref("maskRepeat", m.MaskRepeat),
		MaskMode:      deref("maskMode", m.MaskMode),
		Set:           set,
		Variables:     model.CloneVariables(m.Variables),
		VariablesText: strings.Join(m.Variables, "\n"),
		Steps:         steps,
		StepsText:     formatSteps(m.AnimationSteps),
		CSS:           m.CSSDeclarations(),
	}
}

func formatDuration(d float64) string {
	return strconv.FormatFloat(d, 'g', -1, 64)
}

// formatSteps renders steps one per line as "easing | duration | var | var".
func formatSteps(steps []model.AnimationStep) string {
	lines := make([]string, 0, len(steps))
	for _, s := range steps {
		fields := make([]string, 0, len(s.Variables)+2)
		fields = append(fields, stepFieldEscaper.Replace(s.Easing), formatDuration(s.Duration))
		for _, v := range s.Variables {
			fields = append(fields, stepFieldEscaper.Replace(v))
		}
		lines = append(lines, strings.Join(fields, " "+string(stepFieldSep)+" "))
	}
	return strings.Join(lines, "\n")
}

// splitStepFields splits line on unescaped bars and unescapes each field.
// A backslash before any other character is kept as typed.
func splitStepFields(line string) []string {
	var (
		fields  []string
		field   strings.Builder
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			if r != stepFieldSep && r != stepFieldEscape {
				field.WriteRune(stepFieldEscape)
			}
			field.WriteRune(r)
			escaped = false
		case r == stepFieldEscape:
			escaped = true
		case r == stepFieldSep:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	if escaped {
		field.WriteRune(stepFieldEscape)
	}
	return append(fields, strings.TrimSpace(field.String()))
}

// parseSteps is the inverse of formatSteps. Blank lines are skipped; a line
// needs at least an easing and a numeric duration.
func parseSteps(text string) ([]model.AnimationStep, error) {
	steps := []model.AnimationStep{}
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitStepFields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want easing %c duration", i+1, stepFieldSep)
		}
		duration, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid duration %q: %w", i+1, fields[1], err)
		}
		vars := []string{}
		for _, v := range fields[2:] {
			if v != "" {
				vars = append(vars, v)
			}
		}
		steps = append(steps, model.AnimationStep{Easing: fields[0], Duration: duration, Variables: vars})
	}
	return steps, nil
}

// parseVariables splits the variables textarea into one declaration per
// non-blank line.
func parseVariables(text string) []string {
	vars := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			vars = append(vars, line)
		}
	}
	return vars
}
