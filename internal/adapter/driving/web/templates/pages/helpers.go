package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/maskpreview/internal/adapter/driving/web/viewmodel"
)

const stepsLabel = `Animation steps, one per line: easing | duration | variable. Write \| for a literal bar.`

// cssField is one input of the properties form.
type cssField struct {
	Name  string
	Label string
	Value string
	Set   bool
}

// cssFields lists the editable CSS properties of s in form order.
func cssFields(s viewmodel.SettingsViewModel) []cssField {
	return []cssField{
		{Name: "maskImage", Label: "mask-image", Value: s.MaskImage, Set: s.Set["maskImage"]},
		{Name: "maskSize", Label: "mask-size", Value: s.MaskSize, Set: s.Set["maskSize"]},
		{Name: "maskPosition", Label: "mask-position", Value: s.MaskPosition, Set: s.Set["maskPosition"]},
		{Name: "maskRepeat", Label: "mask-repeat", Value: s.MaskRepeat, Set: s.Set["maskRepeat"]},
		{Name: "maskMode", Label: "mask-mode", Value: s.MaskMode, Set: s.Set["maskMode"]},
	}
}

// propertiesHint explains what the form cannot express: an explicit empty
// value goes through the JSON API, and unset comes back with a reselect.
func propertiesHint(basePath string) string {
	return "Empty fields keep their current value. To set a value to the empty string, send PATCH " +
		basePath + `api/v1/state/properties with "". Select or reset an example to unset fields again.`
}

// maskStyle marks the output of MaskSettings.CSSDeclarations as trusted CSS.
// templ's property sanitizer has no rules for the mask properties, and the
// page exists to preview arbitrary values. The attribute is still
// HTML-escaped on render.
func maskStyle(css string) templ.SafeCSS {
	return templ.SafeCSS(css)
}

func versionAttr(v uint64) string {
	return strconv.FormatUint(v, 10)
}
