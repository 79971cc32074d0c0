package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetColor
	WidgetSkip
)

// Field represents a component field with rendering hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options map[string]string
}

// Section groups the fields of one component under its type name.
type Section struct {
	Title  string
	Fields []Field
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
// Examples:
//
//	`inspect:"bar,max:400"`
//	`inspect:"color"`
//	`inspect:"label,fmt:%d"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")

	var widget Widget
	switch strings.TrimSpace(parts[0]) {
	case "label":
		widget = WidgetLabel
	case "bar":
		widget = WidgetBar
	case "bool":
		widget = WidgetBool
	case "color":
		widget = WidgetColor
	case "skip":
		widget = WidgetSkip
	default:
		widget = WidgetAuto
	}

	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}

	return widget, options
}

// ExtractFields uses reflection to extract the exported fields of a component.
func ExtractFields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)

		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}

	return fields
}

// ExtractSections extracts one section per component, titled by its type name.
// Components without visible fields are left out.
func ExtractSections(components []any) []Section {
	sections := make([]Section, 0, len(components))
	for _, c := range components {
		fields := ExtractFields(c)
		if len(fields) == 0 {
			continue
		}
		t := reflect.TypeOf(c)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		sections = append(sections, Section{Title: t.Name(), Fields: fields})
	}
	return sections
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	if v.Kind() == reflect.Bool {
		return WidgetBool
	}
	return WidgetLabel
}

// FormatValue formats a field value as a string.
func FormatValue(value any, fmtStr string) string {
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	switch v := value.(type) {
	case float32:
		return fmt.Sprintf("%.2f", v)
	case float64:
		return fmt.Sprintf("%.2f", v)
	case string:
		if v == "" {
			return "-"
		}
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

// GetMax returns the max option as a float, defaulting to 1.0.
func GetMax(options map[string]string) float32 {
	if maxStr, ok := options["max"]; ok {
		if max, err := strconv.ParseFloat(maxStr, 32); err == nil {
			return float32(max)
		}
	}
	return 1.0
}

// GetFloatValue extracts a float32 from numeric types.
func GetFloatValue(value any) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int32:
		return float32(v), true
	case int64:
		return float32(v), true
	case uint32:
		return float32(v), true
	case uint64:
		return float32(v), true
	default:
		return 0, false
	}
}
