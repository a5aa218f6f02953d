package tracker

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed appdata.schema.json
var schemaJSON string

// ValidationError is a validation failure with its JSON path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult collects validation errors and warnings.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool
}

// Validate checks the tree against the embedded JSON Schema, falling back
// to minimal structural checks if the schema cannot be compiled.
// Out-of-range weekly/monthly days are warnings, not errors: the
// recurrence evaluator simply never matches them.
func (d *AppData) Validate() *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schema, err := compileSchema()
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("schema unavailable, using minimal checks: %v", err))
		d.validateMinimal(result)
	} else {
		result.UsedSchema = true
		d.validateWithSchema(schema, result)
	}

	d.warnFrequencyRanges(result)
	return result
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("appdata.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile("appdata.schema.json")
}

func (d *AppData) validateWithSchema(schema *jsonschema.Schema, result *ValidationResult) {
	// Round-trip through JSON so the schema sees the persisted shape.
	data, err := json.Marshal(d)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("marshal for validation: %w", err)})
		return
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("unmarshal for validation: %w", err)})
		return
	}
	if err := schema.Validate(obj); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
}

func (d *AppData) validateMinimal(result *ValidationResult) {
	if d.Version == "" {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Path: "version", Err: fmt.Errorf("missing required field")})
	}
	if d.Themes == nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Path: "themes", Err: fmt.Errorf("missing required field")})
		return
	}
	for i := range d.Themes {
		th := &d.Themes[i]
		path := fmt.Sprintf("themes[%d]", i)
		if th.ID == "" {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path + ".id", Err: fmt.Errorf("missing required field")})
		}
		for j := range th.Tasks {
			validateTaskMinimal(&th.Tasks[j], fmt.Sprintf("%s.tasks[%d]", path, j), result)
		}
		for j := range th.Subthemes {
			st := &th.Subthemes[j]
			stPath := fmt.Sprintf("%s.subthemes[%d]", path, j)
			if st.ID == "" {
				result.Valid = false
				result.Errors = append(result.Errors, &ValidationError{Path: stPath + ".id", Err: fmt.Errorf("missing required field")})
			}
			for k := range st.Tasks {
				validateTaskMinimal(&st.Tasks[k], fmt.Sprintf("%s.tasks[%d]", stPath, k), result)
			}
		}
	}
}

func validateTaskMinimal(t *Task, path string, result *ValidationResult) {
	if t.ID == "" {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Path: path + ".id", Err: fmt.Errorf("missing required field")})
	}
	if t.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Path: path + ".name", Err: fmt.Errorf("missing required field")})
	}
	for i, day := range t.History {
		if _, err := ParseDate(day); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: fmt.Sprintf("%s.history[%d]", path, i),
				Err:  fmt.Errorf("not a YYYY-MM-DD date: %q", day),
			})
		}
	}
}

func (d *AppData) warnFrequencyRanges(result *ValidationResult) {
	d.EachTask(func(t *Task) {
		switch t.Frequency.Type {
		case FreqWeekly:
			if t.Frequency.Day < 0 || t.Frequency.Day > 6 {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("task %q: weekly day %d outside 0-6, task will never be due", t.ID, t.Frequency.Day))
			}
		case FreqMonthly:
			if t.Frequency.Day < 1 || t.Frequency.Day > 31 {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("task %q: monthly day %d outside 1-31, task will never be due", t.ID, t.Frequency.Day))
			}
		}
	})
}

func appendSchemaErrors(result *ValidationResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
