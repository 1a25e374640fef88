package form

import (
	"bytes"
	"fmt"
	"maps"
	"mime/multipart"
	"net/url"
	"slices"

	json "github.com/goccy/go-json"
)

// RawData returns the raw field values keyed by name.
func (f *Form) RawData() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	data := make(map[string]any, len(f.fields))
	for _, field := range f.fields {
		data[field.Name] = field.Value
	}
	return data
}

// Values returns the field values stringified for url-encoded submission.
// nil becomes "".
func (f *Form) Values() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	values := make(url.Values, len(f.fields))
	for _, field := range f.fields {
		values.Add(field.Name, stringValue(field.Value))
	}
	return values
}

// WriteMultipart writes one form-data part per field, in declaration order, with
// every value stringified. It does not close w.
func (f *Form) WriteMultipart(w *multipart.Writer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, field := range f.fields {
		if err := w.WriteField(field.Name, stringValue(field.Value)); err != nil {
			return fmt.Errorf("write field '%s': %w", field.Name, err)
		}
	}
	return nil
}

// MarshalJSON encodes the field values as one object in declaration order.
func (f *Form) MarshalJSON() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", field.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func stringValue(value any) string {
	text, ok := toText(value)
	if !ok {
		return ""
	}
	return text
}

// FieldReport is a serializable view of one field after validation.
type FieldReport struct {
	Name         string   `json:"name"`
	Value        any      `json:"value"`
	Valid        bool     `json:"valid"`
	Errors       Errors   `json:"errors,omitempty"`
	ServerErrors []string `json:"server_errors,omitempty"`
	Messages     []string `json:"messages,omitempty"`
}

// Report is a serializable view of a form and its fields in declaration order.
type Report struct {
	ID     string        `json:"id"`
	Status Status        `json:"status"`
	Fields []FieldReport `json:"fields"`
}

// Report captures the current state of the form.
func (f *Form) Report() Report {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := Report{ID: f.ID, Status: f.status, Fields: make([]FieldReport, len(f.fields))}
	r.Status.Meta = maps.Clone(f.status.Meta)
	for i, field := range f.fields {
		r.Fields[i] = FieldReport{
			Name:         field.Name,
			Value:        field.Value,
			Valid:        field.Valid(),
			Errors:       slices.Clone(field.Errors),
			ServerErrors: slices.Clone(field.ServerErrors),
			Messages:     field.Messages(),
		}
	}
	return r
}
