package form

import (
	"bytes"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Document is a schema file: ordered field definitions plus the extra status
// properties the form starts with.
//
//	fields:
//	  email:
//	    rules: [required, email]
//	  password:
//	    value: ""
//	    rules: [required, "stringMin:8"]
//	status:
//	  meta: {step: 1}
//
// JSON documents use the same shape. Field order in the file is declaration order.
type Document struct {
	Schema Schema
	Extra  Status
}

// NewForm builds a form from the document.
func (d Document) NewForm() (*Form, error) {
	return New(d.Schema, d.Extra)
}

// rawFieldDef is the on-disk form of a field. A nil Rules pointer means the key
// was absent or null and the default applies.
type rawFieldDef struct {
	Value any       `json:"value" yaml:"value"`
	Rules *[]string `json:"rules" yaml:"rules"`
}

func (r rawFieldDef) toDef(name string) FieldDef {
	def := FieldDef{Name: name, Value: r.Value}
	if r.Rules != nil {
		def.Rules = Specs(*r.Rules...)
	}
	return def
}

// LoadFile reads and parses a schema document from path.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read schema: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument parses a JSON or YAML schema document. Input starting with '{'
// is read as JSON, everything else as YAML.
func ParseDocument(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Document{}, fmt.Errorf("%w: empty document", ErrInvalidSchema)
	}
	if trimmed[0] == '{' {
		return parseJSONDocument(trimmed)
	}
	return parseYAMLDocument(trimmed)
}

type jsonDocument struct {
	Fields orderedFields `json:"fields"`
	Status Status        `json:"status"`
}

// orderedFields decodes a JSON object of field definitions keeping key order.
type orderedFields Schema

func (o *orderedFields) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields must be an object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected field key %v", tok)
		}
		var raw rawFieldDef
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field '%s': %w", name, err)
		}
		raw.Value = normalizeNumber(raw.Value)
		*o = append(*o, raw.toDef(name))
	}

	_, err = dec.Token()
	return err
}

// normalizeNumber turns json.Number values into float64 or int64.
func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func parseJSONDocument(data []byte) (Document, error) {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return Document{Schema: Schema(doc.Fields), Extra: doc.Status}, nil
}

type yamlDocument struct {
	Fields yaml.Node `yaml:"fields"`
	Status Status    `yaml:"status"`
}

func parseYAMLDocument(data []byte) (Document, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	fields := &doc.Fields
	if fields.Kind == 0 {
		return Document{Extra: doc.Status}, nil
	}
	if fields.Kind != yaml.MappingNode {
		return Document{}, fmt.Errorf("%w: fields must be a mapping (line %d)", ErrInvalidSchema, fields.Line)
	}

	schema := make(Schema, 0, len(fields.Content)/2)
	for i := 0; i+1 < len(fields.Content); i += 2 {
		key, value := fields.Content[i], fields.Content[i+1]
		var raw rawFieldDef
		if err := value.Decode(&raw); err != nil {
			return Document{}, fmt.Errorf("%w: field '%s' (line %d): %w", ErrInvalidSchema, key.Value, key.Line, err)
		}
		schema = append(schema, raw.toDef(key.Value))
	}
	return Document{Schema: schema, Extra: doc.Status}, nil
}
