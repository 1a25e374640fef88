package form

// RuleError is one failed rule on a field, keyed by rule name or, for inline
// rules, by the rule's position in the field's rule list.
type RuleError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// Errors maps rule keys to messages, keeping the order in which rules failed.
type Errors []RuleError

// Get returns the message stored under key.
func (e Errors) Get(key string) (string, bool) {
	for _, re := range e {
		if re.Key == key {
			return re.Message, true
		}
	}
	return "", false
}

// Keys returns the failing rule keys in order.
func (e Errors) Keys() []string {
	keys := make([]string, len(e))
	for i, re := range e {
		keys[i] = re.Key
	}
	return keys
}

// Messages returns the messages in order.
func (e Errors) Messages() []string {
	msgs := make([]string, len(e))
	for i, re := range e {
		msgs[i] = re.Message
	}
	return msgs
}

// set stores message under key, overwriting an existing entry in place.
func (e *Errors) set(key, message string) {
	for i := range *e {
		if (*e)[i].Key == key {
			(*e)[i].Message = message
			return
		}
	}
	*e = append(*e, RuleError{Key: key, Message: message})
}

// Field is one named input of a form: its value, its rules, and the outcome of
// the last validation.
//
// Errors is reset by every validation run. ServerErrors is written only by
// Form.SetServerErrors and cleared by validation.
type Field struct {
	Name         string
	Value        any
	Rules        []RuleSpec
	Errors       Errors
	ServerErrors []string
}

// Error returns the message of a single failed rule.
func (f *Field) Error(key string) (string, bool) {
	return f.Errors.Get(key)
}

// Messages returns every message to display for the field: local rule errors in
// order, followed by server errors.
func (f *Field) Messages() []string {
	msgs := make([]string, 0, len(f.Errors)+len(f.ServerErrors))
	msgs = append(msgs, f.Errors.Messages()...)
	return append(msgs, f.ServerErrors...)
}

// Valid reports whether the field currently carries no local or server errors.
func (f *Field) Valid() bool {
	return len(f.Errors) == 0 && len(f.ServerErrors) == 0
}

func (f *Field) clearErrors() {
	f.Errors = Errors{}
	f.ServerErrors = nil
}
