//go:build js && wasm

// Package main provides WASM bindings for formcheck.
// Browsers call these for the same validation the server runs.
package main

import (
	"syscall/js"

	json "github.com/goccy/go-json"

	"github.com/dlovans/formcheck/pkg/form"
	"github.com/dlovans/formcheck/pkg/lint"
)

var engine = form.NewEngine()

func main() {
	js.Global().Set("FormcheckValidate", js.FuncOf(formcheckValidate))
	js.Global().Set("FormcheckLint", js.FuncOf(formcheckLint))
	js.Global().Set("FormcheckRules", js.FuncOf(formcheckRules))

	// Keep the Go runtime alive
	select {}
}

// formcheckValidate wraps Engine.Evaluate.
// Usage: FormcheckValidate(schemaText, valuesJSON, serverErrorsJSON?) -> { result: report, error?: string }
func formcheckValidate(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return makeError("FormcheckValidate requires 2 arguments: schemaText, valuesJSON")
	}

	doc, err := form.ParseDocument([]byte(args[0].String()))
	if err != nil {
		return makeError(err.Error())
	}

	values := map[string]any{}
	if text := args[1].String(); text != "" {
		if err := json.Unmarshal([]byte(text), &values); err != nil {
			return makeError("invalid values: " + err.Error())
		}
	}

	var serverErrors form.ServerErrors
	if len(args) > 2 && args[2].Type() == js.TypeString && args[2].String() != "" {
		if err := json.Unmarshal([]byte(args[2].String()), &serverErrors); err != nil {
			return makeError("invalid server errors: " + err.Error())
		}
	}

	report, err := engine.Evaluate(doc, values, serverErrors)
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(report)
}

// formcheckLint wraps lint.Run.
// Usage: FormcheckLint(schemaText) -> { result: { valid, issues }, error?: string }
func formcheckLint(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return makeError("FormcheckLint requires 1 argument: schemaText")
	}

	result, err := lint.Run(args[0].String())
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(result)
}

// formcheckRules lists the builtin rule names.
func formcheckRules(this js.Value, args []js.Value) any {
	return makeResult(engine.Registry().Names())
}

func makeError(msg string) map[string]any {
	return map[string]any{
		"error": msg,
	}
}

// makeResult converts v into plain maps and slices that js.ValueOf accepts.
func makeResult(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return makeError(err.Error())
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return makeError(err.Error())
	}
	return map[string]any{
		"result": result,
	}
}
