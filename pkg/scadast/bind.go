package scadast

import "strings"

// paramSlot is one declared parameter slot in a primitive/transform/CSG
// schema: a canonical name, zero or more aliases (e.g. "r" aliasing
// "radius"), and a default used when neither the canonical name nor any
// alias is supplied.
type paramSlot struct {
	name    string
	aliases []string
	def     ParameterValue
}

// binder implements the Parameter Binder (spec §4.7): resolves a call's
// positional and named arguments against a declared parameter schema,
// producing one ParameterValue per declared slot. Binding never fails —
// an argument that can't be evaluated to a literal is simply omitted from
// Params (the caller still has the raw Args for diagnostics/round-trip).
type binder struct {
	ds *Diagnostics
}

// bind resolves args against schema in declaration order: positional
// arguments fill slots left-to-right (skipping any slot already satisfied
// by a named argument encountered earlier in source order, per OpenSCAD's
// call semantics), then named arguments (matched against a slot's
// canonical name or any alias) override positionally-bound values.
func (b *binder) bind(schema []paramSlot, args []Argument) map[string]ParameterValue {
	out := make(map[string]ParameterValue, len(schema))
	for _, slot := range schema {
		out[slot.name] = slot.def
	}

	bound := make(map[string]bool, len(schema))

	positional := 0
	for _, arg := range args {
		if arg.Name == "" {
			for positional < len(schema) && bound[schema[positional].name] {
				positional++
			}

			if positional >= len(schema) {
				continue
			}

			slot := schema[positional]
			positional++

			if v, ok := literalOf(arg.Value); ok {
				out[slot.name] = v
				bound[slot.name] = true
			}

			continue
		}

		slot, ok := findSlot(schema, arg.Name)
		if !ok {
			continue
		}

		if v, ok := literalOf(arg.Value); ok {
			out[slot.name] = v
			bound[slot.name] = true
		}
	}

	return out
}

// literalOf reduces an already-evaluated ExpressionNode to a ParameterValue
// when it is itself a literal; composite expressions (calls, identifiers,
// binary ops) are left unbound since the core never evaluates them.
func literalOf(e ExpressionNode) (ParameterValue, bool) {
	if e.Kind == ExprLiteral {
		return e.Literal, true
	}

	if e.Kind == ExprVector {
		elems := make([]ParameterValue, 0, len(e.Elements))

		for _, el := range e.Elements {
			v, ok := literalOf(el)
			if !ok {
				return Undef, false
			}

			elems = append(elems, v)
		}

		return VectorValue(elems), true
	}

	return Undef, false
}

// findSlot matches a named argument against a slot's canonical name or any
// of its aliases, case-sensitively (OpenSCAD identifiers are case
// sensitive).
func findSlot(schema []paramSlot, name string) (paramSlot, bool) {
	for _, slot := range schema {
		if slot.name == name {
			return slot, true
		}

		for _, a := range slot.aliases {
			if a == name {
				return slot, true
			}
		}
	}

	return paramSlot{}, false
}

// applyDiameterAlias implements spec §9's "diameter wins" rule for sphere
// and cylinder: when a diameter value was bound (its slot no longer holds
// the Undef default — bind() only ever overwrites a default when the
// caller explicitly supplied that slot, by canonical name or alias), it
// takes precedence over any radius value and is halved into the radius
// slot; the diameter slot is then dropped so only one field survives.
func applyDiameterAlias(params map[string]ParameterValue, radiusSlot, diameterSlot string, _ map[string]bool) {
	d, ok := params[diameterSlot]
	if !ok || d.Kind != ParamNumber {
		return
	}

	params[radiusSlot] = NumberValue(d.Number / 2)
	delete(params, diameterSlot)
}

// argNameSet collects the set of explicitly-supplied argument names
// (named arguments only). Kept for callers that want to distinguish
// "explicitly given" from "defaulted" independent of alias resolution.
func argNameSet(args []Argument) map[string]bool {
	out := make(map[string]bool, len(args))

	for _, a := range args {
		if a.Name != "" {
			out[strings.TrimSpace(a.Name)] = true
		}
	}

	return out
}
