// Package scriptio implements the reference serialized-Script format (spec
// §4 supplement): since the instruction graph is normally produced by an
// out-of-scope external parser, this package gives the CLI and the
// require() file loader a concrete, JSON-based wire format to read a
// Script from disk with, grounded on the teacher's own convention of a
// flat, field-tagged struct serialized via encoding/json (seen throughout
// internal/reporting's report structs).
package scriptio

import (
	"encoding/json"
	"io"

	"graphscript/internal/gerrors"
	"graphscript/internal/script"
	"graphscript/internal/value"
)

type wireInstruction struct {
	Key  script.Key   `json:"key"`
	Op   string       `json:"op"`
	Name string       `json:"name,omitempty"`
	Refs []script.Key `json:"refs,omitempty"`
}

type wireConstant struct {
	Key   script.Key `json:"key"`
	Type  string     `json:"type"`
	Int   int64      `json:"int,omitempty"`
	Float float64    `json:"float,omitempty"`
	Str   string     `json:"str,omitempty"`
}

type wireScript struct {
	Origin       string            `json:"origin"`
	Entry        script.Key        `json:"entry"`
	Instructions []wireInstruction `json:"instructions"`
	Constants    []wireConstant    `json:"constants"`
}

// Load reads a Script from its reference JSON encoding.
func Load(r io.Reader, origin string) (*script.Script, error) {
	var w wireScript
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, gerrors.Wrap(err, gerrors.LoaderError, "decoding script %q", origin)
	}
	if w.Origin != "" {
		origin = w.Origin
	}

	constants := make(map[script.Key]value.Value, len(w.Constants))
	for _, wc := range w.Constants {
		var v value.Value
		switch wc.Type {
		case "int":
			v = value.Int(wc.Int)
		case "float":
			v = value.Flt(wc.Float)
		case "string":
			v = value.Str(wc.Str)
		default:
			return nil, gerrors.New(gerrors.LoaderError, "script %q: unknown constant type %q", origin, wc.Type)
		}
		constants[wc.Key] = v
	}
	instructions := make(map[script.Key]*script.Instruction, len(w.Instructions))
	for _, wi := range w.Instructions {
		if wi.Key == script.NullKey {
			continue // NULL is pre-populated by FromWire
		}
		op, ok := script.ParseOpCode(wi.Op)
		if !ok {
			return nil, gerrors.New(gerrors.LoaderError, "script %q: unknown opcode %q", origin, wi.Op)
		}
		instructions[wi.Key] = &script.Instruction{OpCode: op, Name: wi.Name, Refs: wi.Refs, Key: wi.Key}
	}
	return script.FromWire(origin, instructions, constants, w.Entry), nil
}

// Save writes s to its reference JSON encoding; used by tooling that
// produces scripts programmatically (e.g. test fixtures) rather than by
// the runtime itself.
func Save(s *script.Script, w io.Writer) error {
	out := wireScript{Origin: s.Origin, Entry: s.EntryKey}
	for k, ins := range s.Instructions {
		if k == script.NullKey {
			continue
		}
		out.Instructions = append(out.Instructions, wireInstruction{
			Key: k, Op: ins.OpCode.String(), Name: ins.Name, Refs: ins.Refs,
		})
	}
	for k, v := range s.Constants {
		wc := wireConstant{Key: k}
		switch v.Tag() {
		case value.Integer:
			wc.Type, wc.Int = "int", v.AsInt()
		case value.Float:
			wc.Type, wc.Float = "float", v.AsFloat()
		case value.String:
			wc.Type, wc.Str = "string", v.AsString()
		default:
			return gerrors.New(gerrors.StructuralError, "constant pool entry %d has non-serializable tag %s", k, v.TypeName())
		}
		out.Constants = append(out.Constants, wc)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
