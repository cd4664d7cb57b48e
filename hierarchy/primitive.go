package hierarchy

import (
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	keyAction         = "action"
	keyDisposition    = "disposition"
	keyParent         = "parent"
	keySrc            = "src"
	keyDest           = "dest"
	keyEntries        = "entries"
	keySubhierarchies = "subhierarchies"
)

var (
	entryKeys     = []string{keyAction, keyDisposition, keyParent, keySrc, keyDest}
	hierarchyKeys = []string{keyEntries, keySubhierarchies}
)

// ToPrimitive converts e to the JSON-compatible mapping used on disk and on
// the wire.
func (e Entry) ToPrimitive() map[string]any {
	var parent any
	if e.Parent != "" {
		parent = e.Parent
	}
	var src string
	if e.Source != nil {
		src = e.Source.String()
	}
	var action string
	if e.Source != nil {
		action = string(e.Action())
	}
	return map[string]any{
		keyAction:      action,
		keyDisposition: string(e.Disposition),
		keyParent:      parent,
		keySrc:         src,
		keyDest:        e.Dest,
	}
}

// EntryFromPrimitive validates p and builds the Entry it describes.
func EntryFromPrimitive(p map[string]any) (Entry, error) {
	if err := checkKeys(p, entryKeys); err != nil {
		return Entry{}, err
	}
	if len(p) < len(entryKeys)-1 || len(p) > len(entryKeys) {
		return Entry{}, invalidf("", "expected %d or %d fields, got %d", len(entryKeys)-1, len(entryKeys), len(p))
	}

	fields := make(map[string]string, 4)
	for _, k := range []string{keyAction, keyDisposition, keySrc, keyDest} {
		v, ok := p[k]
		if !ok {
			return Entry{}, invalidf(k, "missing")
		}
		s, ok := v.(string)
		if !ok {
			return Entry{}, invalidf(k, "expected string, got %T", v)
		}
		fields[k] = s
	}

	var parent string
	if v, ok := p[keyParent]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return Entry{}, invalidf(keyParent, "expected string or null, got %T", v)
		}
		parent = s
	}

	action, err := ParseAction(fields[keyAction])
	if err != nil {
		return Entry{}, err
	}
	disposition, err := ParseDisposition(fields[keyDisposition])
	if err != nil {
		return Entry{}, err
	}
	src, err := NewSource(action, fields[keySrc])
	if err != nil {
		return Entry{}, err
	}
	if fields[keyDest] == "" {
		return Entry{}, invalidf(keyDest, "must be a path")
	}

	return Entry{
		Disposition: disposition,
		Parent:      parent,
		Source:      src,
		Dest:        fields[keyDest],
	}, nil
}

// ToPrimitive converts h and everything below it to the JSON-compatible
// mapping. Empty levels are encoded as null.
func (h *Hierarchy) ToPrimitive() map[string]any {
	out := map[string]any{
		keyEntries:        nil,
		keySubhierarchies: nil,
	}
	if h == nil {
		return out
	}
	if len(h.Entries) > 0 {
		entries := make(map[string]any, len(h.Entries))
		for name, e := range h.Entries {
			entries[name] = e.ToPrimitive()
		}
		out[keyEntries] = entries
	}
	if len(h.Subhierarchies) > 0 {
		subs := make(map[string]any, len(h.Subhierarchies))
		for name, sub := range h.Subhierarchies {
			subs[name] = sub.ToPrimitive()
		}
		out[keySubhierarchies] = subs
	}
	return out
}

// HierarchyFromPrimitive validates p recursively and builds the tree.
func HierarchyFromPrimitive(p map[string]any) (*Hierarchy, error) {
	if err := checkKeys(p, hierarchyKeys); err != nil {
		return nil, err
	}

	h := &Hierarchy{}

	entries, err := nestedMap(p, keyEntries)
	if err != nil {
		return nil, err
	}
	for _, name := range sortedKeys(entries) {
		ep, ok := entries[name].(map[string]any)
		if !ok {
			return nil, invalidf(keyEntries, "entry %q: expected mapping, got %T", name, entries[name])
		}
		e, err := EntryFromPrimitive(ep)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		h.addEntry(name, e)
	}

	subs, err := nestedMap(p, keySubhierarchies)
	if err != nil {
		return nil, err
	}
	for _, name := range sortedKeys(subs) {
		sp, ok := subs[name].(map[string]any)
		if !ok {
			return nil, invalidf(keySubhierarchies, "subhierarchy %q: expected mapping, got %T", name, subs[name])
		}
		sub, err := HierarchyFromPrimitive(sp)
		if err != nil {
			return nil, fmt.Errorf("subhierarchy %q: %w", name, err)
		}
		h.addSubhierarchy(name, sub)
	}

	return h, nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToPrimitive())
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var p map[string]any
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	decoded, err := EntryFromPrimitive(p)
	if err != nil {
		return err
	}
	*e = decoded
	return nil
}

func (h *Hierarchy) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.ToPrimitive())
}

func (h *Hierarchy) UnmarshalJSON(data []byte) error {
	var p map[string]any
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	decoded, err := HierarchyFromPrimitive(p)
	if err != nil {
		return err
	}
	*h = *decoded
	return nil
}

func checkKeys(p map[string]any, allowed []string) error {
	if p == nil {
		return invalidf("", "expected mapping, got null")
	}
	for _, k := range sortedKeys(p) {
		known := false
		for _, a := range allowed {
			if k == a {
				known = true
				break
			}
		}
		if !known {
			return invalidf(k, "unknown field")
		}
	}
	return nil
}

// nestedMap returns p[key] as a mapping, treating absent and null alike.
func nestedMap(p map[string]any, key string) (map[string]any, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, invalidf(key, "expected mapping or null, got %T", v)
	}
	return m, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
