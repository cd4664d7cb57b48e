package hierarchy

import (
	"net/url"
	"strings"
)

// Action says how an entry's content gets into the workspace.
type Action string

const (
	ActionCopy  Action = "copy"
	ActionFetch Action = "fetch"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionCopy, ActionFetch:
		return a, nil
	}
	return "", invalidf("action", "%q is not one of copy, fetch", s)
}

// Disposition is the policy applied when the destination already exists.
type Disposition string

const (
	DispositionPrompt    Disposition = "prompt"
	DispositionOverwrite Disposition = "overwrite"
	DispositionAbort     Disposition = "abort"
)

func ParseDisposition(s string) (Disposition, error) {
	switch d := Disposition(s); d {
	case DispositionPrompt, DispositionOverwrite, DispositionAbort:
		return d, nil
	}
	return "", invalidf("disposition", "%q is not one of prompt, overwrite, abort", s)
}

// Source is where an entry's bytes come from. The concrete type fixes the
// action: a LocalSource is always copied and a RemoteSource is always fetched.
type Source interface {
	Action() Action
	String() string

	isSource()
}

// LocalSource is a file on the local filesystem.
type LocalSource struct {
	Path string
}

func (LocalSource) Action() Action   { return ActionCopy }
func (s LocalSource) String() string { return s.Path }
func (LocalSource) isSource()        {}

// RemoteSource is a file downloadable over http(s).
type RemoteSource struct {
	URL *url.URL
}

func (RemoteSource) Action() Action   { return ActionFetch }
func (s RemoteSource) String() string { return s.URL.String() }
func (RemoteSource) isSource()        {}

// NewSource interprets raw according to action.
func NewSource(action Action, raw string) (Source, error) {
	switch action {
	case ActionCopy:
		if raw == "" {
			return nil, invalidf("src", "copy source must be a path")
		}
		if strings.ContainsRune(raw, 0) {
			return nil, invalidf("src", "copy source %q is not a valid path", raw)
		}
		return LocalSource{Path: raw}, nil
	case ActionFetch:
		u, err := url.Parse(raw)
		if err != nil {
			return nil, invalidf("src", "fetch source %q is not a URL: %v", raw, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, invalidf("src", "fetch source %q must be an http(s) URL", raw)
		}
		if u.Host == "" {
			return nil, invalidf("src", "fetch source %q has no host", raw)
		}
		// store the canonical form so the source survives a String round trip
		u, err = url.Parse(u.String())
		if err != nil {
			return nil, invalidf("src", "fetch source %q is not a URL: %v", raw, err)
		}
		return RemoteSource{URL: u}, nil
	}
	return nil, invalidf("action", "%q is not one of copy, fetch", string(action))
}

// Entry is a single notebook that can be materialized into the workspace.
type Entry struct {
	Disposition Disposition
	// Parent is the menu location; empty means the root.
	Parent string
	Source Source
	// Dest is relative to the home directory unless absolute.
	Dest string
}

func (e Entry) Action() Action {
	return e.Source.Action()
}

// Hierarchy is one level of the tutorials menu.
type Hierarchy struct {
	Entries        map[string]Entry
	Subhierarchies map[string]*Hierarchy
}

// IsEmpty reports whether h holds neither entries nor subhierarchies.
func (h *Hierarchy) IsEmpty() bool {
	return h == nil || (len(h.Entries) == 0 && len(h.Subhierarchies) == 0)
}

func (h *Hierarchy) addEntry(name string, e Entry) {
	if h.Entries == nil {
		h.Entries = make(map[string]Entry)
	}
	h.Entries[name] = e
}

func (h *Hierarchy) addSubhierarchy(name string, sub *Hierarchy) {
	if h.Subhierarchies == nil {
		h.Subhierarchies = make(map[string]*Hierarchy)
	}
	h.Subhierarchies[name] = sub
}
