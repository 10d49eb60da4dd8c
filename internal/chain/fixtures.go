package chain

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtureHistory struct {
	Digest string        `yaml:"digest"`
	Status string        `yaml:"status"`
	Age    time.Duration `yaml:"age"`
	Events []Event       `yaml:"events"`
}

type fixtures struct {
	Escrows []Object         `yaml:"escrows"`
	Assets  []Object         `yaml:"assets"`
	History []fixtureHistory `yaml:"history"`
}

func loadFixtures() (*fixtures, error) {
	var fx fixtures
	if err := yaml.Unmarshal(fixturesYAML, &fx); err != nil {
		return nil, fmt.Errorf("parse demo fixtures: %w", err)
	}
	return &fx, nil
}

func (f *fixtures) escrows(owner, typ string) []Object { return f.objects(f.Escrows, owner, typ) }
func (f *fixtures) assets(owner, typ string) []Object { return f.objects(f.Assets, owner, typ) }

func (f *fixtures) objects(src []Object, owner, typ string) []Object {
	out := make([]Object, 0, len(src))
	for _, o := range src {
		o.Type = typ
		o.Content = substitute(o.Content, owner, "").(map[string]any)
		out = append(out, o)
	}
	return out
}

// history stamps each entry relative to now; typePrefix is "<package>::escrow::".
func (f *fixtures) history(owner, typePrefix string, now time.Time) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(f.History))
	for _, h := range f.History {
		events := make([]Event, 0, len(h.Events))
		for _, ev := range h.Events {
			events = append(events, Event{
				Type:       strings.ReplaceAll(ev.Type, "$type", typePrefix),
				ParsedJSON: substitute(ev.ParsedJSON, owner, typePrefix).(map[string]any),
			})
		}
		out = append(out, HistoryEntry{
			Digest:      h.Digest,
			Sender:      owner,
			Status:      h.Status,
			Events:      events,
			TimestampMs: now.Add(-h.Age).UnixMilli(),
		})
	}
	return out
}

// substitute returns a deep copy of v with placeholders replaced in every string.
func substitute(v any, owner, typePrefix string) any {
	switch t := v.(type) {
	case string:
		t = strings.ReplaceAll(t, "$owner", owner)
		return strings.ReplaceAll(t, "$type", typePrefix)
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = substitute(val, owner, typePrefix)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = substitute(val, owner, typePrefix)
		}
		return s
	default:
		return v
	}
}
