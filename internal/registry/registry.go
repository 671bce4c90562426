// Package registry persists the record of installed plugins as a versioned
// JSON document.
package registry

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/samhoang/skillctl/internal/logger"
)

const (
	// CurrentVersion is the schema version written by Save
	CurrentVersion = "2.0.0"
	// LegacyVersion is the first schema, also assumed when version is absent
	LegacyVersion = "1.0.0"
)

// Status is the lifecycle state of a plugin
type Status string

// StatusInstalled is the only status a recorded plugin can have
const StatusInstalled Status = "installed"

// Registry is the current-version registry document
type Registry struct {
	Version string   `json:"version"`
	Plugins []Plugin `json:"plugins"`
}

// Plugin is one installation unit sourced from a single git repository
type Plugin struct {
	Name        string    `json:"name"`
	GitURL      string    `json:"git_url"`
	Owner       string    `json:"owner"`
	Repo        string    `json:"repo"`
	RepoPath    string    `json:"repo_path"`
	SkillPrefix string    `json:"skill_prefix"`
	CommitHash  string    `json:"commit_hash"`
	InstalledAt Timestamp `json:"installed_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
	Skills      []string  `json:"skills"`
	Status      Status    `json:"status"`
}

// New returns an empty registry at the current version
func New() *Registry {
	return &Registry{
		Version: CurrentVersion,
		Plugins: []Plugin{},
	}
}

// SchemaVersion implements Document
func (r *Registry) SchemaVersion() string {
	return CurrentVersion
}

// Find returns the plugin with the given name
func (r *Registry) Find(name string) (*Plugin, bool) {
	for i := range r.Plugins {
		if r.Plugins[i].Name == name {
			return &r.Plugins[i], true
		}
	}
	return nil, false
}

// AddOrReplace stores p, replacing an entry with the same name in place or
// appending when there is none
func (r *Registry) AddOrReplace(p Plugin) {
	for i := range r.Plugins {
		if r.Plugins[i].Name == p.Name {
			r.Plugins[i] = p
			return
		}
	}
	r.Plugins = append(r.Plugins, p)
}

// Remove deletes the plugin with the given name and reports whether it existed
func (r *Registry) Remove(name string) bool {
	for i := range r.Plugins {
		if r.Plugins[i].Name == name {
			r.Plugins = append(r.Plugins[:i], r.Plugins[i+1:]...)
			return true
		}
	}
	return false
}

// Owner returns the name of the plugin that installed skill
func (r *Registry) Owner(skill string) (string, bool) {
	for _, p := range r.Plugins {
		if p.HasSkill(skill) {
			return p.Name, true
		}
	}
	return "", false
}

// Names returns plugin names in registry order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Plugins))
	for _, p := range r.Plugins {
		names = append(names, p.Name)
	}
	return names
}

// Installed returns the names of plugins with status installed
func (r *Registry) Installed() []string {
	var names []string
	for _, p := range r.Plugins {
		if p.Status == StatusInstalled {
			names = append(names, p.Name)
		}
	}
	return names
}

// HasSkill reports whether skill is in the plugin's skill list
func (p *Plugin) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// DropSkill removes skill from the plugin's skill list
func (p *Plugin) DropSkill(skill string) bool {
	for i, s := range p.Skills {
		if s == skill {
			p.Skills = append(p.Skills[:i], p.Skills[i+1:]...)
			return true
		}
	}
	return false
}

// Timestamp is a time that serializes as RFC 3339. Decoding also accepts
// ISO-8601 values without a zone, which are read as local time.
type Timestamp struct {
	time.Time
}

// Now returns the current time truncated to seconds
func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Second)}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// UnmarshalJSON implements json.Unmarshaler. A value that is not a
// recognizable timestamp decodes to zero instead of failing the document.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		logger.L.WithField("value", string(data)).Warn("ignoring malformed registry timestamp")
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		logger.L.WithError(err).WithField("value", s).Warn("ignoring malformed registry timestamp")
		return nil
	}
	*t = parsed
	return nil
}

// ParseTimestamp parses an RFC 3339 or zone-less ISO-8601 string.
// An empty string yields the zero Timestamp.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}

	var firstErr error
	for _, layout := range timestampLayouts {
		var (
			parsed time.Time
			err    error
		)
		if layout == time.RFC3339Nano {
			parsed, err = time.Parse(layout, s)
		} else {
			parsed, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return Timestamp{parsed}, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return Timestamp{}, firstErr
}
