package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/samhoang/skillctl/internal/source"
)

// Document is a decoded registry at some schema version
type Document interface {
	SchemaVersion() string
}

// V1Document is the legacy 1.0.0 registry
type V1Document struct {
	Version string     `json:"version"`
	Plugins []V1Plugin `json:"plugins"`
}

// SchemaVersion implements Document
func (d *V1Document) SchemaVersion() string {
	return LegacyVersion
}

// V1Plugin is a legacy plugin record. LocalPath and SourceType have no
// counterpart in the current schema.
type V1Plugin struct {
	Name        string    `json:"name"`
	GitURL      string    `json:"git_url"`
	Owner       string    `json:"owner"`
	Repo        string    `json:"repo"`
	LocalPath   string    `json:"local_path"`
	SourceType  string    `json:"source_type"`
	Skills      []string  `json:"skills"`
	InstalledAt Timestamp `json:"installed_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
	Status      Status    `json:"status"`
}

// Decode parses data into the document type matching its version field.
// A document without a version, or with any version older than
// CurrentVersion, is read as a legacy document. Only newer versions are
// rejected.
func Decode(data []byte) (Document, error) {
	var probe struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch compareVersion(probe.Version, CurrentVersion) {
	case 0:
		var reg Registry
		if err := json.Unmarshal(data, &reg); err != nil {
			return nil, err
		}
		return &reg, nil
	case 1:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, probe.Version)
	default:
		var doc V1Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}
}

// compareVersion orders two dotted schema versions. An empty or
// unparseable version sorts before every valid one.
func compareVersion(a, b string) int {
	return semver.Compare(canonicalVersion(a), canonicalVersion(b))
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Migrate upgrades doc to the current schema. A current document is
// returned as is, so Migrate(Migrate(d)) equals Migrate(d).
func Migrate(doc Document) (*Registry, error) {
	switch d := doc.(type) {
	case *Registry:
		return normalize(d), nil
	case *V1Document:
		return upgradeV1(d), nil
	case nil:
		return New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, doc.SchemaVersion())
	}
}

// upgradeV1 converts a 1.0.0 document to 2.0.0
func upgradeV1(d *V1Document) *Registry {
	reg := New()
	for _, old := range d.Plugins {
		p := Plugin{
			Name:        old.Name,
			GitURL:      old.GitURL,
			Owner:       old.Owner,
			Repo:        old.Repo,
			RepoPath:    legacyRepoPath(old),
			InstalledAt: old.InstalledAt,
			UpdatedAt:   old.UpdatedAt,
			Skills:      append([]string{}, old.Skills...),
			Status:      old.Status,
		}
		if p.Status == "" {
			p.Status = StatusInstalled
		}
		reg.Plugins = append(reg.Plugins, p)
	}
	return reg
}

func legacyRepoPath(p V1Plugin) string {
	if p.Owner != "" && p.Repo != "" {
		return source.RepoDirName(p.Owner, p.Repo)
	}
	if owner, repo, err := source.ParseGitURL(p.GitURL); err == nil {
		return source.RepoDirName(owner, repo)
	}
	return ""
}

// normalize fills nil slices so the document serializes with [] instead of null
func normalize(r *Registry) *Registry {
	r.Version = CurrentVersion
	if r.Plugins == nil {
		r.Plugins = []Plugin{}
	}
	for i := range r.Plugins {
		if r.Plugins[i].Skills == nil {
			r.Plugins[i].Skills = []string{}
		}
	}
	return r
}
