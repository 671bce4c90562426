package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/samhoang/skillctl/internal/installer"
	"github.com/samhoang/skillctl/internal/registry"
	"github.com/samhoang/skillctl/internal/source"
)

var (
	listJSON    bool
	listYAML    bool
	listVerbose bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed plugins",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listJSON, "json", "j", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output as YAML")
	listCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false, "Show skills and their descriptions")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	listCmd.Annotations = map[string]string{annotationConfigOptional: "true"}
	rootCmd.AddCommand(listCmd)
}

type pluginView struct {
	Name        string   `json:"name" yaml:"name"`
	GitURL      string   `json:"git_url" yaml:"git_url"`
	RepoPath    string   `json:"repo_path" yaml:"repo_path"`
	SkillPrefix string   `json:"skill_prefix" yaml:"skill_prefix"`
	CommitHash  string   `json:"commit_hash" yaml:"commit_hash"`
	InstalledAt string   `json:"installed_at" yaml:"installed_at"`
	UpdatedAt   string   `json:"updated_at" yaml:"updated_at"`
	Skills      []string `json:"skills" yaml:"skills"`
	Status      string   `json:"status" yaml:"status"`
}

func newPluginView(p registry.Plugin) pluginView {
	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}
	return pluginView{
		Name:        p.Name,
		GitURL:      p.GitURL,
		RepoPath:    p.RepoPath,
		SkillPrefix: p.SkillPrefix,
		CommitHash:  p.CommitHash,
		InstalledAt: formatTimestamp(p.InstalledAt, "2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   formatTimestamp(p.UpdatedAt, "2006-01-02T15:04:05Z07:00"),
		Skills:      skills,
		Status:      string(p.Status),
	}
}

func runList(cmd *cobra.Command, args []string) error {
	mgr := newManager()
	plugins := mgr.List(cmd.Context())
	out := cmd.OutOrStdout()

	switch {
	case listJSON:
		views := make([]pluginView, 0, len(plugins))
		for _, p := range plugins {
			views = append(views, newPluginView(p))
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)

	case listYAML:
		views := make([]pluginView, 0, len(plugins))
		for _, p := range plugins {
			views = append(views, newPluginView(p))
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(plugins) == 0 {
		fmt.Fprintln(out, "No plugins installed")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Install one with:")
		fmt.Fprintln(out, "  skillctl install --git-url <url>")
		return nil
	}

	printPluginTable(out, plugins)

	if listVerbose {
		for _, p := range plugins {
			printPluginSkills(out, mgr, p)
		}
	}
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))

// printPluginTable aligns the table first and styles the header line after,
// so escape sequences do not skew column widths
func printPluginTable(out io.Writer, plugins []registry.Plugin) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLUGIN\tSOURCE\tSKILLS\tCOMMIT\tUPDATED")

	for _, p := range plugins {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			p.Name,
			displayURL(p.GitURL),
			len(p.Skills),
			shortOrNone(p.CommitHash),
			formatTimestamp(p.UpdatedAt, "2006-01-02"),
		)
	}
	w.Flush()

	header, rest, _ := strings.Cut(buf.String(), "\n")
	fmt.Fprintln(out, headerStyle.Render(header))
	fmt.Fprint(out, rest)
}

func printPluginSkills(out io.Writer, mgr *installer.Manager, p registry.Plugin) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render(p.Name))
	if len(p.Skills) == 0 {
		fmt.Fprintln(out, "  (no skills)")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, s := range mgr.InstalledSkills(p) {
		fmt.Fprintf(w, "  %s\t%s\n", s.Name, skillDescription(s))
	}
	w.Flush()
}

func skillDescription(s source.Skill) string {
	if s.Manifest == nil {
		return "(missing)"
	}
	return s.Manifest.Description
}

func displayURL(url string) string {
	if owner, repo, err := source.ParseGitURL(url); err == nil {
		return owner + "/" + repo
	}
	if url == "" {
		return "-"
	}
	return strings.TrimSpace(url)
}

func formatTimestamp(ts registry.Timestamp, layout string) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format(layout)
}
