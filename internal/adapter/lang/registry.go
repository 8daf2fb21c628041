// Package lang holds the static table of language profiles keyed by
// project-type tag, plus marker-file based project detection.
package lang

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"srcpack/internal/domain"
)

var commonIgnores = []string{
	"**/.git/**",
	"**/.svn/**",
	"**/.idea/**",
	"**/.vscode/**",
	"**/dist/**",
	"**/build/**",
	"**/out/**",
}

// profiles is read-only after package initialization.
var profiles = map[string]domain.LanguageProfile{
	"go": {
		Tag:         "go",
		Extensions:  []string{".go"},
		Grammar:     domain.GrammarCStyle,
		IgnoreGlobs: append([]string{"**/vendor/**", "**/testdata/**", "**/*.pb.go"}, commonIgnores...),
		SourceRoots: []string{".", "cmd", "internal", "pkg"},
	},
	"python": {
		Tag:         "python",
		Extensions:  []string{".py"},
		Grammar:     domain.GrammarPythonStyle,
		IgnoreGlobs: append([]string{"**/__pycache__/**", "**/.venv/**", "**/venv/**", "**/*.egg-info/**"}, commonIgnores...),
		SourceRoots: []string{".", "src", "tests"},
	},
	"node": {
		Tag:         "node",
		Extensions:  []string{".js", ".jsx", ".mjs", ".cjs"},
		Grammar:     domain.GrammarCStyle,
		IgnoreGlobs: append([]string{"**/node_modules/**", "**/coverage/**", "**/*.min.js"}, commonIgnores...),
		SourceRoots: []string{".", "src", "lib"},
	},
	"typescript": {
		Tag:         "typescript",
		Extensions:  []string{".ts", ".tsx"},
		Grammar:     domain.GrammarCStyle,
		IgnoreGlobs: append([]string{"**/node_modules/**", "**/coverage/**", "**/*.d.ts"}, commonIgnores...),
		SourceRoots: []string{".", "src"},
	},
	"java": {
		Tag:         "java",
		Extensions:  []string{".java"},
		Grammar:     domain.GrammarCStyle,
		IgnoreGlobs: append([]string{"**/target/**", "**/.gradle/**"}, commonIgnores...),
		SourceRoots: []string{"src/main/java", "src/test/java"},
	},
	"c": {
		Tag:         "c",
		Extensions:  []string{".c", ".h"},
		Grammar:     domain.GrammarCStyle,
		IgnoreGlobs: append([]string{"**/*.o", "**/obj/**"}, commonIgnores...),
		SourceRoots: []string{".", "src", "include"},
	},
	"cpp": {
		Tag:         "cpp",
		Extensions:  []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".h"},
		Grammar:     domain.GrammarCStyle,
		IgnoreGlobs: append([]string{"**/*.o", "**/obj/**", "**/cmake-build-*/**"}, commonIgnores...),
		SourceRoots: []string{".", "src", "include"},
	},
	"rust": {
		Tag:         "rust",
		Extensions:  []string{".rs"},
		Grammar:     domain.GrammarCStyle,
		IgnoreGlobs: append([]string{"**/target/**"}, commonIgnores...),
		SourceRoots: []string{"src", "tests"},
	},
	"ruby": {
		Tag:         "ruby",
		Extensions:  []string{".rb", ".rake"},
		Grammar:     domain.GrammarHashStyle,
		IgnoreGlobs: append([]string{"**/.bundle/**", "**/tmp/**"}, commonIgnores...),
		SourceRoots: []string{".", "lib", "app"},
	},
	"shell": {
		Tag:         "shell",
		Extensions:  []string{".sh", ".bash", ".zsh"},
		Grammar:     domain.GrammarHashStyle,
		IgnoreGlobs: commonIgnores,
		SourceRoots: []string{".", "scripts"},
	},
	"html": {
		Tag:         "html",
		Extensions:  []string{".html", ".htm", ".xml"},
		Grammar:     domain.GrammarHTMLStyle,
		IgnoreGlobs: commonIgnores,
		SourceRoots: []string{".", "public", "templates"},
	},
	"web": {
		Tag:         "web",
		Extensions:  []string{".html", ".htm", ".vue", ".svelte", ".js", ".css"},
		Grammar:     domain.GrammarMixedWeb,
		IgnoreGlobs: append([]string{"**/node_modules/**", "**/*.min.js", "**/*.min.css"}, commonIgnores...),
		SourceRoots: []string{".", "src", "public"},
	},
}

// Lookup returns the profile registered for tag.
func Lookup(tag string) (domain.LanguageProfile, bool) {
	p, ok := profiles[tag]
	return p, ok
}

// Tags returns all registered project-type tags in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(profiles))
	for tag := range profiles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// marker pairs a marker file basename with the tag it proves. Checked in
// order so overlapping ecosystems (node vs. typescript) resolve the same
// way on every run.
var markers = []struct {
	file string
	tag  string
}{
	{"go.mod", "go"},
	{"Cargo.toml", "rust"},
	{"tsconfig.json", "typescript"},
	{"package.json", "node"},
	{"pyproject.toml", "python"},
	{"requirements.txt", "python"},
	{"setup.py", "python"},
	{"pom.xml", "java"},
	{"build.gradle", "java"},
	{"Gemfile", "ruby"},
	{"CMakeLists.txt", "cpp"},
	{"Makefile", "c"},
	{"index.html", "web"},
}

// Detect inspects marker files under root and returns the first matching
// project-type tag.
func Detect(root string) (string, error) {
	for _, m := range markers {
		if _, err := os.Stat(filepath.Join(root, m.file)); err == nil {
			return m.tag, nil
		}
	}
	return "", fmt.Errorf("no project markers found under %s", root)
}
