package prompts

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

const (
	FeedbackAnalysis  = "feedback_analysis"
	PracticeQuestions = "practice_questions"
	CompletionCheck   = "completion_check"

	VariantStrict       = "strict"
	VariantConstructive = "constructive"
	VariantDefault      = "default"
)

type PromptManager struct {
	prompts map[string]map[string]string // template -> variant -> complete prompt
}

type PromptTemplate struct {
	BasePrompt string            `yaml:"base_prompt"`
	Variants   map[string]string `yaml:"variants"`
}

func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		prompts: make(map[string]map[string]string),
	}

	if err := pm.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	return pm, nil
}

// BuildPrompt fills {{.Key}} placeholders of the named template variant.
func (pm *PromptManager) BuildPrompt(name, variant string, vars map[string]string) (string, error) {
	variants, exists := pm.prompts[name]
	if !exists {
		return "", fmt.Errorf("template not found: %s", name)
	}

	prompt, exists := variants[variant]
	if !exists {
		return "", fmt.Errorf("variant '%s' not found for template '%s'", variant, name)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// One pass: substituted values are never scanned for placeholders again.
	// Braces inside the JSON examples are left intact.
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{{."+k+"}}", vars[k])
	}
	return strings.NewReplacer(pairs...).Replace(prompt), nil
}

func (pm *PromptManager) loadPrompts() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var tmpl PromptTemplate
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}
		if len(tmpl.Variants) == 0 {
			return fmt.Errorf("template file %s has no variants", entry.Name())
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		pm.prompts[name] = make(map[string]string)

		for variant, body := range tmpl.Variants {
			var full strings.Builder
			if tmpl.BasePrompt != "" {
				full.WriteString(strings.TrimRight(tmpl.BasePrompt, "\n"))
				full.WriteString("\n\n")
			}
			full.WriteString(body)
			pm.prompts[name][variant] = full.String()
		}
	}

	return nil
}
