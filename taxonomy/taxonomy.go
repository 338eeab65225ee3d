// Package taxonomy holds the fixed classification and scenario schemas
// the pipeline annotates against: a two-level category system for
// personal data items and a three-level hierarchy of usage scenarios.
// Both are process-wide read-only reference data, loaded once at
// startup and never mutated afterwards.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel labels emitted when the model cannot produce a usable answer.
const (
	// Unclassified is assigned to both category levels of a data item
	// that remains unresolved after the classifier's retries.
	Unclassified = "未分类"

	// UnknownAction marks an entity-scene pairing whose governing
	// action could not be determined.
	UnknownAction = "未识别"
)

// Actions is the loose vocabulary of data-handling verbs suggested to
// the model. Returned actions are not validated against it.
var Actions = []string{
	"收集", "使用", "分析", "存储", "共享", "披露", "删除", "传输", "展示", "公开",
}

// Level2 is a second-level category with illustrative examples.
type Level2 struct {
	Name     string   `json:"name" yaml:"name"`
	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Category is one first-level category and its second-level refinements.
type Category struct {
	Level1  string   `json:"level1" yaml:"level1"`
	Level2s []Level2 `json:"level2" yaml:"level2"`
}

// SceneLevel2 is a second-level scenario with its third-level variants.
type SceneLevel2 struct {
	Name    string   `json:"name" yaml:"name"`
	Level3s []string `json:"level3,omitempty" yaml:"level3,omitempty"`
}

// Scene is one first-level scenario group.
type Scene struct {
	Level1  string        `json:"level1" yaml:"level1"`
	Level2s []SceneLevel2 `json:"level2" yaml:"level2"`
}

// Schema bundles both hierarchies.
type Schema struct {
	Categories []Category `json:"categories" yaml:"categories"`
	Scenes     []Scene    `json:"scenes" yaml:"scenes"`
}

// Load reads a schema override from a YAML file. Either section may be
// omitted, in which case the built-in default for it is used.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing schema file: %w", err)
	}
	def := Default()
	if len(s.Categories) == 0 {
		s.Categories = def.Categories
	}
	if len(s.Scenes) == 0 {
		s.Scenes = def.Scenes
	}
	return &s, nil
}

// ClassificationPrompt renders the category schema as the prompt
// section embedded in every classification call.
func (s *Schema) ClassificationPrompt() string {
	var b strings.Builder
	for _, cat := range s.Categories {
		fmt.Fprintf(&b, "**一级类别: %s**\n", cat.Level1)
		for _, l2 := range cat.Level2s {
			if len(l2.Examples) == 0 {
				fmt.Fprintf(&b, "- 二级类别: %s\n", l2.Name)
				continue
			}
			fmt.Fprintf(&b, "- 二级类别: %s (示例: %s)\n", l2.Name, strings.Join(l2.Examples, "、"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ScenePrompt renders the scenario hierarchy as the prompt section
// embedded in scene recognition calls.
func (s *Schema) ScenePrompt() string {
	var b strings.Builder
	for _, sc := range s.Scenes {
		fmt.Fprintf(&b, "# 层级1: %s\n", sc.Level1)
		for _, l2 := range sc.Level2s {
			fmt.Fprintf(&b, "- 层级2: %s\n", l2.Name)
			if len(l2.Level3s) > 0 {
				fmt.Fprintf(&b, "  - 层级3: %s\n", strings.Join(l2.Level3s, ", "))
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// ActionsPrompt renders the action vocabulary as a JSON-style list.
func ActionsPrompt() string {
	return `["` + strings.Join(Actions, `", "`) + `"]`
}
