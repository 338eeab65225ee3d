// Package annotate runs the per-paragraph annotation pipeline: entity
// extraction, taxonomy classification, scenario recognition, and
// action resolution, each driven by one structured oracle call. Every
// stage degrades to an empty result on failure so that one bad model
// response never aborts a paragraph, and one bad paragraph never
// aborts a document.
package annotate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/orange24122/extraction/llm"
	"github.com/orange24122/extraction/llmjson"
	"github.com/orange24122/extraction/taxonomy"
)

// classifyAttempts bounds the classifier's completeness retry: the
// initial call plus one extra attempt. No other stage retries.
const classifyAttempts = 2

// Classification is the two-level category assigned to a data item.
type Classification struct {
	Level1 string `json:"一级类别"`
	Level2 string `json:"二级类别"`
}

// EntityRecord is a data item together with its classification.
type EntityRecord struct {
	Item   string `json:"数据项"`
	Level1 string `json:"一级类别"`
	Level2 string `json:"二级类别"`
}

// ActionTriple relates a scenario, an action verb, and a data item.
type ActionTriple struct {
	Scene  []string `json:"场景"`
	Action string   `json:"关系"`
	Item   string   `json:"数据项"`
}

// ParagraphRecord aggregates everything the pipeline learned about one
// paragraph. Built once, never mutated.
type ParagraphRecord struct {
	Text      string         `json:"段落"`
	Ordinal   int            `json:"段号"`
	SceneTags [][]string     `json:"场景标签"`
	Entities  []EntityRecord `json:"实体"`
	Relations []ActionTriple `json:"关系标注"`
}

// Config tunes the annotator.
type Config struct {
	Model       string  // model override per request; provider default if empty
	Temperature float64 // defaults to 0.1 for deterministic-leaning output
	DumpDir     string  // where malformed model output is persisted
}

// Annotator runs the annotation stages against a model provider using
// a fixed taxonomy/scenario schema.
type Annotator struct {
	caller *llmjson.Caller
	schema *taxonomy.Schema
}

// New creates an Annotator. A nil schema uses the built-in default.
func New(provider llm.Provider, schema *taxonomy.Schema, cfg Config) *Annotator {
	if schema == nil {
		schema = taxonomy.Default()
	}
	temp := cfg.Temperature
	if temp == 0 {
		temp = 0.1
	}
	return &Annotator{
		caller: &llmjson.Caller{
			Provider:    provider,
			Model:       cfg.Model,
			System:      systemRole,
			Temperature: temp,
			Dumps:       &llmjson.Dumper{Dir: cfg.DumpDir},
		},
		schema: schema,
	}
}

// ExtractEntities derives the deduplicated set of personal-data items
// mentioned in a paragraph. Any oracle or recovery failure yields an
// empty set; extraction failure for one paragraph must not abort the
// document. Order is first occurrence in the model output.
func (a *Annotator) ExtractEntities(ctx context.Context, text string) []string {
	var raw []any
	if err := a.caller.Call(ctx, fmt.Sprintf(extractPrompt, text), &raw); err != nil {
		slog.Warn("annotate: entity extraction failed", "error", err)
		return nil
	}

	seen := make(map[string]bool, len(raw))
	var items []string
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		items = append(items, s)
	}
	return items
}

// ClassifyEntities maps each data item onto the two-level taxonomy. The
// returned map always holds exactly the input items as keys: items the
// model failed to classify after the single extra attempt are assigned
// the sentinel pair, never omitted. An empty input returns an empty map
// without calling the oracle.
func (a *Annotator) ClassifyEntities(ctx context.Context, items []string) map[string]Classification {
	out := make(map[string]Classification, len(items))
	if len(items) == 0 {
		return out
	}

	itemsJSON, _ := json.Marshal(items)
	prompt := fmt.Sprintf(classifyPrompt, string(itemsJSON), a.schema.ClassificationPrompt())

	var last map[string]Classification
	for attempt := 1; attempt <= classifyAttempts; attempt++ {
		var got map[string]Classification
		if err := a.caller.Call(ctx, prompt, &got); err != nil {
			slog.Warn("annotate: classification call failed", "attempt", attempt, "error", err)
			continue
		}
		last = got
		if complete(got, items) {
			break
		}
		slog.Warn("annotate: classification incomplete",
			"attempt", attempt, "requested", len(items), "resolved", len(got))
	}

	for _, item := range items {
		if c, ok := last[item]; ok {
			out[item] = c
			continue
		}
		out[item] = Classification{Level1: taxonomy.Unclassified, Level2: taxonomy.Unclassified}
	}
	return out
}

// complete reports whether every requested item has a key in got.
func complete(got map[string]Classification, items []string) bool {
	for _, item := range items {
		if _, ok := got[item]; !ok {
			return false
		}
	}
	return true
}

// RecognizeScenes maps a paragraph onto the scenario hierarchy,
// preferring the deepest matching level and emitting every applicable
// scenario. classified may be nil: the recognizer does not require
// completed classification to run. Tuples shorter than 2 or containing
// non-strings are discarded; tuples longer than 3 keep their first
// three levels. Oracle failure yields nil.
func (a *Annotator) RecognizeScenes(ctx context.Context, text string, classified map[string]Classification) [][]string {
	ctxJSON := "{}"
	if len(classified) > 0 {
		if data, err := json.Marshal(classified); err == nil {
			ctxJSON = string(data)
		}
	}

	var raw []any
	prompt := fmt.Sprintf(scenePrompt, text, ctxJSON, a.schema.ScenePrompt())
	if err := a.caller.Call(ctx, prompt, &raw); err != nil {
		slog.Warn("annotate: scene recognition failed", "error", err)
		return nil
	}

	var scenes [][]string
	for _, v := range raw {
		tuple, ok := stringTuple(v)
		if !ok || len(tuple) < 2 {
			continue
		}
		if len(tuple) > 3 {
			tuple = tuple[:3]
		}
		scenes = append(scenes, tuple)
	}
	return scenes
}

// ResolveActions asks the oracle for the governing action of every
// relevant (scene, entity) pairing in the paragraph. With no scenes or
// no entities there is nothing to relate and the oracle is not called.
// Rows that are not lists of at least 5 fields are dropped.
func (a *Annotator) ResolveActions(ctx context.Context, text string, scenes [][]string, entities []string) []ActionTriple {
	if len(scenes) == 0 || len(entities) == 0 {
		return nil
	}

	scenesJSON, _ := json.Marshal(scenes)
	entitiesJSON, _ := json.Marshal(entities)
	prompt := fmt.Sprintf(actionPrompt, text, string(scenesJSON), string(entitiesJSON), taxonomy.ActionsPrompt())

	var raw []any
	if err := a.caller.Call(ctx, prompt, &raw); err != nil {
		slog.Warn("annotate: action resolution failed", "error", err)
		return nil
	}

	var triples []ActionTriple
	for _, v := range raw {
		row, ok := stringTuple(v)
		if !ok || len(row) < 5 {
			continue
		}
		triples = append(triples, ActionTriple{
			Scene:  row[:3],
			Action: row[3],
			Item:   row[4],
		})
	}
	return triples
}

// stringTuple converts a decoded JSON value into a string slice.
// Nulls become empty strings (the Level3-omitted placeholder); any
// other non-string member marks the tuple malformed.
func stringTuple(v any) ([]string, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	tuple := make([]string, 0, len(list))
	for _, e := range list {
		switch s := e.(type) {
		case string:
			tuple = append(tuple, s)
		case nil:
			tuple = append(tuple, "")
		default:
			return nil, false
		}
	}
	return tuple, true
}

// AnnotateParagraph runs the stages for one paragraph in their fixed
// order (scenes, entities, classification, actions) and assembles the
// paragraph record. Stage degradation is not an error; the returned
// error only reports cancellation, and the caller drops just this
// paragraph on it.
func (a *Annotator) AnnotateParagraph(ctx context.Context, ordinal int, text string) (*ParagraphRecord, error) {
	scenes := a.RecognizeScenes(ctx, text, nil)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entities := a.ExtractEntities(ctx, text)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	classified := a.ClassifyEntities(ctx, entities)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	relations := a.ResolveActions(ctx, text, scenes, entities)
	relations = filterByScenes(relations, scenes)

	records := make([]EntityRecord, 0, len(entities))
	for _, item := range entities {
		c := classified[item]
		records = append(records, EntityRecord{Item: item, Level1: c.Level1, Level2: c.Level2})
	}

	return &ParagraphRecord{
		Text:      text,
		Ordinal:   ordinal,
		SceneTags: scenes,
		Entities:  records,
		Relations: relations,
	}, nil
}

// filterByScenes keeps only triples whose scene is a member of the
// paragraph's recognized scene tags. The model is prompted with that
// exact list, so a mismatch means it invented a scenario.
func filterByScenes(triples []ActionTriple, scenes [][]string) []ActionTriple {
	if len(triples) == 0 {
		return triples
	}
	kept := triples[:0]
	for _, t := range triples {
		if sceneMember(t.Scene, scenes) {
			kept = append(kept, t)
		} else {
			slog.Debug("annotate: dropping triple with unrecognized scene",
				"scene", strings.Join(t.Scene, "/"), "item", t.Item)
		}
	}
	return kept
}

// sceneMember reports whether scene matches one of tags. A two-level
// tag matches on its two levels regardless of the triple's Level3
// placeholder; a three-level tag must match all three.
func sceneMember(scene []string, tags [][]string) bool {
	for _, tag := range tags {
		if len(scene) < len(tag) {
			continue
		}
		match := true
		for i := range tag {
			if scene[i] != tag[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
