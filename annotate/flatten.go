package annotate

// FlatRecord is one denormalized output row: an action triple joined
// with its owning policy, paragraph ordinal and item classification.
type FlatRecord struct {
	PolicyName  string `json:"隐私政策名称"`
	Ordinal     int    `json:"段号"`
	Item        string `json:"数据项"`
	Level1      string `json:"一级类别"`
	Level2      string `json:"二级类别"`
	SceneLevel1 string `json:"使用场景层级一"`
	SceneLevel2 string `json:"使用场景层级二"`
	SceneLevel3 string `json:"使用场景层级三"`
	Action      string `json:"动作"`
}

// Flatten expands paragraph records into one row per action triple,
// in paragraph order and then triple order. A triple referencing a
// data item absent from its paragraph's entity list gets empty
// category fields rather than being dropped or raising.
func Flatten(policyName string, paras []ParagraphRecord) []FlatRecord {
	var flat []FlatRecord
	for _, para := range paras {
		byItem := make(map[string]EntityRecord, len(para.Entities))
		for _, e := range para.Entities {
			byItem[e.Item] = e
		}
		for _, rel := range para.Relations {
			entity := byItem[rel.Item] // zero value when absent
			flat = append(flat, FlatRecord{
				PolicyName:  policyName,
				Ordinal:     para.Ordinal,
				Item:        rel.Item,
				Level1:      entity.Level1,
				Level2:      entity.Level2,
				SceneLevel1: sceneLevel(rel.Scene, 0),
				SceneLevel2: sceneLevel(rel.Scene, 1),
				SceneLevel3: sceneLevel(rel.Scene, 2),
				Action:      rel.Action,
			})
		}
	}
	return flat
}

// sceneLevel returns scene[i] or "" when the tuple is shorter.
func sceneLevel(scene []string, i int) string {
	if i >= len(scene) {
		return ""
	}
	return scene[i]
}
