package annotate

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/orange24122/extraction/llm"
	"github.com/orange24122/extraction/taxonomy"
)

// scriptedProvider answers each call by matching the user prompt
// against registered substrings, in registration order. Unmatched
// prompts fail the test.
type scriptedProvider struct {
	t       *testing.T
	scripts []script
	calls   int
}

type script struct {
	match string
	reply string
	err   error
}

func (p *scriptedProvider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	p.calls++
	prompt := req.Messages[len(req.Messages)-1].Content
	for _, s := range p.scripts {
		if strings.Contains(prompt, s.match) {
			if s.err != nil {
				return nil, s.err
			}
			return &llm.ChatResponse{Content: s.reply}, nil
		}
	}
	p.t.Fatalf("unscripted prompt: %.120s", prompt)
	return nil, nil
}

// failingProvider fails every call.
type failingProvider struct{ calls int }

func (p *failingProvider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	p.calls++
	return nil, fmt.Errorf("model unavailable")
}

// sequenceProvider replays canned responses in call order.
type sequenceProvider struct {
	t       *testing.T
	replies []string
	calls   int
}

func (p *sequenceProvider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	if p.calls >= len(p.replies) {
		p.t.Fatalf("unexpected call %d, only %d replies scripted", p.calls+1, len(p.replies))
	}
	reply := p.replies[p.calls]
	p.calls++
	return &llm.ChatResponse{Content: reply}, nil
}

func newTestAnnotator(p llm.Provider) *Annotator {
	return New(p, nil, Config{Model: "test-model"})
}

func TestExtractEntities(t *testing.T) {
	p := &scriptedProvider{t: t, scripts: []script{
		{match: "抽取", reply: "```json\n[\"手机号码\", \"昵称\", \"手机号码\", \"  \", 42]\n```\n以上为提取到的数据项。"},
	}}
	a := newTestAnnotator(p)

	got := a.ExtractEntities(context.Background(), "用户使用手机号登录时收集手机号码和昵称。")
	want := []string{"手机号码", "昵称"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ExtractEntities() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractEntitiesFailureYieldsEmpty(t *testing.T) {
	a := newTestAnnotator(&failingProvider{})
	if got := a.ExtractEntities(context.Background(), "文本"); got != nil {
		t.Fatalf("ExtractEntities() = %v, want nil on failure", got)
	}
}

func TestClassifyEntitiesComplete(t *testing.T) {
	p := &scriptedProvider{t: t, scripts: []script{
		{match: "Data Items to Classify", reply: `{
			"姓名": {"一级类别": "个人基本资料", "二级类别": "个人基本资料"},
			"手机号码": {"一级类别": "个人基本资料", "二级类别": "个人联系方式"}
		}`},
	}}
	a := newTestAnnotator(p)

	got := a.ClassifyEntities(context.Background(), []string{"姓名", "手机号码"})
	want := map[string]Classification{
		"姓名":   {Level1: "个人基本资料", Level2: "个人基本资料"},
		"手机号码": {Level1: "个人基本资料", Level2: "个人联系方式"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ClassifyEntities() mismatch (-want +got):\n%s", diff)
	}
	if p.calls != 1 {
		t.Fatalf("complete answer should not retry, got %d calls", p.calls)
	}
}

func TestClassifyEntitiesSentinelsUnresolved(t *testing.T) {
	// Both attempts return the same partial answer: 姓名 resolved,
	// 设备型号 missing. The partial result must be kept and the missing
	// item sentinel-filled, never dropped.
	p := &sequenceProvider{t: t, replies: []string{
		`{"姓名": {"一级类别": "个人基本资料", "二级类别": "个人基本资料"}}`,
		`{"姓名": {"一级类别": "个人基本资料", "二级类别": "个人基本资料"}}`,
	}}
	a := newTestAnnotator(p)

	got := a.ClassifyEntities(context.Background(), []string{"姓名", "设备型号"})
	want := map[string]Classification{
		"姓名":   {Level1: "个人基本资料", Level2: "个人基本资料"},
		"设备型号": {Level1: taxonomy.Unclassified, Level2: taxonomy.Unclassified},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ClassifyEntities() mismatch (-want +got):\n%s", diff)
	}
	if p.calls != 2 {
		t.Fatalf("incomplete answer should retry exactly once, got %d calls", p.calls)
	}
}

func TestClassifyEntitiesTotalFailure(t *testing.T) {
	p := &failingProvider{}
	a := newTestAnnotator(p)

	items := []string{"姓名", "手机号码", "银行卡号"}
	got := a.ClassifyEntities(context.Background(), items)
	if len(got) != len(items) {
		t.Fatalf("expected %d keys, got %d", len(items), len(got))
	}
	for _, item := range items {
		c, ok := got[item]
		if !ok {
			t.Fatalf("item %q missing from result", item)
		}
		if c.Level1 != taxonomy.Unclassified || c.Level2 != taxonomy.Unclassified {
			t.Fatalf("item %q = %+v, want sentinel pair", item, c)
		}
	}
	if p.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", p.calls)
	}
}

func TestClassifyEntitiesEmptyInput(t *testing.T) {
	p := &failingProvider{}
	a := newTestAnnotator(p)

	got := a.ClassifyEntities(context.Background(), nil)
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
	if p.calls != 0 {
		t.Fatalf("empty input must not call the model, got %d calls", p.calls)
	}
}

func TestRecognizeScenes(t *testing.T) {
	p := &scriptedProvider{t: t, scripts: []script{
		{match: "场景标签体系", reply: `[
			["账号管理", "注册登录", "手机号登录"],
			["支付交易", "在线支付"],
			["太深", "层级二", "层级三", "层级四"],
			["只有一层"],
			["混入", 42]
		]`},
	}}
	a := newTestAnnotator(p)

	got := a.RecognizeScenes(context.Background(), "登录与支付说明。", nil)
	want := [][]string{
		{"账号管理", "注册登录", "手机号登录"},
		{"支付交易", "在线支付"},
		{"太深", "层级二", "层级三"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("RecognizeScenes() mismatch (-want +got):\n%s", diff)
	}
}

func TestRecognizeScenesNullLevel3(t *testing.T) {
	p := &scriptedProvider{t: t, scripts: []script{
		{match: "场景标签体系", reply: `[["账号管理", "注册登录", null]]`},
	}}
	a := newTestAnnotator(p)

	got := a.RecognizeScenes(context.Background(), "登录说明。", nil)
	want := [][]string{{"账号管理", "注册登录", ""}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("RecognizeScenes() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveActionsShortCircuits(t *testing.T) {
	p := &failingProvider{}
	a := newTestAnnotator(p)
	ctx := context.Background()

	if got := a.ResolveActions(ctx, "文本", nil, []string{"手机号码"}); got != nil {
		t.Fatalf("expected nil with no scenes, got %v", got)
	}
	if got := a.ResolveActions(ctx, "文本", [][]string{{"账号管理", "注册登录"}}, nil); got != nil {
		t.Fatalf("expected nil with no entities, got %v", got)
	}
	if p.calls != 0 {
		t.Fatalf("short circuit must not call the model, got %d calls", p.calls)
	}
}

func TestResolveActions(t *testing.T) {
	p := &scriptedProvider{t: t, scripts: []script{
		{match: "常见动作词表", reply: `[
			["账号管理", "注册登录", "手机号登录", "收集", "手机号码"],
			["账号管理", "注册登录", null, "使用", "昵称"],
			["支付交易", "在线支付", "收集"],
			"不是数组"
		]`},
	}}
	a := newTestAnnotator(p)

	scenes := [][]string{{"账号管理", "注册登录", "手机号登录"}, {"账号管理", "注册登录"}}
	got := a.ResolveActions(context.Background(), "文本", scenes, []string{"手机号码", "昵称"})
	want := []ActionTriple{
		{Scene: []string{"账号管理", "注册登录", "手机号登录"}, Action: "收集", Item: "手机号码"},
		{Scene: []string{"账号管理", "注册登录", ""}, Action: "使用", Item: "昵称"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ResolveActions() mismatch (-want +got):\n%s", diff)
	}
}

func TestAnnotateParagraph(t *testing.T) {
	p := &scriptedProvider{t: t, scripts: []script{
		{match: "场景标签体系", reply: `[["账号管理", "注册登录", "手机号登录"]]`},
		{match: "抽取", reply: `["手机号码", "昵称"]`},
		{match: "Data Items to Classify", reply: `{
			"手机号码": {"一级类别": "个人基本资料", "二级类别": "个人联系方式"},
			"昵称": {"一级类别": "网络身份标识信息", "二级类别": "个人基本资料"}
		}`},
		{match: "常见动作词表", reply: `[
			["账号管理", "注册登录", "手机号登录", "收集", "手机号码"],
			["支付交易", "在线支付", "", "使用", "银行卡号"]
		]`},
	}}
	a := newTestAnnotator(p)

	rec, err := a.AnnotateParagraph(context.Background(), 3, "1. 登录\n用户使用手机号登录时收集手机号码。")
	if err != nil {
		t.Fatalf("AnnotateParagraph() error: %v", err)
	}
	if rec.Ordinal != 3 {
		t.Fatalf("Ordinal = %d, want 3", rec.Ordinal)
	}
	if len(rec.SceneTags) != 1 {
		t.Fatalf("SceneTags = %v", rec.SceneTags)
	}
	wantEntities := []EntityRecord{
		{Item: "手机号码", Level1: "个人基本资料", Level2: "个人联系方式"},
		{Item: "昵称", Level1: "网络身份标识信息", Level2: "个人基本资料"},
	}
	if diff := cmp.Diff(wantEntities, rec.Entities); diff != "" {
		t.Fatalf("Entities mismatch (-want +got):\n%s", diff)
	}
	// The invented 支付交易 scene is not among the paragraph's tags and
	// its triple must be dropped.
	wantRelations := []ActionTriple{
		{Scene: []string{"账号管理", "注册登录", "手机号登录"}, Action: "收集", Item: "手机号码"},
	}
	if diff := cmp.Diff(wantRelations, rec.Relations); diff != "" {
		t.Fatalf("Relations mismatch (-want +got):\n%s", diff)
	}
}

func TestAnnotateParagraphDegradesToEmpty(t *testing.T) {
	a := newTestAnnotator(&failingProvider{})

	rec, err := a.AnnotateParagraph(context.Background(), 1, "文本")
	if err != nil {
		t.Fatalf("AnnotateParagraph() error: %v", err)
	}
	if len(rec.SceneTags) != 0 || len(rec.Entities) != 0 || len(rec.Relations) != 0 {
		t.Fatalf("expected empty record, got %+v", rec)
	}
	if rec.Text != "文本" || rec.Ordinal != 1 {
		t.Fatalf("record identity fields wrong: %+v", rec)
	}
}

func TestAnnotateParagraphCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestAnnotator(&failingProvider{})
	if _, err := a.AnnotateParagraph(ctx, 1, "文本"); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestSceneMember(t *testing.T) {
	tags := [][]string{
		{"账号管理", "注册登录"},
		{"支付交易", "在线支付", "银行卡支付"},
	}
	tests := []struct {
		name  string
		scene []string
		want  bool
	}{
		{"two-level tag matches regardless of level3", []string{"账号管理", "注册登录", "手机号登录"}, true},
		{"two-level tag matches empty level3", []string{"账号管理", "注册登录", ""}, true},
		{"three-level tag requires all three", []string{"支付交易", "在线支付", "银行卡支付"}, true},
		{"three-level tag rejects wrong level3", []string{"支付交易", "在线支付", "扫码支付"}, false},
		{"unknown scene", []string{"营销推广", "广告推送", ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sceneMember(tt.scene, tags); got != tt.want {
				t.Fatalf("sceneMember(%v) = %v, want %v", tt.scene, got, tt.want)
			}
		})
	}
}
