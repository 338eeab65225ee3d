//go:build cgo

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/orange24122/extraction/annotate"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleParas() []annotate.ParagraphRecord {
	return []annotate.ParagraphRecord{
		{
			Text:      "1. 登录\n收集手机号码。",
			Ordinal:   1,
			SceneTags: [][]string{{"账号管理", "注册登录", "手机号登录"}},
			Entities:  []annotate.EntityRecord{{Item: "手机号码", Level1: "个人基本资料", Level2: "个人联系方式"}},
			Relations: []annotate.ActionTriple{
				{Scene: []string{"账号管理", "注册登录", "手机号登录"}, Action: "收集", Item: "手机号码"},
			},
		},
	}
}

func TestPolicyHashUnknown(t *testing.T) {
	s := newTestStore(t)
	hash, err := s.PolicyHash(context.Background(), "不存在的政策")
	if err != nil {
		t.Fatalf("PolicyHash() error: %v", err)
	}
	if hash != "" {
		t.Fatalf("hash = %q, want empty for unknown policy", hash)
	}
}

func TestSaveResultRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	paras := sampleParas()
	flat := annotate.Flatten("应用甲", paras)

	policyID, err := s.SaveResult(ctx, "应用甲", "hash-1", paras, flat)
	if err != nil {
		t.Fatalf("SaveResult() error: %v", err)
	}

	hash, err := s.PolicyHash(ctx, "应用甲")
	if err != nil {
		t.Fatalf("PolicyHash() error: %v", err)
	}
	if hash != "hash-1" {
		t.Fatalf("hash = %q, want hash-1", hash)
	}

	got, err := s.FlatRecords(ctx, policyID)
	if err != nil {
		t.Fatalf("FlatRecords() error: %v", err)
	}
	if diff := cmp.Diff(flat, got); diff != "" {
		t.Fatalf("FlatRecords() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveResultReplacesPreviousRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	paras := sampleParas()
	first, err := s.SaveResult(ctx, "应用甲", "hash-1", paras, annotate.Flatten("应用甲", paras))
	if err != nil {
		t.Fatalf("first SaveResult() error: %v", err)
	}

	// Second run with different content for the same policy.
	paras[0].Relations = append(paras[0].Relations, annotate.ActionTriple{
		Scene: []string{"账号管理", "注册登录"}, Action: "使用", Item: "手机号码",
	})
	second, err := s.SaveResult(ctx, "应用甲", "hash-2", paras, annotate.Flatten("应用甲", paras))
	if err != nil {
		t.Fatalf("second SaveResult() error: %v", err)
	}
	if first != second {
		t.Fatalf("policy id changed across runs: %d != %d", first, second)
	}

	hash, err := s.PolicyHash(ctx, "应用甲")
	if err != nil {
		t.Fatalf("PolicyHash() error: %v", err)
	}
	if hash != "hash-2" {
		t.Fatalf("hash = %q, want hash-2", hash)
	}

	records, err := s.FlatRecords(ctx, second)
	if err != nil {
		t.Fatalf("FlatRecords() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records after replacement, got %d", len(records))
	}
}

func TestListPolicies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"乙政策", "甲政策"} {
		if _, err := s.SaveResult(ctx, name, "h", sampleParas(), nil); err != nil {
			t.Fatalf("SaveResult(%q) error: %v", name, err)
		}
	}

	policies, err := s.ListPolicies(ctx)
	if err != nil {
		t.Fatalf("ListPolicies() error: %v", err)
	}
	if len(policies) != 2 {
		t.Fatalf("expected 2 policies, got %d", len(policies))
	}
	if policies[0].Name > policies[1].Name {
		t.Fatalf("policies not in name order: %q, %q", policies[0].Name, policies[1].Name)
	}
	if policies[0].ParagraphCount != 1 {
		t.Fatalf("paragraph count = %d, want 1", policies[0].ParagraphCount)
	}
}
