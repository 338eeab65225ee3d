package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeTestTable creates an xlsx file with the given header and rows.
func writeTestTable(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("writing header: %v", err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("writing row %d: %v", i+1, err)
		}
	}
	path := filepath.Join(t.TempDir(), "policies.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving table: %v", err)
	}
	return path
}

func TestLoadTable(t *testing.T) {
	path := writeTestTable(t,
		[]string{"name", "policy"},
		[][]string{
			{"应用甲", "1. 登录\n收集手机号码。"},
			{"应用乙", "一、总则\n说明。"},
		},
	)

	policies, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error: %v", err)
	}
	if len(policies) != 2 {
		t.Fatalf("expected 2 policies, got %d", len(policies))
	}
	if policies[0].Name != "应用甲" || policies[0].Text != "1. 登录\n收集手机号码。" {
		t.Fatalf("first policy = %+v", policies[0])
	}
}

func TestLoadTableSkipsBlankRowsAndNamesDefaults(t *testing.T) {
	path := writeTestTable(t,
		[]string{"name", "policy"},
		[][]string{
			{"应用甲", "正文一。"},
			{"应用乙", "   "},
			{"", "正文三。"},
		},
	)

	policies, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error: %v", err)
	}
	if len(policies) != 2 {
		t.Fatalf("expected 2 policies, got %d: %+v", len(policies), policies)
	}
	// The unnamed row keeps its positional index from the source table.
	if policies[1].Name != "政策_3" {
		t.Fatalf("default name = %q, want 政策_3", policies[1].Name)
	}
}

func TestLoadTableColumnDetection(t *testing.T) {
	// No exact "policy" header; the first header containing a candidate
	// substring wins.
	path := writeTestTable(t,
		[]string{"id", "policy_text"},
		[][]string{{"1", "正文。"}},
	)

	policies, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error: %v", err)
	}
	if len(policies) != 1 || policies[0].Text != "正文。" {
		t.Fatalf("policies = %+v", policies)
	}
}

func TestLoadTableNoPolicyColumn(t *testing.T) {
	path := writeTestTable(t,
		[]string{"id", "title"},
		[][]string{{"1", "无关"}},
	)

	_, err := LoadTable(path)
	if !errors.Is(err, ErrNoPolicyColumn) {
		t.Fatalf("error = %v, want ErrNoPolicyColumn", err)
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadDocumentText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.txt")
	if err := os.WriteFile(path, []byte("1. 登录\n收集手机号码。"), 0o644); err != nil {
		t.Fatalf("writing document: %v", err)
	}

	text, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument() error: %v", err)
	}
	if text != "1. 登录\n收集手机号码。" {
		t.Fatalf("text = %q", text)
	}
}

func TestReadDocumentUnsupported(t *testing.T) {
	_, err := ReadDocument("policy.docx")
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Fatalf("error = %v, want ErrUnsupportedInput", err)
	}
}
