package catalog

import "testing"

// TestAddDumpJSON 测试社区数据导出格式的加载
func TestAddDumpJSON(t *testing.T) {
	t.Parallel()

	data := []byte(`[
		{"UniqueName": "T4_2H_BOW", "LocalizedNames": {"EN-US": "Adept's Bow", "ZH-CN": "弓"}},
		{"UniqueName": "T5_HEAD_PLATE_SET3", "LocalizedNames": {"EN-US": "Expert's Guardian Helmet"}},
		{"UniqueName": "T3_MISSING_NAME"},
		{"LocalizedNames": {"EN-US": "No Identifier"}}
	]`)

	b := NewBuilder()
	if err := b.AddDumpJSON(data); err != nil {
		t.Fatalf("AddDumpJSON failed: %v", err)
	}
	cat := b.Build()

	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}
	ident, ok := cat.Lookup("adept's bow")
	if !ok || ident != "T4_2H_BOW" {
		t.Errorf("Adept's Bow = %q (ok=%v), want T4_2H_BOW", ident, ok)
	}
}

func TestAddDumpJSON_WrappedItems(t *testing.T) {
	t.Parallel()

	data := []byte(`{"items": [{"UniqueName": "T2_MOUNT_MULE", "LocalizedNames": {"EN-US": "Mule"}}]}`)

	b := NewBuilder()
	if err := b.AddDumpJSON(data); err != nil {
		t.Fatalf("AddDumpJSON failed: %v", err)
	}
	if b.Build().Len() != 1 {
		t.Fatal("wrapped items array should be accepted")
	}
}

func TestAddDumpJSON_Invalid(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	if err := b.AddDumpJSON([]byte("{broken")); err == nil {
		t.Fatal("invalid json should be rejected")
	}
	if err := b.AddDumpJSON([]byte(`{"foo": 1}`)); err == nil {
		t.Fatal("non-array dump should be rejected")
	}
}
