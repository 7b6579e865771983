package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "albicon.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestRunLifecycle 测试运行记录的写入与更新
func TestRunLifecycle(t *testing.T) {
	s := newTestStore(t)

	if err := s.BeginRun("run-1", "downloads.txt", 3); err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if err := s.FinishRun("run-1", 2, 1); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	count, err := s.CountRuns()
	if err != nil {
		t.Fatalf("CountRuns failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountRuns = %d, want 1", count)
	}
}

// TestRecordAndListDownloads 测试下载记录写入与查询
func TestRecordAndListDownloads(t *testing.T) {
	s := newTestStore(t)

	records := []*Download{
		{RunID: "run-1", Name: "Mule", Identifier: "T2_MOUNT_MULE", Filename: "Mule 2.png", Quality: 1, Status: StatusOK},
		{RunID: "run-1", Name: "Not A Real Item", Status: StatusResolveFailed, Quality: 1, Error: "unknown item name"},
		{RunID: "run-1", Name: "Bow", Identifier: "T4_2H_BOW", Status: StatusFetchFailed, Quality: 1, Error: "render service returned 404 Not Found"},
	}
	for _, d := range records {
		if err := s.RecordDownload(d); err != nil {
			t.Fatalf("RecordDownload failed: %v", err)
		}
	}

	list, err := s.ListDownloads(10)
	if err != nil {
		t.Fatalf("ListDownloads failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d downloads, want 3", len(list))
	}
	// 倒序: 最新的在前
	if list[0].Name != "Bow" {
		t.Errorf("first record = %s, want Bow", list[0].Name)
	}

	okCount, err := s.CountDownloads(StatusOK)
	if err != nil {
		t.Fatalf("CountDownloads failed: %v", err)
	}
	if okCount != 1 {
		t.Errorf("CountDownloads(ok) = %d, want 1", okCount)
	}

	total, _ := s.CountDownloads("")
	if total != 3 {
		t.Errorf("CountDownloads(all) = %d, want 3", total)
	}
}
