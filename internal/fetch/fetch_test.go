package fetch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestURL_QualityParam(t *testing.T) {
	t.Parallel()

	c := NewClient("https://render.example.com/v1/item/", 15*time.Second)

	// 品质 1 不携带 quality 参数
	if got := c.URL("T6_ARMOR_CLOTH_SET2@1", 1); got != "https://render.example.com/v1/item/T6_ARMOR_CLOTH_SET2@1.png" {
		t.Errorf("URL = %s", got)
	}
	if got := c.URL("T6_ARMOR_CLOTH_SET2@1", 4); got != "https://render.example.com/v1/item/T6_ARMOR_CLOTH_SET2@1.png?quality=4" {
		t.Errorf("URL = %s", got)
	}
}

// TestDownload 测试抓取并写入本地文件
func TestDownload(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1/item/", 5*time.Second)
	dest := filepath.Join(t.TempDir(), "Mule 2.png")

	if err := c.Download("T2_MOUNT_MULE", 1, dest); err != nil {
		t.Fatalf("Download failed: %v", err)
	}

	if gotPath != "/v1/item/T2_MOUNT_MULE.png" {
		t.Errorf("request path = %s", gotPath)
	}
	if gotQuery != "" {
		t.Errorf("quality 1 should not send query, got %q", gotQuery)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file failed: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("file content = %q", string(data))
	}
}

func TestDownload_QualityQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1/item/", 5*time.Second)
	dest := filepath.Join(t.TempDir(), "out.png")

	if err := c.Download("T4_2H_BOW", 3, dest); err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if gotQuery != "quality=3" {
		t.Errorf("query = %q, want quality=3", gotQuery)
	}
}

func TestFetch_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v1/item/", 5*time.Second)
	if _, err := c.Fetch("T9_NOPE", 1); err == nil {
		t.Fatal("non-2xx response should be an error")
	}
}
