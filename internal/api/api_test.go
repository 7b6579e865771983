package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"albicon/internal/catalog"
	"albicon/internal/fetch"
)

func newTestRouter(t *testing.T, outputDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png"))
	}))
	t.Cleanup(srv.Close)

	b := catalog.NewBuilder()
	b.AddCSV(`Mule, T2_MOUNT_MULE
Guardian Helmet, HEAD_PLATE_SET3
Cleric Robe, ARMOR_CLOTH_SET2`)

	client := fetch.NewClient(srv.URL+"/v1/item/", 5*time.Second)
	handler := NewHandler(b.Build(), client, nil, outputDir)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func TestGetStatus(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.CatalogSize != 3 {
		t.Errorf("catalogSize = %d, want 3", resp.CatalogSize)
	}
}

func TestSearchItems(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/items?q=mule", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "T2_MOUNT_MULE") {
		t.Errorf("body = %s", w.Body.String())
	}
}

// TestResolveItem 测试解析试算接口
func TestResolveItem(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/resolve?name=Cleric+Robe&tier=6&enchant=1&quality=4", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp ResolveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.Identifier != "T6_ARMOR_CLOTH_SET2@1" {
		t.Errorf("identifier = %s", resp.Identifier)
	}
	if resp.Filename != "Cleric Robe 6.1 Excellent.png" {
		t.Errorf("filename = %s", resp.Filename)
	}
	if !strings.Contains(resp.URL, "quality=4") {
		t.Errorf("url should carry quality param: %s", resp.URL)
	}
}

func TestResolveItem_Errors(t *testing.T) {
	router := newTestRouter(t, t.TempDir())

	// 未知物品
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/resolve?name=Unknown+Thing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown item: status = %d, want 404", w.Code)
	}

	// 缺失等级
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/resolve?name=Guardian+Helmet", nil))
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("tier required: status = %d, want 422", w.Code)
	}

	// 越界参数
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/resolve?name=Mule&quality=9", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("out of range: status = %d, want 400", w.Code)
	}
}

// TestFetchItem 测试单个抓取接口
func TestFetchItem(t *testing.T) {
	outputDir := t.TempDir()
	router := newTestRouter(t, outputDir)

	body := strings.NewReader(`{"name": "Mule"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/fetch", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	if _, err := os.Stat(filepath.Join(outputDir, "Mule 2.png")); err != nil {
		t.Errorf("fetched file missing: %v", err)
	}
}
