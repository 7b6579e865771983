package fetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Client 渲染服务抓取客户端
// 每次抓取为一次阻塞的 GET，超时由客户端统一持有
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient 创建抓取客户端
// baseURL 形如 https://render.albiononline.com/v1/item/
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// URL 构造资源请求地址
// 品质 1 为默认渲染，不携带 quality 查询参数
func (c *Client) URL(identifier string, quality int) string {
	u := c.baseURL + url.PathEscape(identifier) + ".png"
	if quality > 1 {
		u += fmt.Sprintf("?quality=%d", quality)
	}
	return u
}

// Fetch 抓取图标并返回原始字节
func (c *Client) Fetch(identifier string, quality int) ([]byte, error) {
	resp, err := c.http.Get(c.URL(identifier, quality))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch icon: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("render service returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

// Download 抓取图标并写入本地文件
func (c *Client) Download(identifier string, quality int, destPath string) error {
	data, err := c.Fetch(identifier, quality)
	if err != nil {
		return err
	}
	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write icon file: %w", err)
	}
	return nil
}
