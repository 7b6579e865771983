package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Render RenderConfig `toml:"render"`
	Data   DataConfig   `toml:"data"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig 渲染服务配置
type RenderConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DataConfig 数据配置
type DataConfig struct {
	InputFile     string   `toml:"input_file"`     // 请求清单文件
	OutputDir     string   `toml:"output_dir"`     // 图标输出目录
	DataDir       string   `toml:"data_dir"`       // 历史数据库目录
	ExtraCatalogs []string `toml:"extra_catalogs"` // 额外物品数据源 (.csv/.xlsx/.json)
}

// ServerConfig 服务模式配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Render: RenderConfig{
			BaseURL:        "https://render.albiononline.com/v1/item/",
			TimeoutSeconds: 15,
		},
		Data: DataConfig{
			InputFile: "downloads.txt",
			OutputDir: "downloads",
			DataDir:   "data",
		},
		Server: ServerConfig{
			Port:    20271,
			DevMode: false,
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 从 config.toml 加载配置
// 配置文件位于可执行文件同目录下；不存在时使用默认配置
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides 环境变量覆盖（用于 E2E / 本地运行）
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("ALBICON_BASE_URL"); v != "" {
		config.Render.BaseURL = v
	}
	if v := os.Getenv("ALBICON_OUTPUT_DIR"); v != "" {
		config.Data.OutputDir = v
	}
	if v := os.Getenv("ALBICON_INPUT_FILE"); v != "" {
		config.Data.InputFile = v
	}
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureOutputDir 确保图标输出目录存在
func EnsureOutputDir(config *AppConfig) (string, error) {
	if err := os.MkdirAll(config.Data.OutputDir, 0755); err != nil {
		return "", err
	}
	return config.Data.OutputDir, nil
}

// HistoryDBPath 历史数据库文件路径
func HistoryDBPath(config *AppConfig) string {
	return filepath.Join(config.Data.DataDir, "albicon.db")
}
