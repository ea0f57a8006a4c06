package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config armazena as configurações do ModelVision.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Servidor de cena (usado pelo Cliente)
	ServerURL string `json:"server_url"`

	// Servidor (host da cena)
	ListenAddr string `json:"listen_addr"`
	SceneName  string `json:"scene_name"`

	// Assets
	MaterialDir string `json:"material_dir"`
	ModelDir    string `json:"model_dir"`

	// Renderização
	DrawDistance float32 `json:"draw_distance"`
	FOV          float32 `json:"fov"`
	LayerMask    uint32  `json:"layer_mask"` // Layers visíveis no viewer

	// Câmera
	CameraSpeed       float32 `json:"camera_speed"`
	CameraSensitivity float32 `json:"camera_sensitivity"`
	ZoomSpeed         float32 `json:"zoom_speed"`

	// Persistência
	AutoSaveSeconds float64 `json:"auto_save_seconds"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
	ShowGrid      bool `json:"show_grid"`
	WireframeMode bool `json:"wireframe_mode"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "ModelVision",
		Fullscreen:   false,
		TargetFPS:    60,

		ServerURL:  "ws://127.0.0.1:8090/ws",
		ListenAddr: ":8090",
		SceneName:  "default",

		MaterialDir: "assets/materials",
		ModelDir:    "assets/models",

		DrawDistance: 500.0,
		FOV:          45.0,
		LayerMask:    0xFFFFFFFF,

		CameraSpeed:       50.0,
		CameraSensitivity: 2.0,
		ZoomSpeed:         10.0,

		AutoSaveSeconds: 60.0,

		ShowDebugInfo: true,
		ShowGrid:      true,
		WireframeMode: false,
	}
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações de um arquivo JSON.
// Se o arquivo não existir, retorna as configurações padrão.
func Load() *Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath())
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return cfg
}

// Save salva as configurações em um arquivo JSON.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(), data, 0644)
}
