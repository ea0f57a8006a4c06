package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatchToken(t *testing.T) {
	tests := []struct {
		pattern string
		query   string
		want    bool
	}{
		{"*", "qualquer coisa", true},
		{"WALL:*:*", "WALL:STONE:GRANITE", true},
		{"WALL:STONE:*", "WALL:STONE:GRANITE", true},
		{"WALL:STONE:*", "WALL:WOOD:OAK", false},
		{"FLOOR:*:*", "WALL:STONE:GRANITE", false},
		{"WALL:*", "WALL:STONE:GRANITE", false}, // número de segmentos diverge
		{"WALL:STONE:GRANITE", "WALL:STONE:GRANITE", true},
	}

	for _, tt := range tests {
		got := matchToken(tt.pattern, tt.query)
		if got != tt.want {
			t.Errorf("matchToken(%q, %q) = %v, want %v", tt.pattern, tt.query, got, tt.want)
		}
	}
}

func TestSpecificityScore(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"*", 0},
		{"WALL:*:*", 1},
		{"WALL:STONE:*", 2},
		{"WALL:STONE:GRANITE", 3},
	}

	for _, tt := range tests {
		got := specificityScore(tt.pattern)
		if got != tt.want {
			t.Errorf("specificityScore(%q) = %d, want %d", tt.pattern, got, tt.want)
		}
	}
}

func writeMaterialsJSON(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "materials.json"), []byte(content), 0644); err != nil {
		t.Fatalf("falha ao escrever materials.json: %v", err)
	}
}

func TestLibraryMatchMaisEspecifico(t *testing.T) {
	dir := t.TempDir()
	writeMaterialsJSON(t, dir, `{
		"materials": [
			{"name": "generico", "tokens": ["*"], "base_color": [128, 128, 128, 255]},
			{"name": "pedra", "tokens": ["WALL:STONE:*"], "base_color": [100, 100, 100, 255]},
			{"name": "granito", "tokens": ["WALL:STONE:GRANITE"], "base_color": [80, 80, 90, 255]}
		]
	}`)

	lib, err := NewLibrary(dir)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	if lib.Count() != 3 {
		t.Fatalf("Count = %d, want 3", lib.Count())
	}

	tests := []struct {
		token string
		want  string
	}{
		{"WALL:STONE:GRANITE", "granito"},
		{"WALL:STONE:BASALT", "pedra"},
		{"FLOOR:DIRT:PLAIN", "generico"},
	}
	for _, tt := range tests {
		got := lib.Match(tt.token)
		if got == nil || got.Name() != tt.want {
			t.Errorf("Match(%q) = %v, want %s", tt.token, got, tt.want)
		}
	}
}

func TestLibraryCargaSemTextura(t *testing.T) {
	dir := t.TempDir()
	writeMaterialsJSON(t, dir, `{
		"materials": [
			{"name": "solido", "tokens": ["*"], "base_color": [1, 2, 3, 255], "roughness": 0.5}
		]
	}`)

	lib, err := NewLibrary(dir)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	m := lib.Get("solido")
	if m == nil {
		t.Fatal("material solido não registrado")
	}
	// Sem textura a carga termina sem IO
	if err := m.WaitForLoaded(); err != nil {
		t.Fatalf("WaitForLoaded: %v", err)
	}
	p := m.Params()
	if p.BaseColor != [4]uint8{1, 2, 3, 255} || p.Roughness != 0.5 {
		t.Errorf("params errados: %+v", p)
	}
}

func TestLibraryTexturaAusenteFalha(t *testing.T) {
	dir := t.TempDir()
	writeMaterialsJSON(t, dir, `{
		"materials": [
			{"name": "texturizado", "tokens": ["*"], "base_color": [255, 255, 255, 255], "texture": "nao_existe.png"}
		]
	}`)

	lib, err := NewLibrary(dir)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	m := lib.Get("texturizado")
	if err := m.WaitForLoaded(); err == nil {
		t.Error("WaitForLoaded deveria falhar com textura ausente")
	}
	if m.State() != StateFailed {
		t.Errorf("State = %d, want StateFailed", m.State())
	}
}

func TestLibraryMatchSemCasamento(t *testing.T) {
	dir := t.TempDir()
	writeMaterialsJSON(t, dir, `{
		"materials": [
			{"name": "pedra", "tokens": ["WALL:STONE:*"], "base_color": [100, 100, 100, 255]}
		]
	}`)

	lib, err := NewLibrary(dir)
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	if got := lib.Match("ITEM:TOOL:AXE"); got != nil {
		t.Errorf("Match deveria retornar nil, retornou %s", got.Name())
	}
}

func TestLibraryJSONInvalido(t *testing.T) {
	dir := t.TempDir()
	writeMaterialsJSON(t, dir, `{ isto não é json `)

	if _, err := NewLibrary(dir); err == nil {
		t.Error("NewLibrary deveria falhar com JSON inválido")
	}
}
