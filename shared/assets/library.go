package assets

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// --- Estruturas JSON ---

// MaterialDef é uma definição de material do materials.json.
// Tokens conectam nomes de slot do formato de cena ao material, com suporte
// a wildcards (*) por segmento.
type MaterialDef struct {
	Name      string    `json:"name"`
	Tokens    []string  `json:"tokens"`
	BaseColor [4]uint8  `json:"base_color"`
	Emissive  *[4]uint8 `json:"emissive,omitempty"`
	Roughness *float32  `json:"roughness,omitempty"`
	Metalness *float32  `json:"metalness,omitempty"`
	Texture   string    `json:"texture,omitempty"`
	Comment   string    `json:"comment,omitempty"`
}

// MaterialConfig é o root do materials.json.
type MaterialConfig struct {
	Materials []MaterialDef `json:"materials"`
}

// --- Library ---

// Library é a biblioteca central de materiais, carregada dos JSONs de
// configuração. Responde às consultas do sistema de cena e do renderer.
type Library struct {
	mu     sync.RWMutex
	root   string
	defs   []MaterialDef
	byName map[string]*MaterialAsset

	fallback *MaterialAsset
}

// NewLibrary cria e carrega a biblioteca a partir do diretório de materiais.
// As definições são lidas sincronamente; as texturas carregam em background.
func NewLibrary(configDir string) (*Library, error) {
	lib := &Library{
		root:     configDir,
		byName:   make(map[string]*MaterialAsset),
		fallback: NewLoadedMaterial("fallback", DefaultParams()),
	}

	data, err := os.ReadFile(filepath.Join(configDir, "materials.json"))
	if err != nil {
		return nil, fmt.Errorf("falha ao ler materials.json: %w", err)
	}
	var conf MaterialConfig
	if err := json.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("falha ao parsear materials.json: %w", err)
	}
	lib.defs = conf.Materials

	for _, def := range lib.defs {
		if _, dup := lib.byName[def.Name]; dup {
			log.Printf("[Assets] Material duplicado ignorado: %s", def.Name)
			continue
		}
		lib.byName[def.Name] = NewMaterialAsset(def.Name, paramsFromDef(def))
	}

	lib.beginLoadAll()

	log.Printf("[Assets] Biblioteca carregada: %d materiais de %s", len(lib.byName), configDir)
	return lib, nil
}

// NewEmptyLibrary cria uma biblioteca sem definições (cenas sem assets em disco).
func NewEmptyLibrary() *Library {
	return &Library{
		byName:   make(map[string]*MaterialAsset),
		fallback: NewLoadedMaterial("fallback", DefaultParams()),
	}
}

func paramsFromDef(def MaterialDef) Params {
	p := DefaultParams()
	p.BaseColor = def.BaseColor
	p.Texture = def.Texture
	if def.Emissive != nil {
		p.Emissive = *def.Emissive
	}
	if def.Roughness != nil {
		p.Roughness = *def.Roughness
	}
	if def.Metalness != nil {
		p.Metalness = *def.Metalness
	}
	return p
}

// beginLoadAll dispara a carga em background de todos os assets.
// Materiais sem textura são apenas parâmetros e carregam imediatamente.
func (l *Library) beginLoadAll() {
	for _, asset := range l.byName {
		if !asset.BeginLoad() {
			continue
		}
		go func(a *MaterialAsset) {
			tex := a.Params().Texture
			if tex == "" {
				a.CompleteLoad(nil)
				return
			}
			// A textura em si sobe para a GPU no renderer; aqui validamos o IO.
			if _, err := os.Stat(filepath.Join(l.root, tex)); err != nil {
				log.Printf("[Assets] Textura ausente para %s: %v", a.Name(), err)
				a.CompleteLoad(err)
				return
			}
			a.CompleteLoad(nil)
		}(asset)
	}
}

// Register insere um asset criado programaticamente na biblioteca.
func (l *Library) Register(a *MaterialAsset) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byName[a.Name()] = a
}

// Get retorna o material pelo nome, ou nil se não existir.
func (l *Library) Get(name string) *MaterialAsset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.byName[name]
}

// Fallback retorna o material branco padrão, sempre carregado.
func (l *Library) Fallback() *MaterialAsset { return l.fallback }

// Count retorna o número de materiais registrados.
func (l *Library) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byName)
}

// Match retorna o material cuja definição casa com o token com maior
// especificidade. Retorna nil se nenhum padrão casar.
func (l *Library) Match(token string) *MaterialAsset {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var bestName string
	bestScore := -1

	for i := range l.defs {
		def := &l.defs[i]
		for _, pat := range def.Tokens {
			if matchToken(pat, token) {
				score := specificityScore(pat)
				if score > bestScore {
					bestScore = score
					bestName = def.Name
				}
			}
		}
	}
	if bestScore < 0 {
		return nil
	}
	return l.byName[bestName]
}

// --- Wildcard Matching ---

// matchToken compara um token de consulta contra um padrão com wildcards (*).
// Formato do token: "CATEGORIA:TIPO:VARIANTE" (segmentos separados por ':').
// O wildcard '*' em qualquer segmento aceita qualquer valor.
func matchToken(pattern, query string) bool {
	if pattern == "*" {
		return true
	}

	patParts := strings.Split(pattern, ":")
	queryParts := strings.Split(query, ":")

	if len(patParts) != len(queryParts) {
		return false
	}

	for i := range patParts {
		if patParts[i] == "*" {
			continue
		}
		if patParts[i] != queryParts[i] {
			return false
		}
	}
	return true
}

// specificityScore calcula a "especificidade" de um padrão.
// Quanto mais segmentos NÃO são wildcard, mais específico é.
func specificityScore(pattern string) int {
	if pattern == "*" {
		return 0
	}
	parts := strings.Split(pattern, ":")
	score := 0
	for _, p := range parts {
		if p != "*" {
			score++
		}
	}
	return score
}
