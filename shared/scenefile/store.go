// Package scenefile persiste cenas em SQLite: um arquivo .mv por cena, com
// uma linha por ator e as entries serializadas em GOB.
package scenefile

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/go-gl/mathgl/mgl32"

	"ModelVision/shared/assets"
	"ModelVision/shared/scene"
)

// CurrentFormatVersion marca o esquema atual do arquivo de cena.
const CurrentFormatVersion = 1

// ActorModel representa o esquema do banco para um ator persistido.
type ActorModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex"`
	ModelToken string
	Layer      int32
	Enabled    bool
	PX, PY, PZ float32
	SX, SY, SZ float32
	Entries    []byte    // Entries serializadas em GOB
	UpdatedAt  time.Time // Controle interno do GORM
}

// SceneMetadata armazena informações globais da cena no banco.
type SceneMetadata struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// EntryRecord é a forma persistida de uma ModelInstanceEntry.
// Instâncias virtuais guardam o nome do asset base + a cor resolvida.
type EntryRecord struct {
	MaterialName  string
	Virtual       bool
	Visible       bool
	ShadowsMode   int32
	ReceiveDecals bool
	BaseColor     [4]uint8
}

// Store é o acesso ao arquivo de cena de um único mundo.
type Store struct {
	DB   *gorm.DB
	path string
}

// Open abre (ou cria) o banco SQLite da cena no diretório saves/ e roda as
// migrações.
func Open(sceneName string) (*Store, error) {
	return OpenPath(filepath.Join("saves", fmt.Sprintf("%s.mv", sceneName)), sceneName)
}

// OpenPath abre o banco em um caminho explícito.
func OpenPath(dbPath, sceneName string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	// Logger silencioso em produção
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&ActorModel{}, &SceneMetadata{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}

	s := &Store{DB: db, path: dbPath}

	db.Save(&SceneMetadata{Key: "FormatVersion", Value: fmt.Sprint(CurrentFormatVersion)})
	db.Save(&SceneMetadata{Key: "SceneName", Value: sceneName})

	log.Printf("[SceneFile] Banco de dados SQLite aberto: %s", dbPath)
	return s, nil
}

// Close fecha a conexão com o banco.
func (s *Store) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveActor faz upsert de um único ator (chaveado pelo nome).
func (s *Store) SaveActor(a scene.Actor) error {
	if s.DB == nil {
		return fmt.Errorf("banco de dados não inicializado")
	}

	model, err := captureActor(a)
	if err != nil {
		return err
	}

	var existing ActorModel
	if err := s.DB.First(&existing, "name = ?", a.Name()).Error; err == nil {
		model.ID = existing.ID
	}

	if err := s.DB.Save(model).Error; err != nil {
		log.Printf("[SceneFile] ERRO ao salvar ator %q: %v", a.Name(), err)
		return err
	}
	return nil
}

// SaveScene persiste todos os atores da cena. Atores que saíram da cena
// desde o último save são removidos do banco.
func (s *Store) SaveScene(sc *scene.Scene) error {
	if s.DB == nil {
		return fmt.Errorf("banco de dados não inicializado")
	}

	vivos := make([]string, 0, len(sc.Actors()))
	count := 0
	for _, a := range sc.Actors() {
		vivos = append(vivos, a.Name())
		if err := s.SaveActor(a); err == nil {
			count++
		}
	}

	if len(vivos) > 0 {
		s.DB.Where("name NOT IN ?", vivos).Delete(&ActorModel{})
	} else {
		s.DB.Where("1 = 1").Delete(&ActorModel{})
	}

	log.Printf("[SceneFile] Cena %q salva: %d atores persistidos", sc.Name, count)
	return nil
}

// LoadScene reconstrói a cena inteira a partir do banco, resolvendo os
// materiais na biblioteca dada.
func (s *Store) LoadScene(sceneName string, lib *assets.Library) (*scene.Scene, error) {
	if s.DB == nil {
		return nil, fmt.Errorf("banco de dados não inicializado")
	}

	var models []ActorModel
	if err := s.DB.Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	sc := scene.NewScene(sceneName)
	for i := range models {
		actor, enabled, err := restoreActor(&models[i], lib)
		if err != nil {
			log.Printf("[SceneFile] Ator %q ignorado: %v", models[i].Name, err)
			continue
		}
		sc.Add(actor)
		sc.SetLayer(actor, scene.Layer(models[i].Layer))
		sc.SetPosition(actor, mgl32.Vec3{models[i].PX, models[i].PY, models[i].PZ})
		sc.SetEnabled(actor, enabled)
	}

	log.Printf("[SceneFile] Cena %q carregada: %d atores", sceneName, len(sc.Actors()))
	return sc, nil
}

// captureActor converte um ator da cena para a linha do banco.
func captureActor(a scene.Actor) (*ActorModel, error) {
	pos := a.Position()
	scale := a.Scale()
	model := &ActorModel{
		Name:    a.Name(),
		Layer:   int32(a.Layer()),
		Enabled: a.IsEnabled(),
		PX:      pos.X(),
		PY:      pos.Y(),
		PZ:      pos.Z(),
		SX:      scale.X(),
		SY:      scale.Y(),
		SZ:      scale.Z(),
	}

	mi, ok := a.(*scene.ModelInstanceActor)
	if !ok {
		return model, nil
	}
	model.ModelToken = mi.ModelToken()

	records := make([]EntryRecord, 0, len(mi.Entries()))
	for _, entry := range mi.Entries() {
		rec := EntryRecord{
			Visible:       entry.Visible,
			ShadowsMode:   int32(entry.ShadowsMode),
			ReceiveDecals: entry.ReceiveDecals,
		}
		switch mat := entry.Material.(type) {
		case nil:
		case *assets.MaterialInstance:
			rec.Virtual = true
			rec.MaterialName = mat.Base().Name()
			rec.BaseColor = mat.Params().BaseColor
		default:
			rec.MaterialName = mat.Name()
		}
		records = append(records, rec)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(records); err != nil {
		return nil, fmt.Errorf("falha ao serializar entries: %w", err)
	}
	model.Entries = buf.Bytes()
	return model, nil
}

// restoreActor converte uma linha do banco de volta para um ator.
func restoreActor(model *ActorModel, lib *assets.Library) (scene.Actor, bool, error) {
	if model.ModelToken == "" {
		base := scene.NewActorBase(model.Name)
		base.SetScale(mgl32.Vec3{model.SX, model.SY, model.SZ})
		return base, model.Enabled, nil
	}

	actor := scene.NewModelInstanceActor(model.Name, model.ModelToken)
	actor.SetScale(mgl32.Vec3{model.SX, model.SY, model.SZ})

	var records []EntryRecord
	if len(model.Entries) > 0 {
		if err := gob.NewDecoder(bytes.NewReader(model.Entries)).Decode(&records); err != nil {
			return nil, false, fmt.Errorf("falha ao decodificar entries: %w", err)
		}
	}

	entries := make([]scene.ModelInstanceEntry, 0, len(records))
	for _, rec := range records {
		entry := scene.DefaultEntry()
		entry.Visible = rec.Visible
		entry.ShadowsMode = scene.ShadowsCastingMode(rec.ShadowsMode)
		entry.ReceiveDecals = rec.ReceiveDecals

		var base *assets.MaterialAsset
		if rec.MaterialName != "" {
			base = lib.Get(rec.MaterialName)
		}
		if base == nil {
			base = lib.Fallback()
		}
		if rec.Virtual {
			inst := base.CreateVirtualInstance()
			inst.SetBaseColor(rec.BaseColor)
			entry.Material = inst
		} else {
			entry.Material = base
		}
		entries = append(entries, entry)
	}
	actor.SetEntries(entries)

	return actor, model.Enabled, nil
}
