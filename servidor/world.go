package main

import (
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"

	"ModelVision/shared/assets"
	"ModelVision/shared/config"
	pkgutil "ModelVision/shared/pkg/util"
	"ModelVision/shared/proto/mvnet"
	"ModelVision/shared/scene"
	"ModelVision/shared/scenefile"
)

// tickRate é a frequência do loop de simulação do servidor.
const tickRate = 20

// World é o dono exclusivo da cena hospedada. Toda mutação da cena acontece
// no loop run(); as goroutines do websocket só enfileiram pedidos.
type World struct {
	cfg   *config.Config
	store *scenefile.Store
	lib   *assets.Library
	hub   *Hub

	sc   *scene.Scene
	demo bool

	// Eventos do registro são capturados ainda no loop do mundo e
	// entregues ao broadcaster como frames prontos para o wire.
	events *pkgutil.RingBuffer[[]byte]

	snapshots chan *websocket.Conn

	elapsed float32
}

// newWorld carrega (ou semeia) a cena e conecta o registro ao broadcaster.
func newWorld(cfg *config.Config, store *scenefile.Store, lib *assets.Library, hub *Hub, demo bool) (*World, error) {
	sc, err := store.LoadScene(cfg.SceneName, lib)
	if err != nil {
		return nil, err
	}

	w := &World{
		cfg:       cfg,
		store:     store,
		lib:       lib,
		hub:       hub,
		sc:        sc,
		demo:      demo,
		events:    pkgutil.NewRingBuffer[[]byte](4096),
		snapshots: make(chan *websocket.Conn, 16),
	}

	if len(sc.Actors()) == 0 {
		w.seedScene()
	}

	// Handler instalado depois do load: o snapshot inicial cobre o estado
	// pré-existente, os eventos cobrem tudo dali em diante.
	sc.Rendering().SetEventHandler(w.onRenderEvent)

	go w.broadcastLoop()
	return w, nil
}

func (w *World) SceneName() string { return w.sc.Name }

func (w *World) ActorCount() int { return len(w.sc.Actors()) }

// RequestSnapshot agenda o envio de um snapshot completo para o cliente.
func (w *World) RequestSnapshot(conn *websocket.Conn) {
	select {
	case w.snapshots <- conn:
	default:
		log.Printf("[World] Fila de snapshots cheia, pedido descartado")
	}
}

// run é o loop de simulação. Única goroutine que toca a cena.
func (w *World) run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[World] Recuperado de pânico fatal: %v", r)
		}
	}()

	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	autosave := time.NewTicker(time.Duration(w.cfg.AutoSaveSeconds) * time.Second)
	defer autosave.Stop()

	const dt = 1.0 / float32(tickRate)

	for {
		select {
		case <-ticker.C:
			w.elapsed += dt
			if w.demo {
				w.animate()
			}
			w.sc.Update(dt)

		case conn := <-w.snapshots:
			w.sendSnapshot(conn)

		case <-autosave.C:
			if err := w.store.SaveScene(w.sc); err != nil {
				log.Printf("[World] Erro no auto-save: %v", err)
			} else {
				log.Printf("[World] Cena %q salva (%d atores)", w.sc.Name, len(w.sc.Actors()))
			}
		}
	}
}

// onRenderEvent roda no loop do mundo, dentro das mutações da cena. Captura o
// estado do ator imediatamente e enfileira o frame pronto para o broadcaster.
func (w *World) onRenderEvent(e scene.UpdateEvent) {
	var frame []byte
	switch e.Kind {
	case scene.ActorAdded, scene.ActorUpdated:
		st := mvnet.CaptureActor(e.Key, e.Actor)
		frame = mvnet.Wrap(mvnet.EnvActorUpdate, &st)
	case scene.ActorRemoved:
		frame = mvnet.Wrap(mvnet.EnvActorRemove, &mvnet.ActorRemoveMessage{Key: e.Key})
	default:
		return
	}

	if err := w.events.Enqueue(frame); err != nil {
		log.Printf("[World] Buffer de eventos cheio, frame descartado")
	}
}

// broadcastLoop drena o buffer de eventos e repassa ao hub, mantendo a
// latência do websocket fora do loop de simulação.
func (w *World) broadcastLoop() {
	for {
		frame, err := w.events.Dequeue()
		if err != nil {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		w.hub.safeSend(frame)
	}
}

// sendSnapshot serializa a cena inteira para um único cliente.
func (w *World) sendSnapshot(conn *websocket.Conn) {
	snap := mvnet.SceneSnapshot{SceneName: w.sc.Name}
	w.sc.Rendering().ForEach(0xFFFFFFFF, func(key int32, a scene.Renderable) {
		snap.Actors = append(snap.Actors, mvnet.CaptureActor(key, a))
	})

	w.hub.SendMessage(conn, mvnet.EnvSceneSnapshot, &snap)
	log.Printf("[World] Snapshot enviado para %s: %d atores", conn.RemoteAddr(), len(snap.Actors))
}

// material resolve um token na biblioteca, caindo no fallback se nada casar.
func (w *World) material(token string) assets.Material {
	if m := w.lib.Match(token); m != nil {
		return m
	}
	return w.lib.Fallback()
}

// seedScene popula uma cena recém-criada com um cenário mínimo.
func (w *World) seedScene() {
	log.Printf("[World] Cena %q vazia, semeando cenário padrão", w.sc.Name)

	ground := scene.NewModelInstanceActor("chao", "GROUND:PLANE")
	entry := scene.DefaultEntry()
	entry.Material = w.material("STONE:FLOOR")
	ground.SetEntries([]scene.ModelInstanceEntry{entry})
	w.sc.Add(ground)
	w.sc.SetLayer(ground, scene.LayerTerrain)
	w.sc.SetEnabled(ground, true)

	type seed struct {
		name  string
		token string
		mat   string
		pos   mgl32.Vec3
		layer scene.Layer
	}
	seeds := []seed{
		{"cubo-1", "CRATE:CUBE", "WOOD:CRATE", mgl32.Vec3{-4, 0.5, -4}, scene.LayerProps},
		{"cubo-2", "CRATE:CUBE", "WOOD:CRATE", mgl32.Vec3{4, 0.5, -4}, scene.LayerProps},
		{"esfera-1", "ORB:SPHERE", "METAL:ORB", mgl32.Vec3{0, 1, 0}, scene.LayerUnits},
		{"pilar-1", "PILLAR:CYLINDER", "STONE:PILLAR", mgl32.Vec3{-4, 1, 4}, scene.LayerProps},
		{"marcador-1", "MARKER:CONE", "GLOW:MARKER", mgl32.Vec3{4, 0.5, 4}, scene.LayerEffects},
	}

	for _, s := range seeds {
		actor := scene.NewModelInstanceActor(s.name, s.token)
		e := scene.DefaultEntry()
		e.Material = w.material(s.mat)
		actor.SetEntries([]scene.ModelInstanceEntry{e})

		w.sc.Add(actor)
		w.sc.SetLayer(actor, s.layer)
		w.sc.SetPosition(actor, s.pos)
		w.sc.SetEnabled(actor, true)
	}

	if err := w.store.SaveScene(w.sc); err != nil {
		log.Printf("[World] Erro ao persistir cena semeada: %v", err)
	}
}

// animate move os atores da layer Units em círculo, para demonstrar o fluxo
// de atualizações até os viewers.
func (w *World) animate() {
	angle := float64(w.elapsed)

	for i, actor := range w.sc.FindByLayer(scene.LayerUnits) {
		phase := angle + float64(i)*math.Pi/2
		pos := mgl32.Vec3{
			float32(math.Cos(phase)) * 3.0,
			1.0 + 0.5*float32(math.Sin(phase*2)),
			float32(math.Sin(phase)) * 3.0,
		}
		w.sc.SetPosition(actor, pos)
	}
}
