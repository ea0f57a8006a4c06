package app

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"ModelVision/shared/proto/mvnet"
	"ModelVision/shared/scene"
)

// connectServer conecta ao servidor e pede a cena inicial. Roda em goroutine
// própria; a cena espelho só é tocada por drainInbox na thread principal.
func (a *App) connectServer() {
	if err := a.netClient.Connect(); err != nil {
		log.Printf("[App] Falha na conexão: %v", err)
		a.statusMsg = "Servidor indisponível"
		return
	}
	a.netClient.RequestScene(a.Config.SceneName)
}

// drainInbox aplica todas as mensagens pendentes do servidor na cena espelho.
func (a *App) drainInbox() {
	for {
		env, ok := a.netClient.Inbox.Pop()
		if !ok {
			return
		}
		a.applyEnvelope(env)
	}
}

func (a *App) applyEnvelope(env *mvnet.Envelope) {
	switch env.Type {
	case mvnet.EnvSceneSnapshot:
		var snap mvnet.SceneSnapshot
		if err := snap.Unmarshal(env.Payload); err != nil {
			log.Printf("[App] Snapshot inválido: %v", err)
			return
		}
		a.applySnapshot(&snap)

	case mvnet.EnvActorUpdate:
		var st mvnet.ActorState
		if err := st.Unmarshal(env.Payload); err != nil {
			log.Printf("[App] Atualização de ator inválida: %v", err)
			return
		}
		a.applyActorState(&st)

	case mvnet.EnvActorRemove:
		var rm mvnet.ActorRemoveMessage
		if err := rm.Unmarshal(env.Payload); err != nil {
			return
		}
		if actor, ok := a.remote[rm.Key]; ok {
			a.mirror.Remove(actor)
			delete(a.remote, rm.Key)
		}

	case mvnet.EnvServerStatus:
		var st mvnet.ServerStatus
		if err := st.Unmarshal(env.Payload); err != nil {
			return
		}
		a.statusMsg = st.Message
		log.Printf("[App] Servidor: %s (cena %q, %d atores)", st.Message, st.SceneName, st.ActorCount)

	case mvnet.EnvPing:
		a.netClient.Send(mvnet.EnvPong, &mvnet.ServerStatus{Message: "pong"})

	default:
		log.Printf("[App] Envelope desconhecido: %d", env.Type)
	}
}

// applySnapshot substitui a cena espelho inteira pela cena do servidor.
func (a *App) applySnapshot(snap *mvnet.SceneSnapshot) {
	log.Printf("[App] Snapshot recebido: cena %q com %d atores", snap.SceneName, len(snap.Actors))

	for key, actor := range a.remote {
		a.mirror.Remove(actor)
		delete(a.remote, key)
	}

	for i := range snap.Actors {
		a.spawnRemote(&snap.Actors[i])
	}

	a.statusMsg = fmt.Sprintf("Cena %q: %d atores", snap.SceneName, len(snap.Actors))
	a.State = StateViewing
}

// applyActorState atualiza um ator existente ou cria um novo.
func (a *App) applyActorState(st *mvnet.ActorState) {
	actor, ok := a.remote[st.Key]
	if !ok {
		a.spawnRemote(st)
		return
	}

	actor.SetEntries(mvnet.RestoreEntries(st, a.lib))
	a.mirror.SetLayer(actor, scene.Layer(st.Layer))
	a.mirror.SetPosition(actor, mgl32.Vec3{st.X, st.Y, st.Z})
}

// spawnRemote materializa um ator vindo do servidor na cena espelho.
// Posição e layer são aplicados antes de habilitar, para que o registro
// já veja o estado final no momento do registro.
func (a *App) spawnRemote(st *mvnet.ActorState) {
	actor := scene.NewModelInstanceActor(st.Name, st.ModelToken)
	actor.SetEntries(mvnet.RestoreEntries(st, a.lib))

	a.mirror.Add(actor)
	a.mirror.SetLayer(actor, scene.Layer(st.Layer))
	a.mirror.SetPosition(actor, mgl32.Vec3{st.X, st.Y, st.Z})
	a.mirror.SetEnabled(actor, true)

	a.remote[st.Key] = actor
}
