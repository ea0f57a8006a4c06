package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gorilla/websocket"

	"ModelVision/shared/assets"
	"ModelVision/shared/config"
	"ModelVision/shared/proto/mvnet"
	"ModelVision/shared/scenefile"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub gerencia as conexões WebSocket ativas
type Hub struct {
	clients    map[*websocket.Conn]*sync.Mutex
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]*sync.Mutex),
		broadcast:  make(chan []byte, 4096), // Bufferizado para evitar deadlocks e bloqueios
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *Hub) run() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Hub] Recuperado de pânico fatal: %v", r)
		}
	}()

	for {
		select {
		case client, ok := <-h.register:
			if !ok {
				return
			}
			h.mu.Lock()
			h.clients[client] = &sync.Mutex{}
			h.mu.Unlock()
			log.Printf("Cliente registrado: %s", client.RemoteAddr())
		case client, ok := <-h.unregister:
			if !ok {
				return
			}
			h.mu.Lock()
			if lock, ok := h.clients[client]; ok {
				lock.Lock()
				delete(h.clients, client)
				client.Close()
				lock.Unlock()
				log.Printf("Cliente desregistrado: %s", client.RemoteAddr())
			}
			h.mu.Unlock()
		case message, ok := <-h.broadcast:
			if !ok {
				return
			}
			h.mu.Lock()
			// Criamos uma lista de clientes para iterar fora do lock do hub
			type clientEntry struct {
				conn *websocket.Conn
				lock *sync.Mutex
			}
			var targets []clientEntry
			for c, l := range h.clients {
				targets = append(targets, clientEntry{c, l})
			}
			h.mu.Unlock()

			for _, target := range targets {
				target.lock.Lock()
				err := target.conn.WriteMessage(websocket.BinaryMessage, message)
				if err != nil {
					log.Printf("Erro ao enviar para cliente %s: %v", target.conn.RemoteAddr(), err)
					target.conn.Close()
					h.mu.Lock()
					delete(h.clients, target.conn)
					h.mu.Unlock()
				}
				target.lock.Unlock()
			}
		}
	}
}

// WriteSafe garante que apenas uma goroutine escreva no WebSocket por vez
func (h *Hub) WriteSafe(conn *websocket.Conn, messageType int, data []byte) error {
	h.mu.Lock()
	lock, ok := h.clients[conn]
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("cliente não encontrado no hub")
	}

	lock.Lock()
	defer lock.Unlock()
	return conn.WriteMessage(messageType, data)
}

// safeSend envia para o canal de broadcast protegendo contra pânicos de canal fechado
func (h *Hub) safeSend(data []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Hub] Aviso: Falha ao enviar broadcast (canal fechado?): %v", r)
		}
	}()
	// IMPORTANTE: Não segurar h.mu.Lock() aqui, pois o h.broadcast <- data pode bloquear
	// se o buffer estiver cheio, e o run() precisaria do lock para esvaziar o buffer.
	h.broadcast <- data
}

// SendMessage envelopa e envia uma mensagem para um cliente específico.
func (h *Hub) SendMessage(conn *websocket.Conn, msgType mvnet.EnvelopeType, msg interface{ Marshal() []byte }) {
	if err := h.WriteSafe(conn, websocket.BinaryMessage, mvnet.Wrap(msgType, msg)); err != nil {
		log.Printf("Erro ao enviar mensagem: %v", err)
	}
}

// BroadcastServerStatus envia uma mensagem de status para todos os clientes
func (h *Hub) BroadcastServerStatus(message, sceneName string, actorCount int) {
	msg := &mvnet.ServerStatus{
		Message:    message,
		SceneName:  sceneName,
		ActorCount: int32(actorCount),
	}
	h.safeSend(mvnet.Wrap(mvnet.EnvServerStatus, msg))
}

func main() {
	// Garante que o working directory é o mesmo diretório do executável,
	// para que caminhos relativos (saves/, tmp/) funcionem corretamente.
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		os.Chdir(exeDir)
	}

	demo := flag.Bool("demo", false, "Anima os atores da cena para demonstração")
	sceneName := flag.String("scene", "", "Nome da cena a hospedar")
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lshortfile)

	// Configurar Log em Arquivo para depuração de crash
	if err := os.MkdirAll("tmp", 0755); err == nil {
		logFile, err := os.OpenFile("tmp/server.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			// MultiWriter para logar no console e no arquivo simultaneamente
			mw := io.MultiWriter(os.Stdout, logFile)
			log.SetOutput(mw)
		}
	}
	log.Println("╔══════════════════════════════════════╗")
	log.Println("║     ModelVision SERVER v0.1.0        ║")
	log.Println("╚══════════════════════════════════════╝")

	cfg := config.Load()
	if *sceneName != "" {
		cfg.SceneName = *sceneName
	}

	hub := newHub()
	go hub.run()

	// Biblioteca de materiais compartilhada por todas as cenas hospedadas
	lib, err := assets.NewLibrary(cfg.MaterialDir)
	if err != nil {
		log.Printf("[Startup] Biblioteca de materiais indisponível (%v), usando fallback", err)
		lib = assets.NewEmptyLibrary()
	}
	log.Printf("[Startup] Biblioteca inicializada: %d materiais", lib.Count())

	// Abrir a cena persistida (SQLite)
	store, err := scenefile.Open(cfg.SceneName)
	if err != nil {
		log.Fatalf("Erro fatal: não foi possível abrir a cena %q: %v", cfg.SceneName, err)
	}
	defer store.Close()

	world, err := newWorld(cfg, store, lib, hub, *demo)
	if err != nil {
		log.Fatalf("Erro fatal ao montar o mundo: %v", err)
	}
	go world.run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, world, w, r)
	})

	addr := cfg.ListenAddr
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("╔══════════════════════════════════════════════════════════════╗")
		log.Printf("║ ERRO CRÍTICO: Não foi possível abrir %s.              ║", addr)
		log.Printf("║ Provavelmente há outra instância do servidor rodando.        ║")
		log.Printf("╚══════════════════════════════════════════════════════════════╝")
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}
	ln.Close() // Fecha para o ListenAndServe reabrir

	log.Printf("Servidor ModelVision iniciado em %s (cena %q)", addr, cfg.SceneName)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Erro fatal no servidor HTTP: %v", err)
	}
}

// serveWs maneja requisições websocket do peer.
func serveWs(hub *Hub, world *World, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Erro no upgrade do WebSocket: %v", err)
		return
	}
	hub.register <- conn

	// Enviar status inicial
	status := &mvnet.ServerStatus{
		Message:    "Conectado ao Servidor ModelVision",
		SceneName:  world.SceneName(),
		ActorCount: int32(world.ActorCount()),
	}
	hub.SendMessage(conn, mvnet.EnvServerStatus, status)

	go func() {
		defer func() {
			hub.unregister <- conn
		}()

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("Erro ao ler mensagem: %v", err)
				break
			}

			var envelope mvnet.Envelope
			if err := envelope.Unmarshal(message); err != nil {
				log.Printf("Erro ao desempacotar envelope: %v", err)
				continue
			}

			handleClientMessage(hub, world, conn, &envelope)
		}
	}()
}

func handleClientMessage(hub *Hub, world *World, conn *websocket.Conn, env *mvnet.Envelope) {
	switch env.Type {
	case mvnet.EnvPing:
		hub.SendMessage(conn, mvnet.EnvPong, &mvnet.ServerStatus{Message: "pong"})

	case mvnet.EnvClientRequestScene:
		var req mvnet.ClientRequestScene
		if err := req.Unmarshal(env.Payload); err != nil {
			log.Printf("Erro ao ler RequestScene: %v", err)
			return
		}
		log.Printf("[Network] Cliente %s pediu a cena %q", conn.RemoteAddr(), req.SceneName)
		// O snapshot é montado pelo loop do mundo, dono exclusivo da cena
		world.RequestSnapshot(conn)
	}
}
