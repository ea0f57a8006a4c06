package client

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"ModelVision/shared/proto/mvnet"
	"ModelVision/shared/util"
)

// NetworkClient lida com a comunicação com o servidor ModelVision.
// A goroutine de leitura nunca toca a cena: envelopes entram na Inbox e o
// App os aplica na thread principal, preservando o escritor único da cena.
type NetworkClient struct {
	conn      *websocket.Conn
	url       string
	connected bool
	mu        sync.RWMutex

	// Inbox de envelopes recebidos, drenada pelo App a cada frame.
	Inbox *util.ThreadSafeQueue[*mvnet.Envelope]
}

func NewNetworkClient(url string) *NetworkClient {
	return &NetworkClient{
		url:   url,
		Inbox: util.NewThreadSafeQueue[*mvnet.Envelope](),
	}
}

func (c *NetworkClient) Connect() error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	var err error
	maxRetries := 10
	for i := 0; i < maxRetries; i++ {
		log.Printf("[Network] Tentativa de conexão %d/%d em %s...", i+1, maxRetries, c.url)
		c.conn, _, err = dialer.Dial(c.url, nil)
		if err == nil {
			break
		}
		log.Printf("[Network] Servidor ainda não está pronto: %v. Aguardando...", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Printf("[Network] ERRO CRÍTICO após %d tentativas: %v", maxRetries, err)
		return err
	}

	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()

	go c.readLoop()
	return nil
}

func (c *NetworkClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// RequestScene pede o snapshot completo da cena ao servidor.
func (c *NetworkClient) RequestScene(name string) {
	c.Send(mvnet.EnvClientRequestScene, &mvnet.ClientRequestScene{SceneName: name})
}

// Send serializa a mensagem num envelope e envia em um frame binário.
func (c *NetworkClient) Send(msgType mvnet.EnvelopeType, msg interface{ Marshal() []byte }) {
	if !c.IsConnected() {
		return
	}

	data := mvnet.Wrap(msgType, msg)

	c.mu.Lock()
	err := c.conn.WriteMessage(websocket.BinaryMessage, data)
	if err != nil {
		c.connected = false
	}
	c.mu.Unlock()

	if err != nil {
		log.Printf("[Network] Erro ao enviar mensagem: %v", err)
	}
}

func (c *NetworkClient) readLoop() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		if c.conn != nil {
			c.conn.Close()
		}
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("[Network] Conexão perdida: %v", err)
			break
		}

		env := &mvnet.Envelope{}
		if err := env.Unmarshal(message); err != nil {
			log.Printf("[Network] Erro ao desempacotar envelope: %v", err)
			continue
		}

		c.Inbox.Push(env)
	}
}

// Close encerra a conexão.
func (c *NetworkClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	if c.conn != nil {
		c.conn.Close()
	}
}
