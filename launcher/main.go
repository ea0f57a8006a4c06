package main

import (
	"fmt"
	"log"
	"net"
	"os/exec"
	"path/filepath"
	"time"
)

// serverAddr deve casar com o listen_addr do config do servidor.
const serverAddr = "127.0.0.1:8090"

func main() {
	fmt.Println("╔══════════════════════════════════════╗")
	fmt.Println("║       ModelVision Launcher           ║")
	fmt.Println("╚══════════════════════════════════════╝")

	// 1. Iniciar o Servidor em uma nova janela (necessário para ver os logs)
	fmt.Println("[1/2] Iniciando Servidor...")
	serverCmd := exec.Command("cmd", "/c", "start", "ModelVision SERVER", "server.exe")
	serverCmd.Dir = "servidor"
	if err := serverCmd.Run(); err != nil {
		log.Fatalf("Erro ao iniciar servidor: %v", err)
	}

	// 2. Aguardar a porta do servidor abrir, com limite de tempo
	fmt.Println("Aguardando o servidor aceitar conexões...")
	if !waitForServer(serverAddr, 15*time.Second) {
		fmt.Println("Aviso: servidor ainda não respondeu, abrindo o cliente mesmo assim.")
	}

	// 3. Iniciar o Cliente silenciosamente (App GUI não precisa de CMD)
	fmt.Println("[2/2] Abrindo Cliente...")

	// Obter caminho absoluto para garantir que o Windows encontre o arquivo
	absClientPath, err := filepath.Abs("cliente/client.exe")
	if err != nil {
		log.Fatalf("Erro ao resolver caminho do cliente: %v", err)
	}

	clientCmd := exec.Command(absClientPath)
	clientCmd.Dir = "cliente" // Define o diretório de trabalho para carregar recursos (assets, etc)

	if err := clientCmd.Start(); err != nil {
		fmt.Printf("ERRO CRÍTICO: Não foi possível executar o cliente em %s\n", absClientPath)
		fmt.Printf("Detalhes: %v\n", err)
		fmt.Println("Pressione Enter para sair...")
		fmt.Scanln()
		return
	}

	fmt.Println("\nSucesso! ModelVision foi iniciado.")
	fmt.Println("O Launcher fechará automaticamente em 2 segundos...")
	time.Sleep(2 * time.Second)
}

// waitForServer tenta conectar na porta TCP do servidor até o prazo estourar.
func waitForServer(addr string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
		if err == nil {
			conn.Close()
			return true
		}
		time.Sleep(300 * time.Millisecond)
	}
	return false
}
