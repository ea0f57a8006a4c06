package util

import "sync"

// DirtyQueue é uma fila thread-safe de chaves únicas.
// Usada para acumular atores "sujos" (que mudaram de material/layer) até o
// renderer processar o lote no próximo frame. Enfileirar uma chave que já
// está pendente é um no-op, então N updates no mesmo frame viram um só rebuild.
type DirtyQueue[K comparable] struct {
	mu      sync.Mutex
	keys    []K
	present map[K]bool
}

// NewDirtyQueue cria uma fila de chaves únicas vazia.
func NewDirtyQueue[K comparable]() *DirtyQueue[K] {
	return &DirtyQueue[K]{
		keys:    make([]K, 0, 64),
		present: make(map[K]bool),
	}
}

// Push adiciona a chave se ainda não estiver pendente.
// Retorna true se a chave era nova.
func (q *DirtyQueue[K]) Push(key K) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.present[key] {
		return false
	}
	q.keys = append(q.keys, key)
	q.present[key] = true
	return true
}

// Pop remove e retorna a primeira chave pendente.
// Retorna false se a fila estiver vazia.
func (q *DirtyQueue[K]) Pop() (K, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.keys) == 0 {
		var zero K
		return zero, false
	}
	k := q.keys[0]
	q.keys = q.keys[1:]
	delete(q.present, k)
	return k, true
}

// Drain remove todas as chaves pendentes de uma vez e devolve o lote.
func (q *DirtyQueue[K]) Drain() []K {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.keys) == 0 {
		return nil
	}
	batch := make([]K, len(q.keys))
	copy(batch, q.keys)
	q.keys = q.keys[:0]
	q.present = make(map[K]bool)
	return batch
}

// Contains verifica se uma chave está pendente.
func (q *DirtyQueue[K]) Contains(key K) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.present[key]
}

// Len retorna o número de chaves pendentes.
func (q *DirtyQueue[K]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.keys)
}

// ThreadSafeQueue é uma fila FIFO simples thread-safe (sem unicidade).
// Usada como outbox de mensagens de rede.
type ThreadSafeQueue[T any] struct {
	mu    sync.Mutex
	items []T
}

// NewThreadSafeQueue cria uma nova fila thread-safe.
func NewThreadSafeQueue[T any]() *ThreadSafeQueue[T] {
	return &ThreadSafeQueue[T]{
		items: make([]T, 0, 64),
	}
}

// Push adiciona um item ao fim da fila.
func (q *ThreadSafeQueue[T]) Push(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, item)
}

// Pop remove e retorna o primeiro item. Retorna false se vazia.
func (q *ThreadSafeQueue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Len retorna o tamanho da fila.
func (q *ThreadSafeQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
