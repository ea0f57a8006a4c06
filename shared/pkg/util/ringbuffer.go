package util

import (
	"errors"
	"sync/atomic"
)

// ErrBufferCheio é retornado por Enqueue quando o buffer está na capacidade máxima.
var ErrBufferCheio = errors.New("buffer circular cheio")

// ErrBufferVazio é retornado por Dequeue quando não há itens pendentes.
var ErrBufferVazio = errors.New("buffer circular vazio")

// RingBuffer é um buffer circular SPSC (um produtor, um consumidor) sem locks.
// O registro de cena produz eventos de update na thread do jogo e o
// broadcaster do servidor consome em outra goroutine; como cada lado toca
// apenas o próprio cursor, basta aritmética atômica.
type RingBuffer[T any] struct {
	entries    []T
	mask       uint64
	producerID uint64
	consumerID uint64
}

// NewRingBuffer cria um buffer circular com a capacidade dada
// (arredondada para a próxima potência de 2).
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	actualCap := nextPowerOfTwo(capacity)
	return &RingBuffer[T]{
		entries: make([]T, actualCap),
		mask:    uint64(actualCap - 1),
	}
}

// Enqueue adiciona um item. Retorna ErrBufferCheio se o consumidor estiver atrasado.
func (r *RingBuffer[T]) Enqueue(item T) error {
	next := atomic.LoadUint64(&r.producerID)
	consumer := atomic.LoadUint64(&r.consumerID)

	if next-consumer >= uint64(len(r.entries)) {
		return ErrBufferCheio
	}

	r.entries[next&r.mask] = item
	atomic.AddUint64(&r.producerID, 1)
	return nil
}

// Dequeue remove e retorna o item mais antigo. Retorna ErrBufferVazio se não houver.
func (r *RingBuffer[T]) Dequeue() (T, error) {
	var zero T
	consumer := atomic.LoadUint64(&r.consumerID)
	producer := atomic.LoadUint64(&r.producerID)

	if consumer >= producer {
		return zero, ErrBufferVazio
	}

	item := r.entries[consumer&r.mask]
	r.entries[consumer&r.mask] = zero
	atomic.AddUint64(&r.consumerID, 1)
	return item, nil
}

// Len retorna o número de itens pendentes (aproximado sob concorrência).
func (r *RingBuffer[T]) Len() int {
	producer := atomic.LoadUint64(&r.producerID)
	consumer := atomic.LoadUint64(&r.consumerID)
	return int(producer - consumer)
}

func nextPowerOfTwo(x int) int {
	res := 2
	for res < x {
		res <<= 1
	}
	return res
}
