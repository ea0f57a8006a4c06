package util

import (
	"runtime"
	"sync/atomic"
)

// SpinLock provê exclusão mútua por espera ativa.
// Usado nas seções críticas muito curtas do renderer (fila de purga),
// onde o custo de context switch de um Mutex supera o spin.
type SpinLock struct {
	state int32
}

// Lock adquire o bloqueio.
func (s *SpinLock) Lock() {
	for !atomic.CompareAndSwapInt32(&s.state, 0, 1) {
		runtime.Gosched()
	}
}

// Unlock libera o bloqueio.
func (s *SpinLock) Unlock() {
	atomic.StoreInt32(&s.state, 0)
}

// TryLock tenta adquirir o bloqueio sem esperar.
func (s *SpinLock) TryLock() bool {
	return atomic.CompareAndSwapInt32(&s.state, 0, 1)
}
