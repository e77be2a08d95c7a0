package service

import "sync"

// BattleLocks serializes turn submissions per battle. A second submission
// arriving while the first still resolves must be rejected, not queued,
// so this is a try-lock rather than a blocking mutex.
type BattleLocks struct {
	mu     sync.Mutex
	locked map[uint]bool
}

func NewBattleLocks() *BattleLocks {
	return &BattleLocks{locked: make(map[uint]bool)}
}

// TryLock acquires the lock for a battle, reporting false when another
// turn is already being resolved for it.
func (l *BattleLocks) TryLock(battleID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked[battleID] {
		return false
	}
	l.locked[battleID] = true
	return true
}

func (l *BattleLocks) Unlock(battleID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locked, battleID)
}
