package session

import "sync"

// Store хранит сессии по chat_id. Реализации возвращают копию: мутируйте
// и сохраняйте через Put. Сериализация обработчиков по чату - забота
// вызывающего кода.
type Store interface {
	Get(chatID int64) (*Session, error)
	Put(chatID int64, s *Session) error
	Delete(chatID int64) error
}

// MemoryStore - дефолтное хранилище в памяти процесса. Потеря сессий при
// рестарте допустима: пользователь начнёт поток заново.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]Session)}
}

func (m *MemoryStore) Get(chatID int64) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[chatID]
	if !ok {
		return &Session{}, nil
	}
	copied := s
	return &copied, nil
}

func (m *MemoryStore) Put(chatID int64, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = *s
	return nil
}

func (m *MemoryStore) Delete(chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
	return nil
}
