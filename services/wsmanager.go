package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WSConnManager - реестр WebSocket-соединений по пользователям.
// Уведомления доставляются типизированным NotifyEvent, сериализация
// происходит здесь, на границе транспорта.
type WSConnManager struct {
	mu    sync.RWMutex
	users map[int64][]*websocket.Conn
}

func NewWSConnManager() *WSConnManager {
	return &WSConnManager{
		users: make(map[int64][]*websocket.Conn),
	}
}

func (m *WSConnManager) Add(userID int64, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = append(m.users[userID], conn)
}

func (m *WSConnManager) Remove(userID int64, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns := m.users[userID]
	for i, c := range conns {
		if c == conn {
			m.users[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(m.users[userID]) == 0 {
		delete(m.users, userID)
	}
}

// Deliver отправляет уведомление во все соединения пользователя.
// Соединения, в которые не удалось записать, закрываются и выбрасываются
// из реестра, чтобы не копить мертвые подключения.
func (m *WSConnManager) Deliver(event NotifyEvent) error {
	if event.NotifyType == "" {
		event.NotifyType = "info"
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	conns := m.users[event.UserID]
	alive := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			_ = conn.Close()
			continue
		}
		alive = append(alive, conn)
	}
	if len(alive) == 0 {
		delete(m.users, event.UserID)
	} else {
		m.users[event.UserID] = alive
	}
	return nil
}

var GlobalWSConnManager = NewWSConnManager()
