package handlers

import (
	"log"
	"net/http"

	"gather/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSNotifications - WebSocket endpoint для уведомлений
// (заявки в друзья, принятия, участие в событиях)
func WSNotifications(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	services.GlobalWSConnManager.Add(userID, conn)
	defer services.GlobalWSConnManager.Remove(userID, conn)

	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"connected","message":"WebSocket connected"}`))

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
		// Входящие сообщения от клиента не обрабатываются
	}
}
