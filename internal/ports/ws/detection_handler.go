package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"crop-survey-system/internal/application"
	"crop-survey-system/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // В продакшені тут має бути перевірка походження запиту
	},
}

// DetectionHandler обробляє WebSocket з'єднання з дроном під час польоту:
// приймає результати розпізнавання та кадри зйомки
type DetectionHandler struct {
	detectionService *application.DetectionService
	fieldService     *application.FieldService
	connections      map[uuid.UUID]*websocket.Conn
	connectionsMu    sync.Mutex
}

// NewDetectionHandler створює новий DetectionHandler
func NewDetectionHandler(
	detectionService *application.DetectionService,
	fieldService *application.FieldService,
) *DetectionHandler {
	return &DetectionHandler{
		detectionService: detectionService,
		fieldService:     fieldService,
		connections:      make(map[uuid.UUID]*websocket.Conn),
	}
}

// HandleConnection оброблює WebSocket з'єднання
func (h *DetectionHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	// Аутентифікація: токен містить ID поля, над яким летить дрон
	fieldID, err := authenticateField(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Поле має існувати до відкриття з'єднання
	ctx := r.Context()
	if _, err := h.fieldService.GetField(ctx, fieldID); err != nil {
		http.Error(w, "Unknown field", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading connection: %v", err)
		return
	}

	// Реєстрація з'єднання
	h.connectionsMu.Lock()
	h.connections[fieldID] = conn
	h.connectionsMu.Unlock()

	// Цикл читання працює в горутині самого запиту: контекст запиту
	// живе до закриття з'єднання, тож збереження виявлень і кадрів
	// не обривається скасуванням.
	h.handleMessages(ctx, fieldID, conn)
}

// handleMessages обробляє повідомлення від дрона
func (h *DetectionHandler) handleMessages(ctx context.Context, fieldID uuid.UUID, conn *websocket.Conn) {
	defer func() {
		conn.Close()

		h.connectionsMu.Lock()
		delete(h.connections, fieldID)
		h.connectionsMu.Unlock()
	}()

	// Налаштування ping/pong для підтримки з'єднання
	conn.SetPingHandler(func(string) error {
		if err := conn.WriteControl(websocket.PongMessage, []byte{}, time.Now().Add(time.Second)); err != nil {
			return err
		}
		return nil
	})

	// Цикл обробки повідомлень
	for {
		messageType, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch messageType {
		case websocket.BinaryMessage:
			h.handleFrameMessage(ctx, fieldID, p)
		case websocket.TextMessage:
			h.handleTextMessage(ctx, fieldID, p)
		}
	}
}

// handleFrameMessage зберігає бінарний кадр зйомки як медіафайл поля
func (h *DetectionHandler) handleFrameMessage(ctx context.Context, fieldID uuid.UUID, data []byte) {
	if len(data) == 0 {
		log.Printf("Empty frame message from field %s", fieldID)
		return
	}

	filename := fmt.Sprintf("frame_%d.jpg", time.Now().UnixMilli())
	objectKey, err := h.fieldService.SaveMedia(ctx, fieldID, filename, "image/jpeg", bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("Error saving frame: %v", err)
		return
	}

	h.sendMessage(fieldID, map[string]interface{}{
		"type":       "frame_ack",
		"object_key": objectKey,
	})
}

// handleTextMessage обробляє текстові повідомлення у форматі JSON
func (h *DetectionHandler) handleTextMessage(ctx context.Context, fieldID uuid.UUID, data []byte) {
	var envelope struct {
		Type       string              `json:"type"`
		Detection  *domain.Detection   `json:"detection"`
		Detections []*domain.Detection `json:"detections"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		log.Printf("Error unmarshaling JSON: %v", err)
		return
	}

	switch envelope.Type {
	case "heartbeat":
		h.handleHeartbeat(fieldID)

	case "detection":
		if envelope.Detection == nil {
			log.Printf("Detection message without payload")
			return
		}
		envelope.Detection.FieldID = fieldID
		if err := h.detectionService.Ingest(ctx, envelope.Detection); err != nil {
			log.Printf("Error ingesting detection: %v", err)
		}

	case "detection_batch":
		for _, detection := range envelope.Detections {
			detection.FieldID = fieldID
		}
		if err := h.detectionService.IngestBatch(ctx, envelope.Detections); err != nil {
			log.Printf("Error ingesting detection batch: %v", err)
		}

	default:
		log.Printf("Unknown message type: %s", envelope.Type)
	}
}

// authenticateField аутентифікує дрон за токеном у запиті
func authenticateField(r *http.Request) (uuid.UUID, error) {
	token := r.URL.Query().Get("token")
	if token == "" {
		return uuid.Nil, errors.New("missing authentication token")
	}

	// В реальності тут має бути перевірка токена у базі даних або через JWT
	// Для прикладу просто використаємо токен як ID поля
	return uuid.Parse(token)
}

func (h *DetectionHandler) handleHeartbeat(fieldID uuid.UUID) {
	response := map[string]interface{}{
		"type": "heartbeat_ack",
		"time": time.Now().Unix(),
	}

	h.sendMessage(fieldID, response)
}

// sendMessage відправляє повідомлення дрону
func (h *DetectionHandler) sendMessage(fieldID uuid.UUID, message interface{}) {
	h.connectionsMu.Lock()
	conn, exists := h.connections[fieldID]
	h.connectionsMu.Unlock()

	if !exists {
		log.Printf("Field %s not connected", fieldID)
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
