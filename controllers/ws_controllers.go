package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/campus-eats/canteen-app/models"
	"github.com/campus-eats/canteen-app/notify"
	"github.com/campus-eats/canteen-app/services"
	"github.com/campus-eats/canteen-app/utils"
)

type wsRequest struct {
	Action    string `json:"action"`
	CanteenID uint   `json:"canteen_id"`
}

type wsReply struct {
	CanteenID uint   `json:"canteen_id,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

type WSController struct {
	Hub      *notify.Hub
	Catalog  *services.CatalogService
	Upgrader websocket.Upgrader
}

// NewWSController accepts any origin unless origins lists specific ones.
func NewWSController(hub *notify.Hub, catalog *services.CatalogService, origins []string) *WSController {
	allowed := map[string]struct{}{}
	for _, origin := range origins {
		allowed[origin] = struct{}{}
	}
	_, allowAll := allowed["*"]

	return &WSController{
		Hub:     hub,
		Catalog: catalog,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowAll || len(allowed) == 0 {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// Handle upgrades the request and keeps the session subscribed to the
// caller's user topic plus the canteens it administers.
func (wc *WSController) Handle(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	conn, err := wc.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := notify.NewWSClient(conn, user.ID, user.Role)
	log := utils.InfoLogger.WithFields(logrus.Fields{"client": client.ID(), "user_id": user.ID, "role": user.Role})

	topics := []string{notify.UserTopic(user.ID)}
	wc.Hub.Join(topics[0], client)

	if user.Role == models.RoleCanteenAdmin {
		canteens, err := wc.Catalog.ManagedCanteens(c.Request.Context(), user)
		if err != nil {
			log.WithError(err).Error("failed to load managed canteens")
		}
		for _, canteen := range canteens {
			topic := notify.CanteenTopic(canteen.ID)
			wc.Hub.Join(topic, client)
			topics = append(topics, topic)
		}
	}

	wc.reply(client, notify.EventConnected, "", gin.H{"user_id": user.ID, "role": user.Role, "topics": topics})
	log.WithField("topics", topics).Info("websocket connected")

	client.Serve(func(data []byte) {
		wc.handleMessage(c, user, client, data)
	})

	wc.Hub.LeaveAll(client)
	log.Info("websocket disconnected")
}

func (wc *WSController) handleMessage(c *gin.Context, user models.User, client *notify.WSClient, data []byte) {
	var req wsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		wc.reply(client, notify.EventError, "", wsReply{Code: services.ErrInvalidInput.Code, Message: "malformed message"})
		return
	}

	switch req.Action {
	case "join":
		canteen, err := wc.Catalog.Authorize(c.Request.Context(), user, req.CanteenID)
		if err != nil {
			wc.replyError(client, req.CanteenID, err)
			return
		}
		topic := notify.CanteenTopic(canteen.ID)
		wc.Hub.Join(topic, client)
		wc.reply(client, notify.EventJoined, topic, wsReply{CanteenID: canteen.ID})
	case "leave":
		topic := notify.CanteenTopic(req.CanteenID)
		wc.Hub.Leave(topic, client)
		wc.reply(client, notify.EventLeft, topic, wsReply{CanteenID: req.CanteenID})
	default:
		wc.reply(client, notify.EventError, "", wsReply{Code: services.ErrInvalidInput.Code, Message: "unknown action"})
	}
}

func (wc *WSController) replyError(client *notify.WSClient, canteenID uint, err error) {
	reply := wsReply{CanteenID: canteenID, Code: services.ErrPersistence.Code, Message: services.ErrPersistence.Message}
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		reply.Code = svcErr.Code
		reply.Message = svcErr.Message
	}
	wc.reply(client, notify.EventError, "", reply)
}

func (wc *WSController) reply(client *notify.WSClient, event, topic string, data interface{}) {
	payload, err := notify.Encode(event, topic, data)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("failed to encode websocket reply")
		return
	}
	if err := client.Send(payload); err != nil {
		utils.ErrorLogger.WithField("client", client.ID()).WithError(err).Warn("websocket reply dropped")
	}
}
