package service

import (
	"context"
	"encoding/json"
	"errors"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"skill_insight_backend/internal/model"
	"skill_insight_backend/pkg/logger"
	"skill_insight_backend/pkg/monitoring"
)

const (
	feedWriteWait      = 10 * time.Second
	feedPongWait       = 60 * time.Second
	feedPingPeriod     = (feedPongWait * 9) / 10
	feedMaxMessageSize = 512
	feedShardCount     = 16
	watcherTTL         = 2 * time.Minute // 观察者计数过期时间

	feedChannel           = "feed_channel"
	feedTypeQuickFeedback = "QUICK_FEEDBACK"
)

// 内存复用 (sync.Pool)
var feedMessagePool = sync.Pool{
	New: func() interface{} {
		return &FeedMessage{}
	},
}

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type FeedMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// FeedClient 一条订阅某学习者即时反馈的 WebSocket 连接
// 同一学习者允许多个观察端（仪表盘、IDE 插件）同时在线
type FeedClient struct {
	Hub       *FeedHub
	Conn      *websocket.Conn
	Send      chan []byte
	LearnerID string
	Limiter   *rate.Limiter // 限流器
}

func (c *FeedClient) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(feedMaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(feedPongWait))
	c.Conn.SetPongHandler(func(string) error { c.Conn.SetReadDeadline(time.Now().Add(feedPongWait)); return nil })
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Error("WebSocket unexpected close", zap.Error(err), zap.String("learnerId", c.LearnerID))
			}
			break
		}

		// 订阅通道只收不处理上行内容，限流后仅计数
		if !c.Limiter.Allow() {
			continue
		}

		msg := feedMessagePool.Get().(*FeedMessage)
		*msg = FeedMessage{}
		if err := json.Unmarshal(message, msg); err != nil {
			feedMessagePool.Put(msg)
			continue
		}
		monitoring.FeedMessageCounter.WithLabelValues(msg.Type, "in").Inc()
		feedMessagePool.Put(msg)
	}
}

func (c *FeedClient) writePump() {
	ticker := time.NewTicker(feedPingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if n := len(c.Send); n > 0 {
				for i := 0; i < n; i++ {
					w.Write(<-c.Send)
				}
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

type feedShard struct {
	watchers map[string]map[*FeedClient]bool
	mu       sync.RWMutex
}

// FeedHub 即时反馈推送中枢，经 Redis 发布订阅做多实例扇出
type FeedHub struct {
	shards     [feedShardCount]*feedShard
	register   chan *FeedClient
	unregister chan *FeedClient
	Redis      *redis.Client
	ctx        context.Context
}

func NewFeedHub(rdb *redis.Client) *FeedHub {
	h := &FeedHub{
		register:   make(chan *FeedClient),
		unregister: make(chan *FeedClient),
		Redis:      rdb,
		ctx:        context.Background(),
	}
	for i := 0; i < feedShardCount; i++ {
		h.shards[i] = &feedShard{
			watchers: make(map[string]map[*FeedClient]bool),
		}
	}
	return h
}

func (h *FeedHub) shardFor(learnerID string) *feedShard {
	hash := fnv.New32a()
	hash.Write([]byte(learnerID))
	return h.shards[hash.Sum32()%feedShardCount]
}

type feedEnvelope struct {
	LearnerID string          `json:"learnerId"`
	Payload   json.RawMessage `json:"payload"`
}

func (h *FeedHub) Run() {
	pubsub := h.Redis.Subscribe(h.ctx, feedChannel)
	go func() {
		ch := pubsub.Channel()
		for msg := range ch {
			var env feedEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				logger.Log.Error("PubSub unmarshal error", zap.Error(err))
				continue
			}
			h.pushToLocal(env.LearnerID, env.Payload)
		}
	}()

	// 批量同步观察者计数
	flushTicker := time.NewTicker(500 * time.Millisecond)
	// 计数续期定时器 (Heartbeat)
	heartbeatTicker := time.NewTicker(1 * time.Minute)
	defer func() {
		flushTicker.Stop()
		heartbeatTicker.Stop()
	}()

	type watcherUpdate struct {
		learnerID string
		delta     int64
	}
	var pendingUpdates []watcherUpdate

	for {
		select {
		case client := <-h.register:
			s := h.shardFor(client.LearnerID)
			s.mu.Lock()
			set, ok := s.watchers[client.LearnerID]
			if !ok {
				set = make(map[*FeedClient]bool)
				s.watchers[client.LearnerID] = set
			}
			set[client] = true
			s.mu.Unlock()
			pendingUpdates = append(pendingUpdates, watcherUpdate{client.LearnerID, 1})
			monitoring.FeedOnlineClients.Inc()

		case client := <-h.unregister:
			s := h.shardFor(client.LearnerID)
			s.mu.Lock()
			if set, ok := s.watchers[client.LearnerID]; ok {
				if _, ok := set[client]; ok {
					delete(set, client)
					close(client.Send)
					if len(set) == 0 {
						delete(s.watchers, client.LearnerID)
					}
					monitoring.FeedOnlineClients.Dec()
					pendingUpdates = append(pendingUpdates, watcherUpdate{client.LearnerID, -1})
				}
			}
			s.mu.Unlock()

		case <-heartbeatTicker.C:
			// 为本实例的观察者计数批量续期
			h.refreshWatcherTTL()

		case <-flushTicker.C:
			if len(pendingUpdates) == 0 {
				continue
			}

			pipe := h.Redis.Pipeline()
			for _, update := range pendingUpdates {
				key := watcherKey(update.learnerID)
				pipe.IncrBy(h.ctx, key, update.delta)
				pipe.Expire(h.ctx, key, watcherTTL)
			}
			if _, err := pipe.Exec(h.ctx); err != nil {
				logger.Log.Error("Redis pipeline error", zap.Error(err))
			}
			pendingUpdates = pendingUpdates[:0]
		}
	}
}

// refreshWatcherTTL 刷新本实例所有在线观察者的计数过期时间
func (h *FeedHub) refreshWatcherTTL() {
	pipe := h.Redis.Pipeline()
	count := 0
	for i := 0; i < feedShardCount; i++ {
		s := h.shards[i]
		s.mu.RLock()
		for learnerID := range s.watchers {
			pipe.Expire(h.ctx, watcherKey(learnerID), watcherTTL)
			count++
		}
		s.mu.RUnlock()
	}
	if count > 0 {
		pipe.Exec(h.ctx)
		logger.Log.Debug("Refreshed watcher TTL", zap.Int("count", count))
	}
}

// Publish 向学习者的所有观察端推送即时反馈，无人观察时直接丢弃
func (h *FeedHub) Publish(learnerID string, feedback *model.QuickFeedback) {
	if !h.HasWatchers(learnerID) {
		return
	}

	msg := FeedMessage{Type: feedTypeQuickFeedback, Data: feedback}
	// 避免二次序列化
	msgBytes, _ := json.Marshal(msg)
	payload, _ := json.Marshal(feedEnvelope{
		LearnerID: learnerID,
		Payload:   msgBytes,
	})
	h.Redis.Publish(h.ctx, feedChannel, payload)
	monitoring.FeedMessageCounter.WithLabelValues(msg.Type, "out").Inc()
}

func (h *FeedHub) pushToLocal(learnerID string, payload []byte) {
	s := h.shardFor(learnerID)
	s.mu.RLock()
	for client := range s.watchers[learnerID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
	s.mu.RUnlock()
}

// HasWatchers 本地分片优先，多实例部署时回查 Redis 计数
func (h *FeedHub) HasWatchers(learnerID string) bool {
	s := h.shardFor(learnerID)
	s.mu.RLock()
	local := len(s.watchers[learnerID])
	s.mu.RUnlock()
	if local > 0 {
		return true
	}

	count, err := h.Redis.Get(h.ctx, watcherKey(learnerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		// 计数不可用时宁可多推一次
		return true
	}
	return count > 0
}

// 关闭所有连接并回收观察者计数
func (h *FeedHub) Stop() {
	logger.Log.Info("FeedHub stopping: closing connections and releasing watcher counts...")

	localCounts := make(map[string]int64)
	closed := 0
	for i := 0; i < feedShardCount; i++ {
		s := h.shards[i]
		s.mu.Lock()
		for learnerID, set := range s.watchers {
			for client := range set {
				close(client.Send)
				closed++
			}
			localCounts[learnerID] += int64(len(set))
			delete(s.watchers, learnerID)
		}
		s.mu.Unlock()
	}

	if len(localCounts) > 0 {
		pipe := h.Redis.Pipeline()
		for learnerID, count := range localCounts {
			pipe.DecrBy(h.ctx, watcherKey(learnerID), count)
		}
		pipe.Exec(h.ctx)
	}

	monitoring.FeedOnlineClients.Set(0) // 停机时清空指标
	logger.Log.Info("FeedHub stopped", zap.Int("closedConnections", closed))
}

func watcherKey(learnerID string) string {
	return "feed:watchers:" + learnerID
}

// ServeFeed 把一条已鉴权的 HTTP 连接升级为反馈订阅
func ServeFeed(hub *FeedHub, w http.ResponseWriter, r *http.Request, learnerID string) {
	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("WebSocket upgrade failed", zap.Error(err), zap.String("learnerId", learnerID))
		return
	}
	client := &FeedClient{
		Hub:       hub,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		LearnerID: learnerID,
		Limiter:   rate.NewLimiter(rate.Limit(5), 10), // 每秒5条，允许突发10条
	}
	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}
