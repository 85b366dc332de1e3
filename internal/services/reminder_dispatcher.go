package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ReminderUserSource lists the users the dispatcher walks on each tick.
type ReminderUserSource interface {
	ListUserIDs() ([]uint, error)
}

// ReminderDispatcher delivers due notification-schedule entries over a
// Telegram bot. Delivery is best effort: a failed send is logged and retried
// on the next tick, a sent reminder is deduplicated per day in memory.
type ReminderDispatcher struct {
	users    ReminderUserSource
	tracker  *TrackerService
	botToken string
	chatID   string
	enabled  bool
	interval time.Duration
	location *time.Location
	client   *http.Client

	mu            sync.Mutex
	sentReminders map[string]time.Time
}

func NewReminderDispatcher(users ReminderUserSource, tracker *TrackerService, botToken string, chatID string, interval time.Duration, location *time.Location) *ReminderDispatcher {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	if location == nil {
		location = time.UTC
	}
	return &ReminderDispatcher{
		users:    users,
		tracker:  tracker,
		botToken: botToken,
		chatID:   chatID,
		enabled:  botToken != "" && chatID != "",
		interval: interval,
		location: location,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
		sentReminders: make(map[string]time.Time),
	}
}

func (dispatcher *ReminderDispatcher) Start(ctx context.Context) {
	if !dispatcher.enabled {
		return
	}

	ticker := time.NewTicker(dispatcher.interval)
	go func() {
		defer ticker.Stop()

		dispatcher.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dispatcher.run(ctx)
			}
		}
	}()
}

func (dispatcher *ReminderDispatcher) run(ctx context.Context) {
	userIDs, err := dispatcher.users.ListUserIDs()
	if err != nil {
		log.Printf("reminders: list users failed: %v", err)
		return
	}

	today := DateAtLocation(time.Now(), dispatcher.location)
	for _, userID := range userIDs {
		entries, err := dispatcher.tracker.NotificationSchedule(userID)
		if err != nil {
			log.Printf("reminders: build schedule failed for user %d: %v", userID, err)
			continue
		}

		for _, entry := range entries {
			if !entry.Date.Equal(today) {
				continue
			}

			key := fmt.Sprintf("reminder:%d:%d:%s", userID, entry.DaysBefore, today.Format("2006-01-02"))
			if !dispatcher.shouldSend(key, today) {
				continue
			}
			if err := dispatcher.sendTelegram(ctx, entry.Message); err != nil {
				log.Printf("reminders: send failed for user %d: %v", userID, err)
			}
		}
	}
}

func (dispatcher *ReminderDispatcher) shouldSend(key string, today time.Time) bool {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()

	if sentOn, ok := dispatcher.sentReminders[key]; ok && sentOn.Equal(today) {
		return false
	}

	dispatcher.sentReminders[key] = today
	if len(dispatcher.sentReminders) > 500 {
		dispatcher.sentReminders = make(map[string]time.Time)
	}
	return true
}

func (dispatcher *ReminderDispatcher) sendTelegram(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", dispatcher.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", dispatcher.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := dispatcher.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
