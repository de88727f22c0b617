package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etodastandetka/bingo/utils"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Task описывает один обратный отсчёт под сообщением с QR.
type Task struct {
	ChatID    int64
	MessageID int
	CreatedAt time.Time
	Duration  time.Duration

	// Edit обновляет подпись сообщения оставшимся временем. Ошибка
	// "not modified" должна гаситься внутри Edit.
	Edit func(remainingSeconds int) error

	// OnExpire вызывается ровно один раз при естественном истечении.
	OnExpire func()
}

// Registry - процессная таблица активных таймеров, ключ chatID_messageID.
// Удаление записи любым вызывающим кодом - сигнал кооперативной отмены;
// цикл проверяет его на каждом тике.
type Registry struct {
	tasks  cmap.ConcurrentMap[string, bool]
	logger *utils.Logger

	// Tick и Now переопределяются в тестах.
	Tick time.Duration
	Now  func() time.Time
}

func NewRegistry(logger *utils.Logger) *Registry {
	return &Registry{
		tasks:  cmap.New[bool](),
		logger: logger,
		Tick:   time.Second,
		Now:    time.Now,
	}
}

func key(chatID int64, messageID int) string {
	return fmt.Sprintf("%d_%d", chatID, messageID)
}

// Start регистрирует задачу и запускает цикл отсчёта.
func (r *Registry) Start(t Task) {
	k := key(t.ChatID, t.MessageID)
	r.tasks.Set(k, true)
	r.logger.Infof("[Timer] Запущен для сообщения %d, чат %d, длительность %s", t.MessageID, t.ChatID, t.Duration)

	go r.run(k, t)
}

func (r *Registry) run(k string, t Task) {
	defer func() {
		r.tasks.Remove(k)
		r.logger.Infof("[Timer] Остановлен для сообщения %d", t.MessageID)
	}()

	for {
		if !r.tasks.Has(k) {
			// Запись удалили - отмена.
			return
		}

		remaining := t.Duration - r.Now().Sub(t.CreatedAt)
		if remaining <= 0 {
			// Показываем 0:00 перед удалением сообщения.
			_ = t.Edit(0)
			r.logger.Infof("[Timer] Истёк для сообщения %d", t.MessageID)
			t.OnExpire()
			return
		}

		if err := t.Edit(int(remaining.Seconds())); err != nil {
			if MessageGone(err) {
				r.logger.Infof("[Timer] Сообщение %d недоступно, останавливаемся: %v", t.MessageID, err)
				return
			}
			r.logger.Warnf("[Timer] Не удалось обновить сообщение %d: %v", t.MessageID, err)
		}

		time.Sleep(r.Tick)
	}
}

// Cancel снимает таймер. Безопасно вызывать для несуществующего ключа.
func (r *Registry) Cancel(chatID int64, messageID int) {
	r.tasks.Remove(key(chatID, messageID))
}

func (r *Registry) Active(chatID int64, messageID int) bool {
	return r.tasks.Has(key(chatID, messageID))
}

func (r *Registry) Count() int {
	return r.tasks.Count()
}

// MessageGone распознаёт ответы Telegram, означающие, что сообщение
// удалено или больше не редактируется.
func MessageGone(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") ||
		strings.Contains(msg, "message to edit not found") ||
		strings.Contains(msg, "message can't be edited")
}
