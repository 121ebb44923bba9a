package events

import "context"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// LogPublisher публикует события переходов в лог сервиса
type LogPublisher struct {
	log Logger
}

// NewLogPublisher создает публикатор событий поверх логгера
func NewLogPublisher(log Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish пишет событие в лог
func (p *LogPublisher) Publish(_ context.Context, event Event) {
	p.log.Info("event %s: id=%s appointment=%d mechanic=%d client=%d status %s -> %s",
		event.Type, event.ID, event.AppointmentID, event.MechanicID, event.ClientID,
		event.OldStatus, event.NewStatus)
}
