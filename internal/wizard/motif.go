package wizard

import (
	"strings"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// MotifKind вид выбранного мотива
type MotifKind int

const (
	MotifNone MotifKind = iota
	MotifService
	MotifCustom
)

// Motif причина записи: услуга из каталога либо свой текст, но не оба сразу
type Motif struct {
	kind    MotifKind
	service domain.Service
	text    string
}

func noMotif() Motif {
	return Motif{kind: MotifNone}
}

func serviceMotif(svc domain.Service) Motif {
	return Motif{kind: MotifService, service: svc}
}

func customMotif(text string) Motif {
	return Motif{kind: MotifCustom, text: text}
}

// Kind returns the motif kind
func (m Motif) Kind() MotifKind {
	return m.kind
}

// Service возвращает выбранную услугу
func (m Motif) Service() (domain.Service, bool) {
	return m.service, m.kind == MotifService
}

// CustomText возвращает текст своего мотива
func (m Motif) CustomText() (string, bool) {
	return m.text, m.kind == MotifCustom
}

// IsComplete проверяет, можно ли переходить к календарю
func (m Motif) IsComplete() bool {
	switch m.kind {
	case MotifService:
		return true
	case MotifCustom:
		return strings.TrimSpace(m.text) != ""
	default:
		return false
	}
}

// DurationMinutes длительность записи: длительность услуги или 60 минут для своего мотива
func (m Motif) DurationMinutes() int {
	if m.kind == MotifService {
		return m.service.EffectiveDuration()
	}
	return domain.DefaultBookingDurationMinutes
}
