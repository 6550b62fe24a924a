package app

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
)

const toastDuration = 4 * time.Second

type toastLevel int

const (
	toastLevelInfo toastLevel = iota
	toastLevelWarning
	toastLevelError
)

type queuedToast struct {
	level   toastLevel
	message string
}

func (m *Model) showInfoToast(message string) {
	m.showToast(toastLevelInfo, message)
}

func (m *Model) showWarningToast(message string) {
	m.showToast(toastLevelWarning, message)
}

func (m *Model) showErrorToast(message string) {
	m.showToast(toastLevelError, message)
}

func (m *Model) showToast(level toastLevel, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	m.status = message
	m.toastText = message
	m.toastLevel = level
	m.toastUntil = m.now().Add(toastDuration)
}

func (m *Model) clearToast() {
	m.toastText = ""
	m.toastLevel = toastLevelInfo
	m.toastUntil = time.Time{}
}

// enqueueStartupToast holds messages raised before the first frame so each
// one gets its full display time.
func (m *Model) enqueueStartupToast(level toastLevel, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	m.startupToasts = append(m.startupToasts, queuedToast{level: level, message: message})
	m.maybeShowNextStartupToast(m.now())
}

func (m *Model) maybeShowNextStartupToast(at time.Time) {
	if len(m.startupToasts) == 0 {
		return
	}
	if m.toastActive(at) {
		return
	}
	next := m.startupToasts[0]
	m.startupToasts = m.startupToasts[1:]
	m.showToast(next.level, next.message)
}

func (m *Model) toastActive(at time.Time) bool {
	if strings.TrimSpace(m.toastText) == "" {
		return false
	}
	if m.toastUntil.IsZero() {
		return true
	}
	return at.Before(m.toastUntil)
}

func (m *Model) handleTick(at time.Time) {
	if m.toastText != "" && !m.toastActive(at) {
		m.clearToast()
	}
	m.maybeShowNextStartupToast(at)
}

func (m *Model) toastPill(width int) string {
	if !m.toastActive(m.now()) || width <= 0 {
		return ""
	}
	text := truncateToWidth(m.toastText, max(1, width-4))
	return m.toastStyle().Render(" " + text + " ")
}

func (m *Model) toastStyle() lipgloss.Style {
	switch m.toastLevel {
	case toastLevelWarning:
		return toastWarningStyle
	case toastLevelError:
		return toastErrorStyle
	default:
		return toastInfoStyle
	}
}
