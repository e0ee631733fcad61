package mexc

import (
	"log"
	"os"
)

// LogLevel은 SDK 로거의 출력 수준을 정의합니다
type LogLevel int

const (
	LogSilent LogLevel = iota
	LogError
	LogWarn
	LogInfo
	LogDebug
)

// ParseLogLevel은 문자열 로그 레벨을 LogLevel로 변환합니다.
// 알 수 없는 값은 기본값인 WARN으로 처리됩니다
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "SILENT":
		return LogSilent
	case "ERROR":
		return LogError
	case "WARN":
		return LogWarn
	case "INFO":
		return LogInfo
	case "DEBUG":
		return LogDebug
	default:
		return LogWarn
	}
}

// Logger는 레벨 제어가 가능한 SDK 로거입니다
type Logger struct {
	level LogLevel
	out   *log.Logger
}

// NewLogger는 지정한 레벨의 로거를 생성합니다
func NewLogger(level LogLevel) *Logger {
	return &Logger{
		level: level,
		out:   log.New(os.Stderr, "", log.Ldate|log.Ltime),
	}
}

// DebugEnabled는 디버그 로그 출력 여부를 반환합니다
func (l *Logger) DebugEnabled() bool {
	return l.level >= LogDebug
}

func (l *Logger) logf(level LogLevel, tag, format string, args ...interface{}) {
	if l == nil || l.level < level {
		return
	}
	l.out.Printf("["+tag+"] "+format, args...)
}

// Debugf는 디버그 메시지를 출력합니다
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LogDebug, "DEBUG", format, args...)
}

// Infof는 정보 메시지를 출력합니다
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LogInfo, "INFO", format, args...)
}

// Warnf는 경고 메시지를 출력합니다
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LogWarn, "WARN", format, args...)
}

// Errorf는 에러 메시지를 출력합니다
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LogError, "ERROR", format, args...)
}
