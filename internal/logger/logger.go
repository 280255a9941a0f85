package logger

import (
	"github.com/sirupsen/logrus"
)

// Log — общий структурированный логгер приложения.
// JSON формат по умолчанию, текстовый включается для development.
var Log *logrus.Logger

// Init инициализирует логгер с заданным уровнем.
// Нераспознанный уровень не считается ошибкой: берётся info.
func Init(level string) {
	Log = logrus.New()
	Log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		Log.WithField("level", level).Warn("logger: неизвестный уровень, используется info")
	}
	Log.SetLevel(lvl)
}

// SetTextFormatter переключает логгер на читаемый текстовый формат.
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}
