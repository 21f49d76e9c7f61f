package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

var (
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
)

func Init() {
	infoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	errorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
	debugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime)
}

// formatKV renders trailing key/value pairs as "key=value" fields.
func formatKV(msg string, keysAndValues ...interface{}) string {
	if len(keysAndValues) == 0 {
		return msg
	}

	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprintf("%v", keysAndValues[i])
		if i+1 < len(keysAndValues) {
			b.WriteString(fmt.Sprintf(" %s=%v", key, keysAndValues[i+1]))
		} else {
			b.WriteString(fmt.Sprintf(" %s=", key))
		}
	}
	return b.String()
}

func Info(msg string, keysAndValues ...interface{}) {
	infoLogger.Println(formatKV(msg, keysAndValues...))
}

func Infof(format string, v ...interface{}) {
	infoLogger.Printf(format, v...)
}

func Error(msg string, keysAndValues ...interface{}) {
	errorLogger.Println(formatKV(msg, keysAndValues...))
}

func Errorf(format string, v ...interface{}) {
	errorLogger.Printf(format, v...)
}

func Debug(msg string, keysAndValues ...interface{}) {
	debugLogger.Println(formatKV(msg, keysAndValues...))
}

func Debugf(format string, v ...interface{}) {
	debugLogger.Printf(format, v...)
}

func Fatalf(format string, v ...interface{}) {
	errorLogger.Fatalf(format, v...)
}
