package util

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
)

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogAtlas | LogText | LogOpenGL | LogTextures | LogIO | LogSystem

// LogLevel orders messages by verbosity. A message is written when its level
// is at or below GLOBAL_LOG_LEVEL.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARN"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

type LogCategory int

const (
	LogAtlas LogCategory = 1 << iota
	LogText
	LogSystem
	LogOpenGL
	LogIO
	LogTextures
)

func (c LogCategory) String() string {
	switch c {
	case LogAtlas:
		return "atlas"
	case LogText:
		return "text"
	case LogSystem:
		return "system"
	case LogOpenGL:
		return "gl"
	case LogIO:
		return "io"
	case LogTextures:
		return "textures"
	}
	return fmt.Sprintf("LogCategory(%d)", int(c))
}

var logger = stdlog.New(os.Stderr, "", stdlog.LstdFlags)

// SetLogOutput redirects all log output, e.g. to a file or io.Discard.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	logger.Printf("[%s] %s: %s", lvl, cat, txt)
}

func LogAtlasInfo(txt string) {
	log(LogAtlas, LogLevelInfo, txt)
}

func LogAtlasError(txt string) {
	log(LogAtlas, LogLevelError, txt)
}

func LogTextWarning(txt string) {
	log(LogText, LogLevelWarning, txt)
}

func LogTextError(txt string) {
	log(LogText, LogLevelError, txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}

func LogSystemError(txt string) {
	log(LogSystem, LogLevelError, txt)
}

func LogIOError(txt string) {
	log(LogIO, LogLevelError, txt)
}

func LogTextureDebug(txt string) {
	log(LogTextures, LogLevelDebug, txt)
}

func LogTextureError(txt string) {
	log(LogTextures, LogLevelError, txt)
}

func LogGlInfo(txt string) {
	log(LogOpenGL, LogLevelInfo, txt)
}

func LogGlDebug(txt string) {
	log(LogOpenGL, LogLevelDebug, txt)
}

func LogGlError(txt string) {
	log(LogOpenGL, LogLevelError, txt)
}
