// Package logger 基于 zerolog 的全局日志初始化
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"terminal-terrace/conduit/config"
)

// Init 按配置设置全局 logger
func Init(conf config.LogConfig) {
	Setup(os.Stdout, conf)
}

// Setup 将全局 logger 输出到 w
func Setup(w io.Writer, conf config.LogConfig) {
	level, err := zerolog.ParseLevel(conf.Level)
	if err != nil || conf.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if conf.Format == "text" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}
