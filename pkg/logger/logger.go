// Package logger 提供全局日志的初始化与获取。
// 核心包只通过 Get() 写日志，不负责日志的配置。
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var global *zerolog.Logger

// Init 初始化全局日志
// level: 日志级别 ("debug", "info", "warn", "error")，无法识别时按 info 处理
// file: 日志文件路径，为空时仅输出到控制台
func Init(level string, file string) error {
	var output io.Writer = os.Stdout
	if file != "" {
		// 指定了文件时同时输出到文件和控制台
		fileWriter, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		output = io.MultiWriter(os.Stdout, fileWriter)
	}

	console := zerolog.ConsoleWriter{Out: output, TimeFormat: "2006-01-02 15:04:05"}
	logger := zerolog.New(console).With().Timestamp().Logger().Level(parseLevel(level))

	global = &logger
	return nil
}

// Get 返回全局 logger
// 未初始化时返回丢弃所有输出的 logger，库代码可以随时安全调用
func Get() *zerolog.Logger {
	if global == nil {
		logger := zerolog.New(io.Discard)
		global = &logger
	}
	return global
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}
