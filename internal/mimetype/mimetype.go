package mimetype

import (
	"path/filepath"
	"strings"
)

// Fallback 未识别扩展名时使用的类型
const Fallback = "application/octet-stream"

var types = map[string]string{
	// 视频
	"mp4":  "video/mp4",
	"m4v":  "video/x-m4v",
	"webm": "video/webm",
	"mkv":  "video/x-matroska",
	"mov":  "video/quicktime",
	"ogv":  "video/ogg",
	"avi":  "video/x-msvideo",
	"ts":   "video/mp2t",
	// 音频
	"mp3":  "audio/mpeg",
	"m4a":  "audio/mp4",
	"aac":  "audio/aac",
	"ogg":  "audio/ogg",
	"oga":  "audio/ogg",
	"opus": "audio/opus",
	"wav":  "audio/wav",
	"flac": "audio/flac",
	// 流媒体清单与字幕
	"m3u8": "application/vnd.apple.mpegurl",
	"mpd":  "application/dash+xml",
	"vtt":  "text/vtt",
	"srt":  "application/x-subrip",
	// 图片
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

// Resolve 根据文件扩展名返回MIME类型
func Resolve(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return Fallback
	}
	if t, ok := types[strings.ToLower(ext)]; ok {
		return t
	}
	return Fallback
}
