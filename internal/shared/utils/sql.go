package utils

import (
	"strconv"
	"strings"
)

// LikeEscapeChar là escape character dùng trong mệnh đề LIKE ... ESCAPE
const LikeEscapeChar = `\`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escape các wildcard của LIKE để search là substring match thuần
func EscapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// ContainsPattern: "%<escaped lowercase s>%"
func ContainsPattern(s string) string {
	return "%" + EscapeLike(strings.ToLower(s)) + "%"
}

// ParseID parse path param id; chỉ chấp nhận chuỗi chữ số ASCII ("+1", "-1" bị từ chối)
func ParseID(raw string) (int64, bool) {
	if raw == "" || strings.IndexFunc(raw, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
