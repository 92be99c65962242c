package repository

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 通配符，避免用户输入被当作模式
func escapeLike(s string) string {
	return likeEscaper.Replace(strings.TrimSpace(s))
}
