package store

import (
	"fmt"
	"strings"
)

// where 組合 AND 條件並依序產生 $n 佔位符
type where struct {
	clauses []string
	args    []any
	shared  map[string]string
}

// arg 加入參數並回傳其佔位符
func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

// once 同名參數只加入一次，重複呼叫回傳相同佔位符
func (w *where) once(name string, v any) string {
	if p, ok := w.shared[name]; ok {
		return p
	}
	if w.shared == nil {
		w.shared = map[string]string{}
	}
	p := w.arg(v)
	w.shared[name] = p
	return p
}

func (w *where) add(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// escapeLike 讓使用者輸入的 % 與 _ 以字面比對
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func direction(order string) string {
	if strings.EqualFold(order, "desc") {
		return "DESC"
	}
	return "ASC"
}
