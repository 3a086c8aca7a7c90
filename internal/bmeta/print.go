package bmeta

import (
	"fmt"
	"io"
)

const defaultBuildMeta = "N/A" // Значение по умолчанию

// Info метаданные сборки, заданные через -ldflags.
type Info struct {
	Version string
	Date    string
	Commit  string
}

// Print Распечатывает версию, дату и комит сборки. Незаданные значения выводятся как N/A.
func Print(w io.Writer, info Info) {
	_, _ = fmt.Fprintf(w, "Build version: %s\n", orDefault(info.Version))
	_, _ = fmt.Fprintf(w, "Build date: %s\n", orDefault(info.Date))
	_, _ = fmt.Fprintf(w, "Build commit: %s\n", orDefault(info.Commit))
}

func orDefault(v string) string {
	if v == "" {
		return defaultBuildMeta
	}
	return v
}
