package analyzer

import (
	"strings"
	"testing"

	"github.com/ccollicutt/accessstat/pkg/parser"
)

// sampleLog is an 18 line access log spanning two minutes and five clients.
const sampleLog = `10.0.176.70 - - [31/Oct/1994:14:00:57 +0000] "POST /kernel/get.php?aws=nLZQtFvpe HTTP/1.0" 403 1162
10.0.139.231 - - [31/Oct/1994:14:00:57 +0000] "GET /kernel/get.php? HTTP/1.0" 404 704
10.0.176.70 - - [31/Oct/1994:14:00:58 +0000] "GET /printer/remove.php HTTP/1.0" 200 32980
10.0.139.231 - - [31/Oct/1994:14:00:58 +0000] "GET /main/set.php?timeout=37340 HTTP/1.1" 404 921
10.0.176.70 - - [31/Oct/1994:14:00:59 +0000] "GET /statistics/call.php?secret=yIKdbrpuPn HTTP/1.0" 404 931
10.0.139.231 - - [31/Oct/1994:14:00:59 +0000] "POST /finance/add.php HTTP/1.1" 300 1521
10.0.138.11 - - [31/Oct/1994:14:00:59 +0000] "GET /printer/add.php?id=40762 HTTP/1.1" 200 46883
10.0.176.70 - - [31/Oct/1994:14:01:00 +0000] "POST /kernel/search.php HTTP/1.0" 200 45161
10.0.139.231 - - [31/Oct/1994:14:01:00 +0000] "POST /kernel/remove.php?value=47092 HTTP/1.1" 200 330
10.0.138.11 - - [31/Oct/1994:14:01:00 +0000] "GET /main/call.php HTTP/1.0" 204 32812
10.0.173.104 - - [31/Oct/1994:14:01:00 +0000] "POST /statistics/get.php?session=WEriQXgwqI HTTP/1.0" 204 53749
10.0.173.104 - - [31/Oct/1994:14:01:01 +0000] "POST /kernel/remove.php?session=B_rJQysxFn HTTP/1.1" 204 34156
10.0.133.214 - - [31/Oct/1994:14:01:02 +0000] "GET /main/add.php?age=34664 HTTP/1.0" 200 45132
10.0.139.231 - - [31/Oct/1994:14:01:03 +0000] "POST /statistics/get.php?aws=LTkzQjctib HTTP/1.0" 204 1776
10.0.176.70 - - [31/Oct/1994:14:01:03 +0000] "POST /main/search.php HTTP/1.1" 200 1349
10.0.139.231 - - [31/Oct/1994:14:01:04 +0000] "POST /kernel/remove.php?age=58234 HTTP/1.0" 200 1997
10.0.133.214 - - [31/Oct/1994:14:01:04 +0000] "GET /kernel/search.php?age=49039 HTTP/1.0" 204 33997
10.0.139.231 - - [31/Oct/1994:14:01:05 +0000] "GET /kernel/get.php?timeout=42514 HTTP/1.0" 304 1285
`

func sampleLines(n int) []string {
	lines := strings.Split(strings.TrimSuffix(sampleLog, "\n"), "\n")
	if n > 0 && n < len(lines) {
		return lines[:n]
	}
	return lines
}

// feed extracts lines and processes the ones that parse.
func feed(t *testing.T, e *Engine, stripQuery bool, lines []string) {
	t.Helper()
	extractor := parser.NewExtractor(stripQuery)
	for _, line := range lines {
		rec, err := extractor.Extract(line)
		if err != nil {
			continue
		}
		e.Process(rec)
	}
}
