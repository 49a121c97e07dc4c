// accessstat - HTTP access log statistics
//
// accessstat reads a combined-format access log and reports request rankings,
// per-minute volume and success rates.
package main

import (
	"os"

	"github.com/ccollicutt/accessstat/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
