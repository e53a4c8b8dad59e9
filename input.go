package stars

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// ReadRepositories reads one repository identifier per line until r is
// exhausted. Lines are trimmed; blank lines and lines that are not valid
// UTF-8 are skipped. A read error ends the input early without being
// reported, and the partial line it interrupted is discarded.
func ReadRepositories(r io.Reader) []string {
	var (
		repos []string
		br    = bufio.NewReader(r)
	)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return repos
		}
		if utf8.ValidString(line) {
			if repo := strings.TrimSpace(line); repo != "" {
				repos = append(repos, repo)
			}
		}
		if err != nil {
			return repos
		}
	}
}
